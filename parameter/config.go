package parameter

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
)

// ErrInvalidConfig is returned by Validate for out-of-range settings
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the process-wide visual and sequencing tuning, immutable after startup
type Config struct {
	// Text
	MaxChars     int // hue ratio bound, advisory input length
	MinWorking   int // working string is repeated to at least this many runes
	MaxWorking   int // and truncated to at most this many
	FallbackText string

	// Sphere
	BaseRadius        float64
	Perspective       float64 // focal distance
	CameraOffset      float64 // added to rotated depth
	BaseRotationSpeed float64 // rad/ms at tempo 0
	TempoRotationGain float64 // extra rad/ms at tempo 100
	WobbleSpeed       float64 // rad/ms of the per-particle wave
	WobbleRange       float64 // radius swing at dynamics 100
	BreathSpeed       float64 // rad/ms of the whole-sphere breathing
	BreathRange       float64

	// Colour
	HueStart     float64 // degrees, short text
	HueEnd       float64 // degrees, text at MaxChars
	GlowHueSpeed float64 // rad/ms of the background hue swing
	GlowHueSwing float64 // degrees

	// Edges
	ConnectionDist float64 // px at unit scale
	EdgeWindow     int     // depth-sorted neighbours examined per particle, inclusive of self
	EdgeMinScale   float64 // particles farther than this never emit edges

	// Pulse
	PulseDecay float64 // multiplicative per frame, (0,1)

	// Dust
	DustCount      int
	DustRadius     [2]float64 // shell band as multiples of BaseRadius
	DustSize       [2]float64
	DustBlinkSpeed [2]float64 // rad/ms
	DustFloatSpeed float64
	DustFloatRange float64

	// Surface
	FPS        int
	CellWidth  float64 // virtual pixels per terminal column
	CellHeight float64 // virtual pixels per terminal row
}

// DefaultConfig returns the stock tuning
func DefaultConfig() *Config {
	return &Config{
		MaxChars:     50,
		MinWorking:   120,
		MaxWorking:   300,
		FallbackText: "Piano",

		BaseRadius:        200,
		Perspective:       850,
		CameraOffset:      300,
		BaseRotationSpeed: 0.0003,
		TempoRotationGain: 0.001,
		WobbleSpeed:       0.002,
		WobbleRange:       80,
		BreathSpeed:       0.0008,
		BreathRange:       12,

		HueStart:     210,
		HueEnd:       350,
		GlowHueSpeed: 0.0003,
		GlowHueSwing: 30,

		ConnectionDist: 35,
		EdgeWindow:     10,
		EdgeMinScale:   0.8,

		PulseDecay: 0.93,

		DustCount:      140,
		DustRadius:     [2]float64{1.45, 2.4},
		DustSize:       [2]float64{0.6, 2.2},
		DustBlinkSpeed: [2]float64{0.0008, 0.004},
		DustFloatSpeed: 0.0006,
		DustFloatRange: 10,

		FPS:        60,
		CellWidth:  8,
		CellHeight: 16,
	}
}

// LoadConfig loads tuning overrides from environment variables
func LoadConfig() *Config {
	cfg := DefaultConfig()

	envInt("RESONANCE_MAX_CHARS", &cfg.MaxChars)
	envInt("RESONANCE_MAX_WORKING", &cfg.MaxWorking)
	envInt("RESONANCE_DUST_COUNT", &cfg.DustCount)
	envInt("RESONANCE_EDGE_WINDOW", &cfg.EdgeWindow)
	envInt("RESONANCE_FPS", &cfg.FPS)
	envFloat("RESONANCE_BASE_RADIUS", &cfg.BaseRadius)
	envFloat("RESONANCE_PERSPECTIVE", &cfg.Perspective)
	envFloat("RESONANCE_ROTATION_SPEED", &cfg.BaseRotationSpeed)
	envFloat("RESONANCE_HUE_START", &cfg.HueStart)
	envFloat("RESONANCE_HUE_END", &cfg.HueEnd)
	envFloat("RESONANCE_CONNECTION_DIST", &cfg.ConnectionDist)
	envFloat("RESONANCE_EDGE_MIN_SCALE", &cfg.EdgeMinScale)
	envFloat("RESONANCE_WOBBLE_SPEED", &cfg.WobbleSpeed)
	envFloat("RESONANCE_WOBBLE_RANGE", &cfg.WobbleRange)
	envFloat("RESONANCE_PULSE_DECAY", &cfg.PulseDecay)
	envFloat("RESONANCE_CELL_WIDTH", &cfg.CellWidth)
	envFloat("RESONANCE_CELL_HEIGHT", &cfg.CellHeight)

	if text := os.Getenv("RESONANCE_FALLBACK_TEXT"); text != "" {
		cfg.FallbackText = text
	}

	return cfg
}

func envInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envFloat(key string, dst *float64) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

// Validate reports the first setting that would break layout or sequencing
func (c *Config) Validate() error {
	switch {
	case c.MaxChars <= 0:
		return fmt.Errorf("%w: MaxChars must be positive, got %d", ErrInvalidConfig, c.MaxChars)
	case c.MaxWorking < 2:
		return fmt.Errorf("%w: MaxWorking must be at least 2, got %d", ErrInvalidConfig, c.MaxWorking)
	case c.MinWorking > c.MaxWorking:
		return fmt.Errorf("%w: MinWorking %d exceeds MaxWorking %d", ErrInvalidConfig, c.MinWorking, c.MaxWorking)
	case c.FallbackText == "":
		return fmt.Errorf("%w: FallbackText must not be empty", ErrInvalidConfig)
	case c.BaseRadius <= 0:
		return fmt.Errorf("%w: BaseRadius must be positive, got %f", ErrInvalidConfig, c.BaseRadius)
	case c.Perspective <= 0:
		return fmt.Errorf("%w: Perspective must be positive, got %f", ErrInvalidConfig, c.Perspective)
	case c.Perspective+c.CameraOffset <= c.BaseRadius+c.WobbleRange+c.BreathRange:
		// Nearest possible depth would sit at or behind the focal plane
		return fmt.Errorf("%w: Perspective+CameraOffset must exceed the maximum sphere radius", ErrInvalidConfig)
	case c.Perspective+c.CameraOffset <= c.DustRadius[1]*c.BaseRadius+math.Abs(c.DustFloatRange):
		return fmt.Errorf("%w: Perspective+CameraOffset must exceed the outer dust shell radius", ErrInvalidConfig)
	case c.PulseDecay <= 0 || c.PulseDecay >= 1:
		return fmt.Errorf("%w: PulseDecay must be in (0,1), got %f", ErrInvalidConfig, c.PulseDecay)
	case c.EdgeWindow < 1:
		return fmt.Errorf("%w: EdgeWindow must be at least 1, got %d", ErrInvalidConfig, c.EdgeWindow)
	case c.DustCount < 0:
		return fmt.Errorf("%w: DustCount must not be negative, got %d", ErrInvalidConfig, c.DustCount)
	case c.DustRadius[0] <= 0 || c.DustRadius[1] < c.DustRadius[0]:
		return fmt.Errorf("%w: DustRadius band %v is empty", ErrInvalidConfig, c.DustRadius)
	case c.FPS <= 0:
		return fmt.Errorf("%w: FPS must be positive, got %d", ErrInvalidConfig, c.FPS)
	case c.CellWidth <= 0 || c.CellHeight <= 0:
		return fmt.Errorf("%w: cell size must be positive", ErrInvalidConfig)
	}
	return nil
}
