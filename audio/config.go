package audio

import (
	"os"
	"strconv"
	"time"

	"github.com/lixenwraith/resonance/constant"
)

// Config holds audio output settings
type Config struct {
	Enabled        bool
	MasterVolume   float64 // 0.0-1.0
	SampleRate     int
	BufferDuration time.Duration
	ReverbSend     float64 // 0.0-1.0
	ReverbBlock    int     // convolution partition size, power of two
	QueueSize      int
}

// DefaultConfig returns the default audio configuration
func DefaultConfig() *Config {
	return &Config{
		Enabled:        true,
		MasterVolume:   constant.MasterGain,
		SampleRate:     constant.AudioSampleRate,
		BufferDuration: constant.AudioBufferDuration,
		ReverbSend:     constant.ReverbSendGain,
		ReverbBlock:    constant.ReverbBlock,
		QueueSize:      constant.VoiceQueueSize,
	}
}

// LoadConfig loads audio configuration from environment variables
// Unparseable or out-of-range values are ignored
func LoadConfig() *Config {
	cfg := DefaultConfig()

	if enabled := os.Getenv("RESONANCE_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Master volume (0-100 converted to 0.0-1.0)
	if volume := os.Getenv("RESONANCE_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = percent(val)
		}
	}

	if send := os.Getenv("RESONANCE_REVERB_SEND"); send != "" {
		if val, err := strconv.Atoi(send); err == nil {
			cfg.ReverbSend = percent(val)
		}
	}

	if sampleRate := os.Getenv("RESONANCE_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	if buffer := os.Getenv("RESONANCE_AUDIO_BUFFER_MS"); buffer != "" {
		if val, err := strconv.Atoi(buffer); err == nil && val > 0 {
			cfg.BufferDuration = time.Duration(val) * time.Millisecond
		}
	}

	if block := os.Getenv("RESONANCE_REVERB_BLOCK"); block != "" {
		if val, err := strconv.Atoi(block); err == nil && val > 0 && val&(val-1) == 0 {
			cfg.ReverbBlock = val
		}
	}

	return cfg
}

func percent(v int) float64 {
	f := float64(v) / 100.0
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return f
}
