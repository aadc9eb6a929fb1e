package parameter

import (
	"sync/atomic"

	"github.com/lixenwraith/resonance/vmath"
)

// Slider bounds shared by dynamics and tempo
const (
	MinLevel = 0
	MaxLevel = 100

	DefaultDynamics = 35
	DefaultTempo    = 45
)

// Live holds the UI-driven parameters read every frame and every sequencer tick
// Writes clamp to [MinLevel, MaxLevel]; reads never block
type Live struct {
	dynamics atomic.Int32
	tempo    atomic.Int32
}

// Snapshot is an immutable view of Live taken once per frame or tick
type Snapshot struct {
	Dynamics int
	Tempo    int
}

// NewLive creates live parameters at the default slider positions
func NewLive() *Live {
	l := &Live{}
	l.dynamics.Store(DefaultDynamics)
	l.tempo.Store(DefaultTempo)
	return l
}

// SetDynamics updates hit force, wobble amplitude and brightness
func (l *Live) SetDynamics(v int) {
	l.dynamics.Store(int32(clampLevel(v)))
}

// SetTempo updates rotation speed and step interval
func (l *Live) SetTempo(v int) {
	l.tempo.Store(int32(clampLevel(v)))
}

func (l *Live) Dynamics() int {
	return int(l.dynamics.Load())
}

func (l *Live) Tempo() int {
	return int(l.tempo.Load())
}

// Snapshot returns the current values
func (l *Live) Snapshot() Snapshot {
	return Snapshot{
		Dynamics: l.Dynamics(),
		Tempo:    l.Tempo(),
	}
}

// DynamicsLevel returns dynamics as a 0.0-1.0 fraction
func (s Snapshot) DynamicsLevel() float64 {
	return float64(s.Dynamics) / MaxLevel
}

// TempoLevel returns tempo as a 0.0-1.0 fraction
func (s Snapshot) TempoLevel() float64 {
	return float64(s.Tempo) / MaxLevel
}

func clampLevel(v int) int {
	return vmath.ClampInt(v, MinLevel, MaxLevel)
}
