package render

import (
	"math"

	"github.com/lixenwraith/resonance/constant"
	"github.com/lixenwraith/resonance/parameter"
	"github.com/lixenwraith/resonance/scene"
	"github.com/lixenwraith/resonance/vmath"
)

// Viewport is the render surface size in virtual pixels
type Viewport struct {
	Width, Height float64
}

// Projection is a point mapped to screen space
// Scale doubles as the depth cue: nearer points are larger and more opaque
type Projection struct {
	X, Y  float64
	Depth float64 // rotated z, negative toward the camera
	Scale float64
}

// Alpha returns the depth-derived opacity
func (p Projection) Alpha() float64 {
	return p.Scale
}

// Projector maps world points to the viewport at time t (ms)
// It holds only the viewport; particle attributes are never written
type Projector struct {
	cfg  *parameter.Config
	view Viewport
}

// NewProjector creates a projector for the given viewport
func NewProjector(cfg *parameter.Config, view Viewport) Projector {
	return Projector{cfg: cfg, view: view}
}

// RotationSpeed returns the Y rotation rate in rad/ms for the current tempo
func RotationSpeed(cfg *parameter.Config, live parameter.Snapshot) float64 {
	return cfg.BaseRotationSpeed + live.TempoLevel()*cfg.TempoRotationGain
}

// Project rotates world about the vertical axis by omega*t and applies perspective
func (pr Projector) Project(world vmath.Vec3F, t, omega float64) Projection {
	r := vmath.V3FRotateY(world, omega*t)
	scale := pr.cfg.Perspective / (pr.cfg.Perspective + r.Z + pr.cfg.CameraOffset)

	return Projection{
		X:     pr.view.Width/2 + r.X*scale,
		Y:     pr.view.Height/constant.VerticalAnchor + r.Y*scale,
		Depth: r.Z,
		Scale: scale,
	}
}

// TextRadius is the breathing sphere radius plus the particle's own wave,
// whose amplitude follows dynamics
func (pr Projector) TextRadius(p *scene.TextParticle, t float64, live parameter.Snapshot) float64 {
	breath := math.Sin(t*pr.cfg.BreathSpeed) * pr.cfg.BreathRange
	wave := math.Sin(t*pr.cfg.WobbleSpeed + p.Origin.Y*constant.WaveLatitudeFreq + p.Phase)
	return pr.cfg.BaseRadius + breath + wave*live.DynamicsLevel()*pr.cfg.WobbleRange
}

// ProjectText projects a text particle at its time-varying radius
func (pr Projector) ProjectText(p *scene.TextParticle, t, omega float64, live parameter.Snapshot) Projection {
	world := vmath.V3FScale(p.Origin, pr.TextRadius(p, t, live))
	return pr.Project(world, t, omega)
}

// ProjectDust projects a dust mote with its vertical float, and returns its blink level
func (pr Projector) ProjectDust(d *scene.DustMote, t, omega float64) (Projection, float64) {
	lift := math.Sin(t*pr.cfg.DustFloatSpeed+d.BlinkPhase) * pr.cfg.DustFloatRange
	world := vmath.V3FAdd(d.Pos, vmath.Vec3F{Y: lift})
	return pr.Project(world, t, omega), Blink(d, t)
}

// Blink returns the dust opacity multiplier in [BlinkFloor, BlinkFloor+BlinkSpan]
func Blink(d *scene.DustMote, t float64) float64 {
	return constant.BlinkFloor + constant.BlinkSpan*(math.Sin(d.BlinkSpeed*t+d.BlinkPhase)+1)/2
}
