package render

import (
	"math"
	"math/rand"
	"testing"

	"github.com/lixenwraith/resonance/constant"
	"github.com/lixenwraith/resonance/parameter"
	"github.com/lixenwraith/resonance/scene"
	"github.com/lixenwraith/resonance/vmath"
)

const eps = 1e-9

func TestProjectOrigin(t *testing.T) {
	cfg := parameter.DefaultConfig()
	pr := NewProjector(cfg, Viewport{Width: 960, Height: 640})

	p := pr.Project(vmath.Vec3F{}, 1234, 0.001)

	wantScale := cfg.Perspective / (cfg.Perspective + cfg.CameraOffset)
	if math.Abs(p.Scale-wantScale) > eps {
		t.Errorf("Expected scale %f, got %f", wantScale, p.Scale)
	}
	if p.X != 480 {
		t.Errorf("Expected X at centre 480, got %f", p.X)
	}
	if math.Abs(p.Y-640/constant.VerticalAnchor) > eps {
		t.Errorf("Expected Y at anchor %f, got %f", 640/constant.VerticalAnchor, p.Y)
	}
	if p.Alpha() != p.Scale {
		t.Error("Expected alpha to equal scale")
	}
}

// TestProjectRotation verifies a quarter turn carries +X onto +Z (farther, smaller)
func TestProjectRotation(t *testing.T) {
	cfg := parameter.DefaultConfig()
	pr := NewProjector(cfg, Viewport{Width: 800, Height: 600})

	omega := 0.001
	tq := (math.Pi / 2) / omega
	p := pr.Project(vmath.Vec3F{X: 100}, tq, omega)

	if math.Abs(p.X-400) > 1e-6 {
		t.Errorf("Expected X back at centre after quarter turn, got %f", p.X)
	}
	if math.Abs(p.Depth-100) > 1e-6 {
		t.Errorf("Expected depth 100, got %f", p.Depth)
	}
	wantScale := cfg.Perspective / (cfg.Perspective + 100 + cfg.CameraOffset)
	if math.Abs(p.Scale-wantScale) > 1e-9 {
		t.Errorf("Expected scale %f, got %f", wantScale, p.Scale)
	}
}

// TestProjectNearerIsLarger verifies the depth cue
func TestProjectNearerIsLarger(t *testing.T) {
	cfg := parameter.DefaultConfig()
	pr := NewProjector(cfg, Viewport{Width: 800, Height: 600})

	near := pr.Project(vmath.Vec3F{Z: -200}, 0, 0)
	far := pr.Project(vmath.Vec3F{Z: 200}, 0, 0)
	if near.Scale <= far.Scale {
		t.Errorf("Expected near scale %f > far scale %f", near.Scale, far.Scale)
	}
}

func TestRotationSpeed(t *testing.T) {
	cfg := parameter.DefaultConfig()

	if got := RotationSpeed(cfg, parameter.Snapshot{Tempo: 0}); math.Abs(got-0.0003) > eps {
		t.Errorf("Expected tempo 0 speed 0.0003, got %f", got)
	}
	if got := RotationSpeed(cfg, parameter.Snapshot{Tempo: 100}); math.Abs(got-0.0013) > eps {
		t.Errorf("Expected tempo 100 speed 0.0013, got %f", got)
	}
}

// TestTextRadiusDynamics verifies wobble amplitude scales with dynamics
func TestTextRadiusDynamics(t *testing.T) {
	cfg := parameter.DefaultConfig()
	pr := NewProjector(cfg, Viewport{Width: 800, Height: 600})

	p := scene.TextParticle{Origin: vmath.Vec3F{Y: 0}, Phase: math.Pi / 2}

	// t=0: breathing term is sin(0)=0, wave is sin(π/2)=1
	quiet := pr.TextRadius(&p, 0, parameter.Snapshot{Dynamics: 0})
	loud := pr.TextRadius(&p, 0, parameter.Snapshot{Dynamics: 100})

	if math.Abs(quiet-cfg.BaseRadius) > eps {
		t.Errorf("Expected base radius at dynamics 0, got %f", quiet)
	}
	if math.Abs(loud-(cfg.BaseRadius+cfg.WobbleRange)) > eps {
		t.Errorf("Expected full wobble at dynamics 100, got %f", loud)
	}
}

func TestBlinkRange(t *testing.T) {
	d := scene.DustMote{BlinkSpeed: 0.003, BlinkPhase: 1.1}
	for ts := 0.0; ts < 10000; ts += 7.3 {
		b := Blink(&d, ts)
		if b < constant.BlinkFloor-eps || b > constant.BlinkFloor+constant.BlinkSpan+eps {
			t.Fatalf("Blink %f out of range at t=%f", b, ts)
		}
	}
}

// TestProjectDustFloat verifies the vertical float is applied before projection
func TestProjectDustFloat(t *testing.T) {
	cfg := parameter.DefaultConfig()
	pr := NewProjector(cfg, Viewport{Width: 800, Height: 600})

	d := scene.DustMote{Pos: vmath.Vec3F{X: 300}, BlinkPhase: math.Pi / 2}
	proj, _ := pr.ProjectDust(&d, 0, 0)

	// Float lifts y by DustFloatRange at phase π/2
	scale := cfg.Perspective / (cfg.Perspective + cfg.CameraOffset)
	wantY := 600/constant.VerticalAnchor + cfg.DustFloatRange*scale
	if math.Abs(proj.Y-wantY) > 1e-9 {
		t.Errorf("Expected floated Y %f, got %f", wantY, proj.Y)
	}
}

// TestProjectDustStaysInFront verifies any validated config keeps the whole
// dust shell in front of the camera plane
func TestProjectDustStaysInFront(t *testing.T) {
	cfg := parameter.DefaultConfig()
	cfg.BaseRadius = 470
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Expected config near the limit to validate, got %v", err)
	}
	pr := NewProjector(cfg, Viewport{Width: 800, Height: 600})
	dust := scene.BuildDust(cfg, rand.New(rand.NewSource(1)))
	omega := RotationSpeed(cfg, parameter.Snapshot{Tempo: 100})

	bad := 0
	for ms := 0.0; ms < 20000; ms += 37 {
		for i := range dust {
			if p, _ := pr.ProjectDust(&dust[i], ms, omega); p.Scale <= 0 || math.IsInf(p.Scale, 0) {
				bad++
			}
		}
	}
	if bad != 0 {
		t.Errorf("Expected positive finite dust scales, got %d bad", bad)
	}
}

func TestHSLWrapsHue(t *testing.T) {
	a := HSL(-30, 0.5, 0.5)
	b := HSL(330, 0.5, 0.5)
	if !a.AlmostEqualRgb(b) {
		t.Errorf("Expected -30 and 330 to match, got %v vs %v", a, b)
	}
	white := HSL(200, 0.9, 1.4)
	if !white.AlmostEqualRgb(HSL(0, 0, 1)) {
		t.Errorf("Expected lightness to clamp to white, got %v", white)
	}
}
