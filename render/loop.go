package render

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/resonance/clock"
	"github.com/lixenwraith/resonance/parameter"
)

// Loop redraws the composer onto a surface at a fixed frame rate until cancelled
type Loop struct {
	composer *Composer
	surface  Surface
	live     *parameter.Live
	clock    clock.Clock
	interval time.Duration

	frames atomic.Uint64
	last   atomic.Pointer[FrameStats]
}

// NewLoop creates a render loop at fps frames per second
func NewLoop(composer *Composer, surface Surface, live *parameter.Live, clk clock.Clock, fps int) *Loop {
	if fps <= 0 {
		fps = 60
	}
	return &Loop{
		composer: composer,
		surface:  surface,
		live:     live,
		clock:    clk,
		interval: time.Second / time.Duration(fps),
	}
}

// Run draws frames on the clock's ticker until ctx is done
// Scene time starts at zero on entry
func (l *Loop) Run(ctx context.Context) error {
	ticker := l.clock.NewTicker(l.interval)
	defer ticker.Stop()

	start := l.clock.Now()
	l.Step(0)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C():
			elapsed := l.clock.Now().Sub(start)
			l.Step(float64(elapsed) / float64(time.Millisecond))
		}
	}
}

// Step composes and presents a single frame at scene time t (ms)
func (l *Loop) Step(t float64) FrameStats {
	stats := l.composer.Frame(t, l.live.Snapshot(), l.surface)
	l.surface.Show()
	l.frames.Add(1)
	l.last.Store(&stats)
	return stats
}

// Frames returns the number of frames presented
func (l *Loop) Frames() uint64 {
	return l.frames.Load()
}

// LastStats returns the statistics of the most recent frame
func (l *Loop) LastStats() FrameStats {
	if s := l.last.Load(); s != nil {
		return *s
	}
	return FrameStats{}
}
