package clock

import "time"

// Clock provides wall time, one-shot timers and periodic tickers
// Render frames tick through NewTicker and read Now; the sequencer schedules
// its steps through AfterFunc
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
	NewTicker(d time.Duration) Ticker
}

// Timer is a pending AfterFunc callback
type Timer interface {
	// Stop cancels the callback, returns false if it already fired or was stopped
	Stop() bool
}

// Ticker delivers the clock time every period; slow readers miss ticks
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// System is the real monotonic clock
type System struct{}

// NewSystem creates a clock backed by package time
func NewSystem() *System {
	return &System{}
}

// Now returns the current time with monotonic clock reading
func (System) Now() time.Time {
	return time.Now()
}

// AfterFunc runs f on its own goroutine after d
func (System) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// NewTicker wraps time.NewTicker; d must be positive
func (System) NewTicker(d time.Duration) Ticker {
	return systemTicker{t: time.NewTicker(d)}
}

type systemTicker struct {
	t *time.Ticker
}

func (s systemTicker) C() <-chan time.Time {
	return s.t.C
}

func (s systemTicker) Stop() {
	s.t.Stop()
}
