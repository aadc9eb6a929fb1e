package clock

import (
	"testing"
	"time"
)

func TestMockAdvanceFiresInOrder(t *testing.T) {
	m := NewMock(time.Unix(0, 0))

	var order []int
	m.AfterFunc(300*time.Millisecond, func() { order = append(order, 3) })
	m.AfterFunc(100*time.Millisecond, func() { order = append(order, 1) })
	m.AfterFunc(200*time.Millisecond, func() { order = append(order, 2) })

	m.Advance(250 * time.Millisecond)
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("Expected [1 2] after 250ms, got %v", order)
	}
	if m.Pending() != 1 {
		t.Errorf("Expected 1 pending timer, got %d", m.Pending())
	}

	m.Advance(100 * time.Millisecond)
	if len(order) != 3 {
		t.Fatalf("Expected all three fired, got %v", order)
	}
	if got := m.Now(); !got.Equal(time.Unix(0, 0).Add(350 * time.Millisecond)) {
		t.Errorf("Expected now at 350ms, got %v", got)
	}
}

func TestMockStop(t *testing.T) {
	m := NewMock(time.Unix(0, 0))

	fired := false
	timer := m.AfterFunc(time.Second, func() { fired = true })

	if !timer.Stop() {
		t.Error("Expected first Stop to report true")
	}
	if timer.Stop() {
		t.Error("Expected second Stop to report false")
	}

	m.Advance(2 * time.Second)
	if fired {
		t.Error("Expected stopped timer not to fire")
	}
}

// TestMockRescheduleFromCallback verifies chained timers fire within one Advance
func TestMockRescheduleFromCallback(t *testing.T) {
	m := NewMock(time.Unix(0, 0))

	count := 0
	var tick func()
	tick = func() {
		count++
		m.AfterFunc(100*time.Millisecond, tick)
	}
	m.AfterFunc(100*time.Millisecond, tick)

	m.Advance(time.Second)
	if count != 10 {
		t.Errorf("Expected 10 chained ticks in 1s, got %d", count)
	}
	if m.Pending() != 1 {
		t.Errorf("Expected the 11th tick pending, got %d", m.Pending())
	}
}

func TestMockTicker(t *testing.T) {
	m := NewMock(time.Unix(0, 0))
	tk := m.NewTicker(10 * time.Millisecond)

	select {
	case <-tk.C():
		t.Fatal("Expected no tick before Advance")
	default:
	}

	m.Advance(10 * time.Millisecond)
	select {
	case got := <-tk.C():
		if !got.Equal(time.Unix(0, 0).Add(10 * time.Millisecond)) {
			t.Errorf("Expected tick at 10ms, got %v", got)
		}
	default:
		t.Fatal("Expected a tick after one period")
	}

	// Unread ticks collapse into one
	m.Advance(50 * time.Millisecond)
	<-tk.C()
	select {
	case <-tk.C():
		t.Error("Expected a single buffered tick")
	default:
	}

	tk.Stop()
	m.Advance(time.Second)
	select {
	case <-tk.C():
		t.Error("Expected no tick after Stop")
	default:
	}
	if m.Pending() != 0 {
		t.Errorf("Expected no pending timers after Stop, got %d", m.Pending())
	}
}
