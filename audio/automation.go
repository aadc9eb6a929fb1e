package audio

import (
	"math"
	"sort"
)

type rampKind uint8

const (
	rampSet rampKind = iota
	rampLinear
	rampExponential
)

type paramEvent struct {
	kind  rampKind
	time  float64 // seconds
	value float64
}

// Param is a time-automated value evaluated at sample time
// Events follow the set / linear-ramp / exponential-ramp model: a ramp runs
// from the previous event's time and value to its own
type Param struct {
	initial float64
	events  []paramEvent
}

// NewParam creates a param holding initial until the first event
func NewParam(initial float64) *Param {
	return &Param{initial: initial}
}

// SetValueAtTime jumps to v at time t
func (p *Param) SetValueAtTime(v, t float64) *Param {
	return p.insert(paramEvent{kind: rampSet, time: t, value: v})
}

// LinearRampToValueAtTime ramps linearly to v, arriving at time t
func (p *Param) LinearRampToValueAtTime(v, t float64) *Param {
	return p.insert(paramEvent{kind: rampLinear, time: t, value: v})
}

// ExponentialRampToValueAtTime ramps geometrically to v, arriving at time t
// If the start value is zero or the signs differ, the start value holds until t
func (p *Param) ExponentialRampToValueAtTime(v, t float64) *Param {
	return p.insert(paramEvent{kind: rampExponential, time: t, value: v})
}

// insert keeps events time-ordered; equal times keep insertion order
func (p *Param) insert(e paramEvent) *Param {
	i := sort.Search(len(p.events), func(i int) bool { return p.events[i].time > e.time })
	p.events = append(p.events, paramEvent{})
	copy(p.events[i+1:], p.events[i:])
	p.events[i] = e
	return p
}

// ValueAt returns the automated value at time t (seconds)
func (p *Param) ValueAt(t float64) float64 {
	prevTime, prevValue := 0.0, p.initial

	for _, e := range p.events {
		if e.time <= t {
			prevTime, prevValue = e.time, e.value
			continue
		}
		// First event in the future: interpolate if it is a ramp
		switch e.kind {
		case rampLinear:
			frac := (t - prevTime) / (e.time - prevTime)
			return prevValue + (e.value-prevValue)*frac
		case rampExponential:
			if prevValue == 0 || prevValue*e.value <= 0 {
				return prevValue
			}
			frac := (t - prevTime) / (e.time - prevTime)
			return prevValue * math.Pow(e.value/prevValue, frac)
		default:
			return prevValue
		}
	}
	return prevValue
}

// EndTime returns the time of the last event
func (p *Param) EndTime() float64 {
	if len(p.events) == 0 {
		return 0
	}
	return p.events[len(p.events)-1].time
}
