package audio

import (
	"math"
)

// butterworthQ is the quality factor of a maximally flat second-order section
const butterworthQ = 0.707

// Butterworth is a second-order lowpass biquad
type Butterworth struct {
	b0, b1, b2, a1, a2 float64
	x1, x2, y1, y2     float64
	sampleRate         float64
	cutoff             float64
}

// NewButterworth creates a lowpass at cutoffFreq Hz
func NewButterworth(cutoffFreq, sampleRate float64) *Butterworth {
	b := &Butterworth{
		sampleRate: sampleRate,
	}
	b.UpdateCutoff(cutoffFreq)
	return b
}

// UpdateCutoff recomputes coefficients; filter state is kept so sweeps are click-free
// Cutoff is clamped to (1 Hz, 0.45·sampleRate)
func (b *Butterworth) UpdateCutoff(cutoffFreq float64) {
	cutoffFreq = math.Max(1, math.Min(cutoffFreq, b.sampleRate*0.45))
	b.cutoff = cutoffFreq

	wc := 2 * math.Pi * cutoffFreq / b.sampleRate
	cosw := math.Cos(wc)
	alpha := math.Sin(wc) / (2 * butterworthQ)

	a0 := 1 + alpha
	b.b0 = (1 - cosw) / 2 / a0
	b.b1 = (1 - cosw) / a0
	b.b2 = (1 - cosw) / 2 / a0
	b.a1 = -2 * cosw / a0
	b.a2 = (1 - alpha) / a0
}

// Cutoff returns the current cutoff frequency
func (b *Butterworth) Cutoff() float64 {
	return b.cutoff
}

// Process filters one sample
func (b *Butterworth) Process(x float64) float64 {
	y := b.b0*x + b.b1*b.x1 + b.b2*b.x2 - b.a1*b.y1 - b.a2*b.y2

	b.x2 = b.x1
	b.x1 = x
	b.y2 = b.y1
	b.y1 = y
	return y
}
