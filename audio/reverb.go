package audio

import (
	"math"
	"math/rand"

	"github.com/mjibson/go-dsp/fft"
)

// NewImpulseResponse synthesises a stereo room: independent white noise per
// channel under a (1-i/len)^decay envelope, scaled to unit energy per channel
func NewImpulseResponse(sampleRate int, seconds, decay float64, rng *rand.Rand) [2][]float64 {
	length := int(float64(sampleRate) * seconds)
	var ir [2][]float64
	if length <= 0 {
		return ir
	}

	for ch := range ir {
		buf := make([]float64, length)
		energy := 0.0
		for i := range buf {
			v := (rng.Float64()*2 - 1) * math.Pow(1-float64(i)/float64(length), decay)
			buf[i] = v
			energy += v * v
		}
		if energy > 0 {
			scale := 1 / math.Sqrt(energy)
			for i := range buf {
				buf[i] *= scale
			}
		}
		ir[ch] = buf
	}
	return ir
}

// Convolver is a uniformly partitioned overlap-save FFT convolver
// Output lags input by one block
type Convolver struct {
	block int
	parts [][]complex128 // spectra of IR partitions, length 2*block

	fdl  [][]complex128 // frequency-domain delay line of input spectra
	head int           // fdl index of the newest spectrum

	window []float64 // previous block + current block
	in     []float64 // current input block being filled
	out    []float64 // output block being drained
	pos    int

	acc    []complex128
	silent int // consecutive all-zero input blocks
}

// NewConvolver partitions ir into block-sized segments; block must be a power of two
func NewConvolver(ir []float64, block int) *Convolver {
	n := (len(ir) + block - 1) / block
	if n == 0 {
		n = 1
	}

	c := &Convolver{
		block:  block,
		parts:  make([][]complex128, n),
		fdl:    make([][]complex128, n),
		window: make([]float64, 2*block),
		in:     make([]float64, block),
		out:    make([]float64, block),
		acc:    make([]complex128, 2*block),
		silent: n,
	}

	seg := make([]float64, 2*block)
	for p := 0; p < n; p++ {
		for i := range seg {
			seg[i] = 0
		}
		lo := p * block
		hi := min(lo+block, len(ir))
		if lo < hi {
			copy(seg, ir[lo:hi])
		}
		c.parts[p] = fft.FFTReal(seg)
		c.fdl[p] = make([]complex128, 2*block)
	}
	return c
}

// Block returns the partition size, which is also the latency in samples
func (c *Convolver) Block() int {
	return c.block
}

// Process convolves in into out sample by sample; len(out) must be >= len(in)
func (c *Convolver) Process(in, out []float64) {
	for i, x := range in {
		out[i] = c.out[c.pos]
		c.in[c.pos] = x
		c.pos++
		if c.pos == c.block {
			c.flush()
			c.pos = 0
		}
	}
}

// flush transforms the completed input block and computes the next output block
func (c *Convolver) flush() {
	zero := true
	for _, v := range c.in {
		if v != 0 {
			zero = false
			break
		}
	}
	if zero {
		c.silent++
	} else {
		c.silent = 0
	}

	// Slide the window: old current block becomes the previous block
	copy(c.window, c.window[c.block:])
	copy(c.window[c.block:], c.in)

	c.head = (c.head + 1) % len(c.fdl)

	// Tail fully decayed: skip the transforms
	if c.silent > len(c.parts) {
		for i := range c.fdl[c.head] {
			c.fdl[c.head][i] = 0
		}
		for i := range c.out {
			c.out[i] = 0
		}
		return
	}

	c.fdl[c.head] = fft.FFTReal(c.window)

	for i := range c.acc {
		c.acc[i] = 0
	}
	n := len(c.parts)
	for p := 0; p < n; p++ {
		x := c.fdl[(c.head-p+n)%n]
		h := c.parts[p]
		for k := range c.acc {
			c.acc[k] += x[k] * h[k]
		}
	}

	y := fft.IFFT(c.acc)
	// Overlap-save: the first half is circular wrap, keep the second
	for i := range c.out {
		c.out[i] = real(y[c.block+i])
	}
}

// Reset clears all history
func (c *Convolver) Reset() {
	for i := range c.fdl {
		for k := range c.fdl[i] {
			c.fdl[i][k] = 0
		}
	}
	for i := range c.window {
		c.window[i] = 0
	}
	for i := range c.in {
		c.in[i] = 0
		c.out[i] = 0
	}
	c.pos = 0
	c.silent = len(c.parts)
}
