package audio

import (
	"math"

	"github.com/lixenwraith/resonance/constant"
)

// voiceState renders one Voice; owned by the engine's stream goroutine
type voiceState struct {
	kind    VoiceKind
	start   int64 // first sample
	stop    int64 // sample at which oscillators stop
	rate    float64
	phases  [3]float64
	incs    [3]float64
	filter  *Butterworth
	gain    *Param
	cutoff  *Param
	counter int
}

// newVoiceState builds the parameter curves for v at sampleRate
func newVoiceState(v Voice, sampleRate float64) *voiceState {
	vs := &voiceState{
		kind:  v.Kind,
		start: int64(math.Round(v.Start * sampleRate)),
		rate:  sampleRate,
		gain:  NewParam(0),
	}
	t := v.Start

	switch v.Kind {
	case VoiceThud:
		vs.stop = int64(math.Round((t + constant.ThudStopAfter) * sampleRate))
		vs.incs[0] = constant.ThudFreq / sampleRate
		vs.gain.
			SetValueAtTime(0, t).
			LinearRampToValueAtTime(v.Hit*constant.ThudGain, t+constant.ThudAttack).
			ExponentialRampToValueAtTime(constant.ThudFloor, t+constant.ThudDecayTime)

	default:
		vs.stop = int64(math.Round((t + constant.PianoStopAfter) * sampleRate))
		for i, cents := range constant.PianoDetunes {
			vs.incs[i] = Detune(v.Freq, cents) / sampleRate
		}
		vs.cutoff = NewParam(0).
			SetValueAtTime(constant.PianoCutoffBase+v.Hit*constant.PianoCutoffSpan, t).
			ExponentialRampToValueAtTime(constant.PianoCutoffFloor, t+constant.PianoCutoffFall)
		vs.filter = NewButterworth(vs.cutoff.ValueAt(t), sampleRate)
		vs.gain.
			SetValueAtTime(0, t).
			LinearRampToValueAtTime(v.Hit, t+constant.PianoAttack).
			ExponentialRampToValueAtTime(v.Hit*constant.PianoDecayLevel, t+constant.PianoDecayTime).
			ExponentialRampToValueAtTime(constant.PianoReleaseLevel, t+constant.PianoReleaseTime)
	}
	return vs
}

// Detune shifts freq by cents
func Detune(freq, cents float64) float64 {
	return freq * math.Pow(2, cents/1200)
}

// triangle is a unit triangle starting at zero and rising, phase in [0, 1)
func triangle(p float64) float64 {
	switch {
	case p < 0.25:
		return 4 * p
	case p < 0.75:
		return 2 - 4*p
	default:
		return 4*p - 4
	}
}

// render mixes the voice into dry (and wet for tones) for the block starting at sample s0
// Returns false once the voice has stopped
func (vs *voiceState) render(dry, wet []float64, s0 int64) bool {
	for i := range dry {
		s := s0 + int64(i)
		if s < vs.start {
			continue
		}
		if s >= vs.stop {
			return false
		}
		t := float64(s) / vs.rate

		switch vs.kind {
		case VoiceThud:
			x := math.Sin(2*math.Pi*vs.phases[0]) * vs.gain.ValueAt(t)
			vs.advance(1)
			dry[i] += x

		default:
			if vs.counter%constant.FilterUpdateInterval == 0 {
				vs.filter.UpdateCutoff(vs.cutoff.ValueAt(t))
			}
			vs.counter++

			sum := 0.0
			for k := range vs.phases {
				sum += triangle(vs.phases[k])
			}
			vs.advance(len(vs.phases))

			x := vs.filter.Process(sum) * vs.gain.ValueAt(t)
			dry[i] += x
			wet[i] += x
		}
	}
	return s0+int64(len(dry)) < vs.stop
}

func (vs *voiceState) advance(n int) {
	for k := 0; k < n; k++ {
		p := vs.phases[k] + vs.incs[k]
		vs.phases[k] = p - math.Floor(p)
	}
}
