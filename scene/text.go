package scene

import (
	"unicode/utf8"

	"github.com/lixenwraith/resonance/parameter"
)

// WorkingString repeats text (space separated) until it reaches
// max(3*len, cfg.MinWorking) runes, then truncates to cfg.MaxWorking
// Short inputs still fill the sphere; long inputs are clamped, never rejected
func WorkingString(text string, cfg *parameter.Config) []rune {
	src := []rune(text)
	if len(src) == 0 {
		return nil
	}

	target := len(src) * 3
	if target < cfg.MinWorking {
		target = cfg.MinWorking
	}

	work := make([]rune, 0, target+len(src)+1)
	work = append(work, src...)
	for len(work) < target {
		work = append(work, ' ')
		work = append(work, src...)
	}

	if len(work) > cfg.MaxWorking {
		work = work[:cfg.MaxWorking]
	}
	return work
}

// Hue maps text length onto the configured hue band
// Length saturates at cfg.MaxChars, so longer input keeps the end hue
func Hue(text string, cfg *parameter.Config) float64 {
	n := utf8.RuneCountInString(text)
	if n > cfg.MaxChars {
		n = cfg.MaxChars
	}
	ratio := float64(n) / float64(cfg.MaxChars)
	return cfg.HueStart - ratio*(cfg.HueStart-cfg.HueEnd)
}
