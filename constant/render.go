package constant

// Glyph Drawing
const (
	GlyphBaseSize    = 14.0
	GlyphPulseSize   = 7.0
	GlyphMinAlpha    = 0.05
	GlyphAlphaOffset = 0.2
	GlyphSaturation  = 0.9
	GlyphLightness   = 70.0
	GlyphDynLight    = 15.0
	GlyphPulseLight  = 25.0
	GlyphGlowBlur    = 25.0
	GlyphGlowPulse   = 0.05 // pulse above which glyphs glow
	EdgeAlphaMax     = 0.15
	EdgeSaturation   = 0.5
	EdgeLightness    = 0.8
	DustSaturation   = 0.35
	DustLightness    = 0.8
	GlowSaturation   = 0.6
	GlowLightness    = 0.14
	GlowRadiusFactor = 0.65 // of the larger viewport side
	VerticalAnchor   = 2.2  // screen y anchor = height / VerticalAnchor
)

// Dust Blink: alpha = BlinkFloor + BlinkSpan*(sin+1)/2
const (
	BlinkFloor = 0.1
	BlinkSpan  = 0.5
)

// Radius wave: per-particle latitude coupling of the wobble term
const WaveLatitudeFreq = 6.0

// Terminal Cell Mapping
// Cells are coarse, so faint strokes are boosted before blending
const (
	TermLineGain    = 3.0
	TermDotGain     = 1.5
	TermHaloAlpha   = 0.35
	TermBoldSize    = 15.0 // glyph size at or above which cells are bold
	TermDotSmall    = 1.0  // projected radius thresholds for dot runes
	TermDotMedium   = 1.8
	TermGlowFalloff = 1.6 // exponent of the radial glow curve
)
