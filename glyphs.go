package apixels

import "math"

// GlyphTable is a character ramp ordered from emptiest to densest.
type GlyphTable []rune

// DefaultGlyphs is the 90 character ramp used for edge intensity.
var DefaultGlyphs = GlyphTable(" `-:_,^=;><+!rc*/z?sLTv)J7(|Fi{C}fI31tlu[neoZ5Yxjya]2ESwqkP6h9d4VpOGbUAKXHm8RD#$Bg0MNWQ%&@")

// Index maps a luma in [0,255] onto the ramp: round(luma/255*(n-1)),
// clamped to the table.
func (t GlyphTable) Index(luma float64) int {
	if len(t) == 0 {
		return 0
	}
	idx := int(math.Round(luma / 255 * float64(len(t)-1)))
	if idx < 0 {
		return 0
	}
	if idx >= len(t) {
		return len(t) - 1
	}
	return idx
}

// Pick returns the glyph for luma.
func (t GlyphTable) Pick(luma float64) rune {
	return t[t.Index(luma)]
}
