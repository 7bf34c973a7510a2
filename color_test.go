package apixels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruecolorRoundTrip(t *testing.T) {
	for r := 0; r < 256; r += 5 {
		for g := 0; g < 256; g += 3 {
			for b := 0; b < 256; b += 7 {
				c := RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
				require.Equal(t, c, QuantizeTruecolor(c).Expand())
			}
		}
	}
}

func TestPacked16RoundTripError(t *testing.T) {
	absDiff := func(a, b uint8) int {
		if a > b {
			return int(a - b)
		}
		return int(b - a)
	}
	for v := 0; v < 256; v++ {
		c := RGB{R: uint8(v), G: uint8(v), B: uint8(255 - v)}
		got := QuantizePacked16(c).Expand()
		assert.LessOrEqual(t, absDiff(c.R, got.R), 8, "red %d -> %d", c.R, got.R)
		assert.LessOrEqual(t, absDiff(c.G, got.G), 4, "green %d -> %d", c.G, got.G)
		assert.LessOrEqual(t, absDiff(c.B, got.B), 8, "blue %d -> %d", c.B, got.B)
	}
}

func TestPacked16Layout(t *testing.T) {
	p := QuantizePacked16(RGB{R: 255, G: 0, B: 0})
	assert.Equal(t, Packed16(0xf800), p)
	r, g, b := p.Channels()
	assert.Equal(t, uint8(31), r)
	assert.Equal(t, uint8(0), g)
	assert.Equal(t, uint8(0), b)

	assert.Equal(t, Packed16(0x07e0), QuantizePacked16(RGB{G: 255}))
	assert.Equal(t, Packed16(0x001f), QuantizePacked16(RGB{B: 255}))
	assert.Equal(t, RGB{R: 255, G: 255, B: 255}, QuantizePacked16(RGB{R: 255, G: 255, B: 255}).Expand())
	assert.Equal(t, RGB{}, QuantizePacked16(RGB{R: 7, G: 3, B: 7}).Expand())
}

func TestQuantizeIntensity(t *testing.T) {
	tests := []struct {
		in   RGB
		want Intensity
	}{
		{RGB{}, 0},
		{RGB{R: 255, G: 255, B: 255}, 255},
		{RGB{R: 3, G: 4, B: 5}, 4},
		{RGB{R: 1, G: 1, B: 0}, 0},
		{RGB{R: 255, G: 0, B: 0}, 85},
	}
	for _, tt := range tests {
		got := QuantizeIntensity(tt.in)
		assert.Equal(t, tt.want, got, "intensity of %v", tt.in)
		v := uint8(tt.want)
		assert.Equal(t, RGB{R: v, G: v, B: v}, got.Expand())
	}
}

func TestPalette16EntriesMapToThemselves(t *testing.T) {
	entries := Palette16Entries()
	require.Len(t, entries, 16)
	for _, p := range entries {
		assert.Equal(t, p, QuantizePalette16(p.Expand()), "entry %s", p)
	}
}

func TestQuantizePalette16Nearest(t *testing.T) {
	assert.Equal(t, Red, QuantizePalette16(RGB{R: 255}))
	assert.Equal(t, Black, QuantizePalette16(RGB{}))
	assert.Equal(t, White, QuantizePalette16(RGB{R: 250, G: 250, B: 250}))
	assert.Equal(t, Blue, QuantizePalette16(RGB{B: 250}))
	assert.Equal(t, "DarkGray", DarkGray.String())
	assert.Equal(t, "Palette16(42)", Palette16(42).String())
}

func TestDistance(t *testing.T) {
	a := QuantizeTruecolor(RGB{R: 10, G: 200, B: 30})
	b := QuantizePalette16(RGB{R: 10, G: 200, B: 30})

	assert.Zero(t, Distance(a, a))
	assert.InDelta(t, Distance(a, b), Distance(b, a), 1e-12)
	assert.Greater(t, Distance(QuantizeIntensity(RGB{}), QuantizeIntensity(RGB{R: 255, G: 255, B: 255})), 0.9)

	// Distance compares expanded colors, so equal colors in different
	// models are zero apart.
	assert.Zero(t, Distance(Red, QuantizeTruecolor(RGB{R: 225})))
}

func TestParseDepth(t *testing.T) {
	tests := []struct {
		in   string
		want Depth
	}{
		{"truecolor", DepthTruecolor},
		{"RGB24", DepthTruecolor},
		{"packed16", DepthPacked16},
		{"rgb565", DepthPacked16},
		{"grayscale", DepthIntensity},
		{" Monochrome ", DepthIntensity},
		{"ansi", DepthPalette16},
		{"palette16", DepthPalette16},
		{"none", DepthNone},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDepth(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseDepth("256")
	assert.Error(t, err)
}

func TestDepthStringRoundTrip(t *testing.T) {
	for _, d := range []Depth{DepthTruecolor, DepthPacked16, DepthIntensity, DepthPalette16, DepthNone} {
		got, err := ParseDepth(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}
	assert.Equal(t, "Depth(9)", Depth(9).String())
}

func TestDepthReduce(t *testing.T) {
	c := RGB{R: 123, G: 45, B: 67}
	assert.Equal(t, c, DepthTruecolor.Reduce(c))
	assert.Equal(t, c, DepthNone.Reduce(c))
	assert.Nil(t, DepthNone.Quantize(c))
	assert.Equal(t, RGB{R: 78, G: 78, B: 78}, DepthIntensity.Reduce(c))
	assert.Equal(t, QuantizePacked16(c).Expand(), DepthPacked16.Reduce(c))
	assert.IsType(t, Palette16(0), DepthPalette16.Quantize(c))
}
