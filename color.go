package apixels

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/wbrown/apixels/imageutil"
)

// RGB is the canonical 24-bit color every color model converts through.
type RGB = imageutil.RGB

// Color is a color held at some output depth. The set of implementations
// is closed: Truecolor, Packed16, Intensity and Palette16.
type Color interface {
	// Expand converts the color back to canonical RGB.
	Expand() RGB
	depth() Depth
}

// Truecolor is a lossless 24-bit color.
type Truecolor RGB

// QuantizeTruecolor is the identity.
func QuantizeTruecolor(c RGB) Truecolor { return Truecolor(c) }

func (c Truecolor) Expand() RGB { return RGB(c) }
func (Truecolor) depth() Depth { return DepthTruecolor }

// Packed16 is an RGB565 color: red in bits 11-15, green in bits 5-10 and
// blue in bits 0-4.
type Packed16 uint16

const (
	packedRedShift   = 11
	packedGreenShift = 5
	packedRedMask    = 0x1f
	packedGreenMask  = 0x3f
	packedBlueMask   = 0x1f
)

// QuantizePacked16 keeps the top 5 bits of red and blue and the top 6
// bits of green.
func QuantizePacked16(c RGB) Packed16 {
	r := uint16(c.R >> 3)
	g := uint16(c.G >> 2)
	b := uint16(c.B >> 3)
	return Packed16(r<<packedRedShift | g<<packedGreenShift | b)
}

// Expand rescales each field to 0-255 by 255/31 (red, blue) or 255/63
// (green), rounding to nearest.
func (p Packed16) Expand() RGB {
	r := uint16(p>>packedRedShift) & packedRedMask
	g := uint16(p>>packedGreenShift) & packedGreenMask
	b := uint16(p) & packedBlueMask
	return RGB{
		R: rescale(r, packedRedMask),
		G: rescale(g, packedGreenMask),
		B: rescale(b, packedBlueMask),
	}
}

func (Packed16) depth() Depth { return DepthPacked16 }

// Channels returns the raw 5, 6 and 5 bit fields.
func (p Packed16) Channels() (r, g, b uint8) {
	return uint8(p>>packedRedShift) & packedRedMask,
		uint8(p>>packedGreenShift) & packedGreenMask,
		uint8(p) & packedBlueMask
}

func rescale(v, fieldMax uint16) uint8 {
	scaled := (uint32(v)*255 + uint32(fieldMax)/2) / uint32(fieldMax)
	if scaled > 255 {
		scaled = 255
	}
	return uint8(scaled)
}

// Intensity is a single-channel gray level.
type Intensity uint8

// QuantizeIntensity returns floor((r+g+b)/3).
func QuantizeIntensity(c RGB) Intensity {
	return Intensity((uint16(c.R) + uint16(c.G) + uint16(c.B)) / 3)
}

func (i Intensity) Expand() RGB { return RGB{R: uint8(i), G: uint8(i), B: uint8(i)} }
func (Intensity) depth() Depth { return DepthIntensity }

// Palette16 is one of the sixteen fixed terminal colors.
type Palette16 uint8

const (
	Black Palette16 = iota
	DarkRed
	DarkGreen
	DarkYellow
	DarkBlue
	DarkMagenta
	DarkCyan
	Gray
	DarkGray
	Red
	Green
	Yellow
	Blue
	Purple
	Cyan
	White
)

// Ubuntu terminal scheme values.
var palette16 = [16]struct {
	name string
	rgb  RGB
}{
	{"Black", RGB{R: 1, G: 1, B: 1}},
	{"DarkRed", RGB{R: 222, G: 56, B: 43}},
	{"DarkGreen", RGB{R: 57, G: 181, B: 74}},
	{"DarkYellow", RGB{R: 255, G: 199, B: 6}},
	{"DarkBlue", RGB{R: 0, G: 111, B: 184}},
	{"DarkMagenta", RGB{R: 118, G: 38, B: 113}},
	{"DarkCyan", RGB{R: 44, G: 181, B: 233}},
	{"Gray", RGB{R: 204, G: 204, B: 204}},
	{"DarkGray", RGB{R: 128, G: 128, B: 128}},
	{"Red", RGB{R: 225, G: 0, B: 0}},
	{"Green", RGB{R: 0, G: 255, B: 0}},
	{"Yellow", RGB{R: 255, G: 255, B: 0}},
	{"Blue", RGB{R: 0, G: 0, B: 255}},
	{"Purple", RGB{R: 255, G: 0, B: 255}},
	{"Cyan", RGB{R: 0, G: 255, B: 255}},
	{"White", RGB{R: 255, G: 255, B: 255}},
}

// palette16Lab caches the Lab form of every palette entry; it is
// read-only after package initialisation.
var palette16Lab = func() (out [16]colorful.Color) {
	for i, e := range palette16 {
		out[i] = toColorful(e.rgb)
	}
	return out
}()

// QuantizePalette16 returns the palette entry nearest to c in Lab space.
// Ties go to the entry listed first.
func QuantizePalette16(c RGB) Palette16 {
	target := toColorful(c)
	best := Black
	bestDist := target.DistanceLab(palette16Lab[Black])
	for i := 1; i < len(palette16Lab); i++ {
		if d := target.DistanceLab(palette16Lab[i]); d < bestDist {
			best, bestDist = Palette16(i), d
		}
	}
	return best
}

func (p Palette16) Expand() RGB { return palette16[p&0x0f].rgb }
func (Palette16) depth() Depth { return DepthPalette16 }

func (p Palette16) String() string {
	if int(p) >= len(palette16) {
		return fmt.Sprintf("Palette16(%d)", uint8(p))
	}
	return palette16[p].name
}

// Palette16Entries returns the sixteen palette entries in order.
func Palette16Entries() []Palette16 {
	out := make([]Palette16, len(palette16))
	for i := range out {
		out[i] = Palette16(i)
	}
	return out
}

// Distance is the Euclidean distance between a and b in CIE Lab (D65),
// after expanding both to canonical RGB.
func Distance(a, b Color) float64 {
	return toColorful(a.Expand()).DistanceLab(toColorful(b.Expand()))
}

func toColorful(c RGB) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// Depth selects the color model output colors are reduced through.
type Depth int

const (
	DepthTruecolor Depth = iota
	DepthPacked16
	DepthIntensity
	DepthPalette16
	// DepthNone skips color sampling entirely; cells are drawn black on
	// white.
	DepthNone
)

var depthNames = map[Depth]string{
	DepthTruecolor: "truecolor",
	DepthPacked16:  "packed16",
	DepthIntensity: "intensity",
	DepthPalette16: "palette16",
	DepthNone:      "none",
}

var depthAliases = map[string]Depth{
	"truecolor":  DepthTruecolor,
	"rgb24":      DepthTruecolor,
	"packed16":   DepthPacked16,
	"rgb16":      DepthPacked16,
	"rgb565":     DepthPacked16,
	"intensity":  DepthIntensity,
	"grayscale":  DepthIntensity,
	"monochrome": DepthIntensity,
	"palette16":  DepthPalette16,
	"ansi":       DepthPalette16,
	"none":       DepthNone,
}

// ParseDepth parses a depth name. Matching is case-insensitive and
// accepts the aliases rgb24, rgb16, rgb565, grayscale, monochrome and ansi.
func ParseDepth(s string) (Depth, error) {
	d, ok := depthAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown color depth %q (want truecolor, packed16, intensity, palette16 or none)", s)
	}
	return d, nil
}

func (d Depth) String() string {
	if name, ok := depthNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Depth(%d)", int(d))
}

// Quantize converts c to the depth's color model. DepthNone and unknown
// depths return nil.
func (d Depth) Quantize(c RGB) Color {
	switch d {
	case DepthTruecolor:
		return QuantizeTruecolor(c)
	case DepthPacked16:
		return QuantizePacked16(c)
	case DepthIntensity:
		return QuantizeIntensity(c)
	case DepthPalette16:
		return QuantizePalette16(c)
	}
	return nil
}

// Reduce round-trips c through the depth's color model, which is what
// limits output colors to what the depth can show. DepthNone returns c.
func (d Depth) Reduce(c RGB) RGB {
	q := d.Quantize(c)
	if q == nil {
		return c
	}
	return q.Expand()
}
