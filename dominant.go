package apixels

import (
	"image"
	"math"

	"github.com/wbrown/apixels/imageutil"
)

// SampleBlock is a read-only run of pixels cut from an image, row by row.
type SampleBlock struct {
	Pixels []RGB
}

// NewSampleBlock copies the pixels of r, clipped to the image bounds.
func NewSampleBlock(img *imageutil.RGBAImage, r image.Rectangle) SampleBlock {
	return SampleBlock{Pixels: img.Crop(r)}
}

// Len returns the number of pixels in the block.
func (b SampleBlock) Len() int { return len(b.Pixels) }

// DominantPair holds the two colors that summarise a block.
type DominantPair struct {
	// Primary is the most common exact color blended halfway towards
	// Secondary, which hides hard seams between neighbouring blocks.
	Primary RGB
	// Secondary is the per-channel quadratic mean of the block.
	Secondary RGB
}

// Dominant summarises a block into a DominantPair. The block must not be
// empty; an empty block yields the zero pair.
func Dominant(b SampleBlock) DominantPair {
	if len(b.Pixels) == 0 {
		return DominantPair{}
	}

	secondary := quadraticMean(b.Pixels)
	mode := modeColor(b.Pixels)

	return DominantPair{
		Primary: RGB{
			R: uint8((uint16(mode.R) + uint16(secondary.R)) / 2),
			G: uint8((uint16(mode.G) + uint16(secondary.G)) / 2),
			B: uint8((uint16(mode.B) + uint16(secondary.B)) / 2),
		},
		Secondary: secondary,
	}
}

// quadraticMean computes sqrt(sum(c^2)/n) per channel, truncated. It leans
// towards the brighter pixels of the block.
func quadraticMean(pixels []RGB) RGB {
	var sr, sg, sb uint64
	for _, p := range pixels {
		sr += uint64(p.R) * uint64(p.R)
		sg += uint64(p.G) * uint64(p.G)
		sb += uint64(p.B) * uint64(p.B)
	}
	n := float64(len(pixels))
	return RGB{
		R: rootMeanChannel(sr, n),
		G: rootMeanChannel(sg, n),
		B: rootMeanChannel(sb, n),
	}
}

func rootMeanChannel(sumSq uint64, n float64) uint8 {
	v := math.Sqrt(float64(sumSq) / n)
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// modeColor returns the most frequent exact color. Equal counts resolve to
// the smallest color ordered by R, then G, then B.
func modeColor(pixels []RGB) RGB {
	counts := make(map[RGB]int, len(pixels))
	for _, p := range pixels {
		counts[p]++
	}

	var best RGB
	bestCount := 0
	for c, n := range counts {
		if n > bestCount || (n == bestCount && rgbLess(c, best)) {
			best, bestCount = c, n
		}
	}
	return best
}

func rgbLess(a, b RGB) bool {
	if a.R != b.R {
		return a.R < b.R
	}
	if a.G != b.G {
		return a.G < b.G
	}
	return a.B < b.B
}
