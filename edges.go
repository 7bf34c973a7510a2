package apixels

import (
	"fmt"
	"image"

	"github.com/wbrown/apixels/imageutil"
)

// EdgeAmplification scales the difference between the two blurred copies
// before it saturates at 255.
const EdgeAmplification = 3

// EdgeMap is a same-size companion of a source image whose channels hold
// amplified difference-of-Gaussians magnitudes.
type EdgeMap struct {
	*imageutil.RGBAImage
}

// SecondRadius is the blur radius of the wider Gaussian: sigma*constant.
func SecondRadius(sigma, constant float64) float64 {
	return sigma * constant
}

// DetectEdges runs a difference-of-Gaussians filter over img. One copy is
// blurred at sigma, the other at SecondRadius(sigma, constant); every
// channel of the result is |a-b|*EdgeAmplification saturated at 255.
// A non-positive radius leaves that copy unblurred, so sigma <= 0 or
// constant == 1 gives an all-zero map.
func DetectEdges(img *imageutil.RGBAImage, sigma, constant float64) (*EdgeMap, error) {
	if img.Empty() {
		return nil, newError(InvalidConfiguration, "edges", fmt.Errorf("image is empty"))
	}

	var narrow, wide *imageutil.RGBAImage
	if sigma <= 0 {
		narrow = img
		wide = img
	} else {
		narrow = imageutil.GaussianBlur(img, sigma)
		wide = imageutil.GaussianBlur(img, SecondRadius(sigma, constant))
	}

	width, height := img.Width(), img.Height()
	for _, b := range []*imageutil.RGBAImage{narrow, wide} {
		if b.Width() != width || b.Height() != height || len(b.Pix) < 4*width*height {
			return nil, newError(BufferConstructionFailure, "edges",
				fmt.Errorf("blurred buffer is %dx%d with %d bytes, want %dx%d",
					b.Width(), b.Height(), len(b.Pix), width, height))
		}
	}

	out := imageutil.NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		ai := narrow.PixOffset(0, y)
		bi := wide.PixOffset(0, y)
		oi := out.PixOffset(0, y)
		for x := 0; x < width; x++ {
			out.Pix[oi] = edgeDiff(narrow.Pix[ai], wide.Pix[bi])
			out.Pix[oi+1] = edgeDiff(narrow.Pix[ai+1], wide.Pix[bi+1])
			out.Pix[oi+2] = edgeDiff(narrow.Pix[ai+2], wide.Pix[bi+2])
			out.Pix[oi+3] = 0xff
			ai, bi, oi = ai+4, bi+4, oi+4
		}
	}
	return &EdgeMap{RGBAImage: out}, nil
}

func edgeDiff(a, b uint8) uint8 {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	d *= EdgeAmplification
	if d > 255 {
		return 255
	}
	return uint8(d)
}

// MeanLuma returns the average BT.601 luma of the map over r, clipped to
// the map bounds.
func (e *EdgeMap) MeanLuma(r image.Rectangle) float64 {
	return imageutil.MeanLuma(e.RGBAImage, r)
}

// Zero reports whether every channel of the map is zero.
func (e *EdgeMap) Zero() bool {
	for i := 0; i < len(e.Pix); i += 4 {
		if e.Pix[i]|e.Pix[i+1]|e.Pix[i+2] != 0 {
			return false
		}
	}
	return true
}
