package imageutil

import (
	"github.com/disintegration/gift"
)

// GaussianBlur returns a blurred copy of img. A sigma of zero or less
// returns an unmodified copy, so callers can use it as the identity.
func GaussianBlur(img *RGBAImage, sigma float64) *RGBAImage {
	if sigma <= 0 {
		return img.Clone()
	}

	g := gift.New(gift.GaussianBlur(float32(sigma)))
	g.SetParallelization(true)

	bounds := g.Bounds(img.Bounds())
	dst := NewRGBAImage(bounds.Dx(), bounds.Dy())
	g.Draw(dst.RGBA, img.RGBA)
	return dst
}
