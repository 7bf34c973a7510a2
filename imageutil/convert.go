package imageutil

import "image"

// Luma returns the BT.601 luma of a pixel: Y = 0.299*R + 0.587*G + 0.114*B,
// in integer math rounded to nearest.
func Luma(c RGB) int {
	lum := (299*int(c.R) + 587*int(c.G) + 114*int(c.B) + 500) / 1000
	if lum > 255 {
		lum = 255
	}
	return lum
}

// MeanLuma returns the average luma over r clipped to the image bounds.
// An empty intersection yields 0.
func MeanLuma(img *RGBAImage, r image.Rectangle) float64 {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return 0
	}

	var sum int
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := img.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			sum += Luma(RGB{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2]})
			i += 4
		}
	}
	return float64(sum) / float64(r.Dx()*r.Dy())
}
