package imageutil

import (
	"image"

	"golang.org/x/image/draw"
)

// Interpolation specifies the interpolation method for resizing.
type Interpolation int

const (
	// InterpolationArea uses Catmull-Rom for high-quality downscaling.
	InterpolationArea Interpolation = iota

	// InterpolationLinear uses bilinear interpolation.
	InterpolationLinear

	// InterpolationNearest uses nearest-neighbor interpolation.
	// Fastest but lowest quality.
	InterpolationNearest
)

func (interp Interpolation) scaler() draw.Scaler {
	switch interp {
	case InterpolationLinear:
		return draw.BiLinear
	case InterpolationNearest:
		return draw.NearestNeighbor
	default:
		return draw.CatmullRom
	}
}

// Resize resizes an RGBA image to the specified dimensions using the
// given interpolation method.
func Resize(img *RGBAImage, width, height int, interp Interpolation) *RGBAImage {
	dst := NewRGBAImage(width, height)
	dstRect := image.Rect(0, 0, width, height)
	interp.scaler().Scale(dst.RGBA, dstRect, img.RGBA, img.Bounds(), draw.Src, nil)
	return dst
}

// ResizeToColumns resizes img so that tiling it with sampleWidth x
// sampleHeight tiles yields exactly columns cells per row. charAspect is
// the height/width ratio of a terminal cell; the row count follows the
// source aspect ratio corrected for it. Images already narrow enough are
// returned unchanged, it never upscales.
func ResizeToColumns(img *RGBAImage, columns, sampleWidth, sampleHeight int, charAspect float64) *RGBAImage {
	if columns <= 0 || sampleWidth <= 0 || sampleHeight <= 0 {
		return img
	}

	width := columns * sampleWidth
	if width >= img.Width() {
		return img
	}

	if charAspect <= 0 {
		charAspect = 1
	}
	rows := float64(columns) * float64(img.Height()) / float64(img.Width()) / charAspect
	height := int(rows+0.5) * sampleHeight
	if height < sampleHeight {
		height = sampleHeight
	}
	return Resize(img, width, height, InterpolationArea)
}
