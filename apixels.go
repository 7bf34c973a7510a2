// Package apixels converts raster images into grids of colored text
// characters for terminals.
//
// An image is cut into small tiles (2x3 pixels by default). Each tile
// becomes one character: its colors come from the two dominant colors of
// the tile, reduced to the selected Depth, and its glyph comes from how
// much edge energy a difference-of-Gaussians filter finds in it. Tiles are
// rendered in parallel and assembled in row-major order, so output is
// deterministic.
//
//	r := apixels.NewRenderer(apixels.WithDepth(apixels.DepthPalette16))
//	text, err := r.RenderBytes(pngBytes)
package apixels

// Convert renders an encoded image with a Renderer built from opts and
// returns the styled text.
func Convert(encoded []byte, opts ...RendererOption) (string, error) {
	return NewRenderer(opts...).RenderBytes(encoded)
}
