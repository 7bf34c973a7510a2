package apixels

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"runtime"
	"time"

	"github.com/apex/log"
	"golang.org/x/sync/errgroup"

	"github.com/wbrown/apixels/imageutil"
)

var (
	black = RGB{}
	white = RGB{R: 255, G: 255, B: 255}
)

// Renderer turns images into character grids. A Renderer holds only
// configuration, so one value can serve concurrent calls.
type Renderer struct {
	// Configuration options
	SampleWidth  int
	SampleHeight int
	Depth        Depth
	Sigma        float64
	Constant     float64
	NoBackground bool
	ShowEdges    bool
	Glyphs       GlyphTable
	Workers      int

	// TargetColumns, when positive, downsizes the source before tiling so
	// the grid is at most this many columns wide. CharAspect is the
	// height/width ratio of a terminal cell used to keep proportions.
	TargetColumns int
	CharAspect    float64

	log log.Interface
}

// RendererOption is a functional option for configuring a Renderer.
type RendererOption func(*Renderer)

// NewRenderer creates a new Renderer with the given options.
// Default values: SampleWidth=2, SampleHeight=3, Depth=DepthTruecolor,
// Sigma=3.0, Constant=3.0, Glyphs=DefaultGlyphs, Workers=GOMAXPROCS,
// CharAspect=2.0.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		SampleWidth:  2,
		SampleHeight: 3,
		Depth:        DepthTruecolor,
		Sigma:        3.0,
		Constant:     3.0,
		Glyphs:       DefaultGlyphs,
		Workers:      runtime.GOMAXPROCS(0),
		CharAspect:   2.0,
		log:          log.Log,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// WithSampleSize sets the tile size in source pixels.
func WithSampleSize(width, height int) RendererOption {
	return func(r *Renderer) {
		r.SampleWidth = width
		r.SampleHeight = height
	}
}

// WithDepth sets the color depth output colors are reduced to.
func WithDepth(depth Depth) RendererOption {
	return func(r *Renderer) {
		r.Depth = depth
	}
}

// WithSigma sets the narrow blur radius of the edge detector.
func WithSigma(sigma float64) RendererOption {
	return func(r *Renderer) {
		r.Sigma = sigma
	}
}

// WithConstant sets the multiplier giving the wide blur radius.
func WithConstant(constant float64) RendererOption {
	return func(r *Renderer) {
		r.Constant = constant
	}
}

// WithNoBackground draws a single foreground color per cell.
func WithNoBackground(noBackground bool) RendererOption {
	return func(r *Renderer) {
		r.NoBackground = noBackground
	}
}

// WithShowEdges samples cell colors from the edge map instead of the image.
func WithShowEdges(showEdges bool) RendererOption {
	return func(r *Renderer) {
		r.ShowEdges = showEdges
	}
}

// WithGlyphs replaces the glyph ramp. Tables shorter than two glyphs are
// rejected at render time.
func WithGlyphs(glyphs GlyphTable) RendererOption {
	return func(r *Renderer) {
		r.Glyphs = glyphs
	}
}

// WithWorkers bounds the number of tile rows computed at once. n <= 0
// uses GOMAXPROCS.
func WithWorkers(n int) RendererOption {
	return func(r *Renderer) {
		r.Workers = n
	}
}

// WithTargetColumns downsizes sources wider than columns cells.
func WithTargetColumns(columns int) RendererOption {
	return func(r *Renderer) {
		r.TargetColumns = columns
	}
}

// WithCharAspect sets the height/width ratio of a terminal cell.
func WithCharAspect(aspect float64) RendererOption {
	return func(r *Renderer) {
		r.CharAspect = aspect
	}
}

// WithLogger sets the logger stage timings are reported to.
func WithLogger(l log.Interface) RendererOption {
	return func(r *Renderer) {
		r.log = l
	}
}

func (r *Renderer) validate() error {
	if r.SampleWidth <= 0 || r.SampleHeight <= 0 {
		return newError(InvalidConfiguration, "render",
			fmt.Errorf("sample width and height must be greater than zero, got %dx%d",
				r.SampleWidth, r.SampleHeight))
	}
	if len(r.Glyphs) < 2 {
		return newError(InvalidConfiguration, "render",
			fmt.Errorf("glyph table needs at least 2 glyphs, got %d", len(r.Glyphs)))
	}
	return nil
}

// RenderBytes decodes an encoded image and renders it to text.
func (r *Renderer) RenderBytes(b []byte) (string, error) {
	return r.RenderReader(bytes.NewReader(b))
}

// RenderReader decodes an image from rd and renders it to text.
func (r *Renderer) RenderReader(rd io.Reader) (string, error) {
	grid, err := r.RenderGridReader(rd)
	if err != nil {
		return "", err
	}
	return grid.String(), nil
}

// RenderGridReader decodes an image from rd and renders it to a grid.
// Decoder errors are returned as DecodeFailure.
func (r *Renderer) RenderGridReader(rd io.Reader) (*Grid, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}

	img, format, err := imageutil.Decode(rd)
	if err != nil {
		return nil, newError(DecodeFailure, "decode", err)
	}
	r.log.WithFields(log.Fields{
		"format": format,
		"width":  img.Width(),
		"height": img.Height(),
	}).Debug("decoded image")

	return r.RenderImage(img)
}

// Render converts any image.Image into a grid. Alpha is discarded.
func (r *Renderer) Render(img image.Image) (*Grid, error) {
	return r.RenderImage(imageutil.RGBAImageFromImage(img))
}

// RenderImage resizes img when TargetColumns is set, computes its edge map
// once and renders the tiles.
func (r *Renderer) RenderImage(img *imageutil.RGBAImage) (*Grid, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}
	if img.Empty() {
		return nil, newError(InvalidConfiguration, "render", fmt.Errorf("image is empty"))
	}

	if r.TargetColumns > 0 {
		img = imageutil.ResizeToColumns(img, r.TargetColumns, r.SampleWidth, r.SampleHeight, r.CharAspect)
	}

	start := time.Now()
	edges, err := DetectEdges(img, r.Sigma, r.Constant)
	if err != nil {
		return nil, err
	}
	r.log.WithFields(log.Fields{
		"sigma":    r.Sigma,
		"constant": r.Constant,
		"elapsed":  time.Since(start),
	}).Debug("computed edge map")

	return r.RenderTiles(img, edges)
}

// RenderTiles partitions img into SampleWidth x SampleHeight tiles and
// renders one cell per tile. Rows of tiles are computed in parallel by at
// most Workers goroutines (GOMAXPROCS when Workers <= 0); cells are stored
// by tile position so the grid is always in row-major order.
func (r *Renderer) RenderTiles(img *imageutil.RGBAImage, edges *EdgeMap) (*Grid, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}
	if img.Empty() {
		return nil, newError(InvalidConfiguration, "render", fmt.Errorf("image is empty"))
	}
	if edges == nil || edges.RGBAImage == nil ||
		edges.Width() != img.Width() || edges.Height() != img.Height() {
		return nil, newError(BufferConstructionFailure, "render",
			fmt.Errorf("edge map does not match the %dx%d image", img.Width(), img.Height()))
	}

	columns := ceilDiv(img.Width(), r.SampleWidth)
	rows := ceilDiv(img.Height(), r.SampleHeight)
	grid := newGrid(columns, rows)

	start := time.Now()
	workers := r.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for row := 0; row < rows; row++ {
		row := row
		g.Go(func() error {
			r.renderRow(img, edges, grid.Row(row), row)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r.log.WithFields(log.Fields{
		"columns": columns,
		"rows":    rows,
		"depth":   r.Depth.String(),
		"elapsed": time.Since(start),
	}).Debug("rendered tiles")

	return grid, nil
}

// renderRow fills the cells of one grid row. Rows share no cells, so rows
// can be rendered concurrently.
func (r *Renderer) renderRow(img *imageutil.RGBAImage, edges *EdgeMap, cells []Cell, row int) {
	for col := range cells {
		rect := image.Rect(
			col*r.SampleWidth, row*r.SampleHeight,
			(col+1)*r.SampleWidth, (row+1)*r.SampleHeight,
		).Intersect(img.Bounds())
		cells[col] = r.renderCell(img, edges, rect)
	}
}

// renderCell computes the glyph and colors of one tile. It only reads img
// and edges.
func (r *Renderer) renderCell(img *imageutil.RGBAImage, edges *EdgeMap, rect image.Rectangle) Cell {
	glyph := r.Glyphs.Pick(edges.MeanLuma(rect))
	if r.NoBackground && glyph == r.Glyphs[0] {
		glyph = r.Glyphs[1]
	}

	if r.Depth == DepthNone {
		if r.NoBackground {
			return Cell{Glyph: glyph, FG: black}
		}
		bg := white
		return Cell{Glyph: glyph, FG: black, BG: &bg}
	}

	source := img
	if r.ShowEdges {
		source = edges.RGBAImage
	}
	pair := Dominant(NewSampleBlock(source, rect))
	primary := r.Depth.Reduce(pair.Primary)
	secondary := r.Depth.Reduce(pair.Secondary)

	if r.NoBackground {
		return Cell{Glyph: glyph, FG: primary}
	}
	return Cell{Glyph: glyph, FG: secondary, BG: &primary}
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
