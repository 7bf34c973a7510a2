package apixels

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/wbrown/apixels/imageutil"
)

const (
	// GlyphWidth and GlyphHeight define the preview character cell size
	GlyphWidth  = 8
	GlyphHeight = 8
)

// GlyphBitmap represents an 8x8 character as a 64-bit integer
// Each bit represents a pixel: 1 = foreground, 0 = background
type GlyphBitmap uint64

func (g GlyphBitmap) getBit(x, y int) bool {
	if x < 0 || x >= GlyphWidth || y < 0 || y >= GlyphHeight {
		return false
	}
	return g&(1<<(y*GlyphWidth+x)) != 0
}

func (g *GlyphBitmap) setBit(x, y int) {
	if x < 0 || x >= GlyphWidth || y < 0 || y >= GlyphHeight {
		return
	}
	*g |= 1 << (y*GlyphWidth + x)
}

// GlyphAtlas holds pre-rendered bitmaps for every glyph of a table, used
// to draw a Grid as a PNG preview.
type GlyphAtlas struct {
	glyphs map[rune]GlyphBitmap
}

// NewGlyphAtlas rasterises the glyphs of table with the Go Mono face.
func NewGlyphAtlas(table GlyphTable) (*GlyphAtlas, error) {
	ttf, err := freetype.ParseFont(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	atlas := &GlyphAtlas{glyphs: make(map[rune]GlyphBitmap, len(table))}
	for _, r := range table {
		atlas.glyphs[r] = renderGlyphToBitmap(ttf, r)
	}
	return atlas, nil
}

// renderGlyphToBitmap renders a single glyph to an 8x8 bitmap, keeping
// pixels above 25% coverage so thin strokes survive.
func renderGlyphToBitmap(ttfFont *truetype.Font, r rune) GlyphBitmap {
	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    float64(GlyphHeight),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	img := image.NewAlpha(image.Rect(0, 0, GlyphWidth, GlyphHeight))

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(ttfFont)
	ctx.SetFontSize(float64(GlyphHeight))
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.White)
	ctx.SetHinting(font.HintingFull)

	metrics := face.Metrics()
	ascent := metrics.Ascent.Round()
	descent := metrics.Descent.Round()
	baselineY := (GlyphHeight + ascent - descent) / 2

	if _, err := ctx.DrawString(string(r), freetype.Pt(0, baselineY)); err != nil {
		return 0
	}

	var bitmap GlyphBitmap
	for y := 0; y < GlyphHeight; y++ {
		for x := 0; x < GlyphWidth; x++ {
			if img.AlphaAt(x, y).A > 64 {
				bitmap.setBit(x, y)
			}
		}
	}
	return bitmap
}

// Glyph returns the bitmap for r.
func (a *GlyphAtlas) Glyph(r rune) (GlyphBitmap, bool) {
	b, ok := a.glyphs[r]
	return b, ok
}

// RenderGrid draws grid at scale pixels per glyph pixel. Cells without a
// background are drawn on black; unknown glyphs draw as background only.
func (a *GlyphAtlas) RenderGrid(grid *Grid, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	cw, ch := GlyphWidth*scale, GlyphHeight*scale
	img := image.NewRGBA(image.Rect(0, 0, grid.Columns*cw, grid.Rows*ch))

	for row := 0; row < grid.Rows; row++ {
		for col := 0; col < grid.Columns; col++ {
			a.renderCell(img, grid.At(col, row), col*cw, row*ch, scale)
		}
	}
	return img
}

func (a *GlyphAtlas) renderCell(img *image.RGBA, c Cell, startX, startY, scale int) {
	bg := black
	if c.BG != nil {
		bg = *c.BG
	}
	rect := image.Rect(startX, startY, startX+GlyphWidth*scale, startY+GlyphHeight*scale)
	draw.Draw(img, rect, &image.Uniform{C: bg.ToColor()}, image.Point{}, draw.Src)

	bitmap, ok := a.glyphs[c.Glyph]
	if !ok {
		return
	}
	fg := c.FG.ToColor()
	for y := 0; y < GlyphHeight; y++ {
		for x := 0; x < GlyphWidth; x++ {
			if !bitmap.getBit(x, y) {
				continue
			}
			for sy := 0; sy < scale; sy++ {
				for sx := 0; sx < scale; sx++ {
					img.SetRGBA(startX+x*scale+sx, startY+y*scale+sy, fg)
				}
			}
		}
	}
}

// SavePreview renders grid with the glyphs of table and writes it as a PNG.
func SavePreview(grid *Grid, table GlyphTable, path string, scale int) error {
	atlas, err := NewGlyphAtlas(table)
	if err != nil {
		return err
	}
	return imageutil.SavePNG(atlas.RenderGrid(grid, scale), path)
}
