package apixels

import "strings"

// Cell is one output character. BG is nil when no background styling is
// applied.
type Cell struct {
	Glyph rune
	FG    RGB
	BG    *RGB
}

// Grid is the rendered character grid, stored row-major.
type Grid struct {
	Columns int
	Rows    int
	Cells   []Cell
}

func newGrid(columns, rows int) *Grid {
	return &Grid{
		Columns: columns,
		Rows:    rows,
		Cells:   make([]Cell, columns*rows),
	}
}

// At returns the cell at column col of row row.
func (g *Grid) At(col, row int) Cell {
	return g.Cells[row*g.Columns+col]
}

// Row returns the cells of row row.
func (g *Grid) Row(row int) []Cell {
	return g.Cells[row*g.Columns : (row+1)*g.Columns]
}

// String renders every cell with its own truecolor escape sequence and
// ends every row with a newline.
func (g *Grid) String() string {
	var sb strings.Builder
	// ~40 bytes per styled cell
	sb.Grow(len(g.Cells)*40 + g.Rows)
	for row := 0; row < g.Rows; row++ {
		for _, c := range g.Row(row) {
			writeCell(&sb, c)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Compact renders the grid like String but emits an escape sequence only
// when the styling changes within a row. The visible result is the same.
func (g *Grid) Compact() string {
	var sb strings.Builder
	sb.Grow(len(g.Cells)*8 + g.Rows)
	for row := 0; row < g.Rows; row++ {
		compactRow(&sb, g.Row(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Plain renders the glyphs only, one line per row.
func (g *Grid) Plain() string {
	var sb strings.Builder
	sb.Grow(len(g.Cells) + g.Rows)
	for row := 0; row < g.Rows; row++ {
		for _, c := range g.Row(row) {
			sb.WriteRune(c.Glyph)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
