package apixels

import (
	"strconv"
	"strings"
)

const (
	ESC   = "\u001b"
	reset = ESC + "[0m"
)

// writeSGR writes a single truecolor SGR sequence selecting fg and, when
// bg is non-nil, the background.
func writeSGR(sb *strings.Builder, fg RGB, bg *RGB) {
	sb.WriteString(ESC)
	sb.WriteString("[38;2;")
	writeRGB(sb, fg)
	if bg != nil {
		sb.WriteString(";48;2;")
		writeRGB(sb, *bg)
	}
	sb.WriteByte('m')
}

func writeRGB(sb *strings.Builder, c RGB) {
	sb.WriteString(strconv.Itoa(int(c.R)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(c.G)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(c.B)))
}

// writeCell writes one self-contained styled cell: color, glyph, reset.
func writeCell(sb *strings.Builder, c Cell) {
	writeSGR(sb, c.FG, c.BG)
	sb.WriteRune(c.Glyph)
	sb.WriteString(reset)
}

// sameStyle reports whether two cells share foreground and background.
func sameStyle(a, b Cell) bool {
	if a.FG != b.FG {
		return false
	}
	if a.BG == nil || b.BG == nil {
		return a.BG == nil && b.BG == nil
	}
	return *a.BG == *b.BG
}

// compactRow writes a row combining adjacent cells with the same styling
// under one escape sequence, resetting once at the end of the row.
func compactRow(sb *strings.Builder, row []Cell) {
	for i, c := range row {
		if i == 0 || !sameStyle(row[i-1], c) {
			// 38;2 alone leaves the previous background active
			if i > 0 && row[i-1].BG != nil && c.BG == nil {
				sb.WriteString(reset)
			}
			writeSGR(sb, c.FG, c.BG)
		}
		sb.WriteRune(c.Glyph)
	}
	if len(row) > 0 {
		sb.WriteString(reset)
	}
}

// StripANSI removes SGR escape sequences from s, leaving the glyphs and
// newlines.
func StripANSI(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && s[j] != 'm' {
				j++
			}
			i = j
			continue
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}
