package table

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Alignment positions a cell within its column.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Format returns the rows padded according to the widest entry in each column.
// Widths are measured in terminal cells. Rows shorter than the first row are
// padded with empty cells.
func Format(rows [][]string, alignments []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}
	colCount := len(rows[0])
	widths := make([]int, colCount)
	norm := make([][]string, len(rows))
	for i, row := range rows {
		norm[i] = row
		if len(row) < colCount {
			norm[i] = make([]string, colCount)
			copy(norm[i], row)
		}
	}
	for _, row := range norm {
		for c, cell := range row[:colCount] {
			width := cellWidth(cell)
			if width > widths[c] {
				widths[c] = width
			}
		}
	}
	out := make([]string, len(norm))
	for i, row := range norm {
		var b strings.Builder
		for c, cell := range row[:colCount] {
			if c > 0 {
				b.WriteString("  ")
			}
			width := widths[c] - cellWidth(cell)
			if width < 0 {
				width = 0
			}
			if c < len(alignments) && alignments[c] == AlignRight {
				writeSpaces(&b, width)
				b.WriteString(cell)
			} else {
				b.WriteString(cell)
				writeSpaces(&b, width)
			}
		}
		out[i] = b.String()
	}
	return out
}

func cellWidth(text string) int {
	return runewidth.StringWidth(text)
}

func writeSpaces(b *strings.Builder, count int) {
	if count <= 0 {
		return
	}
	b.WriteString(strings.Repeat(" ", count))
}
