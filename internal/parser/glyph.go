package parser

import (
	"unicode/utf8"
)

// Glyph is one FIGcharacter: a fixed number of rows of equal width,
// measured in code points. Glyphs are immutable once built.
type Glyph struct {
	rows  []string
	width int
}

// NewGlyph builds a glyph from its rows. All rows must have the same width
// in code points.
func NewGlyph(rows []string) (*Glyph, error) {
	g := &Glyph{rows: make([]string, len(rows))}
	copy(g.rows, rows)

	for i, row := range g.rows {
		w := utf8.RuneCountInString(row)
		if i == 0 {
			g.width = w
		} else if w != g.width {
			// Width is compared in code points, not display cells.
			return nil, formatErrorf("inconsistent row width in glyph: row %d has %d, expected %d",
				i+1, w, g.width)
		}
	}
	return g, nil
}

// blankGlyph returns a glyph of height empty rows.
func blankGlyph(height int) *Glyph {
	return &Glyph{rows: make([]string, height)}
}

// Rows returns the glyph rows. The slice must not be modified.
func (g *Glyph) Rows() []string { return g.rows }

// Row returns row i.
func (g *Glyph) Row(i int) string { return g.rows[i] }

// Height returns the number of rows.
func (g *Glyph) Height() int { return len(g.rows) }

// Width returns the width of every row in code points.
func (g *Glyph) Width() int { return g.width }

// String renders the glyph rows separated by newlines.
func (g *Glyph) String() string {
	n := 0
	for _, r := range g.rows {
		n += len(r) + 1
	}
	b := make([]byte, 0, n)
	for _, r := range g.rows {
		b = append(b, r...)
		b = append(b, '\n')
	}
	return string(b)
}
