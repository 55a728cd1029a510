package renderer

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ryanlewis/figtext/internal/parser"
)

// requiredRunes lists every glyph an FLF file must define, in file order.
func requiredRunes() []rune {
	runes := make([]rune, 0, 102)
	for c := rune(32); c <= 126; c++ {
		runes = append(runes, c)
	}
	return append(runes, 196, 214, 220, 228, 246, 252, 223)
}

// flfSource builds a font definition. Required characters missing from
// glyphs are drawn as the character itself on every row; other entries of
// glyphs are written as code-tagged glyphs.
func flfSource(height int, hardblank rune, oldLayout, layout int, glyphs map[rune][]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "flf2a%c %d %d 40 %d 1 0 %d\n", hardblank, height, height, oldLayout, layout)
	b.WriteString("generated test font\n")

	writeGlyph := func(rows []string) {
		for i, row := range rows {
			mark := "@"
			if strings.HasSuffix(row, "@") {
				mark = "#"
			}
			b.WriteString(row + mark)
			if i == len(rows)-1 {
				b.WriteString(mark)
			}
			b.WriteByte('\n')
		}
	}

	required := make(map[rune]bool)
	for _, c := range requiredRunes() {
		required[c] = true
		rows, ok := glyphs[c]
		if !ok {
			rows = make([]string, height)
			for i := range rows {
				rows[i] = string(c)
			}
		}
		writeGlyph(rows)
	}

	var extra []rune
	for c := range glyphs {
		if !required[c] {
			extra = append(extra, c)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	for _, c := range extra {
		fmt.Fprintf(&b, "0x%X\n", c)
		writeGlyph(glyphs[c])
	}
	return b.String()
}

func mustFont(t testing.TB, src string) *parser.Font {
	t.Helper()
	font, err := parser.Parse(strings.NewReader(src))
	require.NoError(t, err)
	return font
}

// charFont is a one-row full-width font where every glyph is its own
// character, so the composite width equals the number of characters.
func charFont(t testing.TB, glyphs map[rune][]string) *parser.Font {
	t.Helper()
	return mustFont(t, flfSource(1, '$', -1, 0, glyphs))
}

// runes converts each string to code points.
func runes(s string) []rune { return []rune(s) }
