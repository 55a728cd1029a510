package parser

import (
	"fmt"
	"strings"
	"testing"
)

// Test helpers for font parser tests.
//
// Common patterns:
//   - buildX functions assemble FLF source text
//   - ValidateX functions check a parsed font and fail the test on mismatch
//   - MustX functions return values or fail the test

// asciiRunes are the mandatory printable ASCII characters in file order.
func asciiRunes() []rune {
	runes := make([]rune, 0, lastPrintableASCII-firstPrintableASCII+1)
	for c := rune(firstPrintableASCII); c <= lastPrintableASCII; c++ {
		runes = append(runes, c)
	}
	return runes
}

// buildGlyph writes rows with endmarks, doubling the mark on the last row.
// The mark is '@' unless a row ends with '@'.
func buildGlyph(rows ...string) string {
	var b strings.Builder
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
	return b.String()
}

// buildCharGlyph draws c on every one of height rows.
func buildCharGlyph(c rune, height int) string {
	rows := make([]string, height)
	for i := range rows {
		rows[i] = string(c)
	}
	return buildGlyph(rows...)
}

// buildASCII returns glyphs for the printable ASCII block.
func buildASCII(height int) string {
	var b strings.Builder
	for _, c := range asciiRunes() {
		b.WriteString(buildCharGlyph(c, height))
	}
	return b.String()
}

// buildLatin1 returns glyphs for the required Latin-1 characters.
func buildLatin1(height int) string {
	var b strings.Builder
	for _, c := range latin1Required {
		b.WriteString(buildCharGlyph(c, height))
	}
	return b.String()
}

// buildFont returns a complete font of the given height with no comments,
// followed by extra (code-tagged glyphs).
func buildFont(height int, extra string) string {
	header := fmt.Sprintf("flf2a$ %d %d 10 0 0\n", height, height)
	return header + buildASCII(height) + buildLatin1(height) + extra
}

// MustParse parses data or fails the test.
func MustParse(t *testing.T, data string) *Font {
	t.Helper()
	f, err := Parse(strings.NewReader(data))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return f
}

// ValidateGlyph checks that r has exactly the expected rows.
func ValidateGlyph(t *testing.T, f *Font, r rune, expected ...string) {
	t.Helper()
	g, ok := f.Lookup(r)
	if !ok {
		t.Fatalf("glyph for %s not found", charName(r))
	}
	if g.Height() != len(expected) {
		t.Fatalf("glyph for %s has %d rows, want %d", charName(r), g.Height(), len(expected))
	}
	for i, want := range expected {
		if got := g.Row(i); got != want {
			t.Errorf("glyph for %s row %d = %q, want %q", charName(r), i, got, want)
		}
	}
}

// ValidateGlyphCount checks the number of glyphs, including the missing glyph.
func ValidateGlyphCount(t *testing.T, f *Font, want int) {
	t.Helper()
	if got := len(f.Glyphs); got != want {
		t.Errorf("len(Glyphs) = %d, want %d", got, want)
	}
}

// ValidateWarning checks that some warning contains substr.
func ValidateWarning(t *testing.T, f *Font, substr string) {
	t.Helper()
	for _, w := range f.Warnings {
		if strings.Contains(w, substr) {
			return
		}
	}
	t.Errorf("no warning contains %q; warnings = %q", substr, f.Warnings)
}
