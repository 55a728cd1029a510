package parser

import (
	"errors"
	"testing"

	"github.com/ryanlewis/figtext/internal/common"
)

func TestNewGlyph(t *testing.T) {
	tests := []struct {
		name      string
		rows      []string
		wantWidth int
		wantErr   bool
	}{
		{name: "single row", rows: []string{"abc"}, wantWidth: 3},
		{name: "equal rows", rows: []string{" _ ", "|_|"}, wantWidth: 3},
		{name: "code point width", rows: []string{"éé", "ab"}, wantWidth: 2},
		{name: "empty rows", rows: []string{"", ""}, wantWidth: 0},
		{name: "no rows", rows: nil, wantWidth: 0},
		{name: "mismatched rows", rows: []string{"ab", "abc"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGlyph(tt.rows)
			if tt.wantErr {
				if !errors.Is(err, common.ErrBadFontFormat) {
					t.Fatalf("NewGlyph() error = %v, want bad font format", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewGlyph() error = %v", err)
			}
			if g.Width() != tt.wantWidth {
				t.Errorf("Width() = %d, want %d", g.Width(), tt.wantWidth)
			}
			if g.Height() != len(tt.rows) {
				t.Errorf("Height() = %d, want %d", g.Height(), len(tt.rows))
			}
		})
	}
}

func TestNewGlyphCopiesRows(t *testing.T) {
	rows := []string{"ab", "cd"}
	g, err := NewGlyph(rows)
	if err != nil {
		t.Fatal(err)
	}
	rows[0] = "zz"
	if g.Row(0) != "ab" {
		t.Errorf("Row(0) = %q, glyph should not share the caller's slice", g.Row(0))
	}
}

func TestGlyphString(t *testing.T) {
	if _, err := NewGlyph([]string{"1", " 2", "  3"}); err == nil {
		t.Fatal("rows of different width should be rejected")
	}

	g, err := NewGlyph([]string{"1  ", " 2 ", "  3"})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := g.String(), "1  \n 2 \n  3\n"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestBlankGlyph(t *testing.T) {
	g := blankGlyph(3)
	if g.Height() != 3 || g.Width() != 0 {
		t.Errorf("blankGlyph(3) = %d rows of width %d, want 3 rows of width 0", g.Height(), g.Width())
	}
	for i, row := range g.Rows() {
		if row != "" {
			t.Errorf("row %d = %q, want empty", i, row)
		}
	}
}
