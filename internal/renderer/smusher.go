package renderer

import (
	"strings"
	"unicode/utf8"

	"github.com/ryanlewis/figtext/internal/common"
	"github.com/ryanlewis/figtext/internal/debug"
	"github.com/ryanlewis/figtext/internal/parser"
)

// Smusher composes glyphs of one font into a block of parallel rows, one per
// font row. Every row of a pushed glyph overlaps by the same amount, so the
// glyph stays vertically aligned.
//
// A Smusher is not safe for concurrent use. The font it reads is never
// modified and may be shared between smushers.
type Smusher struct {
	font      *parser.Font
	rows      [][]rune // never written in place, see SmushRows
	mode      int
	fullWidth bool
	rtl       bool

	glyphRunes map[*parser.Glyph][][]rune
	debug      *debug.Session
	pushed     int
}

// NewSmusher returns an empty smusher using the font's layout, full-width
// setting and print direction.
func NewSmusher(font *parser.Font) *Smusher {
	s := &Smusher{glyphRunes: make(map[*parser.Glyph][][]rune)}
	s.reset(font)
	return s
}

func (s *Smusher) reset(font *parser.Font) {
	if s.font != font {
		for g := range s.glyphRunes {
			delete(s.glyphRunes, g)
		}
	}
	s.font = font
	s.mode = font.Layout & common.HorizontalMask
	s.fullWidth = font.FullWidth()
	s.rtl = font.RightToLeft
	s.debug = nil
	s.Clear()
}

// Mode returns the layout bitmask in use.
func (s *Smusher) Mode() int { return s.mode }

// SetMode overrides the layout bitmask. Vertical bits are dropped, so a
// mode with no horizontal bits selects universal overlap.
func (s *Smusher) SetMode(mode int) { s.mode = mode & common.HorizontalMask }

// FullWidth reports whether glyphs are concatenated without overlap.
func (s *Smusher) FullWidth() bool { return s.fullWidth }

// SetFullWidth overrides the full-width setting.
func (s *Smusher) SetFullWidth(on bool) { s.fullWidth = on }

// RightToLeft reports the print direction used by universal overlap.
func (s *Smusher) RightToLeft() bool { return s.rtl }

// SetRightToLeft overrides the print direction.
func (s *Smusher) SetRightToLeft(on bool) { s.rtl = on }

// SetDebug attaches a trace session. A nil session disables tracing.
func (s *Smusher) SetDebug(session *debug.Session) { s.debug = session }

// Font returns the font the smusher reads glyphs from.
func (s *Smusher) Font() *parser.Font { return s.font }

// Push appends the glyph for r. Tabs render as spaces and characters the
// font lacks render as the missing-character glyph.
func (s *Smusher) Push(r rune) {
	if r == '\t' {
		r = ' '
	}
	g, ok := s.font.Lookup(r)
	if !ok {
		g = s.font.Glyph(parser.MissingGlyph)
	}
	glyph := s.runesOf(g)

	amount := 0
	if !s.fullWidth {
		amount = s.amount(glyph)
	}
	for i := range s.rows {
		s.rows[i] = SmushRows(s.rows[i], glyph[i], amount, s.font.Hardblank, s.mode, s.rtl)
	}

	if s.debug != nil {
		s.debug.Emit("compose", "GlyphPush", debug.GlyphPushData{
			Index:     s.pushed,
			Rune:      r,
			Width:     g.Width(),
			Fallback:  !ok,
			Amount:    amount,
			FullWidth: s.fullWidth,
			LenAfter:  s.Len(),
		})
	}
	s.pushed++
}

// PushString pushes every character of str in order.
func (s *Smusher) PushString(str string) {
	for _, r := range str {
		s.Push(r)
	}
}

// amount is the smallest overlap any row can take. All rows are measured
// before any of them is merged.
func (s *Smusher) amount(glyph [][]rune) int {
	amount := -1
	for i, row := range s.rows {
		o := measureRow(row, glyph[i], s.font.Hardblank, s.mode, s.rtl)
		if s.debug != nil {
			s.emitRowAmount(i, o)
		}
		if amount < 0 || o.amount < amount {
			amount = o.amount
		}
	}
	if amount < 0 {
		return 0
	}
	return amount
}

func (s *Smusher) emitRowAmount(row int, o rowOverlap) {
	reason := "none"
	before := o.amount
	switch {
	case o.smushable:
		reason = "smushable"
		before--
	case o.ch1 == 0 || o.ch2 == 0:
		reason = "blank"
	}
	s.debug.Emit("compose", "SmushAmountRow", debug.SmushAmountRowData{
		GlyphIdx:     s.pushed,
		Row:          row,
		TrailingLeft: o.trailingLeft,
		LeadingRight: o.leadingRight,
		Ch1:          o.ch1,
		Ch2:          o.ch2,
		AmountBefore: before,
		AmountAfter:  o.amount,
		Reason:       reason,
	})
	if o.smushable {
		result, _ := SmushChars(o.ch1, o.ch2, s.font.Hardblank, s.mode, s.rtl)
		s.debug.Emit("compose", "SmushDecision", debug.SmushDecisionData{
			Row:    row,
			Col:    len(s.rows[row]) - 1 - o.trailingLeft,
			Lch:    o.ch1,
			Rch:    o.ch2,
			Result: result,
			Rule:   debug.ClassifySmushRule(o.ch1, o.ch2, result, s.font.Hardblank, s.mode),
		})
	}
}

// runesOf returns the glyph rows as code points, converting each glyph once.
func (s *Smusher) runesOf(g *parser.Glyph) [][]rune {
	if rows, ok := s.glyphRunes[g]; ok {
		return rows
	}
	rows := make([][]rune, g.Height())
	for i, row := range g.Rows() {
		rows[i] = []rune(row)
	}
	s.glyphRunes[g] = rows
	return rows
}

// Get returns the composed rows with hardblanks shown as spaces.
func (s *Smusher) Get() []string {
	out := make([]string, len(s.rows))
	for i, row := range s.rows {
		out[i] = replaceHardblank(row, s.font.Hardblank)
	}
	return out
}

// Rows returns the composed rows with hardblanks intact.
func (s *Smusher) Rows() []string {
	out := make([]string, len(s.rows))
	for i, row := range s.rows {
		out[i] = string(row)
	}
	return out
}

// Clear empties every row. Overrides set on the smusher are kept.
func (s *Smusher) Clear() {
	if cap(s.rows) < s.font.Height {
		s.rows = make([][]rune, s.font.Height)
	}
	s.rows = s.rows[:s.font.Height]
	for i := range s.rows {
		s.rows[i] = nil
	}
}

// Len returns the width of the composite in code points.
func (s *Smusher) Len() int {
	if len(s.rows) == 0 {
		return 0
	}
	return len(s.rows[0])
}

// IsEmpty reports whether nothing visible has been composed yet.
func (s *Smusher) IsEmpty() bool {
	return s.Len() == 0
}

// Trim truncates every row to width code points.
func (s *Smusher) Trim(width int) {
	if width < 0 {
		width = 0
	}
	for i, row := range s.rows {
		if len(row) > width {
			s.rows[i] = row[:width:width]
		}
	}
}

// snapshot captures the rows so a failed push can be undone. Rows are
// replaced rather than modified, so keeping the row slices is enough.
type snapshot struct {
	rows   [][]rune
	pushed int
}

func (s *Smusher) snapshot() snapshot {
	rows := make([][]rune, len(s.rows))
	copy(rows, s.rows)
	return snapshot{rows: rows, pushed: s.pushed}
}

func (s *Smusher) restore(snap snapshot) {
	copy(s.rows, snap.rows)
	s.pushed = snap.pushed
}

func replaceHardblank(row []rune, hardblank rune) string {
	if hardblank == ' ' {
		return string(row)
	}

	var b strings.Builder
	b.Grow(len(row) + utf8.UTFMax)
	for _, r := range row {
		if r == hardblank {
			r = ' '
		}
		b.WriteRune(r)
	}
	return b.String()
}

// modeOverride resolves the layout for a render: an explicit override wins
// over the font layout.
func modeOverride(font *parser.Font, opts *Options) (mode int, fullWidth, rtl bool) {
	mode = font.Layout & common.HorizontalMask
	fullWidth = font.FullWidth()
	rtl = font.RightToLeft
	if opts == nil {
		return mode, fullWidth, rtl
	}
	if opts.Mode != nil {
		mode = *opts.Mode & common.HorizontalMask
		// An explicit mode implies fitting
		fullWidth = false
	}
	if opts.FullWidth != nil {
		fullWidth = *opts.FullWidth
	}
	if opts.RightToLeft != nil {
		rtl = *opts.RightToLeft
	}
	return mode, fullWidth, rtl
}
