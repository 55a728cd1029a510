package figtext

import (
	"slices"

	"github.com/ryanlewis/figtext/internal/common"
	"github.com/ryanlewis/figtext/internal/parser"
)

// Font represents an immutable FIGfont that can be safely shared across goroutines.
//
// Font data is loaded once and never modified, making it safe for concurrent use
// without locking. Rendering state lives in per-call compositors.
type Font struct {
	// font is the parsed model the renderer consumes (unexported for immutability)
	font *parser.Font

	// Name is the font name (e.g., "standard"), derived from the file name
	Name string

	// Variant is "flf2" for FIGlet fonts and "tlf2" for TOIlet fonts
	Variant string

	// Layout is the layout bitmask from the header, or derived from
	// OldLayout when the header omits it.
	Layout Layout

	// FullWidth is set when OldLayout asks for glyphs without any overlap
	FullWidth bool

	// RightToLeft is the font's default print direction
	RightToLeft bool

	// Hardblank is the character used for hard blanks in the font
	Hardblank rune

	// Height is the number of lines per character
	Height int

	// Baseline is the number of lines from the top to the baseline
	Baseline int

	// MaxLen is the maximum character width
	MaxLen int

	// OldLayout is the legacy layout value (-1 means full width)
	OldLayout int

	// CommentLines is the number of comment lines in the font file
	CommentLines int

	// Comments holds the comment block following the header
	Comments []string

	// Warnings lists non-fatal problems found while loading
	Warnings []string
}

func newFont(pf *parser.Font) *Font {
	return &Font{
		font:         pf,
		Variant:      pf.Variant.String(),
		Layout:       Layout(pf.Layout),
		FullWidth:    pf.FullWidth(),
		RightToLeft:  pf.RightToLeft,
		Hardblank:    pf.Hardblank,
		Height:       pf.Height,
		Baseline:     pf.Baseline,
		MaxLen:       pf.MaxLength,
		OldLayout:    pf.OldLayout,
		CommentLines: pf.CommentLines,
		Comments:     slices.Clone(pf.Comments),
		Warnings:     slices.Clone(pf.Warnings),
	}
}

// Glyph returns the rows of the glyph for r, or false if the font lacks it.
// Rows keep their hardblanks. The returned slice should not be modified.
func (f *Font) Glyph(r rune) ([]string, bool) {
	if f == nil || f.font == nil {
		return nil, false
	}
	g, ok := f.font.Lookup(r)
	if !ok {
		return nil, false
	}
	return g.Rows(), true
}

// Description returns the text that followed the code tag of r.
func (f *Font) Description(r rune) (string, bool) {
	if f == nil || f.font == nil {
		return "", false
	}
	d, ok := f.font.Descriptions[r]
	return d, ok
}

// Runes returns every code point the font defines, in ascending order.
func (f *Font) Runes() []rune {
	if f == nil || f.font == nil {
		return nil
	}
	runes := make([]rune, 0, len(f.font.Glyphs))
	for r := range f.font.Glyphs {
		runes = append(runes, r)
	}
	slices.Sort(runes)
	return runes
}

// Common errors returned by the figtext package
var (
	// ErrUnknownFont is returned when a nil font is rendered
	ErrUnknownFont = common.ErrUnknownFont

	// ErrBadFontFormat is returned when a font file has an invalid format
	ErrBadFontFormat = common.ErrBadFontFormat

	// ErrFontIO is returned when the font stream fails before the header is read
	ErrFontIO = common.ErrFontIO

	// ErrParse is returned when a numeric header field or code tag is malformed
	ErrParse = common.ErrParse

	// ErrCodeTag is returned when a code tag is not a valid code point
	ErrCodeTag = common.ErrCodeTag

	// ErrLineFull is returned by Wrapper.Push and Wrapper.PushString when the
	// text does not fit on the current line
	ErrLineFull = common.ErrLineFull
)

// Align positions each output line within the width.
type Align int

const (
	// AlignLeft leaves lines flush left
	AlignLeft Align = iota
	// AlignCenter centers lines, rounding the left padding down
	AlignCenter
	// AlignRight pushes lines flush right
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// DefaultWidth is the output width used when none is given.
const DefaultWidth = 80

// MaxWidth is the largest accepted output width.
const MaxWidth = 1000

// Option configures rendering behavior.
type Option func(*options)

type options struct {
	width          int
	align          Align
	layout         *Layout
	fullWidth      *bool
	rightToLeft    *bool
	paragraph      bool
	normalize      bool
	trimWhitespace bool
	unknownRune    *rune
	debug          *DebugSession
}

func defaultOptions() *options {
	return &options{
		width:     DefaultWidth,
		normalize: true,
	}
}

// WithLayout sets the layout mode for rendering, overriding the font's default.
//
// The value is a FIGfont full_layout bitmask: FitSmushing plus rule bits for
// controlled smushing, FitKerning for kerning, and 0 for universal overlap.
// Setting a layout turns full width off; a later WithFullWidth turns it back on.
func WithLayout(layout Layout) Option {
	return func(opts *options) {
		opts.layout = &layout
		opts.fullWidth = boolPtr(false)
	}
}

// WithFullWidth places glyphs side by side without any overlap.
func WithFullWidth() Option {
	return func(opts *options) {
		opts.fullWidth = boolPtr(true)
	}
}

// WithKerning moves glyphs together until they touch.
func WithKerning() Option {
	return WithLayout(FitKerning)
}

// WithOverlap selects universal overlap: glyphs overlap by one more column
// than kerning and the later sub-character wins.
func WithOverlap() Option {
	return WithLayout(FitUniversal)
}

// WithPrintDirection sets the print direction, overriding the font's default.
//
// Direction Values:
//   - 0: Left-to-right (LTR)
//   - 1: Right-to-left (RTL)
//
// The direction only decides which sub-character wins a universal overlap.
// Input is not reordered.
func WithPrintDirection(direction int) Option {
	return func(opts *options) {
		opts.rightToLeft = boolPtr(direction == 1)
	}
}

// WithAlign positions each output line within the width.
func WithAlign(align Align) Option {
	return func(opts *options) {
		opts.align = align
	}
}

// WithParagraph joins consecutive input lines into one flowing paragraph.
// A line that starts with whitespace begins a new paragraph.
func WithParagraph(on bool) Option {
	return func(opts *options) {
		opts.paragraph = on
	}
}

// WithNormalization toggles NFC normalization of the input (on by default),
// so a decomposed "é" finds the font's precomposed glyph.
func WithNormalization(on bool) Option {
	return func(opts *options) {
		opts.normalize = on
	}
}

// WithTrimWhitespace enables trimming of trailing whitespace from each line.
// By default trailing spaces are kept to match figlet's behavior.
func WithTrimWhitespace(trim bool) Option {
	return func(opts *options) {
		opts.trimWhitespace = trim
	}
}

// WithUnknownRune replaces characters the font lacks with r before
// rendering. Without it such characters render as the font's
// missing-character glyph (usually empty).
//
// The replacement must exist in the font; otherwise the option has no
// effect. Whitespace is never replaced.
func WithUnknownRune(r rune) Option {
	return func(opts *options) {
		opts.unknownRune = &r
	}
}

// WithDebug sends trace events for the render to session, created with
// NewDebugSession. A nil session disables tracing.
func WithDebug(session *DebugSession) Option {
	return func(opts *options) {
		opts.debug = session
	}
}

// WithWidth sets the maximum output width in characters.
// Lines longer than this width are wrapped at word boundaries when possible.
//
// Width Behavior:
//   - 0 or negative: Uses DefaultWidth
//   - 1-1000: Sets maximum line width
//   - >1000: Clamped to MaxWidth
//
// Matches figlet's -w flag.
func WithWidth(width int) Option {
	return func(opts *options) {
		if width <= 0 {
			width = DefaultWidth
		} else if width > MaxWidth {
			width = MaxWidth
		}
		opts.width = width
	}
}

func boolPtr(b bool) *bool { return &b }
