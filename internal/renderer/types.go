package renderer

import (
	"errors"

	"github.com/ryanlewis/figtext/internal/common"
	"github.com/ryanlewis/figtext/internal/debug"
)

// Error definitions for the renderer package
var (
	// ErrNilFont is returned when a nil font is provided to Render
	ErrNilFont = errors.New("font cannot be nil")
	// ErrLineFull is returned by Wrapper pushes that would exceed the width.
	// It is a control-flow signal: the caller flushes and retries.
	ErrLineFull = common.ErrLineFull
)

// DefaultWidth is the output width used when Options.Width is not positive.
const DefaultWidth = 80

// Align selects where a wrapped line sits within the output width.
type Align int

const (
	// AlignLeft adds no padding
	AlignLeft Align = iota
	// AlignCenter prepends half of the free columns
	AlignCenter
	// AlignRight prepends all of the free columns
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

// Options contains rendering options passed from the main package.
// Nil pointer fields fall back to the font's own settings.
type Options struct {
	// Mode overrides the font layout bitmask (0 is universal overlap)
	Mode *int
	// FullWidth overrides the font's full-width setting
	FullWidth *bool
	// RightToLeft overrides the font's print direction
	RightToLeft *bool
	// Width is the output width in columns; DefaultWidth when not positive
	Width int
	// Align positions each output line within Width
	Align Align
	// Paragraph joins input lines unless they start with whitespace
	Paragraph bool
	// TrimWhitespace removes trailing spaces from each output row
	TrimWhitespace bool
	// Debug receives trace events; nil disables tracing
	Debug *debug.Session
}

func (o *Options) width() int {
	if o == nil || o.Width <= 0 {
		return DefaultWidth
	}
	return o.Width
}
