package figtext

import (
	"golang.org/x/text/unicode/norm"

	"github.com/ryanlewis/figtext/internal/renderer"
)

// Wrapper composes text into output lines no wider than a fixed width, one
// line at a time. Render and RenderTo drive a Wrapper internally; use one
// directly to receive each finished line as rows instead of bytes.
//
// A push that would overflow the line leaves it unchanged and returns
// ErrLineFull. The caller then flushes or clears the line before pushing
// again. WrapString handles that protocol itself.
//
// A Wrapper is not safe for concurrent use. Its font may be shared.
type Wrapper struct {
	font *Font
	w    *renderer.Wrapper
	opts *options
}

// FlushFunc receives a finished line: one aligned string per font row.
type FlushFunc func(rows []string) error

// NewWrapper returns an empty line for f. Width, alignment, layout, print
// direction, normalization, unknown-rune replacement and tracing options
// apply; paragraph and trim options are ignored.
func NewWrapper(f *Font, opts ...Option) (*Wrapper, error) {
	if f == nil || f.font == nil {
		return nil, ErrUnknownFont
	}
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return &Wrapper{
		font: f,
		w:    renderer.NewFontWrapper(f.font, options.toInternal()),
		opts: options,
	}, nil
}

func (w *Wrapper) prepare(s string) string {
	if w.opts.normalize {
		s = norm.NFC.String(s)
	}
	if w.opts.unknownRune != nil {
		s = replaceUnknown(s, w.font, *w.opts.unknownRune)
	}
	return s
}

// Width returns the column budget of a line.
func (w *Wrapper) Width() int { return w.w.Width() }

// Len returns the width of the current line in columns.
func (w *Wrapper) Len() int { return w.w.Len() }

// IsEmpty reports whether the current line has no visible columns.
func (w *Wrapper) IsEmpty() bool { return w.w.IsEmpty() }

// Text returns the text composed into the current line.
func (w *Wrapper) Text() string { return w.w.Buffer() }

// Push appends one character, or returns ErrLineFull.
func (w *Wrapper) Push(r rune) error {
	if w.opts.unknownRune != nil {
		r = []rune(replaceUnknown(string(r), w.font, *w.opts.unknownRune))[0]
	}
	return w.w.Push(r)
}

// PushString appends s as a unit: all of it fits, or the line is left
// unchanged and ErrLineFull is returned.
func (w *Wrapper) PushString(s string) error {
	return w.w.PushString(w.prepare(s))
}

// WrapString appends a token, handing full lines to flush. A space is
// inserted between consecutive words, and a word wider than a line is
// broken between characters. Errors come only from flush.
func (w *Wrapper) WrapString(token string, flush FlushFunc) error {
	return w.w.WrapString(w.prepare(token), renderer.FlushFunc(flush))
}

// Flush hands the current line to flush and clears it.
func (w *Wrapper) Flush(flush FlushFunc) error {
	return w.w.Flush(renderer.FlushFunc(flush))
}

// Get returns the current line padded for the alignment, with hardblanks
// shown as spaces. Calling it again without a push gives the same rows.
func (w *Wrapper) Get() []string { return w.w.Get() }

// Clear empties the current line so the wrapper can be reused.
func (w *Wrapper) Clear() { w.w.Clear() }
