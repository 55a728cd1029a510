package renderer

import (
	"strings"

	"github.com/ryanlewis/figtext/internal/debug"
	"github.com/ryanlewis/figtext/internal/parser"
)

// FlushFunc receives a completed output line: one aligned string per font row.
type FlushFunc func(rows []string) error

// Wrapper word-wraps text into lines no wider than its width. It owns a
// Smusher and the plain text currently composed in it.
//
// A push that would overflow the line is undone and reported as
// ErrLineFull; the line is then Full until the caller flushes and clears
// it. WrapString drives that protocol itself.
type Wrapper struct {
	smusher  *Smusher
	buffer   strings.Builder
	width    int
	align    Align
	hasSpace bool
	lines    int
	debug    *debug.Session
}

// NewWrapper returns an empty left-aligned wrapper over s.
func NewWrapper(s *Smusher, width int) *Wrapper {
	return &Wrapper{smusher: s, width: width, hasSpace: true}
}

// NewFontWrapper returns a wrapper over a new smusher for font, set up with
// the layout overrides, width, alignment and trace session of opts.
func NewFontWrapper(font *parser.Font, opts *Options) *Wrapper {
	sm := NewSmusher(font)
	mode, fullWidth, rtl := modeOverride(font, opts)
	sm.SetMode(mode)
	sm.SetFullWidth(fullWidth)
	sm.SetRightToLeft(rtl)

	w := NewWrapper(sm, opts.width())
	if opts != nil {
		w.SetAlign(opts.Align)
		w.SetDebug(opts.Debug)
	}
	return w
}

// Smusher returns the underlying compositor.
func (w *Wrapper) Smusher() *Smusher { return w.smusher }

// Width returns the column budget.
func (w *Wrapper) Width() int { return w.width }

// Align returns the alignment applied by Get.
func (w *Wrapper) Align() Align { return w.align }

// SetAlign sets the alignment applied by Get.
func (w *Wrapper) SetAlign(a Align) { w.align = a }

// SetDebug attaches a trace session to the wrapper and its smusher.
func (w *Wrapper) SetDebug(session *debug.Session) {
	w.debug = session
	w.smusher.SetDebug(session)
}

// Buffer returns the text composed into the current line.
func (w *Wrapper) Buffer() string { return w.buffer.String() }

// Len returns the width of the current line in columns.
func (w *Wrapper) Len() int { return w.smusher.Len() }

// IsEmpty reports whether the current line has no visible columns.
func (w *Wrapper) IsEmpty() bool { return w.smusher.IsEmpty() }

// Clear empties the current line. The wrapper and smusher are reused.
func (w *Wrapper) Clear() {
	w.smusher.Clear()
	w.buffer.Reset()
	w.hasSpace = true
}

// Push appends one character. If the line would grow past the width, the
// line is left as it was and ErrLineFull is returned.
func (w *Wrapper) Push(r rune) error {
	snap := w.smusher.snapshot()
	w.smusher.Push(r)
	if w.smusher.Len() > w.width {
		w.smusher.restore(snap)
		w.trace("line_full", string(r))
		return ErrLineFull
	}
	w.buffer.WriteRune(r)
	return nil
}

// PushString appends str as a unit: either all of it fits or the line is
// left as it was and ErrLineFull is returned.
func (w *Wrapper) PushString(str string) error {
	snap := w.smusher.snapshot()
	w.smusher.PushString(str)
	if w.smusher.Len() > w.width {
		w.smusher.restore(snap)
		w.trace("line_full", str)
		return ErrLineFull
	}
	w.buffer.WriteString(str)
	return nil
}

// WrapString appends a token, starting a new line when it does not fit.
// A space is inserted between two consecutive non-blank tokens. A token
// wider than a whole line is broken between characters by WrapWord.
// Errors come only from flush.
func (w *Wrapper) WrapString(token string, flush FlushFunc) error {
	blank := strings.TrimSpace(token) == ""
	if !w.hasSpace && !blank {
		// A space that does not fit is dropped; the word wraps below
		_ = w.Push(' ')
	}
	w.hasSpace = blank

	if w.PushString(token) == nil {
		return nil
	}

	if w.buffer.Len() > 0 {
		if err := w.Flush(flush); err != nil {
			return err
		}
	}
	if w.PushString(token) != nil {
		if err := w.WrapWord(token, flush); err != nil {
			return err
		}
	}
	w.hasSpace = false
	return nil
}

// WrapWord appends word character by character, flushing whenever the next
// character does not fit. A character wider than a whole line is inserted
// anyway and trimmed by Get.
func (w *Wrapper) WrapWord(word string, flush FlushFunc) error {
	for _, r := range word {
		if w.Push(r) == nil {
			continue
		}
		if w.buffer.Len() > 0 {
			if err := w.Flush(flush); err != nil {
				return err
			}
		}
		w.smusher.Push(r)
		w.buffer.WriteRune(r)
		if w.smusher.Len() > w.width {
			w.trace("forced", string(r))
		}
	}
	return nil
}

// Flush hands the current line to flush and clears it. The line is cleared
// even when flush fails.
func (w *Wrapper) Flush(flush FlushFunc) error {
	rows := w.Get()
	w.trace("flush", w.buffer.String())
	w.Clear()
	w.lines++
	return flush(rows)
}

// Get returns the current line, trimmed to the width if a forced character
// overflowed it, and padded on the left according to the alignment.
func (w *Wrapper) Get() []string {
	if w.smusher.Len() > w.width {
		w.smusher.Trim(w.width)
	}

	slack := w.width - w.smusher.Len()
	if slack < 0 {
		slack = 0
	}
	pad := 0
	switch w.align {
	case AlignCenter:
		pad = slack / 2
	case AlignRight:
		pad = slack
	}

	rows := w.smusher.Get()
	if w.debug != nil {
		w.debug.Emit("wrap", "Line", debug.FlushData{
			LineNumber: w.lines,
			Width:      w.width,
			Padding:    pad,
			Align:      w.align.String(),
		})
	}
	if pad == 0 {
		return rows
	}

	prefix := strings.Repeat(" ", pad)
	for i := range rows {
		rows[i] = prefix + rows[i]
	}
	return rows
}

// Rebuild recomposes the current line from its buffered text. Unless Get
// trimmed an overflowing line, the result is identical to the line before
// the call.
func (w *Wrapper) Rebuild() {
	text := w.buffer.String()
	w.smusher.Clear()
	w.smusher.PushString(text)
}

func (w *Wrapper) trace(reason, token string) {
	if w.debug == nil {
		return
	}
	w.debug.Emit("wrap", "Wrap", debug.WrapData{
		Reason:    reason,
		Token:     token,
		BufferLen: w.buffer.Len(),
		Len:       w.smusher.Len(),
		Width:     w.width,
	})
}
