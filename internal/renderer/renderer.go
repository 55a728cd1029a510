// Package renderer composes FIGfont glyphs into word-wrapped lines.
//
// SmushChars merges two sub-characters, RowAmount and SmushRows overlap two
// rows, Smusher composes whole glyphs and Wrapper fits them into a width.
// Render and RenderTo drive a Wrapper over multi-line text.
package renderer

import (
	"io"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/ryanlewis/figtext/internal/debug"
	"github.com/ryanlewis/figtext/internal/parser"
)

// Render renders text and returns the output, one font row per line.
func Render(text string, font *parser.Font, opts *Options) (string, error) {
	var b strings.Builder
	if err := RenderTo(&b, text, font, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

// RenderTo writes the rendered text to w, one font row per line.
//
// Every input line starts a new output line. With Options.Paragraph, input
// lines are joined and only a line starting with whitespace starts a new
// paragraph. Empty text writes nothing.
func RenderTo(w io.Writer, text string, font *parser.Font, opts *Options) error {
	if font == nil {
		return ErrNilFont
	}
	if text == "" {
		return nil
	}

	sm := acquireSmusher(font)
	defer releaseSmusher(sm)

	mode, fullWidth, rtl := modeOverride(font, opts)
	sm.SetMode(mode)
	sm.SetFullWidth(fullWidth)
	sm.SetRightToLeft(rtl)

	wr := NewWrapper(sm, opts.width())
	var session *debug.Session
	paragraph := false
	out := &rowWriter{w: w}
	if opts != nil {
		wr.SetAlign(opts.Align)
		session = opts.Debug
		wr.SetDebug(session)
		paragraph = opts.Paragraph
		out.trim = opts.TrimWhitespace
	}

	var startTime time.Time
	if session != nil {
		startTime = time.Now()
		session.Emit("render", "Start", debug.RenderStartData{
			Text:       text,
			TextLength: utf8.RuneCountInString(text),
			CharHeight: font.Height,
			Hardblank:  font.Hardblank,
			Width:      wr.Width(),
			Align:      wr.Align().String(),
			Mode:       mode,
			ModeRules:  debug.FormatSmushRules(mode),
			FullWidth:  fullWidth,
			RTL:        rtl,
			Paragraph:  paragraph,
		})
	}

	var err error
	if paragraph {
		err = renderParagraphs(wr, splitLines(text), out)
	} else {
		err = renderLines(wr, splitLines(text), out)
	}
	if err != nil {
		return err
	}

	if session != nil {
		session.Emit("render", "End", debug.RenderEndData{
			TotalLines:   out.lines,
			TotalRunes:   utf8.RuneCountInString(text),
			ElapsedMs:    time.Since(startTime).Milliseconds(),
			BytesWritten: out.written,
		})
	}
	return nil
}

// renderLines renders each input line on its own, including empty ones.
func renderLines(wr *Wrapper, lines []string, out *rowWriter) error {
	for _, line := range lines {
		wr.Clear()
		if err := wrapTokens(wr, line, out.write); err != nil {
			return err
		}
		if err := out.write(wr.Get()); err != nil {
			return err
		}
	}
	return nil
}

// renderParagraphs joins input lines, breaking before a line that starts
// with whitespace.
func renderParagraphs(wr *Wrapper, lines []string, out *rowWriter) error {
	wr.Clear()
	for _, line := range lines {
		if startsWithSpace(line) && !wr.IsEmpty() {
			if err := wr.Flush(out.write); err != nil {
				return err
			}
		}
		if err := wrapTokens(wr, line, out.write); err != nil {
			return err
		}
	}
	return out.write(wr.Get())
}

func wrapTokens(wr *Wrapper, line string, flush FlushFunc) error {
	for _, tok := range Tokens(line) {
		if err := wr.WrapString(tok, flush); err != nil {
			return err
		}
	}
	return nil
}

// Tokens splits s into maximal runs of whitespace and of non-whitespace.
func Tokens(s string) []string {
	var tokens []string
	start := 0
	inSpace := false
	for i, r := range s {
		space := unicode.IsSpace(r)
		if i > start && space != inSpace {
			tokens = append(tokens, s[start:i])
			start = i
		}
		inSpace = space
	}
	if start < len(s) {
		tokens = append(tokens, s[start:])
	}
	return tokens
}

// splitLines splits text on newlines, tolerating CRLF. A final newline does
// not start another line.
func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func startsWithSpace(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	return size > 0 && unicode.IsSpace(r)
}

// rowWriter writes output rows, each followed by a newline.
type rowWriter struct {
	w       io.Writer
	trim    bool
	lines   int
	written int
}

func (rw *rowWriter) write(rows []string) error {
	buf := acquireWriteBuffer()
	defer func() { releaseWriteBuffer(buf) }()

	for _, row := range rows {
		if rw.trim {
			row = strings.TrimRight(row, " ")
		}
		buf = append(buf, row...)
		buf = append(buf, '\n')
	}

	n, err := rw.w.Write(buf)
	rw.written += n
	rw.lines++
	return err
}
