package debug

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Sink is the interface for debug output destinations.
type Sink interface {
	Write(event Event) error
	Flush() error
	Close() error
}

// JSONSink writes events in JSON Lines format.
type JSONSink struct {
	w       *bufio.Writer
	encoder *json.Encoder
}

// NewJSONSink creates a new JSON Lines sink writing to w.
func NewJSONSink(w io.Writer) *JSONSink {
	bw := bufio.NewWriter(w)
	return &JSONSink{
		w:       bw,
		encoder: json.NewEncoder(bw),
	}
}

// Write encodes and writes an event as a JSON line.
func (s *JSONSink) Write(event Event) error {
	return s.encoder.Encode(event)
}

// Flush writes any buffered data to the underlying writer.
func (s *JSONSink) Flush() error {
	return s.w.Flush()
}

// Close flushes the buffer.
func (s *JSONSink) Close() error {
	return s.Flush()
}

// PrettySink writes events in human-readable format.
type PrettySink struct {
	w *bufio.Writer
}

// NewPrettySink creates a new pretty-format sink writing to w.
func NewPrettySink(w io.Writer) *PrettySink {
	return &PrettySink{
		w: bufio.NewWriter(w),
	}
}

// Write formats and writes an event in human-readable format.
func (s *PrettySink) Write(event Event) error {
	// Format: [timestamp] [phase/event]
	fmt.Fprintf(s.w, "[%s] [%s/%s] session=%s\n", event.Timestamp, event.Phase, event.Event, event.SessionID)

	// Pretty print data based on type
	switch d := event.Data.(type) {
	case SmushAmountRowData:
		s.writeSmushAmountRow(d)
	case SmushDecisionData:
		s.writeSmushDecision(d)
	case RenderStartData:
		s.writeRenderStart(d)
	case RenderEndData:
		s.writeRenderEnd(d)
	case GlyphPushData:
		s.writeGlyphPush(d)
	case WrapData:
		s.writeWrap(d)
	case FlushData:
		s.writeFlush(d)
	case FontHeaderData:
		s.writeFontHeader(d)
	case map[string]interface{}:
		s.writeMap(d)
	case map[string]int64:
		s.writeMapInt64(d)
	default:
		fmt.Fprintf(s.w, "  data: %+v\n", d)
	}

	return nil
}

func (s *PrettySink) writeSmushAmountRow(d SmushAmountRowData) {
	fmt.Fprintf(s.w, "  glyph: %d, row: %d\n", d.GlyphIdx, d.Row)
	fmt.Fprintf(s.w, "  blanks: left=%d, right=%d\n", d.TrailingLeft, d.LeadingRight)
	fmt.Fprintf(s.w, "  boundary: %s + %s\n", runeStr(d.Ch1), runeStr(d.Ch2))
	fmt.Fprintf(s.w, "  amount: %d %s → %d\n", d.AmountBefore, d.Reason, d.AmountAfter)
}

func (s *PrettySink) writeSmushDecision(d SmushDecisionData) {
	fmt.Fprintf(s.w, "  position: row=%d, col=%d\n", d.Row, d.Col)
	fmt.Fprintf(s.w, "  characters: %s + %s → %s\n",
		runeStr(d.Lch), runeStr(d.Rch), runeStr(d.Result))
	fmt.Fprintf(s.w, "  rule: %s\n", d.Rule)
}

func (s *PrettySink) writeRenderStart(d RenderStartData) {
	fmt.Fprintf(s.w, "  text: %q (length: %d)\n", d.Text, d.TextLength)
	fmt.Fprintf(s.w, "  char_height: %d, hardblank: %s\n", d.CharHeight, runeStr(d.Hardblank))
	fmt.Fprintf(s.w, "  width: %d, align: %s, direction: %s\n", d.Width, d.Align, dirStr(d.RTL))
	fmt.Fprintf(s.w, "  mode: 0x%02X (%s)\n", d.Mode, strings.Join(d.ModeRules, "|"))
	if d.FullWidth {
		fmt.Fprintf(s.w, "  full_width: true\n")
	}
	if d.Paragraph {
		fmt.Fprintf(s.w, "  paragraph: true\n")
	}
}

func (s *PrettySink) writeRenderEnd(d RenderEndData) {
	fmt.Fprintf(s.w, "  total_lines: %d, total_runes: %d\n", d.TotalLines, d.TotalRunes)
	fmt.Fprintf(s.w, "  elapsed_ms: %d, bytes_written: %d\n", d.ElapsedMs, d.BytesWritten)
}

func (s *PrettySink) writeGlyphPush(d GlyphPushData) {
	fmt.Fprintf(s.w, "  index: %d, rune: %s, width: %d\n", d.Index, runeStr(d.Rune), d.Width)
	fmt.Fprintf(s.w, "  amount: %d, len_after: %d\n", d.Amount, d.LenAfter)
	if d.Fallback {
		fmt.Fprintf(s.w, "  fallback: true\n")
	}
	if d.FullWidth {
		fmt.Fprintf(s.w, "  full_width: true\n")
	}
}

func (s *PrettySink) writeWrap(d WrapData) {
	fmt.Fprintf(s.w, "  reason: %s, token: %q\n", d.Reason, d.Token)
	fmt.Fprintf(s.w, "  buffer_len: %d, len: %d, width: %d\n", d.BufferLen, d.Len, d.Width)
}

func (s *PrettySink) writeFlush(d FlushData) {
	fmt.Fprintf(s.w, "  line_number: %d, width: %d\n", d.LineNumber, d.Width)
	fmt.Fprintf(s.w, "  align: %s, padding: %d\n", d.Align, d.Padding)
}

func (s *PrettySink) writeFontHeader(d FontHeaderData) {
	fmt.Fprintf(s.w, "  variant: %s, hardblank: %s, height: %d, baseline: %d\n",
		d.Variant, runeStr(d.Hardblank), d.Height, d.Baseline)
	fmt.Fprintf(s.w, "  old_layout: %d, layout: 0x%02X (set: %t), direction: %s\n",
		d.OldLayout, d.Layout, d.LayoutSet, dirStr(d.RTL))
	fmt.Fprintf(s.w, "  glyphs: %d, comment_lines: %d, warnings: %d\n", d.Glyphs, d.CommentLines, d.Warnings)
}

func (s *PrettySink) writeMap(d map[string]interface{}) {
	for k, v := range d {
		fmt.Fprintf(s.w, "  %s: %v\n", k, v)
	}
}

func (s *PrettySink) writeMapInt64(d map[string]int64) {
	for k, v := range d {
		fmt.Fprintf(s.w, "  %s: %d\n", k, v)
	}
}

// Flush writes any buffered data to the underlying writer.
func (s *PrettySink) Flush() error {
	return s.w.Flush()
}

// Close flushes the buffer.
func (s *PrettySink) Close() error {
	return s.Flush()
}

// runeStr formats a rune for display: 'X' (0x58) or NUL for 0.
func runeStr(r rune) string {
	if r == 0 {
		return "NUL"
	}
	if r >= 32 && r < 127 {
		return fmt.Sprintf("'%c' (0x%02X)", r, r)
	}
	return fmt.Sprintf("0x%02X", r)
}

// dirStr converts print direction to a string.
func dirStr(rtl bool) string {
	if rtl {
		return "RTL"
	}
	return "LTR"
}
