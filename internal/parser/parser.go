// Package parser implements FIGfont (FLF 2.0) and TOIlet (TLF 2.0) loading.
//
// Parse turns a font definition stream into a Font: header metadata, the
// hardblank placeholder and a table of glyphs keyed by code point. Code point
// 0 always holds the glyph used for characters missing from the font.
package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ryanlewis/figtext/internal/common"
)

const (
	// minHeaderFields is the signature plus the five required numeric fields
	minHeaderFields = 6
	// minSignatureRunes covers the 4-rune magic, the version and the hardblank
	minSignatureRunes = 6
	// firstPrintableASCII is the first mandatory character (space)
	firstPrintableASCII = 32
	// lastPrintableASCII is the last printable ASCII character (~)
	lastPrintableASCII = 126

	// MissingGlyph is the code point holding the fallback glyph
	MissingGlyph rune = 0
	// UnusedCodeTag is where glyphs with negative code tags are stored
	UnusedCodeTag rune = 1

	// ASCII threshold for fast-path optimization
	asciiThreshold = 0x80

	utf8BOM = "\ufeff"
)

// latin1Required lists the Latin-1 supplement glyphs every font carries after
// the ASCII block, in file order: Ä Ö Ü ä ö ü ß.
var latin1Required = [...]rune{196, 214, 220, 228, 246, 252, 223}

// Variant identifies the font file family selected by the signature magic.
type Variant int

const (
	// VariantFLF is a FIGlet font ("flf2" magic)
	VariantFLF Variant = iota
	// VariantTLF is a TOIlet font ("tlf2" magic)
	VariantTLF
)

func (v Variant) String() string {
	if v == VariantTLF {
		return "tlf2"
	}
	return "flf2"
}

// Font represents a parsed FIGfont with all its metadata and character glyphs.
type Font struct {
	// Glyphs maps code points to their glyphs
	Glyphs map[rune]*Glyph

	// Descriptions holds the text following a code tag, if any
	Descriptions map[rune]string

	// Comments contains the font comments
	Comments []string

	// Signature contains the full signature field (e.g., "flf2a$")
	Signature string

	// Variant is the format family chosen by the signature magic
	Variant Variant

	// Version is the fifth signature character
	Version rune

	// Hardblank is the character used for hard blanks
	Hardblank rune

	// Height is the number of lines per character
	Height int

	// Baseline is the number of lines from the top to the baseline
	Baseline int

	// MaxLength is the maximum character width
	MaxLength int

	// OldLayout is the legacy layout value; -1 means full width
	OldLayout int

	// CommentLines is the number of comment lines after the header
	CommentLines int

	// RightToLeft is set when the print direction field is "1"
	RightToLeft bool

	// Layout is the layout bitmask, read from the header or derived from OldLayout
	Layout int

	// LayoutSet indicates whether Layout was present in the header
	LayoutSet bool

	// CodetagCount is the number of code-tagged characters announced by the header
	CodetagCount int

	// Warnings contains any non-fatal issues encountered during parsing
	Warnings []string
}

// Glyph returns the glyph for r, or the missing-character glyph when the
// font has no entry for r.
func (f *Font) Glyph(r rune) *Glyph {
	if g, ok := f.Glyphs[r]; ok {
		return g
	}
	return f.Glyphs[MissingGlyph]
}

// Lookup returns the glyph for r without falling back.
func (f *Font) Lookup(r rune) (*Glyph, bool) {
	g, ok := f.Glyphs[r]
	return g, ok
}

// FullWidth reports whether the header asks for glyphs to be placed
// without any overlap.
func (f *Font) FullWidth() bool {
	return f.OldLayout == common.FullWidthOldLayout
}

func (f *Font) addGlyph(r rune, g *Glyph) error {
	if g.Height() != f.Height {
		return formatErrorf("glyph for %s has %d rows, expected %d", charName(r), g.Height(), f.Height)
	}
	f.Glyphs[r] = g
	return nil
}

// Parse reads a font from the provided reader and returns a parsed Font.
func Parse(r io.Reader) (*Font, error) {
	lr, release := newLineReader(r)
	defer release()

	font, err := parseHeader(lr)
	if err != nil {
		return nil, err
	}
	if err := parseGlyphs(lr, font); err != nil {
		return nil, err
	}
	return font, nil
}

// ParseHeader parses the header and comment lines only. The returned font
// contains just the missing-character glyph.
func ParseHeader(r io.Reader) (*Font, error) {
	lr, release := newLineReader(r)
	defer release()
	return parseHeader(lr)
}

// lineReader yields font lines with CR/LF terminators removed.
type lineReader struct {
	scanner *bufio.Scanner
	line    int
}

func newLineReader(r io.Reader) (*lineReader, func()) {
	scanner, buf := createPooledScanner(r)
	return &lineReader{scanner: scanner}, func() { releaseScannerBuffer(buf) }
}

// next returns the next line. It returns io.EOF at the end of the stream and
// an error matching common.ErrFontIO when the stream fails.
func (lr *lineReader) next() (string, error) {
	if !lr.scanner.Scan() {
		if err := lr.scanner.Err(); err != nil {
			return "", &ioError{err: fmt.Errorf("line %d: %w", lr.line+1, err)}
		}
		return "", io.EOF
	}
	lr.line++
	return strings.TrimSuffix(lr.scanner.Text(), "\r"), nil
}

func parseHeader(lr *lineReader) (*Font, error) {
	line, err := lr.next()
	if errors.Is(err, io.EOF) {
		return nil, formatErrorf("empty font data")
	}
	if err != nil {
		return nil, err
	}

	// Some font files in the wild carry a UTF-8 BOM
	line = strings.TrimPrefix(line, utf8BOM)

	font := &Font{}
	if err := parseSignature(line, font); err != nil {
		return nil, err
	}

	fields := strings.Fields(line)
	if len(fields) < minHeaderFields {
		return nil, formatErrorf("insufficient header fields: got %d, need at least %d",
			len(fields)-1, minHeaderFields-1)
	}
	if err := parseRequiredFields(fields[1:], font); err != nil {
		return nil, err
	}
	if err := parseOptionalFields(fields[1:], font); err != nil {
		return nil, err
	}
	if err := readCommentLines(lr, font); err != nil {
		return nil, err
	}

	// ASCII (95) + Latin-1 (7) + the missing glyph, plus room for code tags
	font.Glyphs = make(map[rune]*Glyph, 128)
	font.Glyphs[MissingGlyph] = blankGlyph(font.Height)
	return font, nil
}

// parseSignature validates the magic and extracts the version and hardblank.
func parseSignature(line string, font *Font) error {
	switch {
	case strings.HasPrefix(line, "flf2"):
		font.Variant = VariantFLF
	case strings.HasPrefix(line, "tlf2"):
		font.Variant = VariantTLF
	default:
		head := line
		if len(head) > 8 {
			head = head[:8]
		}
		return formatErrorf("unsupported font format: bad signature %q", head)
	}

	sig := strings.Fields(line)[0]
	runes := []rune(sig)
	if len(runes) < minSignatureRunes {
		return formatErrorf("invalid signature %q: too short", sig)
	}

	font.Signature = sig
	font.Version = runes[4]
	font.Hardblank = runes[5]
	return nil
}

func atoiField(field, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &ParseError{Field: field, Value: value, Err: err}
	}
	return n, nil
}

// parseRequiredFields parses height, baseline, max length, old layout and
// the comment line count.
func parseRequiredFields(fields []string, font *Font) error {
	var err error

	if font.Height, err = atoiField("height", fields[0]); err != nil {
		return err
	}
	if font.Height < 1 {
		return formatErrorf("height must be positive, got %d", font.Height)
	}

	// Baseline and max length are not used for rendering, only retained
	if font.Baseline, err = atoiField("baseline", fields[1]); err != nil {
		return err
	}
	if font.MaxLength, err = atoiField("max length", fields[2]); err != nil {
		return err
	}
	if font.OldLayout, err = atoiField("old layout", fields[3]); err != nil {
		return err
	}

	if font.CommentLines, err = atoiField("comment lines", fields[4]); err != nil {
		return err
	}
	if font.CommentLines < 0 {
		return formatErrorf("comment lines must be non-negative, got %d", font.CommentLines)
	}
	return nil
}

// parseOptionalFields parses print direction, full layout and the code tag
// count when present. A missing layout is derived from the old layout.
func parseOptionalFields(fields []string, font *Font) error {
	const (
		printDirectionField = 5
		fullLayoutField     = 6
		codetagCountField   = 7
	)

	if len(fields) > printDirectionField {
		font.RightToLeft = fields[printDirectionField] == "1"
	}

	if len(fields) > fullLayoutField {
		v, err := strconv.ParseUint(fields[fullLayoutField], 10, 32)
		if err != nil {
			return &ParseError{Field: "layout", Value: fields[fullLayoutField], Err: err}
		}
		font.Layout = int(v)
		font.LayoutSet = true
	} else {
		font.Layout, _ = common.LayoutFromOldLayout(font.OldLayout)
	}

	if len(fields) > codetagCountField {
		n, err := atoiField("codetag count", fields[codetagCountField])
		if err != nil {
			return err
		}
		font.CodetagCount = n
	}
	return nil
}

// readCommentLines reads the specified number of comment lines verbatim.
func readCommentLines(lr *lineReader, font *Font) error {
	font.Comments = make([]string, 0, font.CommentLines)
	for i := 0; i < font.CommentLines; i++ {
		line, err := lr.next()
		if errors.Is(err, io.EOF) {
			return formatErrorf("unexpected end of font data: expected %d comment lines, got %d",
				font.CommentLines, i)
		}
		if err != nil {
			return err
		}
		font.Comments = append(font.Comments, line)
	}
	return nil
}

// errStreamFailed stops glyph loading after a read failure inside a glyph.
var errStreamFailed = errors.New("font stream failed")

// parseGlyphs reads the mandatory glyphs followed by any code-tagged glyphs.
func parseGlyphs(lr *lineReader, font *Font) error {
	err := parseRequiredGlyphs(lr, font)
	if errors.Is(err, errStreamFailed) || errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return err
	}

	for {
		line, err := lr.next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		code, err := parseCodeTag(fields[0])
		if err != nil {
			return err
		}
		if len(fields) > 1 {
			if font.Descriptions == nil {
				font.Descriptions = make(map[rune]string)
			}
			font.Descriptions[code] = strings.Join(fields[1:], " ")
		}

		err = loadGlyph(lr, font, code)
		if errors.Is(err, errStreamFailed) {
			return nil
		}
		if errors.Is(err, io.EOF) {
			return formatErrorf("unexpected end of font data: no rows for code tag %s", fields[0])
		}
		if err != nil {
			return err
		}
	}
}

// parseRequiredGlyphs reads ASCII 32..126 and the Latin-1 block in file
// order. It returns io.EOF when the font ends before the Latin-1 block.
func parseRequiredGlyphs(lr *lineReader, font *Font) error {
	for c := rune(firstPrintableASCII); c <= lastPrintableASCII; c++ {
		err := loadGlyph(lr, font, c)
		if errors.Is(err, io.EOF) {
			return formatErrorf("unexpected end of font data: missing glyph for %s", charName(c))
		}
		if err != nil {
			return err
		}
	}

	for i, c := range latin1Required {
		err := loadGlyph(lr, font, c)
		if errors.Is(err, io.EOF) {
			// Older fonts stop after the ASCII block
			font.Warnings = append(font.Warnings,
				fmt.Sprintf("font ends after %d of %d Latin-1 glyphs", i, len(latin1Required)))
			return io.EOF
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// loadGlyph reads one glyph and stores it under code. It returns io.EOF when
// the stream ends before the first row, and errStreamFailed after storing a
// blank glyph when the stream fails part way through.
func loadGlyph(lr *lineReader, font *Font, code rune) error {
	rows := acquireRowSlice(font.Height)
	defer func() { releaseRowSlice(rows) }()

	for row := 0; row < font.Height; row++ {
		line, err := lr.next()
		if errors.Is(err, io.EOF) {
			if row == 0 {
				return io.EOF
			}
			return formatErrorf("unexpected end of font data in glyph for %s: expected %d rows, got %d",
				charName(code), font.Height, row)
		}
		if err != nil {
			// Keep what loaded so far; the partial glyph becomes blank
			font.Warnings = append(font.Warnings,
				fmt.Sprintf("glyph for %s replaced by blank rows: %v", charName(code), err))
			font.Glyphs[code] = blankGlyph(font.Height)
			return errStreamFailed
		}

		body, _, _ := stripTrailingRun(line)
		if body == "" {
			return formatErrorf("invalid character width: empty row %d in glyph for %s", row+1, charName(code))
		}

		// Advisory only, many real fonts exceed their stated MaxLength
		if w := utf8.RuneCountInString(body); w > font.MaxLength {
			font.Warnings = append(font.Warnings,
				fmt.Sprintf("glyph for %s row %d width (%d) exceeds MaxLength (%d)",
					charName(code), row+1, w, font.MaxLength))
		}
		rows = append(rows, body)
	}

	g, err := NewGlyph(rows)
	if err != nil {
		return fmt.Errorf("glyph for %s: %w", charName(code), err)
	}
	return font.addGlyph(code, g)
}

// parseCodeTag parses the code point preceding a code-tagged glyph. Negative
// values mark unused translation slots and map to UnusedCodeTag.
func parseCodeTag(tok string) (rune, error) {
	digits := tok
	neg := strings.HasPrefix(digits, "-")
	if neg {
		digits = digits[1:]
	}
	base := 10
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		digits = digits[2:]
		base = 16
	}

	// ParseInt would accept a second sign
	if digits == "" || digits[0] == '+' || digits[0] == '-' {
		return 0, &ParseError{Field: "code tag", Value: tok, Err: strconv.ErrSyntax}
	}
	v, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		return 0, &ParseError{Field: "code tag", Value: tok, Err: err}
	}

	if neg && v != 0 {
		return UnusedCodeTag, nil
	}
	if v > utf8.MaxRune || (v >= 0xD800 && v <= 0xDFFF) {
		return 0, &CodeTagError{Tag: v}
	}
	return rune(v), nil
}

// stripTrailingRun removes trailing whitespace, then the endmark: the last
// character of the line together with the run of that character before it.
// It returns the body, the endmark and the run length.
//
// The endmark is re-derived for every line, so fonts may use any marker and
// any run length.
func stripTrailingRun(line string) (body string, endmark rune, runLen int) {
	line = strings.TrimRightFunc(line, unicode.IsSpace)
	if line == "" {
		return "", 0, 0
	}

	// Fast-path for ASCII endmarks (common case)
	lastByte := line[len(line)-1]
	if lastByte < asciiThreshold {
		i := len(line) - 1
		for i >= 0 && line[i] == lastByte {
			i--
			runLen++
		}
		return line[:i+1], rune(lastByte), runLen
	}

	r, sz := utf8.DecodeLastRuneInString(line)
	if r == utf8.RuneError && sz == 1 {
		// Invalid UTF-8 at line end: strip the trailing run of that byte
		i := len(line) - 1
		for i >= 0 && line[i] == lastByte {
			i--
			runLen++
		}
		return line[:i+1], rune(lastByte), runLen
	}

	i := len(line)
	for i > 0 {
		rr, s := utf8.DecodeLastRuneInString(line[:i])
		if rr != r {
			break
		}
		i -= s
		runLen++
	}
	return line[:i], r, runLen
}

func charName(r rune) string {
	if r > ' ' && r < 0x7F {
		return fmt.Sprintf("character %d (%c)", r, r)
	}
	return fmt.Sprintf("character %d (U+%04X)", r, r)
}
