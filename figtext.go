// Package figtext renders text as FIGlet ASCII art, word-wrapped to a width.
//
// Fonts are loaded once with ParseFont, ParseFontBytes, LoadFont or
// LoadFontFS and are safe to share between goroutines. Render and RenderTo
// compose the glyphs of each word, overlapping them according to the font's
// layout, and break lines at word boundaries before they exceed the width.
package figtext

import (
	"archive/zip"
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/ryanlewis/figtext/internal/debug"
	"github.com/ryanlewis/figtext/internal/parser"
	"github.com/ryanlewis/figtext/internal/renderer"
)

// zipMagic starts every zip archive; figlet accepts fonts compressed this way.
var zipMagic = []byte("PK\x03\x04")

// ParseFont reads a FIGfont from the provided reader and returns a Font instance.
// The returned Font is immutable and safe for concurrent use across goroutines.
//
// Both FIGlet (flf2) and TOIlet (tlf2) fonts are accepted, plain or as the
// first entry of a zip archive.
//
// Example:
//
//	file, err := os.Open("standard.flf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer file.Close()
//
//	font, err := figtext.ParseFont(file)
//	if err != nil {
//	    log.Fatal(err)
//	}
func ParseFont(r io.Reader) (*Font, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(len(zipMagic))
	if err == nil && bytes.Equal(magic, zipMagic) {
		data, err := io.ReadAll(br)
		if err != nil {
			return nil, fmt.Errorf("failed to read compressed font: %w", err)
		}
		return parseZipFont(data)
	}

	pf, err := parser.Parse(br)
	if err != nil {
		return nil, err
	}
	return newFont(pf), nil
}

// ParseFontBytes parses a FIGfont held in memory.
func ParseFontBytes(data []byte) (*Font, error) {
	if bytes.HasPrefix(data, zipMagic) {
		return parseZipFont(data)
	}
	pf, err := parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return newFont(pf), nil
}

// parseZipFont parses the first entry of a zip archive.
func parseZipFont(data []byte) (*Font, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open compressed font: %w", err)
	}
	if len(zr.File) == 0 {
		return nil, fmt.Errorf("%w: compressed font has no entries", ErrBadFontFormat)
	}
	rc, err := zr.File[0].Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open compressed font entry: %w", err)
	}
	defer rc.Close()

	pf, err := parser.Parse(rc)
	if err != nil {
		return nil, err
	}
	return newFont(pf), nil
}

// LoadFont loads a FIGfont from a file on disk. The font is named after the
// file without its extension.
func LoadFont(fontPath string) (*Font, error) {
	file, err := os.Open(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open font file: %w", err)
	}
	defer file.Close()

	font, err := ParseFont(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", fontPath, err)
	}
	font.Name = strings.TrimSuffix(filepath.Base(fontPath), filepath.Ext(fontPath))
	return font, nil
}

// cleanFSPath validates and cleans a path for use with fs.FS.
// It ensures the path is valid according to fs.ValidPath rules and
// prevents directory traversal.
func cleanFSPath(p string) (string, error) {
	if p == "" {
		return "", errors.New("path cannot be empty")
	}
	if strings.HasPrefix(p, "/") {
		return "", errors.New("absolute paths not allowed")
	}
	if strings.ContainsRune(p, '\\') {
		return "", errors.New("backslashes not allowed in fs paths")
	}
	if !fs.ValidPath(p) {
		return "", fmt.Errorf("invalid fs path: %s", p)
	}
	clean := path.Clean(p)
	if clean == "." || strings.HasPrefix(clean, "../") {
		return "", errors.New("path traversal not allowed")
	}
	return clean, nil
}

// LoadFontFS loads a FIGfont from a filesystem at the specified path.
// The returned Font is immutable and safe for concurrent use across goroutines.
//
// Example with embed.FS:
//
//	//go:embed fonts/*.flf
//	var fonts embed.FS
//
//	font, err := figtext.LoadFontFS(fonts, "fonts/standard.flf")
//	if err != nil {
//	    log.Fatal(err)
//	}
func LoadFontFS(fsys fs.FS, fontPath string) (*Font, error) {
	if fsys == nil {
		return nil, errors.New("filesystem cannot be nil")
	}

	clean, err := cleanFSPath(fontPath)
	if err != nil {
		return nil, err
	}

	file, err := fsys.Open(clean)
	if err != nil {
		return nil, fmt.Errorf("failed to open font file: %w", err)
	}
	defer file.Close()

	if info, err := file.Stat(); err == nil && info.IsDir() {
		return nil, fmt.Errorf("font path %s is a directory", clean)
	}

	font, err := ParseFont(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", clean, err)
	}
	font.Name = strings.TrimSuffix(path.Base(clean), path.Ext(clean))
	return font, nil
}

// Render converts text to ASCII art using the specified font and options.
// Each font row of each output line ends with a newline.
func Render(text string, f *Font, opts ...Option) (string, error) {
	var b strings.Builder
	if err := RenderTo(&b, text, f, opts...); err != nil {
		return "", err
	}
	return b.String(), nil
}

// RenderTo writes the ASCII art for text to w.
func RenderTo(w io.Writer, text string, f *Font, opts ...Option) error {
	if f == nil || f.font == nil {
		return ErrUnknownFont
	}
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	if options.normalize {
		text = norm.NFC.String(text)
	}
	if options.unknownRune != nil {
		text = replaceUnknown(text, f, *options.unknownRune)
	}
	if options.debug != nil {
		options.debug.Emit("font", "Header", f.headerData())
	}
	return renderer.RenderTo(w, text, f.font, options.toInternal())
}

// replaceUnknown swaps characters missing from f for repl, provided repl
// itself is in the font.
func replaceUnknown(text string, f *Font, repl rune) string {
	if _, ok := f.font.Lookup(repl); !ok {
		return text
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return r
		}
		if _, ok := f.font.Lookup(r); ok {
			return r
		}
		return repl
	}, text)
}

func (f *Font) headerData() debug.FontHeaderData {
	return debug.FontHeaderData{
		Variant:      f.Variant,
		Hardblank:    f.Hardblank,
		Height:       f.Height,
		Baseline:     f.Baseline,
		MaxLength:    f.MaxLen,
		OldLayout:    f.OldLayout,
		Layout:       int(f.Layout),
		LayoutSet:    f.font.LayoutSet,
		RTL:          f.RightToLeft,
		CommentLines: f.CommentLines,
		Glyphs:       len(f.font.Glyphs),
		Warnings:     len(f.Warnings),
	}
}

func (o *options) toInternal() *renderer.Options {
	ro := &renderer.Options{
		Width:          o.width,
		Paragraph:      o.paragraph,
		TrimWhitespace: o.trimWhitespace,
		FullWidth:      o.fullWidth,
		RightToLeft:    o.rightToLeft,
		Debug:          o.debug,
	}
	switch o.align {
	case AlignCenter:
		ro.Align = renderer.AlignCenter
	case AlignRight:
		ro.Align = renderer.AlignRight
	default:
		ro.Align = renderer.AlignLeft
	}
	if o.layout != nil {
		mode := int(*o.layout)
		ro.Mode = &mode
	}
	return ro
}
