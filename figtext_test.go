package figtext

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
)

// minimalFont is a full-width font where every glyph is the character itself.
var minimalFont = buildMinimalFont()

func buildMinimalFont() string {
	var b strings.Builder
	b.WriteString("flf2a$ 2 1 10 -1 1\nminimal test font\n")
	for r := rune(32); r <= 126; r++ {
		c := string(r)
		if r == ' ' {
			c = "$"
		}
		if r == '@' {
			b.WriteString("@#\n@##\n")
			continue
		}
		b.WriteString(c + "@\n" + c + "@@\n")
	}
	return b.String()
}

func loadMini(t testing.TB) *Font {
	t.Helper()
	font, err := LoadFont(filepath.Join("testdata", "fonts", "mini.flf"))
	if err != nil {
		t.Fatalf("LoadFont(mini.flf) error = %v", err)
	}
	return font
}

func zipBytes(t *testing.T, entries ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for i := 0; i+1 < len(entries); i += 2 {
		f, err := w.Create(entries[i])
		if err != nil {
			t.Fatalf("Failed to create ZIP entry: %v", err)
		}
		if _, err := f.Write([]byte(entries[i+1])); err != nil {
			t.Fatalf("Failed to write to ZIP: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close ZIP: %v", err)
	}
	return buf.Bytes()
}

func TestParseFont(t *testing.T) {
	font, err := ParseFont(strings.NewReader(minimalFont))
	if err != nil {
		t.Fatalf("ParseFont() error = %v", err)
	}
	if font.Height != 2 || font.Baseline != 1 || font.MaxLen != 10 {
		t.Errorf("header = %d/%d/%d, want 2/1/10", font.Height, font.Baseline, font.MaxLen)
	}
	if font.Hardblank != '$' {
		t.Errorf("Hardblank = %q, want '$'", font.Hardblank)
	}
	if !font.FullWidth {
		t.Error("FullWidth = false, want true for old layout -1")
	}
	if font.Variant != "flf2" {
		t.Errorf("Variant = %q, want flf2", font.Variant)
	}
	if len(font.Comments) != 1 || font.Comments[0] != "minimal test font" {
		t.Errorf("Comments = %q", font.Comments)
	}
	// Latin-1 block missing
	if len(font.Warnings) != 1 {
		t.Errorf("Warnings = %q, want one", font.Warnings)
	}

	rows, ok := font.Glyph('Z')
	if !ok || len(rows) != 2 || rows[0] != "Z" {
		t.Errorf("Glyph('Z') = %q, %v", rows, ok)
	}
	if _, ok := font.Glyph('é'); ok {
		t.Error("Glyph('é') should not exist")
	}
}

func TestParseFontErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"empty", "", ErrBadFontFormat},
		{"bad signature", "flf3a$ 2 1 10 -1 0\n", ErrBadFontFormat},
		{"bad height", "flf2a$ x 1 10 -1 0\n", ErrParse},
		{"bad code tag", minimalFont + "0x110000\nx@\nx@@\n", ErrCodeTag},
		{"missing glyph", "flf2a$ 2 1 10 -1 0\n $@\n $@@\n", ErrBadFontFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFontBytes([]byte(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("ParseFontBytes() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseFontCompressed(t *testing.T) {
	tests := []struct {
		name    string
		data    func(t *testing.T) []byte
		wantErr error
	}{
		{
			name: "single entry",
			data: func(t *testing.T) []byte { return zipBytes(t, "test.flf", minimalFont) },
		},
		{
			name: "multiple entries uses first",
			data: func(t *testing.T) []byte {
				return zipBytes(t, "first.flf", minimalFont, "second.flf", "invalid content")
			},
		},
		{
			name:    "first entry invalid",
			data:    func(t *testing.T) []byte { return zipBytes(t, "bad.flf", "not a font") },
			wantErr: ErrBadFontFormat,
		},
		{
			name:    "empty archive",
			data:    func(t *testing.T) []byte { return zipBytes(t) },
			wantErr: ErrBadFontFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.data(t)
			for _, parse := range []func() (*Font, error){
				func() (*Font, error) { return ParseFont(bytes.NewReader(data)) },
				func() (*Font, error) { return ParseFontBytes(data) },
			} {
				font, err := parse()
				if tt.wantErr != nil {
					if !errors.Is(err, tt.wantErr) {
						t.Errorf("error = %v, want %v", err, tt.wantErr)
					}
					continue
				}
				if err != nil {
					t.Fatalf("unexpected error = %v", err)
				}
				if font.Height != 2 {
					t.Errorf("Height = %d, want 2", font.Height)
				}
			}
		})
	}
}

func TestLoadFont(t *testing.T) {
	font := loadMini(t)
	if font.Name != "mini" {
		t.Errorf("Name = %q, want mini", font.Name)
	}
	if font.Layout != 24463 {
		t.Errorf("Layout = %d, want 24463", font.Layout)
	}
	if font.FullWidth {
		t.Error("FullWidth = true, want false")
	}
	if len(font.Warnings) != 0 {
		t.Errorf("Warnings = %q, want none", font.Warnings)
	}
	if d, ok := font.Description('é'); !ok || d != "LATIN SMALL LETTER E WITH ACUTE" {
		t.Errorf("Description('é') = %q, %v", d, ok)
	}
	runes := font.Runes()
	if len(runes) != 95+7+2 {
		t.Errorf("len(Runes()) = %d, want %d", len(runes), 95+7+2)
	}
	if runes[0] != 0 || runes[len(runes)-1] != 'ü' {
		t.Errorf("Runes() not sorted: first %d last %d", runes[0], runes[len(runes)-1])
	}

	if _, err := LoadFont(filepath.Join("testdata", "fonts", "missing.flf")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadFont(missing) error = %v, want os.ErrNotExist", err)
	}
}

func TestLoadFontCompressed(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "packed.flf")
	if err := os.WriteFile(p, zipBytes(t, "packed.flf", minimalFont), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	font, err := LoadFont(p)
	if err != nil {
		t.Fatalf("LoadFont() error = %v", err)
	}
	if font.Name != "packed" || font.Height != 2 {
		t.Errorf("font = %q height %d, want packed height 2", font.Name, font.Height)
	}
}

func TestLoadFontFS(t *testing.T) {
	fsys := fstest.MapFS{
		"fonts/my-custom-font.flf":     {Data: []byte(minimalFont)},
		"deep/nested/path/special.tlf": {Data: []byte(strings.Replace(minimalFont, "flf2a", "tlf2a", 1))},
		"fonts/broken.flf":             {Data: []byte("garbage")},
		"fonts/dir/inner.flf":          {Data: []byte(minimalFont)},
	}

	tests := []struct {
		path        string
		wantName    string
		wantVariant string
		wantErr     bool
	}{
		{path: "fonts/my-custom-font.flf", wantName: "my-custom-font", wantVariant: "flf2"},
		{path: "deep/nested/path/special.tlf", wantName: "special", wantVariant: "tlf2"},
		{path: "fonts/./my-custom-font.flf", wantErr: true},
		{path: "fonts/broken.flf", wantErr: true},
		{path: "fonts/dir", wantErr: true},
		{path: "fonts/none.flf", wantErr: true},
		{path: "", wantErr: true},
		{path: "/fonts/my-custom-font.flf", wantErr: true},
		{path: "../fonts/my-custom-font.flf", wantErr: true},
		{path: `fonts\my-custom-font.flf`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			font, err := LoadFontFS(fsys, tt.path)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("LoadFontFS(%q) expected error", tt.path)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadFontFS(%q) error = %v", tt.path, err)
			}
			if font.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", font.Name, tt.wantName)
			}
			if font.Variant != tt.wantVariant {
				t.Errorf("Variant = %q, want %q", font.Variant, tt.wantVariant)
			}
		})
	}

	if _, err := LoadFontFS(nil, "x.flf"); err == nil {
		t.Error("LoadFontFS(nil) expected error")
	}
}

func TestFontConcurrentAccess(t *testing.T) {
	font := loadMini(t)
	want, err := Render("Hello world", font)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				got, err := Render("Hello world", font)
				if err != nil || got != want {
					errs <- got
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Errorf("concurrent Render() = %q, want %q", got, want)
	}
}

func TestFontSlicesAreCopies(t *testing.T) {
	font, err := ParseFont(strings.NewReader(minimalFont))
	if err != nil {
		t.Fatalf("ParseFont() error = %v", err)
	}
	if len(font.Comments) == 0 || len(font.Warnings) == 0 {
		t.Fatalf("fixture needs comments and warnings: %q %q", font.Comments, font.Warnings)
	}

	font.Comments[0] = "changed"
	font.Warnings[0] = "changed"
	if font.font.Comments[0] != "minimal test font" {
		t.Errorf("parsed comments changed to %q", font.font.Comments[0])
	}
	if font.font.Warnings[0] == "changed" {
		t.Error("parsed warnings changed through the public font")
	}
}
