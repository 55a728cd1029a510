package figtext

import (
	"errors"
	"strings"
	"testing"
)

// oneRowFont is a full-width font of height 1 where every glyph is the
// character itself, so a line is as wide as its text.
func oneRowFont(t *testing.T) *Font {
	t.Helper()
	var b strings.Builder
	b.WriteString("flf2a$ 1 1 10 -1 0\n")
	for r := rune(32); r <= 126; r++ {
		switch r {
		case ' ':
			b.WriteString("$@@\n")
		case '@':
			b.WriteString("@##\n")
		default:
			b.WriteString(string(r) + "@@\n")
		}
	}
	font, err := ParseFont(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("ParseFont() error = %v", err)
	}
	return font
}

func TestWrapperLineFull(t *testing.T) {
	w, err := NewWrapper(oneRowFont(t), WithWidth(8))
	if err != nil {
		t.Fatalf("NewWrapper() error = %v", err)
	}

	for _, s := range []string{"this", " ", "is", " "} {
		if err := w.PushString(s); err != nil {
			t.Fatalf("PushString(%q) error = %v", s, err)
		}
	}
	if err := w.PushString("a"); !errors.Is(err, ErrLineFull) {
		t.Fatalf("PushString(a) error = %v, want ErrLineFull", err)
	}
	if err := w.Push('a'); !errors.Is(err, ErrLineFull) {
		t.Fatalf("Push(a) error = %v, want ErrLineFull", err)
	}
	if got := w.Get(); len(got) != 1 || got[0] != "this is " {
		t.Errorf("Get() = %q, want [\"this is \"]", got)
	}
	if w.Text() != "this is " || w.Len() != 8 {
		t.Errorf("Text() = %q, Len() = %d", w.Text(), w.Len())
	}

	w.Clear()
	if !w.IsEmpty() {
		t.Error("IsEmpty() = false after Clear()")
	}
	if err := w.PushString("a"); err != nil {
		t.Errorf("PushString(a) after Clear() error = %v", err)
	}
}

func TestWrapperWrapString(t *testing.T) {
	w, err := NewWrapper(oneRowFont(t), WithWidth(12), WithAlign(AlignRight))
	if err != nil {
		t.Fatalf("NewWrapper() error = %v", err)
	}

	var flushed [][]string
	flush := func(rows []string) error {
		flushed = append(flushed, rows)
		return nil
	}
	for _, tok := range []string{"this", " ", "is", " ", "a", " ", "new", " ", "test"} {
		if err := w.WrapString(tok, flush); err != nil {
			t.Fatalf("WrapString(%q) error = %v", tok, err)
		}
	}

	if len(flushed) != 1 || flushed[0][0] != "  this is a " {
		t.Errorf("flushed = %q, want [[\"  this is a \"]]", flushed)
	}
	if got := w.Get(); got[0] != "    new test" {
		t.Errorf("Get() = %q, want [\"    new test\"]", got)
	}
	// Get is stable without a push in between
	if got := w.Get(); got[0] != "    new test" {
		t.Errorf("second Get() = %q", got)
	}

	if err := w.Flush(flush); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if len(flushed) != 2 || !w.IsEmpty() {
		t.Errorf("Flush() left %d lines, empty %v", len(flushed), w.IsEmpty())
	}
}

func TestWrapperFlushError(t *testing.T) {
	w, err := NewWrapper(oneRowFont(t), WithWidth(4))
	if err != nil {
		t.Fatalf("NewWrapper() error = %v", err)
	}
	boom := errors.New("sink closed")
	fail := func([]string) error { return boom }

	if err := w.WrapString("abc", fail); err != nil {
		t.Fatalf("WrapString(abc) error = %v", err)
	}
	if err := w.WrapString("def", fail); !errors.Is(err, boom) {
		t.Errorf("WrapString(def) error = %v, want %v", err, boom)
	}
}

func TestWrapperMatchesRender(t *testing.T) {
	font := loadMini(t)
	w, err := NewWrapper(font)
	if err != nil {
		t.Fatalf("NewWrapper() error = %v", err)
	}
	for _, tok := range []string{"Hello", " ", "world"} {
		if err := w.WrapString(tok, func([]string) error {
			t.Fatal("unexpected flush")
			return nil
		}); err != nil {
			t.Fatalf("WrapString(%q) error = %v", tok, err)
		}
	}
	if got := strings.Join(w.Get(), "\n") + "\n"; got != helloWorld {
		t.Errorf("Get() =\n%s\nwant\n%s", got, helloWorld)
	}
}

func TestWrapperOptions(t *testing.T) {
	font := loadMini(t)

	replaced, err := NewWrapper(font, WithUnknownRune('?'))
	if err != nil {
		t.Fatalf("NewWrapper() error = %v", err)
	}
	plain, err := NewWrapper(font)
	if err != nil {
		t.Fatalf("NewWrapper() error = %v", err)
	}
	if err := replaced.PushString("H☃"); err != nil {
		t.Fatalf("PushString() error = %v", err)
	}
	if err := replaced.Push('☃'); err != nil {
		t.Fatalf("Push() error = %v", err)
	}
	if err := plain.PushString("H??"); err != nil {
		t.Fatalf("PushString() error = %v", err)
	}
	if a, b := strings.Join(replaced.Get(), "\n"), strings.Join(plain.Get(), "\n"); a != b {
		t.Errorf("unknown rune not replaced:\n%s\nwant\n%s", a, b)
	}

	kerned, err := NewWrapper(font, WithKerning())
	if err != nil {
		t.Fatalf("NewWrapper() error = %v", err)
	}
	if err := kerned.PushString("Hi"); err != nil {
		t.Fatalf("PushString() error = %v", err)
	}
	if got := kerned.Get()[1]; got != `| | | |(_)` {
		t.Errorf("kerned row 1 = %q", got)
	}

	if _, err := NewWrapper(nil); !errors.Is(err, ErrUnknownFont) {
		t.Errorf("NewWrapper(nil) error = %v, want ErrUnknownFont", err)
	}
}
