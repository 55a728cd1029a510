// Command figtext renders text as FIGlet ASCII art, word-wrapped to the
// terminal width.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/ryanlewis/figtext"
	"github.com/ryanlewis/figtext/internal/debug"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// fontDirEnv names an extra directory searched for fonts.
const fontDirEnv = "FIGTEXT_FONTDIR"

// systemFontDirs are searched after --dir and FIGTEXT_FONTDIR.
var systemFontDirs = []string{"/usr/share/figlet", "/usr/local/share/figlet"}

// fileConfig mirrors the flags that may be preset from a YAML file.
type fileConfig struct {
	Font           string `yaml:"font"`
	Dir            string `yaml:"dir"`
	Width          int    `yaml:"width"`
	Align          string `yaml:"align"`
	Layout         string `yaml:"layout"`
	Paragraph      bool   `yaml:"paragraph"`
	RightToLeft    bool   `yaml:"right_to_left"`
	TrimWhitespace bool   `yaml:"trim_whitespace"`
	UnknownRune    string `yaml:"unknown_rune"`
}

type cliOptions struct {
	font           string
	dir            string
	width          int
	center         bool
	left           bool
	right          bool
	kern           bool
	smush          bool
	fullWidth      bool
	overlap        bool
	mode           string
	paragraph      bool
	rightToLeft    bool
	trimWhitespace bool
	noNormalize    bool
	unknownRune    string
	configPath     string
	info           bool
	debug          bool
	debugFile      string
	debugPretty    bool
	showVersion    bool
	showHelp       bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func newFlagSet(o *cliOptions) *pflag.FlagSet {
	fs := pflag.NewFlagSet("figtext", pflag.ContinueOnError)
	fs.StringVarP(&o.font, "font", "f", "standard", "Path to FIGfont file or font name")
	fs.StringVarP(&o.dir, "dir", "d", "", "Directory searched for fonts")
	fs.IntVarP(&o.width, "width", "w", figtext.DefaultWidth, "Maximum output width in characters (1-1000)")
	fs.BoolVarP(&o.center, "center", "c", false, "Center each output line")
	fs.BoolVarP(&o.left, "left", "l", false, "Align output lines to the left (default)")
	fs.BoolVarP(&o.right, "right", "r", false, "Align output lines to the right")
	fs.BoolVarP(&o.kern, "kern", "k", false, "Use kerning mode (characters touch but don't overlap)")
	fs.BoolVarP(&o.smush, "smush", "S", false, "Force smushing with the font's rules")
	fs.BoolVarP(&o.fullWidth, "full-width", "W", false, "Use full-width mode (no kerning or smushing)")
	fs.BoolVarP(&o.overlap, "overlap", "o", false, "Use universal overlap (later character wins)")
	fs.StringVarP(&o.mode, "mode", "m", "", "Explicit layout: a number or names like smush|equal|bigx")
	fs.BoolVarP(&o.paragraph, "paragraph", "p", false, "Join input lines; a leading space starts a new paragraph")
	fs.BoolVarP(&o.rightToLeft, "right-to-left", "L", false, "Right-to-left print direction")
	fs.BoolVar(&o.trimWhitespace, "trim-whitespace", false, "Trim trailing whitespace from each line")
	fs.BoolVar(&o.noNormalize, "no-normalize", false, "Render the input without NFC normalization")
	fs.StringVarP(&o.unknownRune, "unknown-rune", "u", "", "Rune to replace characters the font lacks")
	fs.StringVar(&o.configPath, "config", "", "YAML file with default settings")
	fs.BoolVarP(&o.info, "info", "I", false, "Print font information instead of rendering")
	fs.BoolVar(&o.debug, "debug", false, "Enable debug mode (outputs to stderr)")
	fs.StringVar(&o.debugFile, "debug-file", "", "Write debug output to file instead of stderr")
	fs.BoolVar(&o.debugPretty, "debug-pretty", false, "Use pretty format for debug output (default: JSON)")
	fs.BoolVarP(&o.showVersion, "version", "v", false, "Show version information")
	fs.BoolVarP(&o.showHelp, "help", "h", false, "Show help message")
	return fs
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var o cliOptions
	fs := newFlagSet(&o)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if o.showHelp {
		printHelp(stdout, fs)
		return 0
	}
	if o.showVersion {
		fmt.Fprintf(stdout, "figtext version %s (commit: %s, built: %s)\n", version, commit, date)
		return 0
	}

	if o.configPath != "" {
		if err := applyConfigFile(o.configPath, fs, &o); err != nil {
			fmt.Fprintf(stderr, "Error reading config: %v\n", err)
			return 1
		}
	}

	fontPath, err := resolveFontPath(o.font, fontDirs(o.dir))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	font, err := figtext.LoadFont(fontPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading font: %v\n", err)
		return 1
	}
	for _, w := range font.Warnings {
		fmt.Fprintf(stderr, "Warning: %s: %s\n", font.Name, w)
	}

	if o.info {
		printFontInfo(stdout, font, fontPath)
		return 0
	}

	renderOpts, err := buildRenderOptions(&o, font)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if o.debug || o.debugFile != "" {
		debug.SetEnabled(true)
	} else {
		debug.InitFromEnv()
	}
	if debug.Enabled() {
		var output io.Writer = stderr
		if o.debugFile != "" {
			file, err := os.Create(o.debugFile)
			if err != nil {
				fmt.Fprintf(stderr, "Error creating debug file: %v\n", err)
				return 1
			}
			defer file.Close()
			output = file
		}
		session := figtext.NewDebugSession(output, o.debugPretty || debug.PrettyFromEnv())
		if session != nil {
			defer session.Close()
			renderOpts = append(renderOpts, figtext.WithDebug(session))
		}
	}

	text, err := inputText(fs.Args(), stdin)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading input: %v\n", err)
		return 1
	}

	out := bufio.NewWriter(stdout)
	if err := figtext.RenderTo(out, text, font, renderOpts...); err != nil {
		fmt.Fprintf(stderr, "Error rendering text: %v\n", err)
		return 1
	}
	if err := out.Flush(); err != nil {
		fmt.Fprintf(stderr, "Error writing output: %v\n", err)
		return 1
	}
	return 0
}

// applyConfigFile presets every flag the user did not set explicitly.
func applyConfigFile(path string, fs *pflag.FlagSet, o *cliOptions) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	unset := func(name string) bool { return !fs.Changed(name) }
	if cfg.Font != "" && unset("font") {
		o.font = cfg.Font
	}
	if cfg.Dir != "" && unset("dir") {
		o.dir = cfg.Dir
	}
	if cfg.Width != 0 && unset("width") {
		o.width = cfg.Width
	}
	if cfg.Align != "" && unset("center") && unset("left") && unset("right") {
		switch strings.ToLower(cfg.Align) {
		case "left":
			o.left = true
		case "center":
			o.center = true
		case "right":
			o.right = true
		default:
			return fmt.Errorf("%s: unknown align %q", path, cfg.Align)
		}
	}
	if cfg.Layout != "" && unset("mode") && unset("kern") && unset("full-width") && unset("overlap") {
		o.mode = cfg.Layout
	}
	if cfg.Paragraph && unset("paragraph") {
		o.paragraph = true
	}
	if cfg.RightToLeft && unset("right-to-left") {
		o.rightToLeft = true
	}
	if cfg.TrimWhitespace && unset("trim-whitespace") {
		o.trimWhitespace = true
	}
	if cfg.UnknownRune != "" && unset("unknown-rune") {
		o.unknownRune = cfg.UnknownRune
	}
	return nil
}

func buildRenderOptions(o *cliOptions, font *figtext.Font) ([]figtext.Option, error) {
	opts := []figtext.Option{figtext.WithWidth(o.width)}

	align, err := alignment(o)
	if err != nil {
		return nil, err
	}
	opts = append(opts, figtext.WithAlign(align))

	// Layout mode flags are mutually exclusive
	n := 0
	for _, set := range []bool{o.kern, o.smush, o.fullWidth, o.overlap, o.mode != ""} {
		if set {
			n++
		}
	}
	if n > 1 {
		return nil, errors.New("only one of --kern, --smush, --full-width, --overlap and --mode may be given")
	}
	switch {
	case o.fullWidth:
		opts = append(opts, figtext.WithFullWidth())
	case o.kern:
		opts = append(opts, figtext.WithKerning())
	case o.smush:
		opts = append(opts, figtext.WithLayout(font.Layout.Rules()|figtext.FitSmushing))
	case o.overlap:
		opts = append(opts, figtext.WithOverlap())
	case o.mode != "":
		l, err := figtext.ParseLayout(o.mode)
		if err != nil {
			return nil, err
		}
		opts = append(opts, figtext.WithLayout(l))
	}

	if o.rightToLeft {
		opts = append(opts, figtext.WithPrintDirection(1))
	}
	if o.paragraph {
		opts = append(opts, figtext.WithParagraph(true))
	}
	if o.trimWhitespace {
		opts = append(opts, figtext.WithTrimWhitespace(true))
	}
	if o.noNormalize {
		opts = append(opts, figtext.WithNormalization(false))
	}
	if o.unknownRune != "" {
		r, err := parseUnknownRune(o.unknownRune)
		if err != nil {
			return nil, fmt.Errorf("parsing unknown rune: %w", err)
		}
		opts = append(opts, figtext.WithUnknownRune(r))
	}
	return opts, nil
}

func alignment(o *cliOptions) (figtext.Align, error) {
	switch {
	case o.center && o.right, o.center && o.left, o.left && o.right:
		return figtext.AlignLeft, errors.New("only one of --left, --center and --right may be given")
	case o.center:
		return figtext.AlignCenter, nil
	case o.right:
		return figtext.AlignRight, nil
	default:
		return figtext.AlignLeft, nil
	}
}

// inputText joins the arguments with spaces, or reads stdin when there are none.
func inputText(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// parseUnknownRune parses the unknown rune flag value which can be in various formats:
// - Literal character (e.g., "*", "?")
// - Escaped Unicode: "\uXXXX", "\UXXXXXXXX"
// - Unicode notation: "U+XXXX"
// - Decimal: "63"
// - Hexadecimal: "0x3F"
func parseUnknownRune(s string) (rune, error) {
	if s == "" {
		return 0, errors.New("unknown rune cannot be empty")
	}
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return r, nil
	}

	var (
		digits string
		base   = 16
	)
	switch {
	case strings.HasPrefix(s, `\u`) && len(s) == 6, strings.HasPrefix(s, `\U`) && len(s) == 10:
		digits = s[2:]
	case strings.HasPrefix(s, "U+"), strings.HasPrefix(s, "u+"),
		strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		digits = s[2:]
	default:
		digits, base = s, 10
	}

	code, err := strconv.ParseInt(digits, base, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid rune format: %s", s)
	}
	r := rune(code)
	if !utf8.ValidRune(r) {
		return 0, fmt.Errorf("not a valid code point: %s", s)
	}
	return r, nil
}

// fontDirs lists the directories searched for a font name, in order.
func fontDirs(flagDir string) []string {
	var dirs []string
	if flagDir != "" {
		dirs = append(dirs, flagDir)
	}
	if env := os.Getenv(fontDirEnv); env != "" {
		dirs = append(dirs, env)
	}
	return append(dirs, systemFontDirs...)
}

// resolveFontPath finds the font file for a path or a bare font name.
// The name is tried as given, then with .flf and .tlf, first as a path and
// then in each directory.
func resolveFontPath(name string, dirs []string) (string, error) {
	candidates := fontCandidates(name)
	for _, c := range candidates {
		if isFile(c) {
			return c, nil
		}
	}
	if !filepath.IsAbs(name) {
		for _, dir := range dirs {
			for _, c := range candidates {
				if p := filepath.Join(dir, c); isFile(p) {
					return p, nil
				}
			}
		}
	}
	return "", fmt.Errorf("font %q not found (searched %s)", name, strings.Join(dirs, ", "))
}

func fontCandidates(name string) []string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".flf", ".tlf":
		return []string{name}
	}
	return []string{name, name + ".flf", name + ".tlf"}
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

func printFontInfo(w io.Writer, font *figtext.Font, path string) {
	fmt.Fprintf(w, "Font:       %s (%s)\n", font.Name, path)
	fmt.Fprintf(w, "Format:     %s, hardblank %q\n", font.Variant, font.Hardblank)
	fmt.Fprintf(w, "Height:     %d (baseline %d, max width %d)\n", font.Height, font.Baseline, font.MaxLen)
	layout := font.Layout.Horizontal().String()
	if font.FullWidth {
		layout = "full width"
	}
	fmt.Fprintf(w, "Layout:     %s\n", layout)
	dir := "left-to-right"
	if font.RightToLeft {
		dir = "right-to-left"
	}
	fmt.Fprintf(w, "Direction:  %s\n", dir)
	fmt.Fprintf(w, "Characters: %d\n", len(font.Runes()))
	for _, c := range font.Comments {
		fmt.Fprintf(w, "  %s\n", c)
	}
}

func printHelp(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintln(w, "figtext - FIGlet ASCII art generator")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  figtext [flags] [text...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Text is read from standard input when no arguments are given.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprint(w, fs.FlagUsages())
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Fonts are searched in --dir, $%s, %s.\n", fontDirEnv, strings.Join(systemFontDirs, ", "))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Unknown rune formats:")
	fmt.Fprintln(w, "  Literal: -u '*'")
	fmt.Fprintln(w, "  Unicode escape: -u '\\u2588'")
	fmt.Fprintln(w, "  Unicode notation: -u 'U+2588'")
	fmt.Fprintln(w, "  Decimal: -u '63'")
	fmt.Fprintln(w, "  Hexadecimal: -u '0x3F'")
}
