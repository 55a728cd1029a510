// Command generate-goldens renders the golden files under testdata/goldens.
//
// Each golden is a markdown file with YAML front matter describing the font,
// layout, sample text, width and alignment, followed by the rendered art in
// a text code block. Review the diff after regenerating.
package main

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/ryanlewis/figtext"
)

// GoldenMetadata represents the YAML front matter in golden files
// This should match the struct in golden_test.go
type GoldenMetadata struct {
	Font           string `yaml:"font"`
	Layout         string `yaml:"layout"`
	Sample         string `yaml:"sample"`
	Width          int    `yaml:"width"`
	Align          string `yaml:"align"`
	Generator      string `yaml:"generator"`
	ChecksumSHA256 string `yaml:"checksum_sha256"`
}

type sample struct {
	text  string
	width int
	align string
}

var (
	outDir  = pflag.String("out", "testdata/goldens", "Output directory")
	fontDir = pflag.String("fontdir", "testdata/fonts", "Directory holding the fonts")
	fonts   = pflag.String("fonts", "mini", "Space-separated list of fonts")
	layouts = pflag.String("layouts", "default full kern overlap", "Space-separated list of layouts")
	strict  = pflag.Bool("strict", false, "Exit on any warning")
)

var defaultSamples = []sample{
	{"Hello world", 80, "left"},
	{"Hello world", 30, "left"},
	{"Hi!", 40, "center"},
}

func main() {
	pflag.Parse()

	for _, name := range strings.Fields(*fonts) {
		font, err := figtext.LoadFont(filepath.Join(*fontDir, name+".flf"))
		if err != nil {
			log.Fatalf("Failed to load font %s: %v", name, err)
		}
		for _, w := range font.Warnings {
			if *strict {
				log.Fatalf("Font %s: %s", name, w)
			}
			log.Printf("Warning: font %s: %s", name, w)
		}

		for _, layout := range strings.Fields(*layouts) {
			dir := filepath.Join(*outDir, name, layoutDirName(layout))
			if err := os.MkdirAll(dir, 0o755); err != nil {
				log.Fatalf("Failed to create directory %s: %v", dir, err)
			}
			for _, s := range defaultSamples {
				if err := generateGoldenFile(font, dir, layout, s); err != nil {
					if *strict {
						log.Fatalf("Failed to generate golden file: %v", err)
					}
					log.Printf("Warning: %v", err)
				}
			}
		}
	}

	log.Println("Golden file generation complete")
}

func generateGoldenFile(font *figtext.Font, dir, layout string, s sample) error {
	outFile := filepath.Join(dir, sampleSlug(s)+".md")
	log.Printf("Generating %s", outFile)

	opts, err := renderOptions(layout, s)
	if err != nil {
		return err
	}
	out, err := figtext.Render(s.text, font, opts...)
	if err != nil {
		return fmt.Errorf("failed to render %q with %s: %w", s.text, font.Name, err)
	}
	art := strings.TrimSuffix(out, "\n")

	metadata := GoldenMetadata{
		Font:           font.Name,
		Layout:         layout,
		Sample:         s.text,
		Width:          s.width,
		Align:          s.align,
		Generator:      "generate-goldens",
		ChecksumSHA256: fmt.Sprintf("%x", sha256.Sum256([]byte(art))),
	}
	yamlData, err := yaml.Marshal(&metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(yamlData)
	buf.WriteString("---\n\n")
	buf.WriteString("```text\n")
	buf.WriteString(art)
	buf.WriteString("\n```\n")

	if err := os.WriteFile(outFile, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write file %s: %w", outFile, err)
	}
	return nil
}

func renderOptions(layout string, s sample) ([]figtext.Option, error) {
	opts := []figtext.Option{figtext.WithWidth(s.width)}
	switch layout {
	case "default":
	case "full":
		opts = append(opts, figtext.WithFullWidth())
	case "kern":
		opts = append(opts, figtext.WithKerning())
	case "overlap":
		opts = append(opts, figtext.WithOverlap())
	default:
		l, err := figtext.ParseLayout(layout)
		if err != nil {
			return nil, err
		}
		opts = append(opts, figtext.WithLayout(l))
	}
	switch s.align {
	case "center":
		opts = append(opts, figtext.WithAlign(figtext.AlignCenter))
	case "right":
		opts = append(opts, figtext.WithAlign(figtext.AlignRight))
	}
	return opts, nil
}

func layoutDirName(layout string) string {
	switch layout {
	case "full":
		return "full-width"
	case "kern":
		return "kerning"
	default:
		return layout
	}
}

// sampleSlug names a golden after its text, plus the width and alignment
// when they differ from the defaults.
func sampleSlug(s sample) string {
	slug := slugify(s.text)
	if s.width != figtext.DefaultWidth {
		slug += fmt.Sprintf("_w%d", s.width)
	}
	if s.align != "" && s.align != "left" {
		slug += "_" + s.align
	}
	return slug
}

func slugify(s string) string {
	if strings.TrimSpace(s) == "" {
		return fmt.Sprintf("blank_%d", len(s))
	}

	// Replace runs of non-alphanumerics with one underscore
	var result []rune
	for _, r := range s {
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			result = append(result, r)
		} else if len(result) == 0 || result[len(result)-1] != '_' {
			result = append(result, '_')
		}
	}

	slug := strings.Trim(string(result), "_")
	if slug == "" {
		hash := sha256.Sum256([]byte(s))
		return fmt.Sprintf("%x", hash)[:8]
	}
	return slug
}
