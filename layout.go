package figtext

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ryanlewis/figtext/internal/common"
)

// Layout represents a FIGfont full_layout bitmask.
// The layout determines how glyphs are combined when rendering text.
//
// Bits 0-5 select controlled smushing rules:
//   - Bit 0: RuleEqualChar - Equal characters merge
//   - Bit 1: RuleUnderscore - Underscores give way to border characters
//   - Bit 2: RuleHierarchy - The character of the later class survives
//   - Bit 3: RuleOppositePair - Opposite brackets merge into "|"
//   - Bit 4: RuleBigX - "/\", "\/" and "><" become "|", "Y" and "X"
//   - Bit 5: RuleHardblank - Two hardblanks merge into one
//
// Bits 6-7 select the fitting mode:
//   - Bit 6: FitKerning - Glyphs touch but never overlap
//   - Bit 7: FitSmushing - Glyphs overlap where a rule merges the seam
//
// A layout whose horizontal bits are all 0 (FitUniversal) overlaps glyphs
// with the later sub-character winning. Higher bits describe vertical
// layout and are carried but ignored.
type Layout uint32

// Smushing rule constants (bits 0-5)
const (
	RuleEqualChar    Layout = common.SmushEqual
	RuleUnderscore   Layout = common.SmushUnderscore
	RuleHierarchy    Layout = common.SmushHierarchy
	RuleOppositePair Layout = common.SmushPair
	RuleBigX         Layout = common.SmushBigX
	RuleHardblank    Layout = common.SmushHardblank
)

// Fitting mode constants
const (
	// FitUniversal overlaps glyphs without consulting any rule
	FitUniversal Layout = 0

	// FitKerning displays characters with minimal spacing, no overlap (bit 6)
	FitKerning Layout = common.Kern

	// FitSmushing allows characters to overlap using smushing rules (bit 7)
	FitSmushing Layout = common.SmushEnable
)

// HorizontalMask covers the rule and fitting bits.
const HorizontalMask Layout = common.HorizontalMask

// ErrInvalidLayout is returned by ParseLayout for unrecognised input.
var ErrInvalidLayout = errors.New("invalid layout")

var layoutNames = []struct {
	bit  Layout
	name string
}{
	{FitKerning, "FitKerning"},
	{FitSmushing, "FitSmushing"},
	{RuleEqualChar, "RuleEqualChar"},
	{RuleUnderscore, "RuleUnderscore"},
	{RuleHierarchy, "RuleHierarchy"},
	{RuleOppositePair, "RuleOppositePair"},
	{RuleBigX, "RuleBigX"},
	{RuleHardblank, "RuleHardblank"},
}

// layoutAliases are the short names accepted by ParseLayout.
var layoutAliases = map[string]Layout{
	"universal":  FitUniversal,
	"overlap":    FitUniversal,
	"kern":       FitKerning,
	"kerning":    FitKerning,
	"smush":      FitSmushing,
	"smushing":   FitSmushing,
	"equal":      RuleEqualChar,
	"underscore": RuleUnderscore,
	"hierarchy":  RuleHierarchy,
	"pair":       RuleOppositePair,
	"bigx":       RuleBigX,
	"hardblank":  RuleHardblank,
}

// HasRule checks if a specific smushing rule is enabled in the layout.
// Rules only have effect when FitSmushing is set.
func (l Layout) HasRule(rule Layout) bool {
	if rule&l.ruleMask() == 0 {
		return false
	}
	return l&rule != 0
}

func (Layout) ruleMask() Layout {
	return RuleEqualChar | RuleUnderscore | RuleHierarchy |
		RuleOppositePair | RuleBigX | RuleHardblank
}

// FittingMode returns only the fitting mode bits from the layout.
func (l Layout) FittingMode() Layout {
	return l & (FitKerning | FitSmushing)
}

// Rules returns only the smushing rule bits from the layout.
func (l Layout) Rules() Layout {
	return l & l.ruleMask()
}

// Horizontal drops the vertical layout bits.
func (l Layout) Horizontal() Layout {
	return l & HorizontalMask
}

// IsUniversal reports whether the layout is universal overlap. Vertical
// bits do not count.
func (l Layout) IsUniversal() bool {
	return l.Horizontal() == FitUniversal
}

// String returns a human-readable representation of the layout.
// Unnamed bits are appended in hex, so the result always parses back
// with ParseLayout.
func (l Layout) String() string {
	if l == FitUniversal {
		return "FitUniversal"
	}

	var parts []string
	for _, n := range layoutNames {
		if l&n.bit != 0 {
			parts = append(parts, n.name)
		}
	}
	if rest := l &^ HorizontalMask; rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%X", uint32(rest)))
	}
	return strings.Join(parts, "|")
}

// ParseLayout parses a layout from a number (decimal or 0x hex) or from
// names joined by "|" or ",". Names are the constant names printed by
// String or the short aliases "universal", "kern", "smush", "equal",
// "underscore", "hierarchy", "pair", "bigx" and "hardblank".
func ParseLayout(s string) (Layout, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidLayout)
	}
	if n, err := strconv.ParseUint(s, 0, 32); err == nil {
		return Layout(n), nil
	}

	var l Layout
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' }) {
		part = strings.TrimSpace(part)
		bit, err := parseLayoutPart(part)
		if err != nil {
			return 0, err
		}
		l |= bit
	}
	return l, nil
}

func parseLayoutPart(part string) (Layout, error) {
	if bit, ok := layoutAliases[strings.ToLower(part)]; ok {
		return bit, nil
	}
	if part == "FitUniversal" {
		return FitUniversal, nil
	}
	for _, n := range layoutNames {
		if part == n.name {
			return n.bit, nil
		}
	}
	if n, err := strconv.ParseUint(part, 0, 32); err == nil {
		return Layout(n), nil
	}
	return 0, fmt.Errorf("%w: unknown name %q", ErrInvalidLayout, part)
}
