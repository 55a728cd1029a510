// Package common provides shared constants and types for internal packages.
// These constants must match the public API in the figtext package.
package common

import "errors"

// Layout bits as they appear in the full_layout header field.
const (
	// SmushEqual merges equal sub-characters (rule 1)
	SmushEqual = 1
	// SmushUnderscore lets "_" be replaced by a border character (rule 2)
	SmushUnderscore = 2
	// SmushHierarchy picks the sub-character from the later class (rule 3)
	SmushHierarchy = 4
	// SmushPair turns opposing brackets into "|" (rule 4)
	SmushPair = 8
	// SmushBigX turns "/\", "\/" and "><" into "|", "Y" and "X" (rule 5)
	SmushBigX = 16
	// SmushHardblank merges two hardblanks into one (rule 6)
	SmushHardblank = 32
	// Kern enables kerning (touching glyphs, no rule substitution)
	Kern = 64
	// SmushEnable enables controlled smushing
	SmushEnable = 128

	// RuleMask covers the six controlled smushing rules
	RuleMask = SmushEqual | SmushUnderscore | SmushHierarchy | SmushPair | SmushBigX | SmushHardblank

	// HorizontalMask covers the rule and fitting bits; higher bits are vertical layout
	HorizontalMask = 0xFF
)

// FullWidthOldLayout is the old_layout value that disables overlap entirely.
const FullWidthOldLayout = -1

// LayoutFromOldLayout derives a full_layout value for fonts whose header
// omits it. The boolean result reports full-width rendering.
func LayoutFromOldLayout(oldLayout int) (layout int, fullWidth bool) {
	switch {
	case oldLayout < 0:
		return 0, true
	case oldLayout == 0:
		return Kern, false
	default:
		return (oldLayout & RuleMask) | SmushEnable, false
	}
}

// Common errors (must match public API in figtext package)
var (
	// ErrUnknownFont is returned when font is nil
	ErrUnknownFont = errors.New("unknown font")
	// ErrBadFontFormat is returned when font has invalid structure
	ErrBadFontFormat = errors.New("bad font format")
	// ErrFontIO is returned when the font stream fails while loading
	ErrFontIO = errors.New("font read failed")
	// ErrParse is returned when a header field or code tag is not an integer
	ErrParse = errors.New("can't parse value")
	// ErrCodeTag is returned when a code tag is not a valid code point
	ErrCodeTag = errors.New("invalid code tag")
	// ErrLineFull signals that a wrapper push did not fit the width budget
	ErrLineFull = errors.New("line is full")
)
