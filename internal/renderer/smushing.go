package renderer

import "github.com/ryanlewis/figtext/internal/common"

// SmushChars decides whether two sub-characters merge into one under mode
// and returns the merged character.
//
// Precedence:
//  1. A space yields the other character
//  2. Universal overlap (mode 0): hardblank yields the other character,
//     otherwise the later character wins (the earlier one right-to-left)
//  3. Two hardblanks merge only under the hardblank rule
//  4. Equal, underscore, hierarchy, pair and big X rules in that order
//
// No match means the two characters must not share a column.
func SmushChars(lch, rch, hardblank rune, mode int, rtl bool) (rune, bool) {
	if lch == ' ' {
		return rch, true
	}
	if rch == ' ' {
		return lch, true
	}

	if mode == 0 {
		if lch == hardblank {
			return rch, true
		}
		if rch == hardblank {
			return lch, true
		}
		if rtl {
			return lch, true
		}
		return rch, true
	}

	if lch == hardblank && rch == hardblank {
		if mode&common.SmushHardblank != 0 {
			return lch, true
		}
		return 0, false
	}

	// Rule 1: Equal character smushing
	if mode&common.SmushEqual != 0 && lch == rch {
		return lch, true
	}

	// Rule 2: Underscore smushing
	if mode&common.SmushUnderscore != 0 {
		if lch == '_' && underscoreBorders[rch] {
			return rch, true
		}
		if rch == '_' && underscoreBorders[lch] {
			return lch, true
		}
	}

	// Rule 3: Hierarchy smushing, the character of the later class wins
	if mode&common.SmushHierarchy != 0 {
		lc, lok := hierarchyClass[lch]
		rc, rok := hierarchyClass[rch]
		if lok && rok && lc != rc {
			if lc > rc {
				return lch, true
			}
			return rch, true
		}
	}

	// Rule 4: Opposite pair smushing
	if mode&common.SmushPair != 0 {
		if p, ok := oppositePairs[lch]; ok && p == rch {
			return '|', true
		}
	}

	// Rule 5: Big X smushing; "<>" deliberately does not merge
	if mode&common.SmushBigX != 0 {
		switch {
		case lch == '/' && rch == '\\':
			return '|', true
		case lch == '\\' && rch == '/':
			return 'Y', true
		case lch == '>' && rch == '<':
			return 'X', true
		}
	}

	return 0, false
}

// Lookup tables for smushing rules to avoid repeated string searches
var (
	// Characters that can smush with underscore
	underscoreBorders = map[rune]bool{
		'|': true, '/': true, '\\': true,
		'[': true, ']': true, '{': true, '}': true,
		'(': true, ')': true, '<': true, '>': true,
	}

	// Opposite bracket for each bracket, in either order
	oppositePairs = map[rune]rune{
		'[': ']', ']': '[',
		'{': '}', '}': '{',
		'(': ')', ')': '(',
	}

	// Hierarchy classes in ascending rank
	hierarchyClass = map[rune]int{
		'|': 0,
		'/': 1, '\\': 1,
		'[': 2, ']': 2,
		'{': 3, '}': 3,
		'(': 4, ')': 4,
		'<': 5, '>': 5,
	}
)
