package debug

import "github.com/ryanlewis/figtext/internal/common"

// FormatSmushRules returns human-readable names for the bits of a layout mode.
func FormatSmushRules(mode int) []string {
	if mode == 0 {
		return []string{"Universal"}
	}

	names := []struct {
		bit  int
		name string
	}{
		{common.SmushEnable, "Smush"},
		{common.Kern, "Kern"},
		{common.SmushEqual, "Equal"},
		{common.SmushUnderscore, "Underscore"},
		{common.SmushHierarchy, "Hierarchy"},
		{common.SmushPair, "Pair"},
		{common.SmushBigX, "BigX"},
		{common.SmushHardblank, "Hardblank"},
	}

	var rules []string
	for _, n := range names {
		if mode&n.bit != 0 {
			rules = append(rules, n.name)
		}
	}
	if len(rules) == 0 {
		return []string{"None"}
	}
	return rules
}

// ClassifySmushRule returns the name of the rule that merged lch and rch
// into result. It mirrors the precedence of the character smusher and is
// only used for tracing.
func ClassifySmushRule(lch, rch, result, hardblank rune, mode int) string {
	switch {
	case lch == ' ' || rch == ' ':
		return "space"
	case mode == 0:
		return "universal"
	case lch == hardblank && rch == hardblank:
		if mode&common.SmushHardblank != 0 {
			return "hardblank"
		}
		return "none"
	case mode&common.SmushEqual != 0 && lch == rch:
		return "equal"
	case mode&common.SmushUnderscore != 0 &&
		((lch == '_' && isUnderscoreBorder(rch)) || (rch == '_' && isUnderscoreBorder(lch))):
		return "underscore"
	case mode&common.SmushHierarchy != 0 && isHierarchySmush(lch, rch, result):
		return "hierarchy"
	case mode&common.SmushPair != 0 && result == '|' && isPairSmush(lch, rch):
		return "pair"
	case mode&common.SmushBigX != 0 && isBigXSmush(lch, rch, result):
		return "bigx"
	}
	return "none"
}

func isUnderscoreBorder(r rune) bool {
	switch r {
	case '|', '/', '\\', '[', ']', '{', '}', '(', ')', '<', '>':
		return true
	}
	return false
}

// isHierarchySmush checks that the result is the character of the later class.
func isHierarchySmush(lch, rch, result rune) bool {
	lc, rc := hierarchyClass(lch), hierarchyClass(rch)
	if lc < 0 || rc < 0 || lc == rc {
		return false
	}
	if lc > rc {
		return result == lch
	}
	return result == rch
}

func hierarchyClass(r rune) int {
	switch r {
	case '|':
		return 0
	case '/', '\\':
		return 1
	case '[', ']':
		return 2
	case '{', '}':
		return 3
	case '(', ')':
		return 4
	case '<', '>':
		return 5
	}
	return -1
}

// isPairSmush checks if the characters form an opposite pair.
func isPairSmush(lch, rch rune) bool {
	pairs := [][2]rune{
		{'[', ']'}, {']', '['},
		{'{', '}'}, {'}', '{'},
		{'(', ')'}, {')', '('},
	}
	for _, p := range pairs {
		if lch == p[0] && rch == p[1] {
			return true
		}
	}
	return false
}

// isBigXSmush checks if the result follows Big X smushing rules.
func isBigXSmush(lch, rch, result rune) bool {
	switch {
	case lch == '/' && rch == '\\' && result == '|':
		return true
	case lch == '\\' && rch == '/' && result == 'Y':
		return true
	case lch == '>' && rch == '<' && result == 'X':
		return true
	}
	return false
}
