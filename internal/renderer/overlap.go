package renderer

import "unicode"

// rowOverlap holds the details behind one row's overlap amount.
type rowOverlap struct {
	trailingLeft int  // trailing whitespace of the left row
	leadingRight int  // leading whitespace of the right row
	ch1, ch2     rune // boundary characters, 0 when a row is all blank
	smushable    bool
	amount       int
}

// RowAmount returns how many columns right may overlap the end of left.
//
// The whitespace at the seam always overlaps. One more column is taken when
// the two characters meeting at the seam merge under mode.
func RowAmount(left, right []rune, hardblank rune, mode int, rtl bool) int {
	return measureRow(left, right, hardblank, mode, rtl).amount
}

func measureRow(left, right []rune, hardblank rune, mode int, rtl bool) rowOverlap {
	var o rowOverlap

	for o.trailingLeft < len(left) && unicode.IsSpace(left[len(left)-1-o.trailingLeft]) {
		o.trailingLeft++
	}
	for o.leadingRight < len(right) && unicode.IsSpace(right[o.leadingRight]) {
		o.leadingRight++
	}
	o.amount = o.trailingLeft + o.leadingRight

	if o.trailingLeft < len(left) && o.leadingRight < len(right) {
		o.ch1 = left[len(left)-1-o.trailingLeft]
		o.ch2 = right[o.leadingRight]
		if _, ok := SmushChars(o.ch1, o.ch2, hardblank, mode, rtl); ok {
			o.smushable = true
			o.amount++
		}
	}
	return o
}

// SmushRows appends right to left with amount columns of overlap and
// returns the merged row. Neither input is modified, so callers may keep
// references to earlier rows.
//
// Overlapping columns take the non-space character of the pair, or the
// merge of both when neither is a space. An amount larger than left drops
// the excess from the head of right.
func SmushRows(left, right []rune, amount int, hardblank rune, mode int, rtl bool) []rune {
	if len(right) == 0 {
		return left
	}

	if amount > len(left) {
		excess := amount - len(left)
		if excess >= len(right) {
			return left
		}
		right = right[excess:]
		amount = len(left)
	}
	if amount < 0 {
		amount = 0
	}

	keep := len(left) - amount
	size := keep + len(right)
	if size < len(left) {
		size = len(left)
	}

	out := make([]rune, 0, size)
	out = append(out, left[:keep]...)

	for i, rch := range right {
		lch := ' '
		if keep+i < len(left) {
			lch = left[keep+i]
		}

		switch {
		case lch != ' ' && rch != ' ':
			if c, ok := SmushChars(lch, rch, hardblank, mode, rtl); ok {
				out = append(out, c)
			} else {
				out = append(out, rch)
			}
		case lch == ' ':
			out = append(out, rch)
		default:
			out = append(out, lch)
		}
	}

	if keep+len(right) < len(left) {
		out = append(out, left[keep+len(right):]...)
	}
	return out
}
