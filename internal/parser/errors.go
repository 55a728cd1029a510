package parser

import (
	"fmt"

	"github.com/ryanlewis/figtext/internal/common"
)

// FormatError reports a structurally malformed font.
type FormatError struct {
	Msg string
}

func (e *FormatError) Error() string { return e.Msg }

// Is matches common.ErrBadFontFormat.
func (e *FormatError) Is(target error) bool { return target == common.ErrBadFontFormat }

func formatErrorf(format string, args ...interface{}) error {
	return &FormatError{Msg: fmt.Sprintf(format, args...)}
}

// ParseError reports a header field or code tag that is not a valid integer.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("can't parse value %q for %s: %v", e.Value, e.Field, e.Err)
}

// Unwrap returns the underlying strconv error.
func (e *ParseError) Unwrap() error { return e.Err }

// Is matches common.ErrParse.
func (e *ParseError) Is(target error) bool { return target == common.ErrParse }

// CodeTagError reports a code tag outside the Unicode code point range.
type CodeTagError struct {
	Tag int64
}

func (e *CodeTagError) Error() string { return fmt.Sprintf("invalid code tag: %d", e.Tag) }

// Is matches common.ErrCodeTag.
func (e *CodeTagError) Is(target error) bool { return target == common.ErrCodeTag }

// ioError wraps a stream failure so that it matches common.ErrFontIO.
type ioError struct {
	err error
}

func (e *ioError) Error() string { return fmt.Sprintf("%v: %v", common.ErrFontIO, e.err) }
func (e *ioError) Unwrap() error { return e.err }
func (e *ioError) Is(target error) bool { return target == common.ErrFontIO }
