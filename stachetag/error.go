package stachetag

import (
	"fmt"
	"strings"
)

// ParseError is the single error type the scanner raises. Scanner,
// HTML-fragment and TemplateParser failures (lex, structural,
// block-match, and the inclusion argument check) are reported through
// it, carrying a 1-based line and 0-based byte offset from the start
// of that line, per spec.md §6/§7. Specializer and CodeEmitter report
// their failures as plain errors, not ParseError.
type ParseError struct {
	Message    string
	Line       int
	Offset     int
	SourceName string
}

func (e *ParseError) Error() string {
	if e.SourceName != "" {
		return fmt.Sprintf("%s (line %d, offset %d in %s)", e.Message, e.Line, e.Offset, e.SourceName)
	}
	return fmt.Sprintf("%s (line %d, offset %d)", e.Message, e.Line, e.Offset)
}

// locate turns an absolute byte position in input into a 1-based line
// number and a 0-based offset from the start of that line.
func locate(input string, pos int) (line, offset int) {
	if pos > len(input) {
		pos = len(input)
	}
	head := input[:pos]
	line = 1 + strings.Count(head, "\n")
	idx := strings.LastIndexByte(head, '\n')
	if idx == -1 {
		offset = pos
		return
	}
	offset = pos - idx - 1
	return
}

func newError(input, sourceName string, pos int, format string, args ...interface{}) *ParseError {
	line, offset := locate(input, pos)
	return &ParseError{
		Message:    fmt.Sprintf(format, args...),
		Line:       line,
		Offset:     offset,
		SourceName: sourceName,
	}
}

// NewParseError builds a *ParseError the same way the scanner does,
// for use by other packages (htmlfrag, templateparser) that need to
// report errors with the same line/offset convention (spec.md §7)
// without duplicating the locate() arithmetic.
func NewParseError(input, sourceName string, pos int, format string, args ...interface{}) *ParseError {
	return newError(input, sourceName, pos, format, args...)
}
