// Package stachetag implements the StacheScanner: a recursive-descent
// parser for exactly one stache tag (spec.md §4.1). It has no knowledge
// of surrounding HTML or of the intermediate tree; TemplateParser
// (package templateparser) drives it.
package stachetag

import (
	"strings"

	"github.com/mohae/stachec/internal/stachelog"
)

// Kind discriminates the variant of a StacheTag.
type Kind int

const (
	DOUBLE Kind = iota
	TRIPLE
	INCLUSION
	BLOCKOPEN
	BLOCKCLOSE
	ELSE
	COMMENT
)

func (k Kind) String() string {
	switch k {
	case DOUBLE:
		return "DOUBLE"
	case TRIPLE:
		return "TRIPLE"
	case INCLUSION:
		return "INCLUSION"
	case BLOCKOPEN:
		return "BLOCKOPEN"
	case BLOCKCLOSE:
		return "BLOCKCLOSE"
	case ELSE:
		return "ELSE"
	case COMMENT:
		return "COMMENT"
	default:
		return "UNKNOWN"
	}
}

// StacheTag is the scanner's output: a single parsed `{{...}}` or
// `{{{...}}}` directive. Content/ElseContent are left nil by the
// scanner — they are `any` rather than a concrete tree type so this
// package does not need to depend on the intermediate-tree package;
// TemplateParser fills them in with a tree.List once it has recursed
// into the block's body (spec.md §4.2).
type StacheTag struct {
	Kind Kind
	Path []string
	Args []Argument

	Content     any
	ElseContent any

	Value string // COMMENT body

	CharPos    int
	CharLength int
}

// Options configures a scan. SourceName appears in error messages.
type Options struct {
	SourceName string
}

// ParseStacheTag parses exactly one stache tag at input[pos:], per
// spec.md §4.1. On success the returned tag's CharPos/CharLength
// describe the consumed range [pos, pos+CharLength).
func ParseStacheTag(input string, pos int, opts Options) (*StacheTag, error) {
	start := pos
	if !strings.HasPrefix(input[pos:], "{{") {
		return nil, newError(input, opts.SourceName, pos, "stache tag must start with {{")
	}
	after := pos + 2

	var tag *StacheTag
	var err error

	switch {
	case matchesElse(input, after):
		tag, err = scanElse(input, opts.SourceName, start)
	case after < len(input) && input[after] == '{':
		tag, err = scanDoubleOrTriple(input, opts.SourceName, start, true)
	case after < len(input) && input[after] == '!':
		tag, err = scanComment(input, opts.SourceName, start)
	case after < len(input) && input[after] == '>':
		tag, err = scanCallTag(input, opts.SourceName, start, INCLUSION)
	case after < len(input) && input[after] == '#':
		tag, err = scanCallTag(input, opts.SourceName, start, BLOCKOPEN)
	case after < len(input) && input[after] == '/':
		tag, err = scanBlockClose(input, opts.SourceName, start)
	default:
		tag, err = scanDoubleOrTriple(input, opts.SourceName, start, false)
	}
	if err != nil {
		stachelog.L().Errorf("stachetag: %s", err)
		return nil, err
	}
	stachelog.L().Debugf("stachetag: parsed %s [%d:%d]", tag.Kind, tag.CharPos, tag.CharPos+tag.CharLength)
	return tag, nil
}

// matchesElse reports whether input[pos:] is "{{ else" (any amount of
// whitespace, including none) followed by a word boundary — this test
// must run before the DOUBLE test, since otherwise "{{else}}" would be
// mistaken for a plain double mustache naming a variable called "else".
func matchesElse(input string, pos int) bool {
	p := skipSpaces(input, pos)
	if !strings.HasPrefix(input[p:], "else") {
		return false
	}
	p += len("else")
	if p < len(input) && isIdentByte(input[p]) {
		return false
	}
	return true
}

func isIdentByte(b byte) bool {
	return b == '_' || b == '$' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func skipSpaces(input string, pos int) int {
	for pos < len(input) && (input[pos] == ' ' || input[pos] == '\t' || input[pos] == '\n' || input[pos] == '\r') {
		pos++
	}
	return pos
}

func scanElse(input, sourceName string, start int) (*StacheTag, error) {
	pos := skipSpaces(input, start+2)
	pos += len("else")
	pos = skipSpaces(input, pos)
	pos, err := expectClose(input, sourceName, pos, "}}")
	if err != nil {
		return nil, err
	}
	return &StacheTag{Kind: ELSE, CharPos: start, CharLength: pos - start}, nil
}

func scanComment(input, sourceName string, start int) (*StacheTag, error) {
	bodyStart := start + 3 // past "{{!"
	idx := strings.Index(input[bodyStart:], "}}")
	if idx < 0 {
		return nil, newError(input, sourceName, start, "Unclosed comment")
	}
	value := input[bodyStart : bodyStart+idx]
	end := bodyStart + idx + 2
	return &StacheTag{Kind: COMMENT, Value: value, CharPos: start, CharLength: end - start}, nil
}

func scanBlockClose(input, sourceName string, start int) (*StacheTag, error) {
	pos := start + 3 // past "{{/"
	path, pos, err := scanPath(input, sourceName, pos)
	if err != nil {
		return nil, err
	}
	pos = skipSpaces(input, pos)
	pos, err = expectClose(input, sourceName, pos, "}}")
	if err != nil {
		return nil, err
	}
	return &StacheTag{Kind: BLOCKCLOSE, Path: path, CharPos: start, CharLength: pos - start}, nil
}

// scanDoubleOrTriple handles DOUBLE and TRIPLE: callee path followed by
// zero or more arguments, terminated by the appropriate close marker.
func scanDoubleOrTriple(input, sourceName string, start int, triple bool) (*StacheTag, error) {
	closeMark := "}}"
	pos := start + 2
	if triple {
		closeMark = "}}}"
		pos = start + 3
	}
	path, pos, err := scanPath(input, sourceName, pos)
	if err != nil {
		return nil, err
	}
	args, pos, err := scanArgs(input, sourceName, pos, closeMark)
	if err != nil {
		return nil, err
	}
	kind := DOUBLE
	if triple {
		kind = TRIPLE
	}
	return &StacheTag{Kind: kind, Path: path, Args: args, CharPos: start, CharLength: pos - start}, nil
}

// scanCallTag handles INCLUSION and BLOCKOPEN, which share a grammar:
// sigil, callee path, arguments, "}}".
func scanCallTag(input, sourceName string, start int, kind Kind) (*StacheTag, error) {
	pos := skipSpaces(input, start+3) // past "{{>" or "{{#" and any whitespace
	path, pos, err := scanPath(input, sourceName, pos)
	if err != nil {
		return nil, err
	}
	args, pos, err := scanArgs(input, sourceName, pos, "}}")
	if err != nil {
		return nil, err
	}
	if kind == INCLUSION {
		positional := 0
		for _, a := range args {
			if !a.IsKeyword() {
				positional++
			}
		}
		if positional > 1 {
			return nil, newError(input, sourceName, start, "Only one positional argument is allowed here")
		}
	}
	return &StacheTag{Kind: kind, Path: path, Args: args, CharPos: start, CharLength: pos - start}, nil
}

// scanArgs repeatedly consumes whitespace then either the close marker
// or an argument, per spec.md §4.1's "between successive arguments a
// whitespace character or the close marker is required" rule.
func scanArgs(input, sourceName string, pos int, closeMark string) ([]Argument, int, error) {
	var args []Argument
	for {
		wsStart := pos
		pos = skipSpaces(input, pos)
		consumedWS := pos > wsStart

		if strings.HasPrefix(input[pos:], closeMark) {
			return args, pos + len(closeMark), nil
		}
		if len(args) > 0 && !consumedWS {
			return nil, 0, expectCloseErr(input, sourceName, pos, closeMark)
		}
		if pos < len(input) && input[pos] == '}' {
			return nil, 0, expectCloseErr(input, sourceName, pos, closeMark)
		}
		arg, next, err := scanArgument(input, sourceName, pos, true)
		if err != nil {
			return nil, 0, err
		}
		args = append(args, arg)
		pos = next
	}
}

func expectClose(input, sourceName string, pos int, closeMark string) (int, error) {
	if !strings.HasPrefix(input[pos:], closeMark) {
		return 0, expectCloseErr(input, sourceName, pos, closeMark)
	}
	return pos + len(closeMark), nil
}

func expectCloseErr(input, sourceName string, pos int, closeMark string) error {
	return newError(input, sourceName, pos, "Expected %s", closeMark)
}
