package stachetag

import (
	"strings"

	"github.com/mohae/stachec/internal/jstoken"
)

// scanPath reads a path starting at pos and returns its segments and the
// position immediately after the last consumed character. See spec.md
// §3 and §4.1 for the grammar: a leading dot-run ("." / ".." / "../.."
// and so on, optionally slash-terminated to allow further segments),
// followed by zero or more '.'- or '/'-separated identifier or
// bracketed segments.
func scanPath(input, sourceName string, pos int) ([]string, int, error) {
	start := pos
	var path []string

	runEnd := pos
	for runEnd < len(input) && (input[runEnd] == '.' || input[runEnd] == '/') {
		runEnd++
	}
	run := input[pos:runEnd]

	if run != "" {
		hasMore := strings.HasSuffix(run, "/")
		var seg string
		if strings.HasPrefix(run, "..") {
			steps := strings.Count(run, "/") + 1
			seg = "." + strings.Repeat(".", steps)
		} else {
			seg = "."
		}
		path = append(path, seg)
		pos = runEnd
		if !hasMore {
			return path, pos, nil
		}
	}

	for {
		isInitial := len(path) == 0
		seg, next, err := scanSegment(input, sourceName, pos, isInitial)
		if err != nil {
			return nil, 0, err
		}
		if isInitial && seg == "this" {
			seg = "."
		}
		path = append(path, seg)
		pos = next
		if pos < len(input) && (input[pos] == '.' || input[pos] == '/') {
			pos++
			continue
		}
		break
	}
	if len(path) == 0 {
		return nil, 0, newError(input, sourceName, start, "empty path")
	}
	return path, pos, nil
}

// scanSegment reads one non-dot-run path segment: either a bracketed
// literal "[anything up to ]]" or an identifier/keyword from the JS
// tokenizer. Booleans and null are accepted as identifiers only in
// non-initial position, per spec.md §4.1.
func scanSegment(input, sourceName string, pos int, isInitial bool) (string, int, error) {
	if pos < len(input) && input[pos] == '[' {
		end := strings.IndexByte(input[pos+1:], ']')
		if end < 0 {
			return "", 0, newError(input, sourceName, pos, "unterminated bracketed path segment")
		}
		content := input[pos+1 : pos+1+end]
		if isInitial && content == "" {
			return "", 0, newError(input, sourceName, pos, "bracketed path segment may not be empty")
		}
		return content, pos + 1 + end + 1, nil
	}

	tok, err := jstoken.Peek(input, pos)
	if err != nil {
		return "", 0, newError(input, sourceName, pos, "%s", err)
	}
	switch tok.Kind {
	case jstoken.Identifier, jstoken.Keyword:
		return tok.Text, tok.End, nil
	case jstoken.Boolean, jstoken.Null:
		if isInitial {
			return "", 0, newError(input, sourceName, pos, "unexpected %s in path", tok.Kind)
		}
		return tok.Text, tok.End, nil
	default:
		return "", 0, newError(input, sourceName, pos, "unexpected token in path")
	}
}

// JoinPath renders a path's segments the way block-tag name matching
// compares them: segment-joined by comma (spec.md §3 invariant on
// BLOCKOPEN/BLOCKCLOSE path equality).
func JoinPath(path []string) string {
	return strings.Join(path, ",")
}
