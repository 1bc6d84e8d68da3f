package htmlfrag

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/mohae/stachec/tree"
)

// scanTextRun consumes plain text up to the next '<', "{{", or stop
// condition, splitting off CharRef nodes for recognized character
// references along the way (spec.md §3's CharRef node). The character
// at the starting position is always taken as text, so a '<' or "{{"
// there that the caller did not parse as markup or as a stache tag
// becomes literal text.
func scanTextRun(input string, pos int, opts Options) (tree.List, int) {
	var out tree.List
	var buf strings.Builder
	start := pos

	flush := func() {
		if buf.Len() > 0 {
			out = append(out, tree.String(buf.String()))
			buf.Reset()
		}
	}

	for pos < len(input) {
		if opts.ShouldStop != nil && opts.ShouldStop(input, pos) {
			break
		}
		if pos > start && (strings.HasPrefix(input[pos:], "{{") || input[pos] == '<') {
			break
		}
		if input[pos] == '&' {
			if raw, decoded, n := scanCharRef(input, pos); n > 0 {
				flush()
				out = append(out, &tree.CharRef{HTML: raw, Str: decoded})
				pos += n
				continue
			}
		}
		r, size := utf8.DecodeRuneInString(input[pos:])
		buf.WriteRune(r)
		pos += size
	}
	flush()
	return out, pos
}

// scanCharRef attempts to read a character reference starting at
// input[pos] (which must be '&'). It returns the raw source text, its
// decoded value, and the number of bytes consumed; n == 0 means the
// '&' was not the start of a recognized reference and should be
// treated as a literal character.
func scanCharRef(input string, pos int) (raw, decoded string, n int) {
	const maxRefLen = 32
	end := pos + 1
	for end < len(input) && end-pos < maxRefLen {
		c := input[end]
		if c == ';' {
			end++
			break
		}
		if c == '&' || c == '<' || unicode.IsSpace(rune(c)) {
			break
		}
		end++
	}
	candidate := input[pos:end]
	if candidate == "&" {
		return "", "", 0
	}
	got := html.UnescapeString(candidate)
	if got == candidate {
		return "", "", 0
	}
	return candidate, got, len(candidate)
}
