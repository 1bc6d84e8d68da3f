// Package htmlfrag is the "external HTML parser" collaborator spec.md
// §4.2/§5 describes: it tokenizes an HTML fragment into the
// intermediate tree (spec.md §3), calling back into a caller-supplied
// GetSpecial hook at every text position so a `{{...}}` stache tag can
// be spliced in as a Special leaf. It knows nothing about stache tag
// grammar itself — that knowledge lives in stachetag and is wired in by
// templateparser — but it owns the scanning primitives (pos, input,
// peek, rest, fatal) spec.md §5 says are shared sequentially between
// the HTML parser and the stache callback during a single parse.
package htmlfrag

import (
	"strings"

	"github.com/mohae/stachec/stachetag"
	"github.com/mohae/stachec/tree"
)

// GetSpecialFunc is called at a candidate text position. It returns a
// tree node to splice in and the number of input characters it
// consumed; a zero charLength with a nil error means "nothing special
// here, fall back to ordinary text/char-ref scanning".
type GetSpecialFunc func(input string, pos int) (node tree.Node, charLength int, err error)

// ShouldStopFunc reports whether content parsing should end before
// consuming the character at pos, without consuming anything itself.
// TemplateParser uses this to bound a block's content at the matching
// `{{/...}}` or `{{else}}` (spec.md §4.2 step 5).
type ShouldStopFunc func(input string, pos int) bool

// Options configures one ParseFragment invocation.
type Options struct {
	SourceName string
	RCDATA     bool // inside <textarea> or <title>; propagated to nested parses (spec.md §4.2 step 6)
	GetSpecial GetSpecialFunc
	ShouldStop ShouldStopFunc
}

// fatal is the panic payload raised by raiseFatal and caught at the
// top of ParseFragment, mirroring the scanner's panic/recover
// discipline (spec.md §7: all errors are synchronous and fatal).
type fatal struct{ err error }

func raiseFatal(input, sourceName string, pos int, format string, args ...interface{}) {
	panic(fatal{stachetag.NewParseError(input, sourceName, pos, format, args...)})
}

// ParseFragment parses input[pos:] as a run of sibling nodes, stopping
// at end of input, when opts.ShouldStop reports true, or at a close tag
// ("</") that no open element at this level consumes. It returns the
// parsed nodes and the position immediately after the last consumed
// character.
func ParseFragment(input string, pos int, opts Options) (list tree.List, end int, err error) {
	defer func() {
		if r := recover(); r != nil {
			f, ok := r.(fatal)
			if !ok {
				panic(r)
			}
			err = f.err
		}
	}()
	list, end = parseContent(input, pos, opts)
	return list, end, nil
}

func parseContent(input string, pos int, opts Options) (tree.List, int) {
	var out tree.List
	for pos < len(input) {
		if opts.ShouldStop != nil && opts.ShouldStop(input, pos) {
			break
		}
		if node, consumed, ok := trySpecial(input, pos, opts); ok {
			if node != nil {
				out = append(out, node)
			}
			pos += consumed
			continue
		}
		switch {
		case strings.HasPrefix(input[pos:], "<!--"):
			node, next := parseComment(input, pos, opts)
			out = append(out, node)
			pos = next
		case strings.HasPrefix(input[pos:], "</"):
			// A stray/mismatched close tag at this nesting level; the
			// caller (parseTag, or the top-level caller for a malformed
			// document) is responsible for deciding whether this is
			// expected. We simply stop here.
			return out, pos
		case pos < len(input) && input[pos] == '<' && isTagNameStart(peekByte(input, pos+1)):
			node, next := parseTag(input, pos, opts)
			out = append(out, node)
			pos = next
		default:
			node, next := scanTextRun(input, pos, opts)
			out = append(out, node...)
			pos = next
		}
	}
	return out, pos
}

func trySpecial(input string, pos int, opts Options) (tree.Node, int, bool) {
	if opts.GetSpecial == nil {
		return nil, 0, false
	}
	if !strings.HasPrefix(input[pos:], "{{") {
		return nil, 0, false
	}
	node, n, err := opts.GetSpecial(input, pos)
	if err != nil {
		panic(fatal{err})
	}
	if n == 0 {
		return nil, 0, false
	}
	return node, n, true
}

func peekByte(input string, pos int) byte {
	if pos < 0 || pos >= len(input) {
		return 0
	}
	return input[pos]
}

func isTagNameStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func parseComment(input string, pos int, opts Options) (*tree.Comment, int) {
	bodyStart := pos + 4 // past "<!--"
	idx := strings.Index(input[bodyStart:], "-->")
	if idx < 0 {
		raiseFatal(input, opts.SourceName, pos, "unterminated HTML comment")
	}
	text := input[bodyStart : bodyStart+idx]
	return &tree.Comment{Text: text}, bodyStart + idx + 3
}
