// Package templateparser implements TemplateParser (spec.md §4.2): it
// drives htmlfrag's fragment scanner, feeding it a GetSpecial callback
// wired to stachetag so that `{{...}}` stache tags are spliced into
// the intermediate tree as tree.Special leaves, recursing into block
// bodies and matching `{{#...}}`/`{{else}}`/`{{/...}}` the way
// mohae-rollie's Tree.parse/parseSection drive their own token stream
// (here, against an external fragment parser instead).
package templateparser

import (
	"strings"

	"github.com/mohae/stachec/htmlfrag"
	"github.com/mohae/stachec/internal/stachelog"
	"github.com/mohae/stachec/stachetag"
	"github.com/mohae/stachec/tree"
)

// Options configures a parse. SourceName appears in error messages.
type Options struct {
	SourceName string
}

// Parse parses the entire input as a template fragment (spec.md §4.2's
// `parse(input) → tree` contract).
func Parse(input string, opts Options) (tree.List, error) {
	list, end, err := parseFragment(input, 0, opts.SourceName, false, nil)
	if err != nil {
		return nil, err
	}
	if end != len(input) {
		return nil, stachetag.NewParseError(input, opts.SourceName, end, "unexpected trailing content")
	}
	stachelog.L().Debugf("templateparser: parsed %d top-level nodes", len(list))
	return list, nil
}

// parseFragment wraps one htmlfrag.ParseFragment call with this
// package's GetSpecial wiring, propagating the ambient RCDATA flag
// (spec.md §4.2 step 6) and an optional block-boundary ShouldStop.
func parseFragment(input string, pos int, sourceName string, rcdata bool, shouldStop htmlfrag.ShouldStopFunc) (tree.List, int, error) {
	return htmlfrag.ParseFragment(input, pos, htmlfrag.Options{
		SourceName: sourceName,
		RCDATA:     rcdata,
		GetSpecial: makeGetSpecial(sourceName, rcdata),
		ShouldStop: shouldStop,
	})
}

// makeGetSpecial returns the callback htmlfrag invokes at every
// position starting with "{{" (spec.md §4.2's `getSpecialTag`).
func makeGetSpecial(sourceName string, rcdata bool) htmlfrag.GetSpecialFunc {
	return func(input string, pos int) (tree.Node, int, error) {
		tag, err := stachetag.ParseStacheTag(input, pos, stachetag.Options{SourceName: sourceName})
		if err != nil {
			return nil, 0, err
		}

		switch tag.Kind {
		case stachetag.ELSE, stachetag.BLOCKCLOSE:
			// A ShouldStop predicate bounds every block-content parse at
			// the next {{else}}/{{/...}}; reaching GetSpecial with one of
			// these kinds means there was no enclosing block (spec.md
			// §4.2 step 3).
			return nil, 0, stachetag.NewParseError(input, sourceName, pos, "unexpected %s", elseOrCloseDescription(tag))

		case stachetag.COMMENT:
			return nil, tag.CharLength, nil

		case stachetag.BLOCKOPEN:
			return parseBlock(input, tag, sourceName, rcdata)

		default: // DOUBLE, TRIPLE, INCLUSION
			n := tag.CharLength
			clearBookkeeping(tag)
			return &tree.Special{Tag: tag}, n, nil
		}
	}
}

func elseOrCloseDescription(tag *stachetag.StacheTag) string {
	if tag.Kind == stachetag.ELSE {
		return "{{else}}"
	}
	return "{{/" + stachetag.JoinPath(tag.Path) + "}}"
}

// clearBookkeeping drops the charPos/charLength fields and an empty
// Args slice before a tag is embedded in the tree, per spec.md §4.2
// step 2 ("Remove bookkeeping fields ... and any empty args array").
func clearBookkeeping(tag *stachetag.StacheTag) {
	tag.CharPos = 0
	tag.CharLength = 0
	if len(tag.Args) == 0 {
		tag.Args = nil
	}
}

// parseBlock implements spec.md §4.2 step 5: recurse for the block's
// content, optionally an {{else}} body, then require a matching
// {{/...}}.
func parseBlock(input string, open *stachetag.StacheTag, sourceName string, rcdata bool) (tree.Node, int, error) {
	contentStart := open.CharPos + open.CharLength
	content, afterContent, err := parseFragment(input, contentStart, sourceName, rcdata, stopAtElseOrClose)
	if err != nil {
		return nil, 0, err
	}

	next, err := stachetag.ParseStacheTag(input, afterContent, stachetag.Options{SourceName: sourceName})
	if err != nil {
		return nil, 0, err
	}

	var elseContent tree.List
	closeTag := next
	if next.Kind == stachetag.ELSE {
		elseStart := next.CharPos + next.CharLength
		var afterElse int
		elseContent, afterElse, err = parseFragment(input, elseStart, sourceName, rcdata, stopAtCloseOnly)
		if err != nil {
			return nil, 0, err
		}
		closeTag, err = stachetag.ParseStacheTag(input, afterElse, stachetag.Options{SourceName: sourceName})
		if err != nil {
			return nil, 0, err
		}
	}

	if closeTag.Kind != stachetag.BLOCKCLOSE {
		return nil, 0, stachetag.NewParseError(input, sourceName, closeTag.CharPos, "expected {{/%s}}", stachetag.JoinPath(open.Path))
	}
	if stachetag.JoinPath(closeTag.Path) != stachetag.JoinPath(open.Path) {
		return nil, 0, stachetag.NewParseError(input, sourceName, closeTag.CharPos, "mismatched block close: opened %q, closed %q", stachetag.JoinPath(open.Path), stachetag.JoinPath(closeTag.Path))
	}

	originalPos := open.CharPos
	end := closeTag.CharPos + closeTag.CharLength

	clearBookkeeping(open)
	open.Content = content
	if elseContent != nil {
		open.ElseContent = elseContent
	}
	return &tree.Special{Tag: open}, end - originalPos, nil
}

// stopAtElseOrClose and stopAtCloseOnly are heuristic lookaheads used
// only to bound htmlfrag's content scan; the authoritative kind test
// happens afterward via stachetag.ParseStacheTag on the position they
// stopped at.
func stopAtElseOrClose(input string, pos int) bool {
	return looksLikeClose(input, pos) || looksLikeElse(input, pos)
}

func stopAtCloseOnly(input string, pos int) bool {
	return looksLikeClose(input, pos)
}

func looksLikeClose(input string, pos int) bool {
	if !strings.HasPrefix(input[pos:], "{{") {
		return false
	}
	p := skipWS(input, pos+2)
	return p < len(input) && input[p] == '/'
}

func looksLikeElse(input string, pos int) bool {
	if !strings.HasPrefix(input[pos:], "{{") {
		return false
	}
	p := skipWS(input, pos+2)
	if !strings.HasPrefix(input[p:], "else") {
		return false
	}
	p += len("else")
	if p < len(input) && isWordByte(input[p]) {
		return false
	}
	return true
}

func skipWS(input string, pos int) int {
	for pos < len(input) {
		switch input[pos] {
		case ' ', '\t', '\n', '\r':
			pos++
		default:
			return pos
		}
	}
	return pos
}

func isWordByte(b byte) bool {
	return b == '_' || b == '$' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
