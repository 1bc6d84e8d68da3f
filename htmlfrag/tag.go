package htmlfrag

import (
	"strings"

	"github.com/mohae/stachec/tree"
)

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

func isVoidElement(name string) bool {
	return voidElements[strings.ToLower(name)]
}

// isRCDATATag reports whether name's content is RCDATA (spec.md §4.2
// step 6 names <textarea> and <title>).
func isRCDATATag(name string) bool {
	switch strings.ToLower(name) {
	case "textarea", "title":
		return true
	default:
		return false
	}
}

func isTagNameChar(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') || b == '-' || b == ':'
}

// parseTag parses a start tag at input[pos] ('<'), its attributes, and
// (unless void or self-closing) its children up to a matching close
// tag. Missing close tags are tolerated rather than treated as fatal:
// block-scoped template fragments routinely split an element across a
// `{{#block}}...{{/block}}` boundary (e.g. `<ul>{{#each x}}<li>...`),
// and this parser has no notion of the pending block when it descends
// into the element's content.
func parseTag(input string, pos int, opts Options) (*tree.Tag, int) {
	nameStart := pos + 1
	end := nameStart
	for end < len(input) && isTagNameChar(input[end]) {
		end++
	}
	if end == nameStart {
		raiseFatal(input, opts.SourceName, pos, "expected tag name")
	}
	name := input[nameStart:end]

	attrs, p := parseAttrs(input, end, opts)

	selfClosing := false
	switch {
	case strings.HasPrefix(input[p:], "/>"):
		selfClosing = true
		p += 2
	case p < len(input) && input[p] == '>':
		p++
	default:
		raiseFatal(input, opts.SourceName, p, "expected > to close <%s>", name)
	}

	node := &tree.Tag{TagName: strings.ToLower(name), Attrs: attrs}
	if selfClosing || isVoidElement(name) {
		return node, p
	}

	rcdata := opts.RCDATA || isRCDATATag(name)
	closeTag := "</" + strings.ToLower(name)
	childOpts := opts
	childOpts.RCDATA = rcdata
	childOpts.ShouldStop = stopAtCloseTag(closeTag, opts.ShouldStop)

	var children tree.List
	if rcdata {
		children, p = parseRawText(input, p, childOpts)
	} else {
		children, p = parseContent(input, p, childOpts)
	}
	node.Children = children

	if strings.HasPrefix(strings.ToLower(input[min(p, len(input)):]), closeTag) {
		closeEnd := p + len(closeTag)
		closeEnd = skipAttrWhitespace(input, closeEnd)
		if closeEnd < len(input) && input[closeEnd] == '>' {
			p = closeEnd + 1
		}
	}
	return node, p
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// stopAtCloseTag wraps an ambient ShouldStop with one that also stops
// at the given lowercase closing tag (case-insensitive match).
func stopAtCloseTag(closeTag string, ambient ShouldStopFunc) ShouldStopFunc {
	return func(input string, pos int) bool {
		if ambient != nil && ambient(input, pos) {
			return true
		}
		if pos+len(closeTag) > len(input) {
			return false
		}
		return strings.EqualFold(input[pos:pos+len(closeTag)], closeTag)
	}
}

// parseRawText scans RCDATA content: specials are still recognized
// (spec.md §4.2 step 6), but '<' does not start nested tag parsing.
func parseRawText(input string, pos int, opts Options) (tree.List, int) {
	var out tree.List
	var buf strings.Builder
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
		if node, n, ok := trySpecial(input, pos, opts); ok {
			flush()
			if node != nil {
				out = append(out, node)
			}
			pos += n
			continue
		}
		buf.WriteByte(input[pos])
		pos++
	}
	flush()
	return out, pos
}
