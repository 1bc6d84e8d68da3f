package htmlfrag

import (
	"strings"

	"github.com/mohae/stachec/tree"
)

func skipAttrWhitespace(input string, pos int) int {
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

func isAttrNameChar(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '=', '>', '/', '"', '\'':
		return false
	default:
		return true
	}
}

// parseAttrs reads a tag's attribute list, starting just after the tag
// name, up to (but not consuming) the closing '>' or "/>". Standalone
// `{{...}}` tags found where an attribute name is expected describe a
// whole dynamic attribute set (spec.md §3's `$specials`, e.g.
// `<div {{attrs}}>`) rather than a single attribute's value.
func parseAttrs(input string, pos int, opts Options) (tree.Attrs, int) {
	var named tree.Attrs
	var specials tree.List

	for {
		pos = skipAttrWhitespace(input, pos)
		if pos >= len(input) {
			break
		}
		if strings.HasPrefix(input[pos:], "/>") || input[pos] == '>' {
			break
		}
		if strings.HasPrefix(input[pos:], "{{") {
			node, n, err := callGetSpecial(input, pos, opts)
			if err != nil {
				panic(fatal{err})
			}
			if n == 0 {
				raiseFatal(input, opts.SourceName, pos, "unexpected stache tag in attribute list")
			}
			if node != nil {
				specials = append(specials, node)
			}
			pos += n
			continue
		}

		nameStart := pos
		for pos < len(input) && isAttrNameChar(input[pos]) {
			pos++
		}
		if pos == nameStart {
			raiseFatal(input, opts.SourceName, pos, "unexpected character in tag attributes")
		}
		name := strings.ToLower(input[nameStart:pos])

		valuePos := skipAttrWhitespace(input, pos)
		if valuePos < len(input) && input[valuePos] == '=' {
			valuePos = skipAttrWhitespace(input, valuePos+1)
			var value tree.Node
			value, pos = parseAttrValue(input, valuePos, opts)
			if named == nil {
				named = tree.Attrs{}
			}
			named[name] = value
			continue
		}

		if named == nil {
			named = tree.Attrs{}
		}
		named[name] = tree.String("")
	}

	if len(specials) > 0 {
		if named == nil {
			named = tree.Attrs{}
		}
		named[tree.AttrSpecialsKey] = specials
	}
	return named, pos
}

func callGetSpecial(input string, pos int, opts Options) (tree.Node, int, error) {
	if opts.GetSpecial == nil {
		return nil, 0, nil
	}
	return opts.GetSpecial(input, pos)
}

// parseAttrValue reads a quoted or unquoted attribute value, which may
// mix literal text, character references, and Special stache tags
// (spec.md §4.5 step 2 walks exactly this shape).
func parseAttrValue(input string, pos int, opts Options) (tree.Node, int) {
	if pos < len(input) && (input[pos] == '"' || input[pos] == '\'') {
		quote := input[pos]
		pos++
		var parts tree.List
		var buf strings.Builder
		flush := func() {
			if buf.Len() > 0 {
				parts = append(parts, tree.String(buf.String()))
				buf.Reset()
			}
		}
		for pos < len(input) && input[pos] != quote {
			if strings.HasPrefix(input[pos:], "{{") {
				node, n, err := callGetSpecial(input, pos, opts)
				if err != nil {
					panic(fatal{err})
				}
				if n > 0 {
					flush()
					if node != nil {
						parts = append(parts, node)
					}
					pos += n
					continue
				}
			}
			if input[pos] == '&' {
				if raw, decoded, n := scanCharRef(input, pos); n > 0 {
					flush()
					parts = append(parts, &tree.CharRef{HTML: raw, Str: decoded})
					pos += n
					continue
				}
			}
			buf.WriteByte(input[pos])
			pos++
		}
		if pos >= len(input) {
			raiseFatal(input, opts.SourceName, pos, "unterminated attribute value")
		}
		flush()
		return collapseAttrValue(parts), pos + 1
	}

	// Unquoted value: runs until whitespace or a tag delimiter.
	var parts tree.List
	var buf strings.Builder
	flush := func() {
		if buf.Len() > 0 {
			parts = append(parts, tree.String(buf.String()))
			buf.Reset()
		}
	}
	for pos < len(input) {
		c := input[pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '>' {
			break
		}
		if c == '/' && pos+1 < len(input) && input[pos+1] == '>' {
			break
		}
		if strings.HasPrefix(input[pos:], "{{") {
			node, n, err := callGetSpecial(input, pos, opts)
			if err != nil {
				panic(fatal{err})
			}
			if n > 0 {
				flush()
				if node != nil {
					parts = append(parts, node)
				}
				pos += n
				continue
			}
		}
		buf.WriteByte(c)
		pos++
	}
	flush()
	return collapseAttrValue(parts), pos
}

func collapseAttrValue(parts tree.List) tree.Node {
	switch len(parts) {
	case 0:
		return tree.String("")
	case 1:
		return parts[0]
	default:
		return parts
	}
}
