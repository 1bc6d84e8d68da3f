// Package codegen implements CodeEmitter (spec.md §4.6): it serializes
// an already-specialized tree (no *tree.Special survives into this
// package's input) to target source text, the way
// mohae-rollie/parse/node.go's String() methods let every parsed node
// render itself back to source — generalized here from Mustache-source
// round-tripping to target-JS-source emission.
package codegen

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/mohae/stachec/tree"
)

// Options configures EmitTemplate's wrapper (spec.md §4.6).
type Options struct {
	// IsTemplate selects the `__content`/`__elseContent` binding
	// wrapper; false emits the bare function wrapper.
	IsTemplate bool
}

var bareAttrKey = regexp.MustCompile(`^[a-zA-Z]+$`)

// EmitTemplate wraps EmitNode's output in the function expression
// spec.md §4.6 describes, then runs it through the (stdlib-only, see
// DESIGN.md) finishing pass that stands in for the external beautifier.
func EmitTemplate(root tree.Node, opts Options) (string, error) {
	body, err := EmitNode(root)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("(function () { var self = this; ")
	if opts.IsTemplate {
		b.WriteString("var __content = self.__content, __elseContent = self.__elseContent; ")
	}
	b.WriteString("return ")
	b.WriteString(body)
	b.WriteString("; })")
	return finalize(b.String()), nil
}

// finalize stands in for spec.md §4.6's "hand to the external
// beautifier, strip the trailing semicolon" step. No pretty-printer
// ships in the example pack (see DESIGN.md); the only semantically
// mandated part of that step — the trailing-semicolon strip — is
// reproduced directly.
func finalize(s string) string {
	return strings.TrimSuffix(s, ";")
}

// EmitNode serializes a single tree node to target source (spec.md
// §4.6). No *tree.Special may reach this function — the Specializer is
// required to have rewritten every one into *tree.EmitCode already.
func EmitNode(n tree.Node) (string, error) {
	switch v := n.(type) {
	case nil:
		return "null", nil
	case tree.String:
		return encodeStringLiteral(string(v))
	case *tree.Raw:
		return encodeStringLiteral(v.HTML)
	case *tree.CharRef:
		return encodeStringLiteral(v.Str)
	case *tree.Comment:
		return "", fmt.Errorf("codegen: HTML comments have no target-source form")
	case *tree.EmitCode:
		return v.Source, nil
	case tree.List:
		return emitList(v)
	case *tree.Tag:
		return emitTag(v)
	case *tree.Special:
		if v.Tag == nil {
			return "", fmt.Errorf("codegen: unspecialized Special node reached CodeEmitter")
		}
		return "", fmt.Errorf("codegen: unspecialized Special node reached CodeEmitter (tag %q)", v.Tag.Kind)
	default:
		return "", fmt.Errorf("codegen: cannot emit %T", n)
	}
}

func emitList(list tree.List) (string, error) {
	parts := make([]string, len(list))
	for i, child := range list {
		code, err := EmitNode(child)
		if err != nil {
			return "", err
		}
		parts[i] = code
	}
	return "[" + strings.Join(parts, ", ") + "]", nil
}

// emitTag renders `UI.Tag.<tagName>(<attrsLiteral>?, <child-codes>)`.
func emitTag(t *tree.Tag) (string, error) {
	var args []string

	if len(t.Attrs) > 0 {
		lit, err := emitAttrsLiteral(t.Attrs)
		if err != nil {
			return "", err
		}
		if lit != "" {
			args = append(args, lit)
		}
	}

	for _, child := range t.Children {
		code, err := EmitNode(child)
		if err != nil {
			return "", err
		}
		args = append(args, code)
	}

	return fmt.Sprintf("UI.Tag.%s(%s)", t.TagName, strings.Join(args, ", ")), nil
}

// emitAttrsLiteral renders a Tag's Attrs as an object literal, per
// spec.md §4.6: keys matching [a-zA-Z]+ appear bare, others are
// JSON-stringified; values recurse through the array-or-scalar rule of
// §4.5. $specials is consumed (its effect already folded into $dynamic
// by the Specializer) and never itself emitted.
func emitAttrsLiteral(attrs tree.Attrs) (string, error) {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		if k == tree.AttrSpecialsKey {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return "", nil
	}
	sort.Strings(keys)

	entries := make([]string, 0, len(keys))
	for _, k := range keys {
		valCode, err := emitAttrValue(attrs[k])
		if err != nil {
			return "", err
		}
		entries = append(entries, emitAttrKey(k)+": "+valCode)
	}
	return "{" + strings.Join(entries, ", ") + "}", nil
}

func emitAttrValue(v tree.Node) (string, error) {
	if list, ok := v.(tree.List); ok {
		return emitList(list)
	}
	return EmitNode(v)
}

func emitAttrKey(key string) string {
	if bareAttrKey.MatchString(key) {
		return key
	}
	lit, err := encodeStringLiteral(key)
	if err != nil {
		// encodeStringLiteral only fails if json.Marshal fails, which
		// cannot happen for a plain Go string.
		panic(err)
	}
	return lit
}
