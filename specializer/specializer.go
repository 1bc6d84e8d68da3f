// Package specializer implements Specializer (spec.md §4.4/§4.5): it
// recursively rewrites every *tree.Special and dynamic attribute value
// into *tree.EmitCode, following the same walk-and-rebuild shape
// withastro-compiler's printer uses to turn a parsed tree into target
// source (see DESIGN.md). Unlike the Optimizer, it always rebuilds —
// there is no "nothing to do" identity shortcut except where spec.md
// §4.5 step 3 explicitly calls for one (attribute maps with no
// dynamics).
package specializer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mohae/stachec/codegen"
	"github.com/mohae/stachec/stachetag"
	"github.com/mohae/stachec/tree"
)

// Specialize rewrites node and everything beneath it, per spec.md §4.4.
func Specialize(node tree.Node) (tree.Node, error) {
	switch n := node.(type) {
	case nil:
		return nil, nil
	case tree.String, *tree.Raw, *tree.CharRef, *tree.Comment, *tree.EmitCode:
		return n, nil
	case tree.List:
		return specializeList(n)
	case *tree.Tag:
		return specializeTag(n)
	case *tree.Special:
		return specializeSpecial(n)
	default:
		return nil, fmt.Errorf("specializer: cannot specialize %T", node)
	}
}

func specializeList(list tree.List) (tree.List, error) {
	out := make(tree.List, len(list))
	for i, child := range list {
		specialized, err := Specialize(child)
		if err != nil {
			return nil, err
		}
		out[i] = specialized
	}
	return out, nil
}

func specializeTag(t *tree.Tag) (tree.Node, error) {
	children, err := specializeList(t.Children)
	if err != nil {
		return nil, err
	}
	attrs, err := specializeAttrs(t.Attrs)
	if err != nil {
		return nil, err
	}
	return &tree.Tag{TagName: t.TagName, Attrs: attrs, Children: children}, nil
}

// specializeSpecial implements the per-kind rewrites of spec.md §4.4.
func specializeSpecial(sp *tree.Special) (tree.Node, error) {
	tag := sp.Tag
	switch tag.Kind {
	case stachetag.DOUBLE:
		inner, err := mustacheCall("Spacebars.mustache", tag)
		if err != nil {
			return nil, err
		}
		return &tree.EmitCode{Source: "function () { return " + inner + "; }"}, nil

	case stachetag.TRIPLE:
		inner, err := mustacheCall("Spacebars.mustache", tag)
		if err != nil {
			return nil, err
		}
		return &tree.EmitCode{Source: "function () { return Spacebars.makeRaw(" + inner + "); }"}, nil

	case stachetag.INCLUSION, stachetag.BLOCKOPEN:
		src, err := includeCall(tag)
		if err != nil {
			return nil, err
		}
		return &tree.EmitCode{Source: "function () { return " + src + "; }"}, nil

	default:
		return nil, fmt.Errorf("specializer: unexpected %s reached Specializer", tag.Kind)
	}
}

// mustacheCall renders `<fnName>(<nameCode>[, <argCode>]*)` for a
// DOUBLE/TRIPLE tag or a per-attribute dynamic value (spec.md §4.4,
// §4.5 step 2).
func mustacheCall(fnName string, tag *stachetag.StacheTag) (string, error) {
	name, err := codeGenPath(tag.Path)
	if err != nil {
		return "", err
	}
	argCodes, err := mustacheArgsCode(tag.Args)
	if err != nil {
		return "", err
	}
	parts := append([]string{name}, argCodes...)
	return fnName + "(" + strings.Join(parts, ", ") + ")", nil
}

// includeCall renders `Spacebars.include(<compCode>[, <objectLiteral>])`
// for an INCLUSION/BLOCKOPEN tag, folding in __content/__elseContent
// when the tag carries block content (spec.md §4.4).
func includeCall(tag *stachetag.StacheTag) (string, error) {
	comp, err := componentCode(tag.Path)
	if err != nil {
		return "", err
	}

	entries, err := inclusionEntries(tag.Args)
	if err != nil {
		return "", err
	}

	if code, ok, err := blockSubtreeCode(tag.Content); err != nil {
		return "", err
	} else if ok {
		entries["__content"] = code
	}
	if code, ok, err := blockSubtreeCode(tag.ElseContent); err != nil {
		return "", err
	} else if ok {
		entries["__elseContent"] = code
	}

	if len(entries) == 0 {
		return "Spacebars.include(" + comp + ")", nil
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + entries[k]
	}
	obj := "{" + strings.Join(parts, ", ") + "}"
	return "Spacebars.include(" + comp + ", " + obj + ")", nil
}

// blockSubtreeCode specializes and codegens a block's content or
// elseContent subtree, wrapping the result in UI.block(...) (spec.md
// §4.4). v is nil when the branch wasn't present (TemplateParser only
// sets ElseContent when an {{else}} actually matched); a present-but-
// empty content list still codegens, producing UI.block([]).
func blockSubtreeCode(v any) (string, bool, error) {
	if v == nil {
		return "", false, nil
	}
	list := tree.AsContent(v)
	specialized, err := specializeList(list)
	if err != nil {
		return "", false, err
	}
	code, err := codegen.EmitNode(specialized)
	if err != nil {
		return "", false, err
	}
	return "UI.block(" + code + ")", true, nil
}
