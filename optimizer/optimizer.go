// Package optimizer implements spec.md §4.3: it pre-renders any subtree
// free of Special, EmitCode, or dynamic-attribute content into a single
// Raw (or, when the rendered HTML contains no '&' or '<', a plain
// string), the same left-to-right buffer-coalescing approach
// justgohtml's tree builder uses for runs of static text, adapted here
// to decide statically rather than at render time.
package optimizer

import (
	"strings"

	"github.com/mohae/stachec/tree"
)

// OptimizeTree applies the optimizer's top-level policy (spec.md §4.3):
// if nothing in root is dynamic, the whole tree collapses to a single
// Raw or string; otherwise the per-node optimization is returned as-is.
func OptimizeTree(root tree.Node) tree.Node {
	optimized := Optimize(root)
	if optimized != nil {
		return optimized
	}
	html := renderHTML(root)
	if tree.IsPureChars(html) {
		return tree.String(html)
	}
	return &tree.Raw{HTML: html}
}

// Optimize examines node and returns nil if it is (recursively) free of
// Special/EmitCode/dynamic-attribute content — "nothing special found",
// letting the caller render it statically — or a node to keep as-is (or
// an optimized replacement) otherwise.
func Optimize(node tree.Node) tree.Node {
	switch n := node.(type) {
	case nil:
		return nil
	case tree.String, *tree.CharRef, *tree.Comment, *tree.Raw:
		return nil
	case *tree.Tag:
		return optimizeTag(n)
	case tree.List:
		out, found := optimizeArrayParts(n, false)
		if !found {
			return nil
		}
		return out
	default:
		// *tree.Special (and, defensively, *tree.EmitCode if one ever
		// reaches here) is definitionally dynamic — the Optimizer leaves
		// stache-tag rewriting to the Specializer.
		return node
	}
}

func optimizeTag(t *tree.Tag) tree.Node {
	if strings.EqualFold(t.TagName, "textarea") {
		// RCDATA fusion would require awareness of text-mode escaping
		// rules the optimizer doesn't have; leave it untouched.
		return t
	}

	mustOptimize := attrsAreDynamic(t.Attrs)
	children, found := optimizeArrayParts(t.Children, mustOptimize)
	if !found && !mustOptimize {
		return nil
	}
	newChildren := t.Children
	if found {
		newChildren = children
	}
	return &tree.Tag{TagName: t.TagName, Attrs: t.Attrs, Children: newChildren}
}

func attrsAreDynamic(attrs tree.Attrs) bool {
	if attrs == nil {
		return false
	}
	if len(attrs.Specials()) > 0 {
		return true
	}
	for key, v := range attrs {
		if key == tree.AttrSpecialsKey || key == tree.AttrDynamicKey {
			continue
		}
		if valueIsDynamic(v) {
			return true
		}
	}
	return false
}

func valueIsDynamic(v tree.Node) bool {
	switch n := v.(type) {
	case *tree.Special, *tree.EmitCode:
		return true
	case tree.List:
		for _, e := range n {
			if valueIsDynamic(e) {
				return true
			}
		}
	}
	return false
}

// optimizeArrayParts walks arr left to right, per spec.md §4.3's
// buffer-coalescing procedure. forceOptimize mirrors a must-optimize
// tag: the output buffer starts immediately instead of waiting for the
// first dynamic child, so every child — dynamic or not — is examined
// individually and collected into the returned list.
func optimizeArrayParts(arr tree.List, forceOptimize bool) (tree.List, bool) {
	var out tree.List
	var pending tree.List
	started := forceOptimize

	flushPending := func() {
		for _, p := range pending {
			out = pushRawHTML(out, renderHTML(p))
		}
		pending = nil
	}

	for _, child := range arr {
		if optimized := Optimize(child); optimized != nil {
			if !started {
				started = true
				flushPending()
			}
			out = append(out, optimized)
			continue
		}
		if started {
			out = pushRawHTML(out, renderHTML(child))
		} else {
			pending = append(pending, child)
		}
	}

	if !started {
		return nil, false
	}

	for i, n := range out {
		if raw, ok := n.(*tree.Raw); ok && tree.IsPureChars(raw.HTML) {
			out[i] = tree.String(raw.HTML)
		}
	}
	return out, true
}

// pushRawHTML coalesces html with a trailing Raw node, per spec.md
// §4.3, instead of emitting one Raw per static run.
func pushRawHTML(buf tree.List, html string) tree.List {
	if n := len(buf); n > 0 {
		if raw, ok := buf[n-1].(*tree.Raw); ok {
			raw.HTML += html
			return buf
		}
	}
	return append(buf, &tree.Raw{HTML: html})
}
