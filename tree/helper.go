package tree

import "strings"

// IsPureChars reports whether html contains neither '&' nor '<', i.e.
// whether it could be emitted as a plain string node instead of a Raw
// node without changing its meaning when later parsed as HTML
// (spec.md §4.3's demotion rule, reused verbatim by the optimizer's
// top-level policy).
func IsPureChars(html string) bool {
	return !strings.ContainsAny(html, "&<")
}

// AsContent reads a StacheTag's Content field back as a List. The
// scanner leaves Content untyped (see stachetag.StacheTag) to avoid a
// circular import; TemplateParser always stores a tree.List there, so
// this accessor is safe for any tag TemplateParser has produced.
func AsContent(v any) List {
	if v == nil {
		return nil
	}
	l, _ := v.(List)
	return l
}
