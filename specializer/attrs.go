package specializer

import "github.com/mohae/stachec/tree"

// specializeAttrs implements spec.md §4.5. It returns attrs unchanged
// (identity) when nothing in it is dynamic, matching step 3's explicit
// no-op case.
func specializeAttrs(attrs tree.Attrs) (tree.Attrs, error) {
	if len(attrs) == 0 {
		return attrs, nil
	}

	specials := attrs.Specials()

	out := make(tree.Attrs, len(attrs))
	changed := len(specials) > 0
	for key, val := range attrs {
		if key == tree.AttrSpecialsKey {
			continue
		}
		specializedVal, valChanged, err := specializeAttrValue(val)
		if err != nil {
			return nil, err
		}
		if valChanged {
			changed = true
		}
		out[key] = specializedVal
	}

	if !changed {
		return attrs, nil
	}

	if len(specials) > 0 {
		dynamic := make(tree.List, len(specials))
		for i, sp := range specials {
			inner, err := mustacheCall("Spacebars.attrMustache", sp.Tag)
			if err != nil {
				return nil, err
			}
			dynamic[i] = &tree.EmitCode{Source: "function () { return " + inner + "; }"}
		}
		out[tree.AttrDynamicKey] = dynamic
	}
	return out, nil
}

// specializeAttrValue implements spec.md §4.5 step 2: strings and
// CharRefs pass through; a Special becomes the per-attribute mustache
// EmitCode; arrays are mapped element-wise. The bool result reports
// whether anything actually changed, so the caller can decide the
// identity shortcut.
func specializeAttrValue(v tree.Node) (tree.Node, bool, error) {
	switch n := v.(type) {
	case tree.String, *tree.CharRef:
		return n, false, nil
	case *tree.Special:
		inner, err := mustacheCall("Spacebars.mustache", n.Tag)
		if err != nil {
			return nil, false, err
		}
		return &tree.EmitCode{Source: "function () { return " + inner + "; }"}, true, nil
	case tree.List:
		out := make(tree.List, len(n))
		changed := false
		for i, e := range n {
			specialized, c, err := specializeAttrValue(e)
			if err != nil {
				return nil, false, err
			}
			out[i] = specialized
			changed = changed || c
		}
		return out, changed, nil
	default:
		return n, false, nil
	}
}
