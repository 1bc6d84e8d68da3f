package specializer

import "strings"

// builtinComponents maps a single-segment inclusion/block path to its
// literal runtime binding (spec.md §4.4's "Component resolution").
var builtinComponents = map[string]string{
	"content":     "__content",
	"elseContent": "__elseContent",
	"if":          "UI.If",
	"unless":      "UI.Unless",
	"with":        "UI.With",
	"each":        "UI.Each",
}

// codeGenPath implements spec.md §4.4's `codeGenPath`: a length-1 path
// becomes a plain lookup; longer paths wrap the lookup in
// Spacebars.dot.
func codeGenPath(path []string) (string, error) {
	if len(path) == 0 {
		return "", nil
	}
	head, err := stringLiteral(path[0])
	if err != nil {
		return "", err
	}
	base := "self.lookup(" + head + ")"
	if len(path) == 1 {
		return base, nil
	}
	rest := make([]string, len(path)-1)
	for i, seg := range path[1:] {
		lit, err := stringLiteral(seg)
		if err != nil {
			return "", err
		}
		rest[i] = lit
	}
	return "Spacebars.dot(" + base + ", " + strings.Join(rest, ", ") + ")", nil
}

// componentCode resolves the target of an INCLUSION/BLOCKOPEN tag
// (spec.md §4.4): a built-in name, a Template-table-or-path fallback
// for a single unrecognized segment, or a plain path lookup.
func componentCode(path []string) (string, error) {
	if len(path) == 1 {
		if lit, ok := builtinComponents[path[0]]; ok {
			return lit, nil
		}
		name, err := stringLiteral(path[0])
		if err != nil {
			return "", err
		}
		lookup, err := codeGenPath(path)
		if err != nil {
			return "", err
		}
		return "(Template[" + name + "] || " + lookup + ")", nil
	}
	return codeGenPath(path)
}
