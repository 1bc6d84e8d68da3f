package specializer

import (
	"strings"

	"github.com/mohae/stachec/stachetag"
)

// mustacheArgsCode builds the argument list for a Spacebars.mustache /
// Spacebars.attrMustache call (spec.md §4.4): positional arguments in
// order, followed by a single trailing Spacebars.kw({...}) when any
// keyword arguments are present.
func mustacheArgsCode(args []stachetag.Argument) ([]string, error) {
	var positional []string
	var keyword []string
	for _, a := range args {
		code, err := argLiteralOrPathCode(a)
		if err != nil {
			return nil, err
		}
		if a.IsKeyword() {
			keyword = append(keyword, a.Name+": "+code)
		} else {
			positional = append(positional, code)
		}
	}
	out := positional
	if len(keyword) > 0 {
		out = append(out, "Spacebars.kw({"+strings.Join(keyword, ", ")+"})")
	}
	return out, nil
}

// inclusionEntries builds the include-style object-literal entries
// (spec.md §4.4): keyword arguments become object keys directly;
// positional arguments are folded into a synthetic "data" key.
func inclusionEntries(args []stachetag.Argument) (map[string]string, error) {
	entries := map[string]string{}
	var positional []stachetag.Argument
	for _, a := range args {
		if a.IsKeyword() {
			code, err := argLiteralOrPathCode(a)
			if err != nil {
				return nil, err
			}
			entries[a.Name] = code
			continue
		}
		positional = append(positional, a)
	}
	if len(positional) > 0 {
		code, err := dataCode(positional)
		if err != nil {
			return nil, err
		}
		entries["data"] = code
	}
	return entries, nil
}

// dataCode implements spec.md §4.4's "data" construction rule: a single
// positional argument supplies the data value directly unless it is a
// PATH, in which case the lookup is deferred through Spacebars.call
// (spec.md §8 scenario 5: `{{#if x}}` produces `data: function () {
// return Spacebars.call(self.lookup("x")); }`, for a single-segment
// path — deferred regardless of segment count, see DESIGN.md's Open
// Question decision for this package). Two or more positional
// arguments are folded through a single Spacebars.call, each PATH
// argument among them emitted as a direct (undeferred) path code.
func dataCode(positional []stachetag.Argument) (string, error) {
	if len(positional) == 1 {
		a := positional[0]
		if a.Kind != stachetag.PATH {
			return argLiteralOrPathCode(a)
		}
		code, err := codeGenPath(a.Path)
		if err != nil {
			return "", err
		}
		return "function () { return Spacebars.call(" + code + "); }", nil
	}

	codes := make([]string, len(positional))
	for i, a := range positional {
		if a.Kind == stachetag.PATH {
			code, err := codeGenPath(a.Path)
			if err != nil {
				return "", err
			}
			codes[i] = code
			continue
		}
		code, err := argLiteralOrPathCode(a)
		if err != nil {
			return "", err
		}
		codes[i] = code
	}
	return "function () { return Spacebars.call(" + strings.Join(codes, ", ") + "); }", nil
}
