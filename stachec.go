// Package stachec is the public entry point composing StacheScanner,
// TemplateParser, Optimizer, Specializer, and CodeEmitter into a single
// compile pipeline (spec.md §6), the way mohae-rollie/rollie.go's
// top-level Parse/Render wrappers compose package parse — generalized
// here to compose this module's own pipeline packages instead.
package stachec

import (
	"fmt"

	"github.com/mohae/stachec/codegen"
	"github.com/mohae/stachec/internal/stachelog"
	"github.com/mohae/stachec/optimizer"
	"github.com/mohae/stachec/specializer"
	"github.com/mohae/stachec/stachetag"
	"github.com/mohae/stachec/templateparser"
	"github.com/mohae/stachec/tree"
)

// Options configures a compile or parse. SourceName appears in error
// messages; IsTemplate selects CodeEmitter's __content/__elseContent
// wrapper bindings (spec.md §4.6). Its zero value is false;
// DefaultOptions sets it to true, the common case of compiling a named
// template body.
type Options struct {
	SourceName string
	IsTemplate bool
}

// DefaultOptions mirrors the zero-config case: no source name, and the
// template wrapper (the common case — a bare fragment needs
// IsTemplate: false set explicitly).
func DefaultOptions() Options {
	return Options{IsTemplate: true}
}

// Compile runs the full pipeline — parse, optimize, specialize, emit —
// producing target source text for input (spec.md §6's primary
// operation). Any panic escaping the pipeline (an invariant violation
// in a lower package, e.g. a Special surviving to CodeEmitter) is
// converted to a returned error rather than crashing the caller,
// mirroring mohae-rollie/parse/parse.go's Tree.recover boundary.
func Compile(input string, opts Options) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("stachec: internal error: %v", r)
		}
	}()

	parsed, perr := Parse(input, opts)
	if perr != nil {
		return "", perr
	}
	return CodeGen(parsed, opts)
}

// Parse runs TemplateParser alone, returning the raw intermediate tree
// (spec.md §4.2's contract) before optimization or specialization.
func Parse(input string, opts Options) (tree.List, error) {
	list, err := templateparser.Parse(input, templateparser.Options{SourceName: opts.SourceName})
	if err != nil {
		return nil, err
	}
	stachelog.L().Debugf("stachec: parsed %q (%d bytes) into %d top-level nodes", opts.SourceName, len(input), len(list))
	return list, nil
}

// CodeGen runs Optimizer, then Specializer, then CodeEmitter over an
// already-parsed tree, producing target source text (spec.md §4.3,
// §4.4, §4.6 in sequence).
func CodeGen(parsed tree.List, opts Options) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("stachec: internal error: %v", r)
		}
	}()

	optimized := optimizer.OptimizeTree(parsed)

	specialized, serr := specializer.Specialize(optimized)
	if serr != nil {
		return "", serr
	}

	code, cerr := codegen.EmitTemplate(specialized, codegen.Options{IsTemplate: opts.IsTemplate})
	if cerr != nil {
		return "", cerr
	}
	return code, nil
}

// ParseStacheTag exposes StacheScanner directly: parse exactly one
// stache tag at pos and report how many characters it consumed
// (spec.md §4.1's contract), without involving the HTML fragment parser
// at all. Useful to callers embedding their own HTML parser instead of
// htmlfrag.
func ParseStacheTag(input string, pos int, opts Options) (*stachetag.StacheTag, error) {
	return stachetag.ParseStacheTag(input, pos, stachetag.Options{SourceName: opts.SourceName})
}
