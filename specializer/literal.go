package specializer

import (
	"fmt"
	"math"
	"strconv"

	"github.com/mohae/stachec/codegen"
	"github.com/mohae/stachec/stachetag"
	"github.com/mohae/stachec/tree"
)

// stringLiteral reuses CodeEmitter's string-literal encoding (spec.md
// §4.6) rather than duplicating its escaping rules.
func stringLiteral(s string) (string, error) {
	return codegen.EmitNode(tree.String(s))
}

// numberLiteral renders a float64 the way a target-language number
// literal would be written: "3" rather than "3.000000", but "3.5" kept
// as written.
func numberLiteral(f float64) string {
	if !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// argLiteralOrPathCode implements spec.md §4.4's "Argument code
// generation" for a single argument taken on its own: literals render
// as target-language literals, PATH renders via codeGenPath.
func argLiteralOrPathCode(a stachetag.Argument) (string, error) {
	switch a.Kind {
	case stachetag.PATH:
		return codeGenPath(a.Path)
	case stachetag.STRING:
		return stringLiteral(a.Str)
	case stachetag.NUMBER:
		return numberLiteral(a.Num), nil
	case stachetag.BOOLEAN:
		if a.Bool {
			return "true", nil
		}
		return "false", nil
	case stachetag.NULL:
		return "null", nil
	default:
		return "", fmt.Errorf("specializer: unknown argument kind %d", a.Kind)
	}
}
