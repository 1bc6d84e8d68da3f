package codegen

import (
	"encoding/json"
	"strings"
)

var lineSeparator = string(rune(0x2028))
var paragraphSeparator = string(rune(0x2029))

// encodeStringLiteral renders s as a target-language string literal
// (spec.md §4.6). encoding/json.Marshal already escapes control
// characters, quotes, U+2028/U+2029, and (by replacing them with
// U+FFFD) invalid UTF-8 byte sequences such as lone surrogates. The
// U+2028/U+2029 replacements below are therefore no-ops on Marshal's
// output; they keep the literal free of those two ECMAScript line
// terminators independently of the encoder.
func encodeStringLiteral(s string) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	lit := string(b)
	lit = strings.ReplaceAll(lit, lineSeparator, "\\u2028")
	lit = strings.ReplaceAll(lit, paragraphSeparator, "\\u2029")
	return lit, nil
}
