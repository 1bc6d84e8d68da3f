package stachetag

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/mohae/stachec/internal/jstoken"
)

// ArgKind discriminates the value carried by an Argument.
type ArgKind int

const (
	PATH ArgKind = iota
	STRING
	NUMBER
	BOOLEAN
	NULL
)

// Argument is a single positional or keyword value inside a stache tag.
// Exactly one of Path/Str/Num/Bool is meaningful, selected by Kind.
type Argument struct {
	Kind ArgKind
	Name string // non-empty for keyword arguments

	Path []string
	Str  string
	Num  float64
	Bool bool
}

func (a Argument) IsKeyword() bool {
	return a.Name != ""
}

// scanArgument reads one argument starting at pos. allowKeyword controls
// whether a leading `identifier =` prefix may turn this into a keyword
// argument — it is false when scanArgument recurses into the value of a
// keyword argument, since `a = b = c` is not a thing (spec.md §4.1).
func scanArgument(input, sourceName string, pos int, allowKeyword bool) (Argument, int, error) {
	if pos < len(input) && (input[pos] == '.' || input[pos] == '[') {
		path, next, err := scanPath(input, sourceName, pos)
		if err != nil {
			return Argument{}, 0, err
		}
		return Argument{Kind: PATH, Path: path}, next, nil
	}

	tok, err := jstoken.Peek(input, pos)
	if err != nil {
		return Argument{}, 0, newError(input, sourceName, pos, "%s", err)
	}

	switch tok.Kind {
	case jstoken.Punctuator:
		if tok.Text != "-" {
			return Argument{}, 0, newError(input, sourceName, pos, "unexpected token %q in argument", tok.Text)
		}
		numTok, err := jstoken.Peek(input, tok.End)
		if err != nil {
			return Argument{}, 0, newError(input, sourceName, tok.End, "%s", err)
		}
		if numTok.Kind != jstoken.Number {
			return Argument{}, 0, newError(input, sourceName, tok.End, "expected number after '-'")
		}
		v, err := strconv.ParseFloat(numTok.Text, 64)
		if err != nil {
			return Argument{}, 0, newError(input, sourceName, tok.Pos, "%s", err)
		}
		return Argument{Kind: NUMBER, Num: -v}, numTok.End, nil

	case jstoken.Number:
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return Argument{}, 0, newError(input, sourceName, tok.Pos, "%s", err)
		}
		return Argument{Kind: NUMBER, Num: v}, tok.End, nil

	case jstoken.Boolean:
		return Argument{Kind: BOOLEAN, Bool: tok.Text == "true"}, tok.End, nil

	case jstoken.Null:
		return Argument{Kind: NULL}, tok.End, nil

	case jstoken.String:
		s, err := decodeString(tok.Text)
		if err != nil {
			return Argument{}, 0, newError(input, sourceName, tok.Pos, "%s", err)
		}
		return Argument{Kind: STRING, Str: s}, tok.End, nil

	case jstoken.Identifier, jstoken.Keyword:
		if allowKeyword && jstoken.LooksLikeAssignment(input, tok.End) {
			name := tok.Text
			eqPos := jstoken.SkipWhitespace(input, tok.End)
			valuePos := jstoken.SkipWhitespace(input, eqPos+1)
			value, next, err := scanArgument(input, sourceName, valuePos, false)
			if err != nil {
				return Argument{}, 0, err
			}
			value.Name = name
			return value, next, nil
		}
		path, next, err := scanPath(input, sourceName, pos)
		if err != nil {
			return Argument{}, 0, err
		}
		return Argument{Kind: PATH, Path: path}, next, nil

	default:
		return Argument{}, 0, newError(input, sourceName, pos, "unexpected token in argument position")
	}
}

// decodeString reproduces spec.md §4.1/§9's documented decoding
// quirk exactly: a single-quoted outer form is swapped character-for-
// character to a double-quoted one, line-continuation characters are
// replaced with the literal letter 'n' (not a newline escape — this
// drops information and is flagged in spec.md §9 as a probable bug),
// and the result is parsed as a JSON string.
func decodeString(raw string) (string, error) {
	body := raw
	if len(body) >= 2 && body[0] == '\'' {
		body = "\"" + body[1:len(body)-1] + "\""
	}

	var b strings.Builder
	for _, r := range body {
		switch r {
		case '\r', '\n', ' ', ' ':
			b.WriteRune('n')
		default:
			b.WriteRune(r)
		}
	}

	var out string
	if err := json.Unmarshal([]byte(b.String()), &out); err != nil {
		return "", err
	}
	return out, nil
}
