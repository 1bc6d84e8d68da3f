// Package jstoken classifies the handful of JavaScript-like tokens the
// stache-tag argument scanner needs to recognize: identifiers, keywords,
// numbers, strings, booleans, and null. It is not a general JS tokenizer;
// it only covers what spec.md's argument grammar calls for.
package jstoken

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Kind identifies the lexical category of a Token.
type Kind int

const (
	Invalid Kind = iota
	EOF
	Identifier
	Keyword
	Number
	String
	Boolean
	Null
	Punctuator
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Identifier:
		return "identifier"
	case Keyword:
		return "keyword"
	case Number:
		return "number"
	case String:
		return "string"
	case Boolean:
		return "boolean"
	case Null:
		return "null"
	case Punctuator:
		return "punctuator"
	default:
		return "invalid"
	}
}

// Token is one lexical unit starting at Pos in the scanned input.
type Token struct {
	Kind Kind
	Text string // raw source text, including string quotes
	Pos  int
	End  int // one past the last byte of Text
}

// boolKeywords are the literals classified as Boolean tokens. null is
// classified as Null, and the words listed in isReservedWord (this,
// if, ...) as plain Keyword tokens callers may accept as identifiers.
var boolKeywords = map[string]bool{"true": true, "false": true}

// Peek classifies exactly one token at pos without skipping leading
// whitespace — callers are responsible for whitespace per spec.md's own
// whitespace rules between stache-tag arguments. Returns a zero Token
// (Kind Invalid) and an error if the character at pos cannot start any
// recognized token or a string literal is unterminated.
func Peek(input string, pos int) (Token, error) {
	if pos >= len(input) {
		return Token{Kind: EOF, Pos: pos, End: pos}, nil
	}
	r, _ := utf8.DecodeRuneInString(input[pos:])
	switch {
	case r == '"' || r == '\'':
		return scanString(input, pos)
	case r == '-' || isPunct(r):
		return Token{Kind: Punctuator, Text: string(r), Pos: pos, End: pos + utf8.RuneLen(r)}, nil
	case unicode.IsDigit(r):
		return scanNumber(input, pos)
	case isIdentStart(r):
		return scanIdentifier(input, pos)
	default:
		return Token{}, fmt.Errorf("unexpected character %q", r)
	}
}

func isPunct(r rune) bool {
	switch r {
	case '=', '.', '[', ']', ',':
		return true
	}
	return false
}

func isIdentStart(r rune) bool {
	return r == '$' || r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

func scanIdentifier(input string, pos int) (Token, error) {
	end := pos
	for end < len(input) {
		r, w := utf8.DecodeRuneInString(input[end:])
		if !isIdentPart(r) {
			break
		}
		end += w
	}
	text := input[pos:end]
	switch {
	case boolKeywords[text]:
		return Token{Kind: Boolean, Text: text, Pos: pos, End: end}, nil
	case text == "null":
		return Token{Kind: Null, Text: text, Pos: pos, End: end}, nil
	case isReservedWord(text):
		return Token{Kind: Keyword, Text: text, Pos: pos, End: end}, nil
	default:
		return Token{Kind: Identifier, Text: text, Pos: pos, End: end}, nil
	}
}

// isReservedWord covers the JS keywords that may legally appear as path
// segments or argument names (spec.md §4.1: "Identifiers may be any JS
// identifier or keyword").
func isReservedWord(s string) bool {
	switch s {
	case "this", "if", "else", "in", "of", "new", "typeof", "instanceof",
		"function", "return", "var", "let", "const", "void", "delete",
		"do", "while", "for", "break", "continue", "switch", "case",
		"default", "throw", "try", "catch", "finally", "class", "extends",
		"super", "import", "export", "yield", "await":
		return true
	}
	return false
}

func scanNumber(input string, pos int) (Token, error) {
	end := pos
	for end < len(input) && unicode.IsDigit(rune(input[end])) {
		end++
	}
	if end < len(input) && input[end] == '.' {
		end++
		for end < len(input) && unicode.IsDigit(rune(input[end])) {
			end++
		}
	}
	return Token{Kind: Number, Text: input[pos:end], Pos: pos, End: end}, nil
}

func scanString(input string, pos int) (Token, error) {
	quote := input[pos]
	end := pos + 1
	for end < len(input) {
		c := input[end]
		if c == '\\' && end+1 < len(input) {
			end += 2
			continue
		}
		if c == quote {
			end++
			return Token{Kind: String, Text: input[pos:end], Pos: pos, End: end}, nil
		}
		end++
	}
	return Token{}, fmt.Errorf("unterminated string literal")
}

// IsWhitespace reports whether r is JS-insignificant whitespace for our
// narrow purposes (space, tab, newline, carriage return).
func IsWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// SkipWhitespace returns the index of the first non-whitespace rune at
// or after pos.
func SkipWhitespace(input string, pos int) int {
	for pos < len(input) {
		r, w := utf8.DecodeRuneInString(input[pos:])
		if !IsWhitespace(r) {
			break
		}
		pos += w
	}
	return pos
}

// LooksLikeAssignment reports whether input[pos:] matches `\s*=` but not
// `\s*==`, used by the argument scanner to detect `name=value` keyword
// arguments without consuming input.
func LooksLikeAssignment(input string, pos int) bool {
	pos = SkipWhitespace(input, pos)
	if pos >= len(input) || input[pos] != '=' {
		return false
	}
	return pos+1 >= len(input) || input[pos+1] != '='
}
