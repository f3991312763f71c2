// Package token defines the lexical tokens of tinyc and the Source
// interface the parser consumes them through.
package token

import (
	"fmt"
	"strconv"
)

// Kind is the type of token (identifier, operator, literal, etc.).
type Kind string

// Definition of token kinds
const (
	// Special tokens
	EOL     Kind = "EOL" // end of line, never leaves the scanner
	EOF     Kind = "EOF"
	Invalid Kind = "INVALID"

	// Identifiers + literals
	Ident  Kind = "IDENT"  // main, foo, _bar
	Int    Kind = "INT"    // 12345
	Char   Kind = "CHAR"   // 'a'
	String Kind = "STRING" // "abc"

	// Keywords
	While  Kind = "while"
	If     Kind = "if"
	Else   Kind = "else"
	IntKw  Kind = "int"
	CharKw Kind = "char"
	Const  Kind = "const"
	Return Kind = "return"

	// Delimiters
	LBrace   Kind = "{"
	RBrace   Kind = "}"
	LParen   Kind = "("
	RParen   Kind = ")"
	LBracket Kind = "["
	RBracket Kind = "]"
	Semi     Kind = ";"
	Colon    Kind = ":"
	Comma    Kind = ","

	// Operators
	Plus       Kind = "+"
	PlusPlus   Kind = "++"
	PlusAssign Kind = "+="

	Minus       Kind = "-"
	MinusMinus  Kind = "--"
	MinusAssign Kind = "-="

	Star       Kind = "*"
	StarAssign Kind = "*="

	Slash       Kind = "/"
	SlashAssign Kind = "/="

	Percent Kind = "%"

	Assign Kind = "="
	Eq     Kind = "=="

	Bang  Kind = "!"
	NotEq Kind = "!="

	Gt Kind = ">"
	Ge Kind = ">="
	Lt Kind = "<"
	Le Kind = "<="

	Amp    Kind = "&"
	AndAnd Kind = "&&"
	OrOr   Kind = "||"
)

var keywords = map[string]Kind{
	"while":  While,
	"if":     If,
	"else":   Else,
	"int":    IntKw,
	"char":   CharKw,
	"const":  Const,
	"return": Return,
}

// Keyword returns the keyword kind for ident, or Ident if ident is not
// reserved.
func Keyword(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return Ident
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	_, ok := keywords[string(k)]
	return ok
}

// IsTypeName reports whether k names a type or type qualifier, i.e. a token
// that starts a declaration.
func (k Kind) IsTypeName() bool {
	return k == IntKw || k == CharKw || k == Const
}

// IsAssign reports whether k belongs to the assignment family.
func (k Kind) IsAssign() bool {
	switch k {
	case Assign, PlusAssign, MinusAssign, StarAssign, SlashAssign:
		return true
	}
	return false
}

// Token is a single lexeme. Only the payload field matching Kind is set.
type Token struct {
	Kind Kind
	Text string // identifier name, string contents, or offending text for Invalid
	Int  int64
	Char rune
	Line int
}

func (t Token) String() string {
	switch t.Kind {
	case Ident:
		return t.Text
	case Int:
		return strconv.FormatInt(t.Int, 10)
	case Char:
		return strconv.QuoteRune(t.Char)
	case String:
		return strconv.Quote(t.Text)
	case Invalid:
		return fmt.Sprintf("invalid %q", t.Text)
	default:
		return string(t.Kind)
	}
}

// Describe renders the token for diagnostics, e.g. "identifier foo" or "'+'".
func (t Token) Describe() string {
	switch t.Kind {
	case Ident:
		return "identifier " + t.Text
	case Int:
		return "integer " + t.String()
	case Char:
		return "character " + t.String()
	case String:
		return "string " + t.String()
	case EOF:
		return "end of input"
	case Invalid:
		return fmt.Sprintf("invalid character %q", t.Text)
	default:
		return "'" + string(t.Kind) + "'"
	}
}
