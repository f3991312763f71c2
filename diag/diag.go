// Package diag defines the diagnostics reported by the parser, the symbol
// table and the resolver. Every diagnostic is fatal to its compilation unit.
package diag

import (
	"errors"
	"fmt"
)

// Category groups diagnostics by the stage that detects them.
type Category int

const (
	Lexical Category = iota
	Syntax
	Scoping
	Semantic
)

func (c Category) String() string {
	switch c {
	case Lexical:
		return "lexical"
	case Syntax:
		return "syntax"
	case Scoping:
		return "scoping"
	case Semantic:
		return "semantic"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// Code identifies a diagnostic.
type Code string

// Diagnostic code constants.
const (
	InvalidToken     Code = "E_INVALID_TOKEN"
	MalformedStream  Code = "E_MALFORMED_STREAM"
	UnexpectedToken  Code = "E_UNEXPECTED_TOKEN"
	UnmatchedBracket Code = "E_UNMATCHED_BRACKET"

	NoScope        Code = "E_NO_SCOPE"
	PopGlobalFrame Code = "E_POP_GLOBAL_FRAME"

	UndefinedIdent     Code = "E_UNDEFINED"
	Redeclared         Code = "E_REDECLARED"
	TypeMismatch       Code = "E_TYPE_MISMATCH"
	HeterogeneousArray Code = "E_HETEROGENEOUS_ARRAY"
	NotAssignable      Code = "E_NOT_ASSIGNABLE"
	AssignConst        Code = "E_ASSIGN_CONST"
)

var categories = map[Code]Category{
	InvalidToken:       Lexical,
	MalformedStream:    Lexical,
	UnexpectedToken:    Syntax,
	UnmatchedBracket:   Syntax,
	NoScope:            Scoping,
	PopGlobalFrame:     Scoping,
	UndefinedIdent:     Semantic,
	Redeclared:         Semantic,
	TypeMismatch:       Semantic,
	HeterogeneousArray: Semantic,
	NotAssignable:      Semantic,
	AssignConst:        Semantic,
}

// Category returns the stage that reports c.
func (c Code) Category() Category {
	return categories[c]
}

// Error is a single line-numbered diagnostic. Line is 0 when the diagnostic
// has no source position (internal symbol table misuse).
type Error struct {
	Code Code
	Line int
	Msg  string
	// AtEOF marks syntax errors raised because input ended inside an
	// unfinished construct.
	AtEOF bool
}

func (e *Error) Error() string {
	if e.Line == 0 {
		return "error: " + e.Msg
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Category is shorthand for e.Code.Category().
func (e *Error) Category() Category {
	return e.Code.Category()
}

// Errorf builds a diagnostic.
func Errorf(code Code, line int, format string, args ...any) *Error {
	return &Error{Code: code, Line: line, Msg: fmt.Sprintf(format, args...)}
}

// Is reports whether err carries a diagnostic with the given code.
func Is(err error, code Code) bool {
	var d *Error
	return errors.As(err, &d) && d.Code == code
}

// Incomplete reports whether err was raised at end of input, so more input
// could still make the program valid.
func Incomplete(err error) bool {
	var d *Error
	return errors.As(err, &d) && d.AtEOF
}

// Line returns the line of the diagnostic carried by err, or 0.
func Line(err error) int {
	var d *Error
	if errors.As(err, &d) {
		return d.Line
	}
	return 0
}
