package diag

import (
	"fmt"
	"testing"

	"github.com/nalgeon/be"
)

func TestErrorFormat(t *testing.T) {
	err := Errorf(UndefinedIdent, 4, "undefined identifier '%s'", "x")
	be.Equal(t, err.Error(), "line 4: undefined identifier 'x'")

	err = Errorf(NoScope, 0, "no scope is open")
	be.Equal(t, err.Error(), "error: no scope is open")
}

func TestCategories(t *testing.T) {
	tests := []struct {
		code Code
		cat  Category
	}{
		{InvalidToken, Lexical},
		{MalformedStream, Lexical},
		{UnmatchedBracket, Syntax},
		{UnexpectedToken, Syntax},
		{PopGlobalFrame, Scoping},
		{NoScope, Scoping},
		{HeterogeneousArray, Semantic},
		{AssignConst, Semantic},
	}

	for _, tt := range tests {
		be.Equal(t, tt.code.Category(), tt.cat)
	}
	be.Equal(t, Semantic.String(), "semantic")
}

func TestIsAndLineThroughWrapping(t *testing.T) {
	err := fmt.Errorf("check main.c: %w", Errorf(TypeMismatch, 9, "expected int, found char*"))

	be.True(t, Is(err, TypeMismatch))
	be.True(t, !Is(err, Redeclared))
	be.Equal(t, Line(err), 9)
	be.Equal(t, Line(fmt.Errorf("plain")), 0)
}

func TestIncomplete(t *testing.T) {
	d := Errorf(UnmatchedBracket, 1, "unmatched '{'")
	be.True(t, !Incomplete(d))
	d.AtEOF = true
	be.True(t, Incomplete(fmt.Errorf("repl: %w", d)))
	be.True(t, !Incomplete(fmt.Errorf("plain")))
}
