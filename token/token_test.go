package token

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestKeyword(t *testing.T) {
	tests := []struct {
		input string
		kind  Kind
	}{
		{"while", While},
		{"if", If},
		{"else", Else},
		{"int", IntKw},
		{"char", CharKw},
		{"const", Const},
		{"return", Return},
		{"foo", Ident},
		{"Int", Ident},
	}

	for _, tt := range tests {
		be.Equal(t, Keyword(tt.input), tt.kind)
	}
}

func TestKindPredicates(t *testing.T) {
	be.True(t, IntKw.IsTypeName())
	be.True(t, Const.IsTypeName())
	be.True(t, !Return.IsTypeName())
	be.True(t, PlusAssign.IsAssign())
	be.True(t, !Eq.IsAssign())
	be.True(t, While.IsKeyword())
	be.True(t, !Ident.IsKeyword())
}

func TestTokenDescribe(t *testing.T) {
	be.Equal(t, Token{Kind: Ident, Text: "foo"}.Describe(), "identifier foo")
	be.Equal(t, Token{Kind: Int, Int: 42}.Describe(), "integer 42")
	be.Equal(t, Token{Kind: Char, Char: 'a'}.Describe(), "character 'a'")
	be.Equal(t, Token{Kind: Plus}.Describe(), "'+'")
	be.Equal(t, Token{Kind: EOF}.Describe(), "end of input")
}

func TestPeekIsIdempotent(t *testing.T) {
	src := NewSliceSource([]Token{
		{Kind: Int, Int: 1, Line: 1},
		{Kind: Semi, Line: 1},
	})

	for i := 0; i < 5; i++ {
		tok, ok := src.Peek()
		be.True(t, ok)
		be.Equal(t, tok.Kind, Int)
	}
	be.Equal(t, src.Consumed(), 0)

	tok, ok := src.Next()
	be.True(t, ok)
	be.Equal(t, tok.Int, int64(1))
	be.Equal(t, src.Consumed(), 1)
}

func TestSliceSourceEOFOnce(t *testing.T) {
	src := NewSliceSource([]Token{{Kind: Ident, Text: "x", Line: 3}})

	src.Next()
	tok, ok := src.Next()
	be.True(t, ok)
	be.Equal(t, tok.Kind, EOF)
	be.Equal(t, tok.Line, 3)

	_, ok = src.Peek()
	be.True(t, !ok)
	_, ok = src.Next()
	be.True(t, !ok)
}

func TestSliceSourceKeepsExistingEOF(t *testing.T) {
	toks := Collect(NewSliceSource([]Token{{Kind: EOF, Line: 7}}))
	be.Equal(t, len(toks), 1)
	be.Equal(t, toks[0].Line, 7)
}
