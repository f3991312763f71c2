package sexy

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestParseSymbol(t *testing.T) {
	tests := []string{"hello", "test_var", "func-name", "x", "_", "+", "==", "&&"}

	for _, input := range tests {
		result, err := Parse(input)
		be.Err(t, err, nil)

		be.Equal(t, result.Type, NodeSymbol)
		be.Equal(t, result.Text, input)
		be.Equal(t, result.String(), input)
	}
}

func TestParseString(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		output   string
	}{
		{`"hello"`, "hello", `"hello"`},
		{`"hello world"`, "hello world", `"hello world"`},
		{`""`, "", `""`},
		{`"test\"quote"`, `test"quote`, `"test\"quote"`},
		{`"test\\backslash"`, `test\backslash`, `"test\\backslash"`},
		{`"a\nb\tc"`, "a\nb\tc", `"a\nb\tc"`},
		{`"\0"`, "\x00", `"\0"`},
		{`"+"`, "+", `"+"`},
	}

	for _, test := range tests {
		result, err := Parse(test.input)
		be.Err(t, err, nil)

		be.Equal(t, result.Type, NodeString)
		be.Equal(t, result.Text, test.expected)
		be.Equal(t, result.String(), test.output)
	}
}

func TestParseInteger(t *testing.T) {
	for _, input := range []string{"42", "0", "-123", "+456"} {
		result, err := Parse(input)
		be.Err(t, err, nil)

		be.Equal(t, result.Type, NodeInteger)
		be.Equal(t, result.Text, input)
		be.Equal(t, result.String(), input)
	}
}

func TestParseEllipsis(t *testing.T) {
	result, err := Parse("...")
	be.Err(t, err, nil)

	be.Equal(t, result.Type, NodeEllipsis)
	be.Equal(t, result.String(), "...")
}

func TestParseNested(t *testing.T) {
	input := `(stmt (binary "=" (prefix "int" (var "x")) 1) empty)`
	result, err := Parse(input)
	be.Err(t, err, nil)

	be.Equal(t, result.Type, NodeList)
	be.Equal(t, len(result.Items), 3)
	be.Equal(t, result.Items[0].Text, "stmt")
	be.Equal(t, result.Items[1].Items[1].Text, "=")
	be.Equal(t, result.String(), input)
}

func TestParseArray(t *testing.T) {
	result, err := Parse(`(call (var "f") [1 (char "a")])`)
	be.Err(t, err, nil)

	args := result.Items[2]
	be.Equal(t, args.Type, NodeArray)
	be.Equal(t, len(args.Items), 2)
	be.Equal(t, args.String(), `[1 (char "a")]`)

	empty, err := Parse("[]")
	be.Err(t, err, nil)
	be.Equal(t, len(empty.Items), 0)
	be.Equal(t, empty.String(), "[]")
}

func TestParseComments(t *testing.T) {
	result, err := Parse("; leading\n(a ; trailing\n b)")
	be.Err(t, err, nil)
	be.Equal(t, result.String(), "(a b)")
}

func TestParseWhitespace(t *testing.T) {
	result, err := Parse("\n  (a\n\t b   c)  \n")
	be.Err(t, err, nil)
	be.Equal(t, result.String(), "(a b c)")
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		err   string
	}{
		{"", "unexpected token: EOF"},
		{"(a b", "expected ')' but got EOF"},
		{"[a", "expected ']' but got EOF"},
		{")", "unexpected token: ')'"},
		{"a b", "expected end of input"},
		{`"abc`, "unterminated string"},
		{`"\q"`, "invalid escape sequence"},
		{"{}", "unexpected character '{'"},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			_, err := Parse(test.input)
			be.Err(t, err, test.err)
		})
	}
}

func TestMustParse(t *testing.T) {
	be.Equal(t, MustParse("(a 1)").String(), "(a 1)")

	defer func() {
		be.True(t, recover() != nil)
	}()
	MustParse("(")
}

func TestIsAtom(t *testing.T) {
	be.True(t, NewSymbol("x").IsAtom())
	be.True(t, NewString("x").IsAtom())
	be.True(t, NewInteger("1").IsAtom())
	be.True(t, NewEllipsis().IsAtom())
	be.True(t, !NewList().IsAtom())
	be.True(t, !NewArray().IsAtom())
	be.True(t, NewSymbol("_").IsWildcard())
	be.True(t, !NewString("_").IsWildcard())
}
