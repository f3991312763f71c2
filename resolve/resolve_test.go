package resolve

import (
	"testing"

	"github.com/nalgeon/be"
	"github.com/tinyc-lang/tinyc/ast"
	"github.com/tinyc-lang/tinyc/diag"
	"github.com/tinyc-lang/tinyc/parse"
	"github.com/tinyc-lang/tinyc/symtab"
)

func check(t *testing.T, code string) (ast.Node, *Result) {
	t.Helper()
	root, err := parse.String(code)
	be.Err(t, err, nil)
	res, err := Resolve(root)
	be.Err(t, err, nil)
	return root, res
}

func checkErr(t *testing.T, code string) error {
	t.Helper()
	root, err := parse.String(code)
	be.Err(t, err, nil)
	res, err := Resolve(root)
	be.True(t, res == nil)
	return err
}

func symbol(res *Result, name string) *symtab.Symbol {
	for _, s := range res.Symbols {
		if s.Name == name {
			return s
		}
	}
	return nil
}

func TestBlockScoping(t *testing.T) {
	root, res := check(t, "{ int x; { int y; } }")

	outer := ast.Statements(root)[0].(*ast.Block)
	inner := ast.Statements(outer.Statements)[1].(*ast.Block)
	be.True(t, outer.Scope != ast.NoScope)
	be.True(t, inner.Scope != ast.NoScope)
	be.True(t, outer.Scope != inner.Scope)

	outerScope := res.Scope(outer)
	be.Equal(t, outerScope.Len(), 1)
	x := outerScope.Lookup("x")
	be.Equal(t, x.Offset, 0)

	innerScope := res.Scope(inner)
	be.Equal(t, innerScope.Len(), 1)
	y := innerScope.Symbols()[0]
	be.Equal(t, y.Name, "y")
	// Offsets are relative to the frame, which both blocks share: y comes
	// after x. It is still the first symbol of its own scope, which the
	// Symbols()[0] lookup above checks.
	be.Equal(t, y.Offset, 1)
	be.Equal(t, y.Frame, 0)

	// Both blocks are closed once resolution is done.
	_, ok := res.Table.Lookup("y")
	be.True(t, !ok)
	_, ok = res.Table.Lookup("x")
	be.True(t, !ok)
	be.Equal(t, res.Table.Depth(), 1)
}

func TestNotVisibleAfterBlock(t *testing.T) {
	err := checkErr(t, "{ int y; }\ny;")
	be.True(t, diag.Is(err, diag.UndefinedIdent))
	be.Equal(t, diag.Line(err), 2)
}

func TestShadowing(t *testing.T) {
	root, res := check(t, "int x; { char x; x = 'a'; } x = 1;")
	be.Equal(t, len(res.Symbols), 2)

	var bound []*symtab.Symbol
	ast.Inspect(root, func(n ast.Node) bool {
		if id, ok := n.(*ast.Id); ok {
			bound = append(bound, res.Binding(id))
		}
		return true
	})
	be.Equal(t, len(bound), 4)
	be.True(t, bound[0] == res.Symbols[0])
	be.True(t, bound[1] == res.Symbols[1])
	be.True(t, bound[2] == res.Symbols[1])
	be.True(t, bound[3] == res.Symbols[0])
}

func TestArrays(t *testing.T) {
	_, res := check(t, "[1, 2, 3];")
	be.Equal(t, res.Type.String(), "(array int)")

	_, res = check(t, "[];")
	be.Equal(t, res.Type.String(), "undefined")

	_, res = check(t, "[[1], [2, 3]];")
	be.Equal(t, res.Type.String(), "(array (array int))")

	err := checkErr(t, "[1, 'a'];")
	be.True(t, diag.Is(err, diag.HeterogeneousArray))
	be.Equal(t, diag.Line(err), 1)

	err = checkErr(t, "int x;\n[x,\n 'a'];")
	be.True(t, diag.Is(err, diag.HeterogeneousArray))
	be.Equal(t, diag.Line(err), 2)
}

func TestRootType(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"", "undefined"},
		{"1;", "int"},
		{"1; 'a';", "char"},
		{`"hi";`, "(ptr char)"},
		{"int x; x;", "int"},
		{"int *p; *p;", "int"},
		{"char a[2]; a;", "(array char)"},
		{"char a[2]; a + 1;", "(ptr char)"},
		{"int *p; int *q; p - q;", "int"},
		{"int f(int a, char b); f;", "(func [int char] int)"},
		{"char *g(); g();", "(ptr char)"},
		{"int x; &x;", "(ptr int)"},
		{"int x; x == 1 && !x;", "int"},
		{"if (1) 2;", "undefined"},
		{"{ 'a'; }", "char"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			_, res := check(t, tt.code)
			be.Equal(t, res.Type.String(), tt.want)
		})
	}
}

func TestTypeOf(t *testing.T) {
	root, res := check(t, "int x = 2; x + 'a';")
	sum := ast.Statements(root)[1].(*ast.InfixOp)
	be.Equal(t, res.TypeOf(sum).String(), "int")
	be.Equal(t, res.TypeOf(sum.Right).String(), "char")
	be.True(t, res.TypeOf(sum.Left).Assignable)
}

func TestFunctions(t *testing.T) {
	code := `
int add(int a, int b) = {
	int c = a + b;
	return c;
};
add(1, 'x');
`
	_, res := check(t, code)
	be.Equal(t, res.Type.String(), "int")

	add := symbol(res, "add")
	be.Equal(t, add.Type.String(), "(func [int int] int)")
	be.Equal(t, add.Frame, 0)
	be.Equal(t, add.Offset, 0)

	// Parameters open the function's frame.
	for i, name := range []string{"a", "b", "c"} {
		s := symbol(res, name)
		be.Equal(t, s.Frame, 1)
		be.Equal(t, s.Offset, i)
	}
	be.Equal(t, res.Table.Frame(), 0)
}

func TestRecursion(t *testing.T) {
	_, res := check(t, "int fact(int n) = { if (n < 2) return 1; return n * fact(n - 1); };")
	be.Equal(t, symbol(res, "fact").Type.String(), "(func [int] int)")
}

func TestPrototype(t *testing.T) {
	_, res := check(t, "int f(int a); int f(int b) = { return b; }; f(1);")
	be.Equal(t, len(res.Symbols), 2)

	err := checkErr(t, "int f(int a) = { return a; };\nint f(int a) = { return a; };")
	be.True(t, diag.Is(err, diag.Redeclared))
	be.Equal(t, diag.Line(err), 2)

	err = checkErr(t, "int f(int a); int f(char a);")
	be.True(t, diag.Is(err, diag.Redeclared))
}

func TestCapture(t *testing.T) {
	code := `
int g = 1;
int outer() = {
	int x = 2;
	int y = 3;
	int inner() = { return x; };
	return y + inner() + g;
};
`
	_, res := check(t, code)
	be.True(t, symbol(res, "x").Captured)
	be.True(t, !symbol(res, "y").Captured)
	be.True(t, !symbol(res, "inner").Captured)
	be.True(t, !symbol(res, "outer").Captured)
	// Globals live in frame 0, so a function body reaching them crosses a
	// frame too.
	be.True(t, symbol(res, "g").Captured)

	be.Equal(t, symbol(res, "x").Frame, 1)
	be.Equal(t, symbol(res, "x").Offset, 0)
	be.Equal(t, symbol(res, "inner").Offset, 2)
}

func TestConst(t *testing.T) {
	_, res := check(t, "const int c = 1; c + 1;")
	be.True(t, symbol(res, "c").Const)

	tests := []string{
		"const int c = 1; c = 2;",
		"const int c = 1; c += 2;",
		"const char c = 'a'; c++;",
		"int const c = 1; --c;",
		"const int a[2]; a[0] = 1;",
		"const char s[3]; s[1]++;",
		"const int a[2]; *a = 1;",
		"const int a[2]; *(a + 1) += 1;",
		"const int x = 1; (*&x) = 2;",
	}
	for _, code := range tests {
		t.Run(code, func(t *testing.T) {
			err := checkErr(t, code)
			be.True(t, diag.Is(err, diag.AssignConst))
		})
	}
}

func TestConstPointers(t *testing.T) {
	// A pointer to a const object cannot be stored where writes are allowed.
	tests := []string{
		"const int x = 1; int *p = &x; *p = 2;",
		"const int x = 1; int *p; p = &x;",
		"const int a[2]; int *p = a;",
		"const int x = 1; int f(int *p) = { return 0; }; f(&x);",
		"const int x = 1; int *f() = { return &x; };",
	}
	for _, code := range tests {
		t.Run(code, func(t *testing.T) {
			err := checkErr(t, code)
			be.True(t, diag.Is(err, diag.TypeMismatch))
		})
	}

	// Reading through const is fine, and a const value copies freely.
	_, res := check(t, "const int a[2]; int y = a[0] + *a; int z = y; z = a[1];")
	be.True(t, !symbol(res, "y").Const)

	root, res := check(t, "const int x = 1; &x;")
	addr := ast.Statements(root)[1]
	be.Equal(t, res.TypeOf(addr).String(), "(ptr (const int))")
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		code string
		want diag.Code
		line int
	}{
		{"undefined", "x = 1;", diag.UndefinedIdent, 1},
		{"undefined in function", "int f() = {\n return z;\n};", diag.UndefinedIdent, 2},
		{"redeclared", "int x;\nint x;", diag.Redeclared, 2},
		{"redeclared parameter", "int f(int a, int a);", diag.Redeclared, 1},
		{"literal target", "1 = 2;", diag.NotAssignable, 1},
		{"array target", "int a[2]; a = 1;", diag.NotAssignable, 1},
		{"function target", "int f(); f = 1;", diag.NotAssignable, 1},
		{"address of rvalue", "&1;", diag.NotAssignable, 1},
		{"compound declaration", "int x += 1;", diag.NotAssignable, 1},
		{"bad initializer", `int x = "s";`, diag.TypeMismatch, 1},
		{"arity", "int f(int a, int b); f(1);", diag.TypeMismatch, 1},
		{"argument type", `int f(int a); f("s");`, diag.TypeMismatch, 1},
		{"not callable", "int x; x(1);", diag.TypeMismatch, 1},
		{"return outside function", "return 1;", diag.TypeMismatch, 1},
		{"return type", `int f() = { return "s"; };`, diag.TypeMismatch, 1},
		{"missing return value", "int f() = { return; };", diag.TypeMismatch, 1},
		{"pointer times int", "int *p; p * 2;", diag.TypeMismatch, 1},
		{"deref int", "int x; *x;", diag.TypeMismatch, 1},
		{"index int", "int x; x[0];", diag.TypeMismatch, 1},
		{"pointer index", "int a[2]; int *p; a[p];", diag.TypeMismatch, 1},
		{"function condition", "int f(); while (f) 1;", diag.TypeMismatch, 1},
		{"body not block", "int f() = 1;", diag.TypeMismatch, 1},
		{"bad parameter", "int f(x);", diag.TypeMismatch, 1},
		{"bad declarator", "int 1;", diag.TypeMismatch, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkErr(t, tt.code)
			be.True(t, diag.Is(err, tt.want))
			be.Equal(t, diag.Line(err), tt.line)
		})
	}
}

func TestPointersAndArrays(t *testing.T) {
	code := `
int a[3];
int *p = a;
char *s = "hi";
a[0] = 1;
*p = a[1] + 2;
p = p + 1;
p++;
s[0] = 'x';
int x = 0;
while (x < 3) { x += 1; }
`
	_, res := check(t, code)
	be.Equal(t, symbol(res, "a").Type.String(), "(array int)")
	be.Equal(t, symbol(res, "s").Type.String(), "(ptr char)")
}

func TestSymbolsSExpr(t *testing.T) {
	_, res := check(t, `const int c = 1; int f(char a) = { return c; };`)
	be.Equal(t, res.SymbolsSExpr(),
		`[(sym "c" int 0 0 const captured) (sym "f" (func [char] int) 0 1) (sym "a" char 1 0)]`)

	_, res = check(t, "1;")
	be.Equal(t, res.SymbolsSExpr(), "[]")
}
