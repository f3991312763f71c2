// Package resolve binds identifiers to symbols and computes a type for every
// node of a parsed program.
//
// The walk is a single depth-first pass driving a symtab.Table: blocks push
// and pop scopes, function definitions push and pop frames. The first
// error aborts the pass.
package resolve

import (
	"github.com/tinyc-lang/tinyc/ast"
	"github.com/tinyc-lang/tinyc/diag"
	"github.com/tinyc-lang/tinyc/symtab"
	"github.com/tinyc-lang/tinyc/token"
)

// Result is a resolved program.
type Result struct {
	// Type of the root: the type of the last statement, or Undefined.
	Type  *symtab.Type
	Table *symtab.Table
	// Symbols holds every declared symbol, parameters included, in
	// declaration order.
	Symbols []*symtab.Symbol

	types map[ast.Node]*symtab.Type
	uses  map[*ast.Id]*symtab.Symbol
}

// TypeOf returns the type computed for n, or nil if n was not visited.
func (r *Result) TypeOf(n ast.Node) *symtab.Type {
	return r.types[n]
}

// Binding returns the symbol an identifier occurrence (use or declaration)
// is bound to.
func (r *Result) Binding(id *ast.Id) *symtab.Symbol {
	return r.uses[id]
}

// Scope returns the scope stamped on a resolved block.
func (r *Result) Scope(b *ast.Block) *symtab.Scope {
	return r.Table.Scope(int(b.Scope))
}

type resolver struct {
	tab *symtab.Table
	res *Result

	// Result types of the enclosing function definitions, innermost last.
	returns []*symtab.Type
	// Function symbols that already have a body.
	defined map[*symtab.Symbol]bool
}

// Resolve walks root, stamping scope references on its blocks.
func Resolve(root ast.Node) (res *Result, err error) {
	r := &resolver{
		tab: symtab.New(),
		res: &Result{
			types: make(map[ast.Node]*symtab.Type),
			uses:  make(map[*ast.Id]*symtab.Symbol),
		},
		defined: make(map[*symtab.Symbol]bool),
	}
	r.res.Table = r.tab

	defer func() {
		if rec := recover(); rec != nil {
			d, ok := rec.(*diag.Error)
			if !ok {
				panic(rec)
			}
			res, err = nil, d
		}
	}()

	r.res.Type = r.walk(root)
	return r.res, nil
}

func (r *resolver) fail(code diag.Code, line int, format string, args ...any) {
	panic(diag.Errorf(code, line, format, args...))
}

// must aborts on a symbol table error, attributing it to line.
func (r *resolver) must(err error, line int) {
	if err == nil {
		return
	}
	d, ok := err.(*diag.Error)
	if !ok {
		panic(err)
	}
	if d.Line == 0 {
		d.Line = line
	}
	panic(d)
}

func (r *resolver) walk(n ast.Node) *symtab.Type {
	t := ast.Walk[*symtab.Type](r, n)
	r.res.types[n] = t
	return t
}

// value walks n as an rvalue; arrays decay to pointers.
func (r *resolver) value(n ast.Node) *symtab.Type {
	return r.walk(n).Rvalue().Decay()
}

func (r *resolver) VisitEmpty(*ast.Empty) *symtab.Type {
	return symtab.Undefined
}

func (r *resolver) VisitInt(*ast.IntLiteral) *symtab.Type {
	return symtab.Int
}

func (r *resolver) VisitChar(*ast.CharLiteral) *symtab.Type {
	return symtab.Char
}

func (r *resolver) VisitString(*ast.StringLiteral) *symtab.Type {
	return symtab.PointerTo(symtab.Char)
}

func (r *resolver) VisitArray(n *ast.Array) *symtab.Type {
	if len(n.Elements) == 0 {
		return symtab.Undefined
	}
	first := r.walk(n.Elements[0]).Rvalue()
	for i, e := range n.Elements[1:] {
		t := r.walk(e)
		if !symtab.TypesEqual(first, t) {
			r.fail(diag.HeterogeneousArray, n.Line,
				"heterogeneous array: element %d is %s, expected %s", i+2, t, first)
		}
	}
	return symtab.ArrayOf(first)
}

func (r *resolver) VisitStatement(n *ast.Statement) *symtab.Type {
	t := r.walk(n.Expr)
	next := r.walk(n.Next)
	if ast.IsEmpty(n.Next) {
		return t
	}
	return next
}

func (r *resolver) VisitBlock(n *ast.Block) *symtab.Type {
	s := r.tab.PushScope()
	n.Scope = ast.ScopeRef(s.ID)
	t := r.walk(n.Statements)
	_, err := r.tab.PopScope()
	r.must(err, n.Line)
	return t
}

func (r *resolver) VisitId(n *ast.Id) *symtab.Type {
	h, ok := r.tab.Lookup(n.Name)
	if !ok {
		r.fail(diag.UndefinedIdent, n.Line, "undefined identifier %s", n.Name)
	}
	if h.Frame != r.tab.Frame() {
		h.Captured = true
	}
	r.res.uses[n] = h.Symbol

	t := h.Type
	if h.Const {
		t = t.Qualified()
	}
	switch t.Kind {
	case symtab.TypeFunction, symtab.TypeArray:
		return t
	}
	return t.Lvalue()
}

func (r *resolver) VisitInfix(n *ast.InfixOp) *symtab.Type {
	if n.Op.IsAssign() {
		if decl, ok := n.Left.(*ast.PrefixOp); ok && decl.Op.IsTypeName() {
			return r.initialize(n, decl)
		}
		return r.assign(n)
	}

	l, rt := r.value(n.Left), r.value(n.Right)
	arith := l.IsArithmetic() && rt.IsArithmetic()
	switch n.Op {
	case token.Plus:
		switch {
		case arith:
			return symtab.Int
		case l.Kind == symtab.TypePointer && rt.IsArithmetic():
			return l
		case l.IsArithmetic() && rt.Kind == symtab.TypePointer:
			return rt
		}
	case token.Minus:
		switch {
		case arith:
			return symtab.Int
		case l.Kind == symtab.TypePointer && rt.IsArithmetic():
			return l
		case l.Kind == symtab.TypePointer && symtab.TypesEqual(l, rt):
			return symtab.Int
		}
	case token.Star, token.Slash, token.Percent:
		if arith {
			return symtab.Int
		}
	case token.Eq, token.NotEq, token.Lt, token.Le, token.Gt, token.Ge:
		if arith || (l.Kind == symtab.TypePointer && symtab.TypesEqual(l, rt)) {
			return symtab.Int
		}
	case token.AndAnd, token.OrOr:
		if l.IsScalar() && rt.IsScalar() {
			return symtab.Int
		}
	}
	r.fail(diag.TypeMismatch, n.Line, "invalid operands to '%s': %s and %s", n.Op, l, rt)
	return nil
}

// assign checks an assignment-family operator whose left side is an
// expression.
func (r *resolver) assign(n *ast.InfixOp) *symtab.Type {
	lt := r.walk(n.Left)
	r.mutable(n.Left, lt)
	rt := r.value(n.Right)

	ok := false
	switch n.Op {
	case token.Assign:
		ok = assignable(lt, rt)
	case token.PlusAssign, token.MinusAssign:
		ok = (lt.IsArithmetic() || lt.Kind == symtab.TypePointer) && rt.IsArithmetic()
	case token.StarAssign, token.SlashAssign:
		ok = lt.IsArithmetic() && rt.IsArithmetic()
	}
	if !ok {
		r.fail(diag.TypeMismatch, n.Line, "cannot use %s as %s in '%s'", rt, lt.Rvalue(), n.Op)
	}
	return lt.Rvalue()
}

// mutable fails unless target may be written. Const reaches t through
// indexing and dereference as well as through a const name.
func (r *resolver) mutable(target ast.Node, t *symtab.Type) {
	if t.Const {
		r.fail(diag.AssignConst, target.Pos(), "cannot assign to const %s", describe(target))
	}
	if !t.Assignable {
		r.fail(diag.NotAssignable, target.Pos(), "cannot assign to %s: not an lvalue", describe(target))
	}
}

func assignable(dst, src *symtab.Type) bool {
	if dst.IsArithmetic() && src.IsArithmetic() {
		return true
	}
	if !symtab.TypesEqual(dst, src) {
		src = src.Decay()
		if !symtab.TypesEqual(dst, src) {
			return false
		}
	}
	return !symtab.DropsConst(dst, src)
}

func (r *resolver) VisitPrefix(n *ast.PrefixOp) *symtab.Type {
	switch {
	case n.Op.IsTypeName():
		d := r.declaration(n)
		if d.function {
			return r.declareFunction(d, false).Type
		}
		return r.declare(d).Type
	case n.Op == token.Return:
		return r.ret(n)
	}

	switch n.Op {
	case token.Minus:
		if t := r.value(n.Operand); t.IsArithmetic() {
			return symtab.Int
		}
	case token.Bang:
		if t := r.value(n.Operand); t.IsScalar() {
			return symtab.Int
		}
	case token.Star:
		if t := r.value(n.Operand); t.Kind == symtab.TypePointer {
			return t.Child.Lvalue()
		}
	case token.Amp:
		t := r.walk(n.Operand)
		if !t.Assignable && t.Kind != symtab.TypeArray && t.Kind != symtab.TypeFunction {
			r.fail(diag.NotAssignable, n.Line, "cannot take the address of %s", describe(n.Operand))
		}
		return symtab.PointerTo(t)
	case token.PlusPlus, token.MinusMinus:
		return r.step(n.Line, n.Op, n.Operand)
	}
	r.fail(diag.TypeMismatch, n.Line, "invalid operand to '%s': %s", n.Op, r.res.types[n.Operand])
	return nil
}

func (r *resolver) VisitPostfix(n *ast.PostfixOp) *symtab.Type {
	return r.step(n.Line, n.Op, n.Operand)
}

// step checks an increment or decrement of operand.
func (r *resolver) step(line int, op token.Kind, operand ast.Node) *symtab.Type {
	t := r.walk(operand)
	r.mutable(operand, t)
	if !t.IsArithmetic() && t.Kind != symtab.TypePointer {
		r.fail(diag.TypeMismatch, line, "invalid operand to '%s': %s", op, t)
	}
	return t.Rvalue()
}

func (r *resolver) ret(n *ast.PrefixOp) *symtab.Type {
	if len(r.returns) == 0 {
		r.fail(diag.TypeMismatch, n.Line, "return outside of a function")
	}
	want := r.returns[len(r.returns)-1]
	if ast.IsEmpty(n.Operand) {
		r.fail(diag.TypeMismatch, n.Line, "missing return value, expected %s", want)
	}
	if got := r.value(n.Operand); !assignable(want, got) {
		r.fail(diag.TypeMismatch, n.Line, "cannot return %s from a function returning %s", got, want)
	}
	return symtab.Undefined
}

func (r *resolver) VisitIndex(n *ast.Index) *symtab.Type {
	t := r.value(n.Target)
	if t.Kind != symtab.TypePointer {
		r.fail(diag.TypeMismatch, n.Line, "cannot index %s", t)
	}
	if i := r.value(n.Index); !i.IsArithmetic() {
		r.fail(diag.TypeMismatch, n.Index.Pos(), "index must be an integer, found %s", i)
	}
	return t.Child.Lvalue()
}

func (r *resolver) VisitCall(n *ast.FunctionCall) *symtab.Type {
	fn := r.walk(n.Callee)
	if fn.Kind != symtab.TypeFunction {
		r.fail(diag.TypeMismatch, n.Line, "cannot call %s of type %s", describe(n.Callee), fn)
	}
	if len(n.Args) != len(fn.Params) {
		r.fail(diag.TypeMismatch, n.Line, "%s expects %d arguments, found %d",
			describe(n.Callee), len(fn.Params), len(n.Args))
	}
	for i, arg := range n.Args {
		if t := r.value(arg); !assignable(fn.Params[i], t) {
			r.fail(diag.TypeMismatch, arg.Pos(), "argument %d of %s: cannot use %s as %s",
				i+1, describe(n.Callee), t, fn.Params[i])
		}
	}
	return fn.Result
}

func (r *resolver) VisitIf(n *ast.If) *symtab.Type {
	r.condition(n.Cond, "if")
	r.walk(n.Then)
	r.walk(n.Else)
	return symtab.Undefined
}

func (r *resolver) VisitWhile(n *ast.While) *symtab.Type {
	r.condition(n.Cond, "while")
	r.walk(n.Body)
	return symtab.Undefined
}

func (r *resolver) condition(cond ast.Node, kw string) {
	if t := r.value(cond); !t.IsScalar() {
		r.fail(diag.TypeMismatch, cond.Pos(), "%s condition must be a scalar, found %s", kw, t)
	}
}

// describe names an expression in diagnostics.
func describe(n ast.Node) string {
	if id, ok := n.(*ast.Id); ok {
		return id.Name
	}
	return "expression"
}
