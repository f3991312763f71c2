package resolve

import (
	"github.com/tinyc-lang/tinyc/ast"
	"github.com/tinyc-lang/tinyc/diag"
	"github.com/tinyc-lang/tinyc/symtab"
	"github.com/tinyc-lang/tinyc/token"
)

// declaration is a declarator taken apart: `const char *s`, `int a[4]` or
// `int f(int a, char b)`.
type declaration struct {
	id      *ast.Id
	typ     *symtab.Type
	isConst bool

	function bool
	params   []declaration
}

// declaration decodes a PrefixOp whose operator is a type keyword or const.
func (r *resolver) declaration(n *ast.PrefixOp) declaration {
	isConst := false
	for n.Op == token.Const {
		isConst = true
		inner, ok := n.Operand.(*ast.PrefixOp)
		if !ok || !inner.Op.IsTypeName() {
			r.fail(diag.TypeMismatch, n.Line, "const must be followed by a type")
		}
		n = inner
	}

	base := symtab.Int
	if n.Op == token.CharKw {
		base = symtab.Char
	}
	return r.declarator(base, n.Operand, isConst)
}

func (r *resolver) declarator(typ *symtab.Type, n ast.Node, isConst bool) declaration {
	switch n := n.(type) {
	case *ast.Id:
		return declaration{id: n, typ: typ, isConst: isConst}

	case *ast.PrefixOp:
		switch n.Op {
		case token.Star:
			return r.declarator(symtab.PointerTo(typ), n.Operand, isConst)
		case token.Const:
			return r.declarator(typ, n.Operand, true)
		}

	case *ast.Index:
		if t := r.value(n.Index); !t.IsArithmetic() {
			r.fail(diag.TypeMismatch, n.Index.Pos(), "array size must be an integer, found %s", t)
		}
		return r.declarator(symtab.ArrayOf(typ), n.Target, isConst)

	case *ast.FunctionCall:
		id, ok := n.Callee.(*ast.Id)
		if !ok {
			break
		}
		d := declaration{id: id, isConst: isConst, function: true}
		types := make([]*symtab.Type, len(n.Args))
		for i, arg := range n.Args {
			decl, ok := arg.(*ast.PrefixOp)
			if !ok || !decl.Op.IsTypeName() {
				r.fail(diag.TypeMismatch, arg.Pos(), "parameter %d of %s must be a declaration", i+1, id.Name)
			}
			p := r.declaration(decl)
			if p.function {
				r.fail(diag.TypeMismatch, arg.Pos(), "parameter %s cannot be a function", p.id.Name)
			}
			for _, q := range d.params {
				if q.id.Name == p.id.Name {
					r.fail(diag.Redeclared, p.id.Line, "duplicate parameter %s in %s", p.id.Name, id.Name)
				}
			}
			d.params = append(d.params, p)
			types[i] = p.typ
		}
		d.typ = symtab.Function(types, typ)
		return d
	}
	r.fail(diag.TypeMismatch, n.Pos(), "invalid declarator")
	return declaration{}
}

// declare binds d in the innermost scope.
func (r *resolver) declare(d declaration) *symtab.Symbol {
	if r.tab.IsLocal(d.id.Name) {
		h, _ := r.tab.Lookup(d.id.Name)
		r.fail(diag.Redeclared, d.id.Line, "%s redeclared in this scope (previous declaration on line %d)",
			d.id.Name, h.Line)
	}
	sym, err := r.tab.Insert(d.id.Name, d.typ, d.isConst)
	r.must(err, d.id.Line)
	sym.Line = d.id.Line
	r.res.uses[d.id] = sym
	r.res.Symbols = append(r.res.Symbols, sym)
	return sym
}

// declareFunction binds a function. A prototype may be repeated, and
// followed by one definition, as long as the signatures agree.
func (r *resolver) declareFunction(d declaration, defining bool) *symtab.Symbol {
	if !r.tab.IsLocal(d.id.Name) {
		sym := r.declare(d)
		r.defined[sym] = defining
		return sym
	}

	h, _ := r.tab.Lookup(d.id.Name)
	prev := h.Symbol
	same := prev.Type.Kind == symtab.TypeFunction &&
		symtab.TypesEqual(prev.Type, d.typ) &&
		symtab.TypesEqual(prev.Type.Result, d.typ.Result)
	if !same || (defining && r.defined[prev]) {
		r.fail(diag.Redeclared, d.id.Line, "%s redeclared in this scope (previous declaration on line %d)",
			d.id.Name, prev.Line)
	}
	if defining {
		r.defined[prev] = true
	}
	r.res.uses[d.id] = prev
	return prev
}

// initialize handles `decl = value`. A function declarator with a block on
// the right is a function definition.
func (r *resolver) initialize(n *ast.InfixOp, decl *ast.PrefixOp) *symtab.Type {
	d := r.declaration(decl)
	if n.Op != token.Assign {
		r.fail(diag.NotAssignable, n.Line, "cannot use '%s' in a declaration", n.Op)
	}
	r.res.types[decl] = d.typ

	if d.function {
		body, ok := n.Right.(*ast.Block)
		if !ok {
			r.fail(diag.TypeMismatch, n.Right.Pos(), "body of %s must be a block", d.id.Name)
		}
		sym := r.declareFunction(d, true)
		r.define(d, body)
		return sym.Type
	}

	// The name is in scope in its own initializer.
	sym := r.declare(d)
	if t := r.walk(n.Right).Rvalue(); !assignable(sym.Type, t) {
		r.fail(diag.TypeMismatch, n.Line, "cannot initialize %s %s with %s", sym.Type, d.id.Name, t)
	}
	return sym.Type
}

// define resolves a function body in a new frame whose first scope holds
// the parameters.
func (r *resolver) define(d declaration, body *ast.Block) {
	r.tab.PushFrame()
	for _, p := range d.params {
		r.declare(p)
	}
	r.returns = append(r.returns, d.typ.Result)
	r.walk(body)
	r.returns = r.returns[:len(r.returns)-1]
	_, err := r.tab.PopFrame()
	r.must(err, body.Line)
}
