// Package ast declares the syntax tree produced by package parse.
//
// Node is a closed union: every variant is a pointer to one of the structs
// below, and the unexported marker method keeps other packages from adding
// variants. Each node owns its children; the only non-tree edge is
// Block.Scope, a handle into the resolver's symbol table.
package ast

import "github.com/tinyc-lang/tinyc/token"

// Node is implemented by every syntax tree variant.
type Node interface {
	// Pos returns the source line of the node's first token.
	Pos() int
	node()
}

// ScopeRef is a non-owning handle to the scope the resolver created for a
// Block. NoScope means the block has not been resolved.
type ScopeRef int

const NoScope ScopeRef = 0

type (
	// Empty stands for "no node here": an omitted else branch, the end of a
	// statement list, or an empty program.
	Empty struct {
		Line int
	}

	IntLiteral struct {
		Line  int
		Value int64
	}

	CharLiteral struct {
		Line  int
		Value rune
	}

	StringLiteral struct {
		Line  int
		Value string
	}

	// Array is a bracketed literal [a, b, c].
	Array struct {
		Line     int
		Elements []Node
	}

	// Statement is a cons cell. Next is another *Statement or *Empty.
	Statement struct {
		Line int
		Expr Node
		Next Node
	}

	// Block is a brace-delimited statement list.
	Block struct {
		Line       int
		Statements Node
		Scope      ScopeRef
	}

	Id struct {
		Line int
		Name string
	}

	InfixOp struct {
		Line  int
		Op    token.Kind
		Left  Node
		Right Node
	}

	// PrefixOp covers unary operators, declarations (Op is a type keyword
	// or const) and return.
	PrefixOp struct {
		Line    int
		Op      token.Kind
		Operand Node
	}

	PostfixOp struct {
		Line    int
		Op      token.Kind
		Operand Node
	}

	// Index is a subscript a[i].
	Index struct {
		Line   int
		Target Node
		Index  Node
	}

	FunctionCall struct {
		Line   int
		Callee Node
		Args   []Node
	}

	If struct {
		Line int
		Cond Node
		Then Node
		Else Node // *Empty when there is no else
	}

	While struct {
		Line int
		Cond Node
		Body Node
	}
)

func (n *Empty) Pos() int         { return n.Line }
func (n *IntLiteral) Pos() int    { return n.Line }
func (n *CharLiteral) Pos() int   { return n.Line }
func (n *StringLiteral) Pos() int { return n.Line }
func (n *Array) Pos() int         { return n.Line }
func (n *Statement) Pos() int     { return n.Line }
func (n *Block) Pos() int         { return n.Line }
func (n *Id) Pos() int            { return n.Line }
func (n *InfixOp) Pos() int       { return n.Line }
func (n *PrefixOp) Pos() int      { return n.Line }
func (n *PostfixOp) Pos() int     { return n.Line }
func (n *Index) Pos() int         { return n.Line }
func (n *FunctionCall) Pos() int  { return n.Line }
func (n *If) Pos() int            { return n.Line }
func (n *While) Pos() int         { return n.Line }

func (*Empty) node()         {}
func (*IntLiteral) node()    {}
func (*CharLiteral) node()   {}
func (*StringLiteral) node() {}
func (*Array) node()         {}
func (*Statement) node()     {}
func (*Block) node()         {}
func (*Id) node()            {}
func (*InfixOp) node()       {}
func (*PrefixOp) node()      {}
func (*PostfixOp) node()     {}
func (*Index) node()         {}
func (*FunctionCall) node()  {}
func (*If) node()            {}
func (*While) node()         {}

// IsEmpty reports whether n is the Empty placeholder.
func IsEmpty(n Node) bool {
	_, ok := n.(*Empty)
	return ok
}

// Statements flattens a Statement list into its expressions.
func Statements(list Node) []Node {
	var out []Node
	for {
		s, ok := list.(*Statement)
		if !ok {
			return out
		}
		out = append(out, s.Expr)
		list = s.Next
	}
}

// Children returns the direct children of n in source order.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *Array:
		return n.Elements
	case *Statement:
		return []Node{n.Expr, n.Next}
	case *Block:
		return []Node{n.Statements}
	case *InfixOp:
		return []Node{n.Left, n.Right}
	case *PrefixOp:
		return []Node{n.Operand}
	case *PostfixOp:
		return []Node{n.Operand}
	case *Index:
		return []Node{n.Target, n.Index}
	case *FunctionCall:
		return append([]Node{n.Callee}, n.Args...)
	case *If:
		return []Node{n.Cond, n.Then, n.Else}
	case *While:
		return []Node{n.Cond, n.Body}
	}
	return nil
}

// Inspect visits n and its descendants depth-first, pre-order. Children of a
// node are skipped when f returns false.
func Inspect(n Node, f func(Node) bool) {
	if !f(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, f)
	}
}
