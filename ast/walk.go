package ast

import "fmt"

// Visitor computes a T for each variant. Walk dispatches to it; a new
// variant therefore breaks every Visitor implementation until handled.
type Visitor[T any] interface {
	VisitEmpty(n *Empty) T
	VisitInt(n *IntLiteral) T
	VisitChar(n *CharLiteral) T
	VisitString(n *StringLiteral) T
	VisitArray(n *Array) T
	VisitStatement(n *Statement) T
	VisitBlock(n *Block) T
	VisitId(n *Id) T
	VisitInfix(n *InfixOp) T
	VisitPrefix(n *PrefixOp) T
	VisitPostfix(n *PostfixOp) T
	VisitIndex(n *Index) T
	VisitCall(n *FunctionCall) T
	VisitIf(n *If) T
	VisitWhile(n *While) T
}

// Walk dispatches n to the matching Visitor method.
func Walk[T any](v Visitor[T], n Node) T {
	switch n := n.(type) {
	case *Empty:
		return v.VisitEmpty(n)
	case *IntLiteral:
		return v.VisitInt(n)
	case *CharLiteral:
		return v.VisitChar(n)
	case *StringLiteral:
		return v.VisitString(n)
	case *Array:
		return v.VisitArray(n)
	case *Statement:
		return v.VisitStatement(n)
	case *Block:
		return v.VisitBlock(n)
	case *Id:
		return v.VisitId(n)
	case *InfixOp:
		return v.VisitInfix(n)
	case *PrefixOp:
		return v.VisitPrefix(n)
	case *PostfixOp:
		return v.VisitPostfix(n)
	case *Index:
		return v.VisitIndex(n)
	case *FunctionCall:
		return v.VisitCall(n)
	case *If:
		return v.VisitIf(n)
	case *While:
		return v.VisitWhile(n)
	default:
		panic(fmt.Sprintf("ast: unexpected node %T", n))
	}
}
