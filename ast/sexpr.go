package ast

import (
	"strconv"
	"strings"
)

// ToSExpr converts a node to its s-expression representation, the form the
// Markdown test suites assert against.
func ToSExpr(node Node) string {
	var b strings.Builder
	writeSExpr(&b, node)
	return b.String()
}

func writeSExpr(b *strings.Builder, node Node) {
	switch n := node.(type) {
	case nil:
		b.WriteString("nil")
	case *Empty:
		b.WriteString("empty")
	case *IntLiteral:
		b.WriteString(strconv.FormatInt(n.Value, 10))
	case *CharLiteral:
		b.WriteString("(char ")
		b.WriteString(Quote(string(n.Value)))
		b.WriteString(")")
	case *StringLiteral:
		b.WriteString("(string ")
		b.WriteString(Quote(n.Value))
		b.WriteString(")")
	case *Array:
		b.WriteString("(array ")
		writeList(b, n.Elements)
		b.WriteString(")")
	case *Statement:
		b.WriteString("(stmt ")
		writeSExpr(b, n.Expr)
		b.WriteString(" ")
		writeSExpr(b, n.Next)
		b.WriteString(")")
	case *Block:
		b.WriteString("(block ")
		writeSExpr(b, n.Statements)
		b.WriteString(")")
	case *Id:
		b.WriteString("(var ")
		b.WriteString(Quote(n.Name))
		b.WriteString(")")
	case *InfixOp:
		b.WriteString("(binary ")
		b.WriteString(Quote(string(n.Op)))
		b.WriteString(" ")
		writeSExpr(b, n.Left)
		b.WriteString(" ")
		writeSExpr(b, n.Right)
		b.WriteString(")")
	case *PrefixOp:
		b.WriteString("(prefix ")
		b.WriteString(Quote(string(n.Op)))
		b.WriteString(" ")
		writeSExpr(b, n.Operand)
		b.WriteString(")")
	case *PostfixOp:
		b.WriteString("(postfix ")
		b.WriteString(Quote(string(n.Op)))
		b.WriteString(" ")
		writeSExpr(b, n.Operand)
		b.WriteString(")")
	case *Index:
		b.WriteString("(index ")
		writeSExpr(b, n.Target)
		b.WriteString(" ")
		writeSExpr(b, n.Index)
		b.WriteString(")")
	case *FunctionCall:
		b.WriteString("(call ")
		writeSExpr(b, n.Callee)
		b.WriteString(" ")
		writeList(b, n.Args)
		b.WriteString(")")
	case *If:
		b.WriteString("(if ")
		writeSExpr(b, n.Cond)
		b.WriteString(" ")
		writeSExpr(b, n.Then)
		b.WriteString(" ")
		writeSExpr(b, n.Else)
		b.WriteString(")")
	case *While:
		b.WriteString("(while ")
		writeSExpr(b, n.Cond)
		b.WriteString(" ")
		writeSExpr(b, n.Body)
		b.WriteString(")")
	}
}

func writeList(b *strings.Builder, nodes []Node) {
	b.WriteString("[")
	for i, n := range nodes {
		if i > 0 {
			b.WriteString(" ")
		}
		writeSExpr(b, n)
	}
	b.WriteString("]")
}

// Quote writes s as an s-expression string literal.
func Quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case 0:
			b.WriteString(`\0`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
