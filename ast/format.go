package ast

import (
	"fmt"
	"strings"
)

// Format draws n as an indented tree for debugging:
//
//	┗STMT
//	   ┗━+
//	      ┣1
//	      ┗2
//
// Statement lists are drawn flat, one STMT entry per element.
func Format(n Node) string {
	var b strings.Builder
	f := treeFormatter{b: &b}
	f.node(n, "", true)
	return strings.TrimSuffix(b.String(), "\n")
}

type treeFormatter struct {
	b *strings.Builder
}

func (f treeFormatter) line(prefix string, last bool, label string) string {
	branch, pad := "┣", "┃  "
	if last {
		branch, pad = "┗", "   "
	}
	fmt.Fprintf(f.b, "%s%s%s\n", prefix, branch, label)
	return prefix + pad
}

func (f treeFormatter) node(n Node, prefix string, last bool) {
	switch n := n.(type) {
	case *Statement:
		// Flatten the cons list: each statement sits at the same depth.
		for {
			stmt, ok := n.Next.(*Statement)
			next := f.line(prefix, last && !ok, "STMT")
			f.node(n.Expr, next, true)
			if !ok {
				if !IsEmpty(n.Next) {
					f.node(n.Next, prefix, last)
				}
				return
			}
			n = stmt
		}
	case *Empty:
		f.line(prefix, last, "empty")
	case *IntLiteral:
		f.line(prefix, last, fmt.Sprint(n.Value))
	case *CharLiteral:
		f.line(prefix, last, fmt.Sprintf("%q", n.Value))
	case *StringLiteral:
		f.line(prefix, last, fmt.Sprintf("%q", n.Value))
	case *Id:
		f.line(prefix, last, n.Name)
	case *Array:
		f.children(f.line(prefix, last, "━ARRAY"), n.Elements)
	case *Block:
		f.children(f.line(prefix, last, "━BLOCK"), []Node{n.Statements})
	case *InfixOp:
		f.children(f.line(prefix, last, "━"+string(n.Op)), []Node{n.Left, n.Right})
	case *PrefixOp:
		f.children(f.line(prefix, last, "━"+string(n.Op)+"·"), []Node{n.Operand})
	case *PostfixOp:
		f.children(f.line(prefix, last, "━·"+string(n.Op)), []Node{n.Operand})
	case *Index:
		f.children(f.line(prefix, last, "━INDEX"), []Node{n.Target, n.Index})
	case *FunctionCall:
		f.children(f.line(prefix, last, "━CALL"), append([]Node{n.Callee}, n.Args...))
	case *If:
		f.children(f.line(prefix, last, "━IF"), []Node{n.Cond, n.Then, n.Else})
	case *While:
		f.children(f.line(prefix, last, "━WHILE"), []Node{n.Cond, n.Body})
	}
}

func (f treeFormatter) children(prefix string, nodes []Node) {
	for i, c := range nodes {
		f.node(c, prefix, i == len(nodes)-1)
	}
}
