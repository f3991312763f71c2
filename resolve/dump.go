package resolve

import (
	"strconv"
	"strings"

	"github.com/tinyc-lang/tinyc/ast"
	"github.com/tinyc-lang/tinyc/symtab"
)

// SymbolSExpr renders sym as (sym "name" TYPE FRAME OFFSET [const] [captured]).
func SymbolSExpr(sym *symtab.Symbol) string {
	var b strings.Builder
	b.WriteString("(sym ")
	b.WriteString(ast.Quote(sym.Name))
	b.WriteString(" ")
	b.WriteString(sym.Type.String())
	b.WriteString(" ")
	b.WriteString(strconv.Itoa(sym.Frame))
	b.WriteString(" ")
	b.WriteString(strconv.Itoa(sym.Offset))
	if sym.Const {
		b.WriteString(" const")
	}
	if sym.Captured {
		b.WriteString(" captured")
	}
	b.WriteString(")")
	return b.String()
}

// SymbolsSExpr renders every declared symbol, in declaration order, as an
// s-expression array.
func (r *Result) SymbolsSExpr() string {
	parts := make([]string, len(r.Symbols))
	for i, sym := range r.Symbols {
		parts[i] = SymbolSExpr(sym)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
