// Package parse builds an ast.Node tree from a token.Source.
//
// The parser is a single Pratt loop, expr, generalized with a set of
// terminator tokens. The same loop handles operator precedence, statement
// sequencing (';' is an infix operator), bracket matching and the
// dangling-else rule: an if's true branch adds 'else' to the terminators
// inherited from its caller, so the innermost if claims the else.
package parse

import (
	"github.com/tinyc-lang/tinyc/ast"
	"github.com/tinyc-lang/tinyc/diag"
	"github.com/tinyc-lang/tinyc/lex"
	"github.com/tinyc-lang/tinyc/token"
)

// opener is an open bracket awaiting its closer.
type opener struct {
	kind token.Kind
	line int
}

type parser struct {
	src  token.Source
	open []opener
	line int // line of the last token seen
}

// Program parses a whole token stream. The result is a Statement list, or
// Empty for an empty program. On error no tree is returned.
func Program(src token.Source) (root ast.Node, err error) {
	p := &parser{src: src, line: 1}
	defer func() {
		if r := recover(); r != nil {
			d, ok := r.(*diag.Error)
			if !ok {
				panic(r)
			}
			root, err = nil, d
		}
	}()

	n := p.expr(0, stops(token.EOF))
	p.expect(token.EOF)
	return asList(n), nil
}

// String lexes and parses code. A read error takes precedence over any
// parse error, since the parser only saw a truncated stream.
func String(code string) (ast.Node, error) {
	s := lex.FromString(code)
	root, err := Program(s)
	if rerr := s.Err(); rerr != nil {
		return nil, rerr
	}
	if err != nil {
		return nil, err
	}
	return root, nil
}

func (p *parser) fail(code diag.Code, line int, format string, args ...any) {
	panic(diag.Errorf(code, line, format, args...))
}

func (p *parser) peek() token.Token {
	tok, ok := p.src.Peek()
	if !ok {
		p.fail(diag.MalformedStream, p.line, "token stream ended without end of input")
	}
	p.line = tok.Line
	if tok.Kind == token.Invalid {
		if tok.Text == lex.CommentOpen {
			d := diag.Errorf(diag.InvalidToken, tok.Line, "unterminated comment")
			d.AtEOF = true
			panic(d)
		}
		p.fail(diag.InvalidToken, tok.Line, "invalid character %q", tok.Text)
	}
	return tok
}

func (p *parser) next() token.Token {
	tok := p.peek()
	p.src.Next()
	return tok
}

// expect consumes a token of the given kind.
func (p *parser) expect(kind token.Kind) token.Token {
	tok := p.peek()
	if tok.Kind != kind {
		if tok.Kind == token.EOF {
			p.unclosed(tok)
		}
		p.mismatched(tok)
		p.fail(diag.UnexpectedToken, tok.Line, "expected '%s' but found %s", kind, tok.Describe())
	}
	return p.next()
}

func (p *parser) unexpected(tok token.Token) {
	if tok.Kind == token.EOF {
		p.unclosed(tok)
	}
	p.mismatched(tok)
	p.fail(diag.UnexpectedToken, tok.Line, "unexpected %s", tok.Describe())
}

// closes maps each closing bracket to its opener.
var closes = map[token.Kind]token.Kind{
	token.RParen:   token.LParen,
	token.RBracket: token.LBracket,
	token.RBrace:   token.LBrace,
}

// mismatched reports a closing bracket that does not close the innermost
// open bracket. The diagnostic points at the open bracket.
func (p *parser) mismatched(tok token.Token) {
	want, ok := closes[tok.Kind]
	if !ok || len(p.open) == 0 {
		return
	}
	o := p.open[len(p.open)-1]
	if o.kind != want {
		p.fail(diag.UnmatchedBracket, o.line, "unmatched '%s' before '%s' on line %d", o.kind, tok.Kind, tok.Line)
	}
}

// atStatementLevel reports whether the innermost open bracket, if any, is a
// block, where statements may follow each other.
func (p *parser) atStatementLevel() bool {
	return len(p.open) == 0 || p.open[len(p.open)-1].kind == token.LBrace
}

// unclosed reports end of input. With a bracket open, the diagnostic points
// at the bracket.
func (p *parser) unclosed(tok token.Token) {
	d := diag.Errorf(diag.UnexpectedToken, tok.Line, "unexpected end of input")
	if len(p.open) > 0 {
		o := p.open[len(p.open)-1]
		d = diag.Errorf(diag.UnmatchedBracket, o.line, "unmatched '%s'", o.kind)
	}
	d.AtEOF = true
	panic(d)
}

func (p *parser) push(tok token.Token) {
	p.open = append(p.open, opener{kind: tok.Kind, line: tok.Line})
}

func (p *parser) pop() {
	p.open = p.open[:len(p.open)-1]
}

// expr parses until it meets a token of stop or an operator binding less
// tightly than minBP.
func (p *parser) expr(minBP int, stop stopSet) ast.Node {
	left, term := p.prefix(stop)
	if term {
		return p.afterStatement(left, minBP, stop)
	}

	for {
		tok := p.peek()
		if stop.has(tok.Kind) {
			return left
		}

		switch {
		case tok.Kind == token.EOF:
			p.unclosed(tok)

		case tok.Kind == token.Semi:
			if infixPowers[token.Semi].left < minBP {
				return left
			}
			return sequence(left, p.semicolon(stop))

		case tok.Kind == token.PlusPlus || tok.Kind == token.MinusMinus:
			if postfixPower < minBP {
				return left
			}
			p.next()
			left = &ast.PostfixOp{Line: left.Pos(), Op: tok.Kind, Operand: left}

		case tok.Kind == token.LBracket:
			if postfixPower < minBP {
				return left
			}
			p.next()
			p.push(tok)
			idx := p.operand(0, stops(token.RBracket), tok)
			p.expect(token.RBracket)
			p.pop()
			left = &ast.Index{Line: left.Pos(), Target: left, Index: idx}

		case tok.Kind == token.LParen:
			if callPower < minBP {
				return left
			}
			p.next()
			args := p.list(tok, token.RParen)
			left = &ast.FunctionCall{Line: left.Pos(), Callee: left, Args: args}

		default:
			bp, ok := infixPowers[tok.Kind]
			if !ok {
				p.unexpected(tok)
			}
			if bp.left < minBP {
				return left
			}
			p.next()
			right := p.operand(bp.right, stop, tok)
			left = &ast.InfixOp{Line: left.Pos(), Op: tok.Kind, Left: left, Right: right}
		}
	}
}

// afterStatement continues after a block, if or while. These end their own
// statement: at statement level whatever follows is sequenced after them as
// if a ';' had been written. Inside parentheses or brackets nothing is
// sequenced, and the caller sees the next token.
func (p *parser) afterStatement(left ast.Node, minBP int, stop stopSet) ast.Node {
	semi := infixPowers[token.Semi]
	tok := p.peek()
	if semi.left < minBP || stop.has(tok.Kind) {
		return left
	}
	switch tok.Kind {
	case token.EOF:
		p.unclosed(tok)
	case token.Semi:
		return sequence(left, p.semicolon(stop))
	}
	if !p.atStatementLevel() {
		return left
	}
	return sequence(left, p.expr(semi.right, stop))
}

// semicolon consumes ';' and parses the rest of the statement list.
func (p *parser) semicolon(stop stopSet) ast.Node {
	tok := p.next()
	if len(p.open) > 0 {
		o := p.open[len(p.open)-1]
		if o.kind == token.LParen || o.kind == token.LBracket {
			p.fail(diag.UnmatchedBracket, o.line, "unmatched '%s' before ';' on line %d", o.kind, tok.Line)
		}
	}
	return p.expr(infixPowers[token.Semi].right, stop)
}

// operand parses the right-hand side of op, which must not be empty.
func (p *parser) operand(minBP int, stop stopSet, op token.Token) ast.Node {
	n := p.expr(minBP, stop)
	if ast.IsEmpty(n) {
		tok := p.peek()
		if tok.Kind == token.EOF {
			p.unclosed(tok)
		}
		p.fail(diag.UnexpectedToken, tok.Line, "expected expression after '%s' but found %s", op.Kind, tok.Describe())
	}
	return n
}

// prefix parses the token in prefix position. term reports a block, if or
// while, which terminates its own statement.
func (p *parser) prefix(stop stopSet) (n ast.Node, term bool) {
	tok := p.peek()
	if stop.has(tok.Kind) {
		return &ast.Empty{Line: tok.Line}, false
	}

	switch tok.Kind {
	case token.Semi:
		// An empty statement; the ';' is left for the caller.
		return &ast.Empty{Line: tok.Line}, false
	case token.EOF:
		p.unclosed(tok)
	case token.Int:
		p.next()
		return &ast.IntLiteral{Line: tok.Line, Value: tok.Int}, false
	case token.Char:
		p.next()
		return &ast.CharLiteral{Line: tok.Line, Value: tok.Char}, false
	case token.String:
		p.next()
		return &ast.StringLiteral{Line: tok.Line, Value: tok.Text}, false
	case token.Ident:
		p.next()
		return &ast.Id{Line: tok.Line, Name: tok.Text}, false

	case token.LParen:
		p.next()
		p.push(tok)
		inner := p.expr(0, stops(token.RParen))
		p.expect(token.RParen)
		p.pop()
		return inner, false

	case token.LBracket:
		p.next()
		return &ast.Array{Line: tok.Line, Elements: p.list(tok, token.RBracket)}, false

	case token.LBrace:
		p.next()
		p.push(tok)
		body := p.expr(0, stops(token.RBrace))
		p.expect(token.RBrace)
		p.pop()
		return &ast.Block{Line: tok.Line, Statements: asList(body)}, true

	case token.If:
		return p.ifStatement(stop), true
	case token.While:
		return p.whileStatement(stop), true

	case token.Return:
		p.next()
		return &ast.PrefixOp{Line: tok.Line, Op: tok.Kind, Operand: p.expr(returnPower, stop)}, false
	}

	switch {
	case isUnary(tok.Kind):
		p.next()
		return &ast.PrefixOp{Line: tok.Line, Op: tok.Kind, Operand: p.operand(unaryPower, stop, tok)}, false
	case tok.Kind.IsTypeName():
		p.next()
		return &ast.PrefixOp{Line: tok.Line, Op: tok.Kind, Operand: p.operand(declPower, stop, tok)}, false
	}
	p.unexpected(tok)
	return nil, false
}

// list parses comma-separated expressions up to closer. The opening bracket
// has already been consumed.
func (p *parser) list(open token.Token, closer token.Kind) []ast.Node {
	p.push(open)
	defer p.pop()

	var items []ast.Node
	if p.peek().Kind == closer {
		p.next()
		return items
	}
	after := open
	for {
		items = append(items, p.operand(0, stops(closer, token.Comma), after))
		after = p.peek()
		switch after.Kind {
		case closer:
			p.next()
			return items
		case token.Comma:
			p.next()
		case token.EOF:
			p.unclosed(after)
		default:
			p.mismatched(after)
			p.fail(diag.UnexpectedToken, after.Line, "expected ',' or '%s' but found %s", closer, after.Describe())
		}
	}
}

// condition parses the parenthesized condition of an if or while.
func (p *parser) condition(kw token.Token) ast.Node {
	open := p.expect(token.LParen)
	p.push(open)
	cond := p.operand(0, stops(token.RParen), kw)
	p.expect(token.RParen)
	p.pop()
	return cond
}

// branch parses one statement: an expression and its ';', or a
// self-terminating statement. The branch may be empty.
func (p *parser) branch(stop stopSet) ast.Node {
	n := p.expr(branchPower, stop)
	if p.peek().Kind == token.Semi {
		p.next()
	}
	return n
}

func (p *parser) ifStatement(stop stopSet) ast.Node {
	kw := p.next()
	cond := p.condition(kw)
	then := p.branch(stop.with(token.Else))
	var els ast.Node = &ast.Empty{Line: p.peek().Line}
	if p.peek().Kind == token.Else {
		p.next()
		els = p.branch(stop)
	}
	return &ast.If{Line: kw.Line, Cond: cond, Then: then, Else: els}
}

func (p *parser) whileStatement(stop stopSet) ast.Node {
	kw := p.next()
	cond := p.condition(kw)
	body := p.branch(stop)
	return &ast.While{Line: kw.Line, Cond: cond, Body: body}
}

// sequence joins a statement onto the rest of its list.
func sequence(left, rest ast.Node) ast.Node {
	return &ast.Statement{Line: left.Pos(), Expr: left, Next: asList(rest)}
}

// asList normalizes n to a Statement list.
func asList(n ast.Node) ast.Node {
	switch n.(type) {
	case *ast.Statement, *ast.Empty:
		return n
	}
	return &ast.Statement{Line: n.Pos(), Expr: n, Next: &ast.Empty{Line: n.Pos()}}
}
