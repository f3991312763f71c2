// Package sexy reads the s-expressions used by the Markdown test suites and
// matches them against the output of the compiler.
package sexy

import (
	"fmt"
	"strings"
	"unicode"
)

// NodeType represents the type of a Node
type NodeType int

const (
	NodeSymbol NodeType = iota
	NodeString
	NodeInteger
	NodeEllipsis
	NodeList
	NodeArray
)

// Node is one datum: an atom, a (list) or an [array].
type Node struct {
	Type NodeType

	Text  string  // NodeSymbol, NodeString, NodeInteger
	Items []*Node // NodeList, NodeArray
}

func (n *Node) String() string {
	switch n.Type {
	case NodeSymbol, NodeInteger:
		return n.Text
	case NodeString:
		return quote(n.Text)
	case NodeEllipsis:
		return "..."
	case NodeList:
		return "(" + join(n.Items) + ")"
	case NodeArray:
		return "[" + join(n.Items) + "]"
	default:
		return fmt.Sprintf("UNKNOWN_NODE_TYPE_%d", n.Type)
	}
}

func join(items []*Node) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = item.String()
	}
	return strings.Join(parts, " ")
}

var escapes = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`, "\x00", `\0`)

func quote(s string) string {
	return `"` + escapes.Replace(s) + `"`
}

// Helper constructors for common node types
func NewSymbol(name string) *Node {
	return &Node{Type: NodeSymbol, Text: name}
}

func NewString(value string) *Node {
	return &Node{Type: NodeString, Text: value}
}

func NewInteger(text string) *Node {
	return &Node{Type: NodeInteger, Text: text}
}

func NewEllipsis() *Node {
	return &Node{Type: NodeEllipsis}
}

func NewList(items ...*Node) *Node {
	return &Node{Type: NodeList, Items: items}
}

func NewArray(items ...*Node) *Node {
	return &Node{Type: NodeArray, Items: items}
}

// IsAtom checks if the node is an atomic value
func (n *Node) IsAtom() bool {
	return n.Type != NodeList && n.Type != NodeArray
}

// IsWildcard reports whether n is the `_` symbol, which matches any datum.
func (n *Node) IsWildcard() bool {
	return n.Type == NodeSymbol && n.Text == "_"
}

type parser struct {
	lexer *lexer
	tok   token
}

// Parse parses the entire input and returns the top-level datum
func Parse(input string) (*Node, error) {
	p := &parser{lexer: &lexer{input: input}}
	p.next()

	result, err := p.datum()
	if err != nil {
		return nil, err
	}
	if p.tok.Type != tokenEOF {
		return nil, fmt.Errorf("offset %d: expected end of input but got %s", p.tok.Position, p.tok.Type)
	}
	return result, nil
}

// MustParse is like Parse but panics on error. For literals in tests.
func MustParse(input string) *Node {
	n, err := Parse(input)
	if err != nil {
		panic(fmt.Sprintf("sexy: %q: %v", input, err))
	}
	return n
}

func (p *parser) next() {
	p.tok = p.lexer.next()
}

func (p *parser) datum() (*Node, error) {
	tok := p.tok
	switch tok.Type {
	case tokenError:
		return nil, fmt.Errorf("offset %d: %s", tok.Position, tok.Value)
	case tokenSymbol:
		p.next()
		return NewSymbol(tok.Value), nil
	case tokenString:
		p.next()
		return NewString(tok.Value), nil
	case tokenInteger:
		p.next()
		return NewInteger(tok.Value), nil
	case tokenEllipsis:
		p.next()
		return NewEllipsis(), nil
	case tokenLParen:
		items, err := p.items(tokenRParen)
		if err != nil {
			return nil, err
		}
		return NewList(items...), nil
	case tokenLBracket:
		items, err := p.items(tokenRBracket)
		if err != nil {
			return nil, err
		}
		return NewArray(items...), nil
	default:
		return nil, fmt.Errorf("offset %d: unexpected token: %s", tok.Position, tok.Type)
	}
}

// items parses data up to closer. The current token is the opener.
func (p *parser) items(closer tokenType) ([]*Node, error) {
	p.next()
	var items []*Node
	for p.tok.Type != closer {
		if p.tok.Type == tokenEOF {
			return nil, fmt.Errorf("offset %d: expected %s but got EOF", p.tok.Position, closer)
		}
		item, err := p.datum()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	p.next()
	return items, nil
}

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenError
	tokenSymbol
	tokenString
	tokenInteger
	tokenEllipsis
	tokenLParen
	tokenRParen
	tokenLBracket
	tokenRBracket
)

func (t tokenType) String() string {
	switch t {
	case tokenEOF:
		return "EOF"
	case tokenError:
		return "error"
	case tokenSymbol:
		return "symbol"
	case tokenString:
		return "string"
	case tokenInteger:
		return "integer"
	case tokenEllipsis:
		return "ellipsis"
	case tokenLParen:
		return "'('"
	case tokenRParen:
		return "')'"
	case tokenLBracket:
		return "'['"
	case tokenRBracket:
		return "']'"
	default:
		return fmt.Sprintf("unknown token %d", int(t))
	}
}

var brackets = map[byte]tokenType{
	'(': tokenLParen,
	')': tokenRParen,
	'[': tokenLBracket,
	']': tokenRBracket,
}

type token struct {
	Type     tokenType
	Value    string
	Position int
}

// lexer scans bytes; symbols and strings may hold UTF-8 but structure
// characters are all ASCII.
type lexer struct {
	input string
	pos   int
}

func (l *lexer) peek(ahead int) byte {
	if l.pos+ahead >= len(l.input) {
		return 0
	}
	return l.input[l.pos+ahead]
}

func (l *lexer) next() token {
	for {
		for l.pos < len(l.input) && unicode.IsSpace(rune(l.input[l.pos])) {
			l.pos++
		}
		if l.peek(0) != ';' {
			break
		}
		// Comment to end of line.
		for l.pos < len(l.input) && l.input[l.pos] != '\n' {
			l.pos++
		}
	}

	start := l.pos
	if start >= len(l.input) {
		return token{Type: tokenEOF, Position: start}
	}

	c := l.input[start]
	if t, ok := brackets[c]; ok {
		l.pos++
		return token{Type: t, Value: string(c), Position: start}
	}

	switch {
	case c == '"':
		return l.string()
	case c == '.' && l.peek(1) == '.' && l.peek(2) == '.':
		l.pos += 3
		return token{Type: tokenEllipsis, Value: "...", Position: start}
	case isDigit(c) || ((c == '-' || c == '+') && isDigit(l.peek(1))):
		l.pos++
		for isDigit(l.peek(0)) {
			l.pos++
		}
		return token{Type: tokenInteger, Value: l.input[start:l.pos], Position: start}
	case isSymbolChar(c):
		for l.pos < len(l.input) && isSymbolChar(l.input[l.pos]) {
			l.pos++
		}
		return token{Type: tokenSymbol, Value: l.input[start:l.pos], Position: start}
	}
	l.pos++
	return token{Type: tokenError, Value: fmt.Sprintf("unexpected character '%c'", c), Position: start}
}

func (l *lexer) string() token {
	start := l.pos
	l.pos++ // opening quote
	var b strings.Builder
	for {
		c := l.peek(0)
		if l.pos >= len(l.input) {
			return token{Type: tokenError, Value: "unterminated string", Position: start}
		}
		l.pos++
		switch c {
		case '"':
			return token{Type: tokenString, Value: b.String(), Position: start}
		case '\\':
			e := l.peek(0)
			l.pos++
			switch e {
			case '"', '\\':
				b.WriteByte(e)
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '0':
				b.WriteByte(0)
			default:
				return token{Type: tokenError, Value: fmt.Sprintf("invalid escape sequence: \\%c", e), Position: start}
			}
		default:
			b.WriteByte(c)
		}
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// isSymbolChar accepts operator characters too, so that `+`, `==` and
// `_` are plain symbols.
func isSymbolChar(c byte) bool {
	if c >= 0x80 || isDigit(c) || unicode.IsLetter(rune(c)) {
		return true
	}
	return strings.IndexByte("_-+*/%=!<>&|.?", c) >= 0
}
