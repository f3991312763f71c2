package lex

import (
	"strconv"

	"github.com/tinyc-lang/tinyc/token"
)

// lineLexer classifies the lexemes of a single source line.
type lineLexer struct {
	src       string
	pos       int
	line      int
	inComment bool
	commentAt int // line of the /* that opened the current comment
}

func (l *lineLexer) peekByte(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *lineLexer) skipSpaceAndComments() {
	for l.pos < len(l.src) {
		if l.inComment {
			if l.src[l.pos] == '*' && l.peekByte(1) == '/' {
				l.inComment = false
				l.pos += 2
				continue
			}
			l.pos++
			continue
		}
		c := l.src[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v':
			l.pos++
		case c == '/' && l.peekByte(1) == '/':
			l.pos = len(l.src)
		case c == '/' && l.peekByte(1) == '*':
			l.inComment = true
			l.commentAt = l.line
			l.pos += 2
		default:
			return
		}
	}
}

func (l *lineLexer) tok(kind token.Kind, width int) token.Token {
	l.pos += width
	return token.Token{Kind: kind, Line: l.line}
}

// pick returns long if the byte after the current one is next, else short.
func (l *lineLexer) pick(next byte, long, short token.Kind) token.Token {
	if l.peekByte(1) == next {
		return l.tok(long, 2)
	}
	return l.tok(short, 1)
}

func (l *lineLexer) next() token.Token {
	l.skipSpaceAndComments()
	if l.pos >= len(l.src) {
		return token.Token{Kind: token.EOL, Line: l.line}
	}

	c := l.src[l.pos]
	switch c {
	case '{':
		return l.tok(token.LBrace, 1)
	case '}':
		return l.tok(token.RBrace, 1)
	case '(':
		return l.tok(token.LParen, 1)
	case ')':
		return l.tok(token.RParen, 1)
	case '[':
		return l.tok(token.LBracket, 1)
	case ']':
		return l.tok(token.RBracket, 1)
	case ';':
		return l.tok(token.Semi, 1)
	case ':':
		return l.tok(token.Colon, 1)
	case ',':
		return l.tok(token.Comma, 1)
	case '%':
		return l.tok(token.Percent, 1)
	case '+':
		switch l.peekByte(1) {
		case '+':
			return l.tok(token.PlusPlus, 2)
		case '=':
			return l.tok(token.PlusAssign, 2)
		}
		return l.tok(token.Plus, 1)
	case '-':
		switch l.peekByte(1) {
		case '-':
			return l.tok(token.MinusMinus, 2)
		case '=':
			return l.tok(token.MinusAssign, 2)
		}
		return l.tok(token.Minus, 1)
	case '*':
		return l.pick('=', token.StarAssign, token.Star)
	case '/':
		return l.pick('=', token.SlashAssign, token.Slash)
	case '=':
		return l.pick('=', token.Eq, token.Assign)
	case '!':
		return l.pick('=', token.NotEq, token.Bang)
	case '>':
		return l.pick('=', token.Ge, token.Gt)
	case '<':
		return l.pick('=', token.Le, token.Lt)
	case '&':
		return l.pick('&', token.AndAnd, token.Amp)
	case '|':
		if l.peekByte(1) == '|' {
			return l.tok(token.OrOr, 2)
		}
		return l.invalid(1)
	case '\'':
		return l.readChar()
	case '"':
		return l.readString()
	}

	switch {
	case isLetter(c):
		return l.readIdentifier()
	case isDigit(c):
		return l.readNumber()
	}
	return l.invalid(1)
}

func (l *lineLexer) invalid(width int) token.Token {
	end := l.pos + width
	if end > len(l.src) {
		end = len(l.src)
	}
	text := l.src[l.pos:end]
	l.pos = end
	return token.Token{Kind: token.Invalid, Text: text, Line: l.line}
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func (l *lineLexer) readIdentifier() token.Token {
	start := l.pos
	for l.pos < len(l.src) && (isLetter(l.src[l.pos]) || isDigit(l.src[l.pos])) {
		l.pos++
	}
	text := l.src[start:l.pos]
	kind := token.Keyword(text)
	if kind == token.Ident {
		return token.Token{Kind: token.Ident, Text: text, Line: l.line}
	}
	return token.Token{Kind: kind, Line: l.line}
}

// readNumber only supports base 10.
func (l *lineLexer) readNumber() token.Token {
	start := l.pos
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	text := l.src[start:l.pos]
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return token.Token{Kind: token.Invalid, Text: text, Line: l.line}
	}
	return token.Token{Kind: token.Int, Int: n, Line: l.line}
}

// escape decodes the character after a backslash.
func escape(c byte) (rune, bool) {
	switch c {
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	case '0':
		return 0, true
	case '\\', '\'', '"':
		return rune(c), true
	}
	return 0, false
}

func (l *lineLexer) readChar() token.Token {
	start := l.pos
	l.pos++ // opening quote
	var r rune
	switch c := l.peekByte(0); {
	case c == 0 || c == '\'':
		return l.invalidFrom(start)
	case c == '\\':
		e, ok := escape(l.peekByte(1))
		if !ok {
			return l.invalidFrom(start)
		}
		r = e
		l.pos += 2
	default:
		r = rune(c)
		l.pos++
	}
	if l.peekByte(0) != '\'' {
		return l.invalidFrom(start)
	}
	l.pos++
	return token.Token{Kind: token.Char, Char: r, Line: l.line}
}

func (l *lineLexer) readString() token.Token {
	start := l.pos
	l.pos++ // opening quote
	var buf []byte
	for {
		if l.pos >= len(l.src) {
			return l.invalidFrom(start)
		}
		c := l.src[l.pos]
		if c == '"' {
			l.pos++
			return token.Token{Kind: token.String, Text: string(buf), Line: l.line}
		}
		if c == '\\' {
			e, ok := escape(l.peekByte(1))
			if !ok {
				return l.invalidFrom(start)
			}
			buf = append(buf, byte(e))
			l.pos += 2
			continue
		}
		buf = append(buf, c)
		l.pos++
	}
}

// invalidFrom swallows the rest of a malformed literal.
func (l *lineLexer) invalidFrom(start int) token.Token {
	end := l.pos
	if end <= start {
		end = start + 1
	}
	if end > len(l.src) {
		end = len(l.src)
	}
	l.pos = end
	return token.Token{Kind: token.Invalid, Text: l.src[start:end], Line: l.line}
}
