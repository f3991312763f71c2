// Package lex turns tinyc source text into tokens, one line at a time.
package lex

import (
	"bufio"
	"io"
	"strings"

	"github.com/tinyc-lang/tinyc/token"
)

// CommentOpen is the text of the Invalid token produced when input ends
// inside a block comment. Its line is the line the comment opened on.
const CommentOpen = "/*"

// Scanner is a lazy token.Source over an io.Reader. A line is only read when
// the buffered tokens of the previous line are used up.
type Scanner struct {
	lines *bufio.Scanner
	queue []token.Token
	line  int // number of the last line read

	inComment bool // inside an unterminated /* comment
	commentAt int
	sentEOF   bool
	err       error
}

func New(r io.Reader) *Scanner {
	return &Scanner{lines: bufio.NewScanner(r)}
}

// FromString is a convenience for tests and the CLI.
func FromString(src string) *Scanner {
	return New(strings.NewReader(src))
}

// Err returns the first read error, if any. A read error ends the stream
// early: EOF is still produced so callers terminate normally.
func (s *Scanner) Err() error {
	return s.err
}

func (s *Scanner) Peek() (token.Token, bool) {
	if !s.fill() {
		return token.Token{}, false
	}
	return s.queue[0], true
}

func (s *Scanner) Next() (token.Token, bool) {
	if !s.fill() {
		return token.Token{}, false
	}
	tok := s.queue[0]
	s.queue = s.queue[1:]
	return tok, true
}

// fill makes sure at least one token is buffered. It returns false once the
// EOF sentinel has been handed out.
func (s *Scanner) fill() bool {
	for len(s.queue) == 0 {
		if s.sentEOF {
			return false
		}
		if !s.lines.Scan() {
			if err := s.lines.Err(); err != nil && s.err == nil {
				s.err = err
			}
			line := s.line
			if line == 0 {
				line = 1
			}
			if s.inComment {
				s.queue = append(s.queue, token.Token{Kind: token.Invalid, Text: CommentOpen, Line: s.commentAt})
			}
			s.queue = append(s.queue, token.Token{Kind: token.EOF, Line: line})
			s.sentEOF = true
			break
		}
		s.line++
		s.scanLine(s.lines.Text())
	}
	return true
}

func (s *Scanner) scanLine(text string) {
	l := lineLexer{src: text, line: s.line, inComment: s.inComment, commentAt: s.commentAt}
	for {
		tok := l.next()
		if tok.Kind == token.EOL {
			break
		}
		s.queue = append(s.queue, tok)
	}
	s.inComment, s.commentAt = l.inComment, l.commentAt
}

// Tokenize scans the whole input eagerly.
func Tokenize(src string) []token.Token {
	return token.Collect(FromString(src))
}
