package token

// Source is a lazily-produced, peekable token stream. EOF is produced exactly
// once; afterwards both methods return false.
type Source interface {
	// Peek returns the next token without consuming it.
	Peek() (Token, bool)
	// Next consumes and returns the next token.
	Next() (Token, bool)
}

// SliceSource serves tokens from a slice. It appends the EOF sentinel if the
// slice does not already end with one.
type SliceSource struct {
	toks []Token
	pos  int
}

func NewSliceSource(toks []Token) *SliceSource {
	if len(toks) == 0 || toks[len(toks)-1].Kind != EOF {
		line := 1
		if len(toks) > 0 {
			line = toks[len(toks)-1].Line
		}
		toks = append(toks[:len(toks):len(toks)], Token{Kind: EOF, Line: line})
	}
	return &SliceSource{toks: toks}
}

func (s *SliceSource) Peek() (Token, bool) {
	if s.pos >= len(s.toks) {
		return Token{}, false
	}
	return s.toks[s.pos], true
}

func (s *SliceSource) Next() (Token, bool) {
	tok, ok := s.Peek()
	if ok {
		s.pos++
	}
	return tok, ok
}

// Consumed returns how many tokens have been taken with Next.
func (s *SliceSource) Consumed() int {
	return s.pos
}

// Collect drains src into a slice, including the EOF sentinel.
func Collect(src Source) []Token {
	var toks []Token
	for {
		tok, ok := src.Next()
		if !ok {
			return toks
		}
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks
		}
	}
}
