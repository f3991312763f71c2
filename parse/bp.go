package parse

import "github.com/tinyc-lang/tinyc/token"

// bindingPower is a Pratt (left, right) pair. An operator is taken only when
// its left power is at least the caller's minimum; left < right makes it
// left-associative, left > right right-associative.
type bindingPower struct {
	left, right int
}

var infixPowers = map[token.Kind]bindingPower{
	// Statement separator. Right-associative so statement lists lean right.
	token.Semi: {1, 0},

	token.Assign:      {5, 4},
	token.PlusAssign:  {5, 4},
	token.MinusAssign: {5, 4},
	token.StarAssign:  {5, 4},
	token.SlashAssign: {5, 4},

	token.OrOr:   {10, 11},
	token.AndAnd: {12, 13},

	token.Eq:    {18, 19},
	token.NotEq: {18, 19},

	token.Lt: {20, 21},
	token.Le: {20, 21},
	token.Gt: {20, 21},
	token.Ge: {20, 21},

	token.Plus:  {24, 25},
	token.Minus: {24, 25},

	token.Star:    {26, 27},
	token.Slash:   {26, 27},
	token.Percent: {26, 27},
}

const (
	// Right power of statement-like constructs: if/while branches and the
	// return operand stop at ';' but take everything else.
	branchPower = 2
	returnPower = 2

	unaryPower = 28
	// Declarations bind their declarator, subscripts and parameter lists
	// included, but no binary operator.
	declPower    = 29
	postfixPower = 30
	callPower    = 32
)

func isUnary(k token.Kind) bool {
	switch k {
	case token.Minus, token.Bang, token.Star, token.Amp, token.PlusPlus, token.MinusMinus:
		return true
	}
	return false
}

// stopSet holds the terminator tokens of one expr call. Terminators are
// never consumed by the call that stops at them.
type stopSet []token.Kind

func stops(kinds ...token.Kind) stopSet {
	return stopSet(kinds)
}

func (s stopSet) has(k token.Kind) bool {
	for _, t := range s {
		if t == k {
			return true
		}
	}
	return false
}

// with returns a new set holding s and kinds.
func (s stopSet) with(kinds ...token.Kind) stopSet {
	out := make(stopSet, 0, len(s)+len(kinds))
	out = append(out, s...)
	return append(out, kinds...)
}
