package sexy

import "fmt"

// Match reports whether actual is an instance of pattern. In a pattern, the
// symbol `_` matches any single datum and `...` inside a list or array
// matches any run of items, including none.
func Match(pattern, actual *Node) error {
	if pattern.IsWildcard() {
		return nil
	}
	if pattern.Type == NodeEllipsis {
		return fmt.Errorf("'...' is only allowed inside a list or array")
	}
	if pattern.Type != actual.Type {
		return mismatch(pattern, actual)
	}
	if pattern.IsAtom() {
		if pattern.Text != actual.Text {
			return mismatch(pattern, actual)
		}
		return nil
	}
	if !matchItems(pattern.Items, actual.Items) {
		return mismatch(pattern, actual)
	}
	return nil
}

func mismatch(pattern, actual *Node) error {
	return fmt.Errorf("expected %s\n     got %s", pattern, actual)
}

func matchItems(patterns, actual []*Node) bool {
	if len(patterns) == 0 {
		return len(actual) == 0
	}
	p := patterns[0]
	if p.Type == NodeEllipsis {
		// Try every possible length for the run, shortest first.
		for skip := 0; skip <= len(actual); skip++ {
			if matchItems(patterns[1:], actual[skip:]) {
				return true
			}
		}
		return false
	}
	if len(actual) == 0 || Match(p, actual[0]) != nil {
		return false
	}
	return matchItems(patterns[1:], actual[1:])
}
