// Package symtab implements the scope and frame manager used by the
// resolver.
//
// Scopes form a single stack. Every scope belongs to a frame (one per
// function activation; frame 0 is the global frame). A symbol's offset is
// relative to the base of its frame: offsets start at 0 in each new frame
// and grow with declaration order, across all block scopes of that frame.
package symtab

import (
	"github.com/tinyc-lang/tinyc/diag"
)

// Symbol is an identifier binding. Name is empty for synthesized
// temporaries.
type Symbol struct {
	Name   string
	Frame  int
	Offset int
	Type   *Type
	Line   int

	Const bool
	// Captured is set by the resolver when the symbol is referenced from a
	// frame other than the one that declared it.
	Captured bool
}

// Scope maps names to the symbols declared in one block.
type Scope struct {
	ID    int
	Frame int

	symbols map[string]*Symbol
	order   []*Symbol
}

func newScope(id, frame int) *Scope {
	return &Scope{ID: id, Frame: frame, symbols: make(map[string]*Symbol)}
}

// Len returns the number of symbols declared in the scope, temporaries
// included.
func (s *Scope) Len() int {
	return len(s.order)
}

// Lookup returns the symbol bound to name in this scope only.
func (s *Scope) Lookup(name string) *Symbol {
	return s.symbols[name]
}

// Symbols returns the scope's symbols in declaration order.
func (s *Scope) Symbols() []*Symbol {
	return s.order
}

// Handle is the result of a successful Table.Lookup.
type Handle struct {
	*Symbol
	Scope *Scope
	// Local is true when the binding lives in the innermost open scope.
	Local bool
}

// Table is a stack of scopes with frame-aware offset assignment.
type Table struct {
	scopes []*Scope

	// Parallel stacks, one entry per open frame.
	frames []int
	bases  []int // live count when the frame was pushed

	frame     int
	nextFrame int
	live      int

	// arena holds every scope ever pushed, indexed by ID-1, so that blocks
	// can refer back to their scope after it is popped.
	arena []*Scope
}

// New returns a table holding only the global scope (frame 0).
func New() *Table {
	t := &Table{
		frames:    []int{0},
		bases:     []int{0},
		nextFrame: 1,
	}
	t.PushScope()
	return t
}

// Frame returns the id of the active frame.
func (t *Table) Frame() int {
	return t.frame
}

// Depth returns the number of open scopes.
func (t *Table) Depth() int {
	return len(t.scopes)
}

// Live returns the number of symbols in all open scopes.
func (t *Table) Live() int {
	return t.live
}

// Current returns the innermost open scope, or nil.
func (t *Table) Current() *Scope {
	if len(t.scopes) == 0 {
		return nil
	}
	return t.scopes[len(t.scopes)-1]
}

// Scope resolves a scope id handed out by PushScope. It returns nil for an
// unknown id.
func (t *Table) Scope(id int) *Scope {
	if id < 1 || id > len(t.arena) {
		return nil
	}
	return t.arena[id-1]
}

// PushFrame opens a new frame whose offsets start at 0, together with its
// first scope, and returns the frame id.
func (t *Table) PushFrame() int {
	id := t.nextFrame
	t.nextFrame++
	t.frames = append(t.frames, id)
	t.bases = append(t.bases, t.live)
	t.frame = id
	t.PushScope()
	return id
}

// PopFrame closes every scope of the active frame and makes the enclosing
// frame active again. It returns the id of the popped frame.
func (t *Table) PopFrame() (int, error) {
	if len(t.frames) <= 1 {
		return 0, diag.Errorf(diag.PopGlobalFrame, 0, "cannot pop the global frame")
	}
	id := t.frame
	for len(t.scopes) > 0 && t.Current().Frame == id {
		if _, err := t.PopScope(); err != nil {
			return 0, err
		}
	}
	t.frames = t.frames[:len(t.frames)-1]
	t.bases = t.bases[:len(t.bases)-1]
	t.frame = t.frames[len(t.frames)-1]
	return id, nil
}

// PushScope opens a block scope in the active frame.
func (t *Table) PushScope() *Scope {
	s := newScope(len(t.arena)+1, t.frame)
	t.arena = append(t.arena, s)
	t.scopes = append(t.scopes, s)
	return s
}

// PopScope closes the innermost scope and returns it.
func (t *Table) PopScope() (*Scope, error) {
	s := t.Current()
	if s == nil {
		return nil, diag.Errorf(diag.NoScope, 0, "no scope to pop")
	}
	t.scopes = t.scopes[:len(t.scopes)-1]
	t.live -= s.Len()
	return s, nil
}

// IsLocal reports whether name is bound in the innermost scope.
func (t *Table) IsLocal(name string) bool {
	s := t.Current()
	return s != nil && s.Lookup(name) != nil
}

// Lookup finds the nearest binding of name, searching every open scope from
// the innermost outwards regardless of frame.
func (t *Table) Lookup(name string) (Handle, bool) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		s := t.scopes[i]
		if sym := s.Lookup(name); sym != nil {
			return Handle{Symbol: sym, Scope: s, Local: i == len(t.scopes)-1}, true
		}
	}
	return Handle{}, false
}

// Insert binds name in the innermost scope. An empty name declares an
// anonymous temporary that takes an offset but cannot be looked up.
// Shadowing an existing binding of the same scope is the caller's concern
// (see IsLocal).
func (t *Table) Insert(name string, typ *Type, isConst bool) (*Symbol, error) {
	s := t.Current()
	if s == nil || s.Frame != t.frame {
		return nil, diag.Errorf(diag.NoScope, 0, "no scope open in frame %d", t.frame)
	}
	sym := &Symbol{
		Name:   name,
		Frame:  t.frame,
		Offset: t.live - t.bases[len(t.bases)-1],
		Type:   typ,
		Const:  isConst,
	}
	t.live++
	if name != "" {
		s.symbols[name] = sym
	}
	s.order = append(s.order, sym)
	return sym, nil
}
