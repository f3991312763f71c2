package symtab

import "strings"

// TypeKind represents the different kinds of types
type TypeKind int

const (
	TypeUndefined TypeKind = iota
	TypeInt
	TypeChar
	TypePointer
	TypeArray
	TypeFunction
)

// Type represents a type in the type system. Assignable marks a type that
// classifies an lvalue. Const marks an object that may not be written,
// such as the target of a pointer to a const variable. Neither takes part
// in equality.
type Type struct {
	Kind TypeKind
	// TypePointer, TypeArray: element type
	Child *Type
	// TypeFunction:
	Params []*Type
	Result *Type

	Assignable bool
	Const      bool
}

// Built-in types. These are shared: never set Assignable on them directly,
// use Lvalue.
var (
	Undefined = &Type{Kind: TypeUndefined}
	Int       = &Type{Kind: TypeInt}
	Char      = &Type{Kind: TypeChar}
)

// PointerTo and ArrayOf keep the Const of their element.
func PointerTo(t *Type) *Type {
	return &Type{Kind: TypePointer, Child: t.object()}
}

func ArrayOf(t *Type) *Type {
	return &Type{Kind: TypeArray, Child: t.object()}
}

func Function(params []*Type, result *Type) *Type {
	ps := make([]*Type, len(params))
	for i, p := range params {
		ps[i] = p.Rvalue()
	}
	return &Type{Kind: TypeFunction, Params: ps, Result: result.Rvalue()}
}

// Lvalue returns a copy of t marked assignable.
func (t *Type) Lvalue() *Type {
	if t.Assignable {
		return t
	}
	c := *t
	c.Assignable = true
	return &c
}

// Rvalue returns a copy of t that is neither assignable nor const: the value
// read from a const object is an ordinary value.
func (t *Type) Rvalue() *Type {
	if !t.Assignable && !t.Const {
		return t
	}
	c := *t
	c.Assignable, c.Const = false, false
	return &c
}

// object returns a copy of t that is not assignable but keeps Const.
func (t *Type) object() *Type {
	if !t.Assignable {
		return t
	}
	c := *t
	c.Assignable = false
	return &c
}

// Qualified returns a const copy of t. The elements of a const array are
// const as well.
func (t *Type) Qualified() *Type {
	c := *t
	c.Const = true
	if t.Kind == TypeArray {
		c.Child = t.Child.Qualified()
	}
	return &c
}

// DropsConst reports whether storing a src pointer in a dst pointer would
// make a const target writable.
func DropsConst(dst, src *Type) bool {
	return dst.Kind == TypePointer && src.Kind == TypePointer &&
		src.Child.Const && !dst.Child.Const
}

// TypesEqual compares two types structurally, ignoring Assignable and Const. Function
// types are equal when their parameter sequences are.
func TypesEqual(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case TypePointer, TypeArray:
		return TypesEqual(a.Child, b.Child)
	case TypeFunction:
		if len(a.Params) != len(b.Params) {
			return false
		}
		for i := range a.Params {
			if !TypesEqual(a.Params[i], b.Params[i]) {
				return false
			}
		}
	}
	return true
}

// IsArithmetic reports whether t is int or char.
func (t *Type) IsArithmetic() bool {
	return t.Kind == TypeInt || t.Kind == TypeChar
}

// IsScalar reports whether t can be used as a condition.
func (t *Type) IsScalar() bool {
	return t.IsArithmetic() || t.Kind == TypePointer
}

// Decay converts an array to a pointer to its element; other types are
// returned unchanged.
func (t *Type) Decay() *Type {
	if t.Kind == TypeArray {
		return PointerTo(t.Child)
	}
	return t
}

// String renders the type as an s-expression atom or list, e.g. "int",
// "(ptr (const char))", "(func [int int] int)".
func (t *Type) String() string {
	if t == nil {
		return "nil"
	}
	if t.Const {
		c := *t
		c.Const = false
		return "(const " + c.String() + ")"
	}
	switch t.Kind {
	case TypeInt:
		return "int"
	case TypeChar:
		return "char"
	case TypePointer:
		return "(ptr " + t.Child.String() + ")"
	case TypeArray:
		return "(array " + t.Child.String() + ")"
	case TypeFunction:
		params := make([]string, len(t.Params))
		for i, p := range t.Params {
			params[i] = p.String()
		}
		return "(func [" + strings.Join(params, " ") + "] " + t.Result.String() + ")"
	default:
		return "undefined"
	}
}
