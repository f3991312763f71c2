package symtab

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  *Type
		want string
	}{
		{Undefined, "undefined"},
		{Int, "int"},
		{Char, "char"},
		{PointerTo(Char), "(ptr char)"},
		{ArrayOf(PointerTo(Int)), "(array (ptr int))"},
		{Function([]*Type{Int, Char}, Int), "(func [int char] int)"},
		{Function(nil, Char), "(func [] char)"},
		{PointerTo(Int.Qualified()), "(ptr (const int))"},
		{ArrayOf(Char).Qualified(), "(const (array (const char)))"},
	}
	for _, tt := range tests {
		be.Equal(t, tt.typ.String(), tt.want)
	}
}

func TestTypesEqual(t *testing.T) {
	be.True(t, TypesEqual(Int, Int))
	be.True(t, !TypesEqual(Int, Char))
	be.True(t, TypesEqual(Int, Int.Lvalue()))
	be.True(t, TypesEqual(PointerTo(Int), PointerTo(Int.Lvalue())))
	be.True(t, !TypesEqual(PointerTo(Int), ArrayOf(Int)))
	be.True(t, !TypesEqual(ArrayOf(Int), ArrayOf(Char)))

	// Functions compare by parameters only.
	be.True(t, TypesEqual(Function([]*Type{Int}, Int), Function([]*Type{Int}, Char)))
	be.True(t, !TypesEqual(Function([]*Type{Int}, Int), Function([]*Type{Char}, Int)))
	be.True(t, !TypesEqual(Function([]*Type{Int}, Int), Function(nil, Int)))
}

func TestLvalue(t *testing.T) {
	lv := Int.Lvalue()
	be.True(t, lv.Assignable)
	be.True(t, !Int.Assignable)
	be.True(t, lv.Rvalue() != lv)
	be.True(t, !lv.Rvalue().Assignable)
	be.True(t, Int.Rvalue() == Int)
}

func TestQualified(t *testing.T) {
	c := Int.Qualified()
	be.True(t, c.Const)
	be.True(t, !Int.Const)
	be.True(t, TypesEqual(c, Int))

	// Reading a const object gives a plain value.
	be.True(t, !c.Lvalue().Rvalue().Const)

	// Pointers and arrays keep the const of their element.
	p := PointerTo(c.Lvalue())
	be.True(t, p.Child.Const)
	be.True(t, !p.Child.Assignable)
	be.True(t, ArrayOf(Char).Qualified().Child.Const)
	be.True(t, ArrayOf(Char).Qualified().Decay().Child.Const)

	be.True(t, DropsConst(PointerTo(Int), p))
	be.True(t, !DropsConst(p, PointerTo(Int)))
	be.True(t, !DropsConst(p, p))
	be.True(t, !DropsConst(Int, p))
}

func TestDecay(t *testing.T) {
	be.Equal(t, ArrayOf(Char).Decay().String(), "(ptr char)")
	be.True(t, Int.Decay() == Int)
	be.True(t, PointerTo(Int).IsScalar())
	be.True(t, !ArrayOf(Int).IsScalar())
	be.True(t, Char.IsArithmetic())
	be.True(t, !Undefined.IsArithmetic())
}
