package constval

import (
	"strings"
	"testing"

	"github.com/cyrene-lang/cyrene/apnum"
	"github.com/cyrene-lang/cyrene/ast"
)

func TestDump(t *testing.T) {
	d := &ast.ValueDecl{Decl: ast.Decl{Name: "x"}}

	arr := NewArray(1, 3)
	*arr.ArrayInitializedElt(0) = int32Val(7)
	*arr.ArrayFiller() = int32Val(0)

	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"uninitialized", Value{}, "Uninitialized"},
		{"int", int32Val(42), "Int 42"},
		{"negative int", int32Val(-42), "Int -42"},
		{"complex int", NewComplexInt(apnum.IntFromInt64(3, 32), apnum.IntFromInt64(4, 32)),
			"ComplexInt 3+4i"},
		{"lvalue", NewLValue(DeclBase(d, 0, 0), ast.CharUnitsFromQuantity(8), false),
			"LValue x+8"},
		{"array with filler", arr, "Array [1/3] {Int 7, filler: Int 0}"},
		{"null pointer", NewNullPointer(), "LValue null <null>"},
	}
	for _, tt := range tests {
		if got := tt.v.Dump(); got != tt.want {
			t.Errorf("%s: Dump() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestPrettyScalarsAndPointers(t *testing.T) {
	ctx := ast.DefaultContext()
	pol := DefaultPolicy()
	d := &ast.ValueDecl{Decl: ast.Decl{Name: "obj"}}

	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"int", int32Val(42), "42"},
		{"complex with negative imag",
			NewComplexInt(apnum.IntFromInt64(1, 32), apnum.IntFromInt64(-2, 32)), "1-2i"},
		{"null pointer", NewNullPointer(), "nullptr"},
		{"address", NewLValue(DeclBase(d, 0, 0), ast.CharUnitsZero, false), "&obj"},
		{"offset address", NewLValue(DeclBase(d, 0, 0), ast.CharUnitsFromQuantity(4), false),
			"(&obj + 4)"},
	}
	for _, tt := range tests {
		if got := tt.v.Pretty(ctx, pol, nil); got != tt.want {
			t.Errorf("%s: Pretty() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestPrettyAggregates(t *testing.T) {
	ctx := ast.DefaultContext()
	pol := DefaultPolicy()

	st := NewStruct(1, 2)
	*st.StructBase(0) = int32Val(1)
	*st.StructField(0) = int32Val(2)
	*st.StructField(1) = int32Val(3)

	if got := st.Pretty(ctx, pol, nil); got != "{1, 2, 3}" {
		t.Errorf("struct: %q", got)
	}

	ty := &ast.Type{Spelling: "struct S"}
	if got := st.Pretty(ctx, pol, ty); got != "(struct S){1, 2, 3}" {
		t.Errorf("struct with type: %q", got)
	}

	arr := NewArray(2, 5)
	*arr.ArrayInitializedElt(0) = int32Val(1)
	*arr.ArrayInitializedElt(1) = int32Val(2)
	*arr.ArrayFiller() = int32Val(0)
	if got := arr.Pretty(ctx, pol, nil); got != "{1, 2, [2...4] = 0}" {
		t.Errorf("array with filler: %q", got)
	}

	f := &ast.FieldDecl{ValueDecl: ast.ValueDecl{Decl: ast.Decl{Name: "n"}}, Index: 0}
	inner := int32Val(9)
	u := NewUnion(f, &inner)
	if got := u.Pretty(ctx, pol, nil); got != "{.n = 9}" {
		t.Errorf("union: %q", got)
	}

	empty := NewUnion(nil, nil)
	if got := empty.Pretty(ctx, pol, nil); got != "{}" {
		t.Errorf("empty union: %q", got)
	}
}

func TestPrettyDepthLimit(t *testing.T) {
	ctx := ast.DefaultContext()
	pol := Policy{MaxDepth: 1}

	inner := NewVector([]Value{int32Val(1)})
	outer := NewVector([]Value{inner})
	if got := outer.Pretty(ctx, pol, nil); got != "{...}" {
		t.Errorf("depth-limited: %q", got)
	}
}

func TestPrettyMultiline(t *testing.T) {
	ctx := ast.DefaultContext()
	pol := Policy{Indent: 2, MaxDepth: 8, Multiline: true}

	st := NewStruct(0, 2)
	*st.StructField(0) = int32Val(1)
	*st.StructField(1) = int32Val(2)

	got := st.Pretty(ctx, pol, nil)
	want := "{\n  1,\n  2\n}"
	if got != want {
		t.Errorf("multiline:\n got %q\nwant %q", got, want)
	}
	if !strings.Contains(got, "\n") {
		t.Error("multiline rendering has no line breaks")
	}
}
