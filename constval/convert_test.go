package constval

import (
	"testing"

	"github.com/cyrene-lang/cyrene/apnum"
	"github.com/cyrene-lang/cyrene/ast"
)

func TestToIntegralConstantInt(t *testing.T) {
	ctx := ast.DefaultContext()
	tests := []int64{0, 1, -1, 1 << 30, -(1 << 30)}
	for _, n := range tests {
		v := NewInt(apnum.IntFromInt64(n, 32))
		got, ok := v.ToIntegralConstant(ctx)
		if !ok {
			t.Errorf("%d: conversion failed", n)
			continue
		}
		if !got.Eq(*v.Int()) {
			t.Errorf("%d: got %s, want identical bit pattern and sign", n, got)
		}
	}
}

func TestToIntegralConstantNullPointer(t *testing.T) {
	ctx := ast.DefaultContext()

	v := NewNullPointer()
	got, ok := v.ToIntegralConstant(ctx)
	if !ok {
		t.Fatal("null pointer conversion failed")
	}
	if !got.IsZero() || got.BitWidth() != ctx.PointerWidth {
		t.Errorf("null pointer = %s at width %d", got, got.BitWidth())
	}

	// Non-zero target null representation flows through.
	odd := &ast.Context{PointerWidth: 32, CharWidth: 8, NullPointerValue: 0xFFFF}
	got, ok = v.ToIntegralConstant(odd)
	if !ok || got.Uint64() != 0xFFFF {
		t.Errorf("configured null value = %s, %v", got, ok)
	}
}

func TestToIntegralConstantOffsetFromNull(t *testing.T) {
	ctx := ast.DefaultContext()
	v := NewLValue(LValueBase{}, ast.CharUnitsFromQuantity(24), true)
	got, ok := v.ToIntegralConstant(ctx)
	if !ok || got.Uint64() != 24 {
		t.Errorf("offset-from-null = %s, %v", got, ok)
	}
}

func TestToIntegralConstantInapplicable(t *testing.T) {
	ctx := ast.DefaultContext()
	d := &ast.ValueDecl{Decl: ast.Decl{Name: "x"}}

	symbolic := NewLValue(DeclBase(d, 0, 0), ast.CharUnitsZero, false)
	nullWithPath := NewLValueWithPath(LValueBase{}, ast.CharUnitsZero,
		[]PathEntry{NewArrayIndexEntry(0)}, false, true)
	float := NewFloat(apnum.FloatFromFloat64(1.5))
	var uninit Value

	for name, v := range map[string]*Value{
		"symbolic location":   &symbolic,
		"null path location":  &nullWithPath,
		"float":               &float,
		"uninitialized value": &uninit,
	} {
		if _, ok := v.ToIntegralConstant(ctx); ok {
			t.Errorf("%s: conversion unexpectedly succeeded", name)
		}
	}
}
