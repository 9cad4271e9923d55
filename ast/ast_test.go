package ast

import "testing"

func TestCharUnits(t *testing.T) {
	a := CharUnitsFromQuantity(8)
	b := CharUnitsFromQuantity(-3)
	if got := a.Add(b); got.Quantity() != 5 {
		t.Errorf("Add = %d", got.Quantity())
	}
	if !CharUnitsZero.IsZero() || a.IsZero() {
		t.Error("IsZero misreports")
	}
	if a.String() != "8" {
		t.Errorf("String = %q", a.String())
	}
}

func TestTypeString(t *testing.T) {
	var nilType *Type
	if nilType.String() != "<no type>" {
		t.Errorf("nil type = %q", nilType.String())
	}
	if (&Type{Spelling: "unsigned long"}).String() != "unsigned long" {
		t.Error("type spelling lost")
	}
}
