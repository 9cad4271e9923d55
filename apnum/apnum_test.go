package apnum

import (
	"math/big"
	"testing"
)

// ---------------------------------------------------------------------------
// Int
// ---------------------------------------------------------------------------

func TestIntRoundTrip(t *testing.T) {
	tests := []int64{0, 1, -1, 42, -42, 1<<31 - 1, -(1 << 31)}
	for _, n := range tests {
		v := IntFromInt64(n, 32)
		if v.Int64() != n {
			t.Errorf("IntFromInt64(%d, 32).Int64() = %d", n, v.Int64())
		}
		if v.BitWidth() != 32 || !v.IsSigned() {
			t.Errorf("%d: width %d, signed %v", n, v.BitWidth(), v.IsSigned())
		}
	}
}

func TestIntWrapping(t *testing.T) {
	tests := []struct {
		in    int64
		width uint32
		want  int64
	}{
		{1 << 31, 32, -(1 << 31)}, // signed overflow wraps
		{256, 8, 0},
		{255, 8, -1},
		{-129, 8, 127},
	}
	for _, tt := range tests {
		v := IntFromInt64(tt.in, tt.width)
		if v.Int64() != tt.want {
			t.Errorf("IntFromInt64(%d, %d) = %d, want %d", tt.in, tt.width, v.Int64(), tt.want)
		}
	}
}

func TestIntUnsigned(t *testing.T) {
	v := IntFromUint64(0xFF, 8)
	if v.Uint64() != 0xFF || v.IsSigned() {
		t.Errorf("IntFromUint64(0xFF, 8) = %s, signed %v", v, v.IsSigned())
	}
	if v.Sign() != 1 {
		t.Errorf("Sign = %d", v.Sign())
	}
}

func TestIntEq(t *testing.T) {
	tests := []struct {
		name string
		a, b Int
		want bool
	}{
		{"identical", IntFromInt64(5, 32), IntFromInt64(5, 32), true},
		{"different magnitude", IntFromInt64(5, 32), IntFromInt64(6, 32), false},
		{"different width", IntFromInt64(5, 32), IntFromInt64(5, 64), false},
		{"different signedness", IntFromInt64(5, 32), IntFromUint64(5, 32), false},
	}
	for _, tt := range tests {
		if got := tt.a.Eq(tt.b); got != tt.want {
			t.Errorf("%s: Eq = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIntCloneIndependence(t *testing.T) {
	a := IntFromInt64(10, 32)
	b := a.Clone()
	b.bits.SetInt64(99)
	if a.Int64() != 10 {
		t.Error("clone shares storage with the original")
	}
}

func TestIntZextOrTrunc(t *testing.T) {
	neg := IntFromInt64(-1, 8)
	widened := neg.ZextOrTrunc(32)
	// -1 at 8 bits is 0xFF; zero-extension preserves the raw pattern.
	if widened.Uint64() != 0xFF || widened.IsSigned() || widened.BitWidth() != 32 {
		t.Errorf("ZextOrTrunc(-1@8 -> 32) = %s", widened)
	}

	big16 := IntFromUint64(0x12345, 32)
	if got := big16.ZextOrTrunc(16); got.Uint64() != 0x2345 {
		t.Errorf("truncation = %s", got)
	}
}

func TestIntAddQuantity(t *testing.T) {
	v := IntFromUint64(10, 64)
	if got := v.AddQuantity(32); got.Uint64() != 42 {
		t.Errorf("AddQuantity = %s", got)
	}
}

func TestIntFromBig(t *testing.T) {
	src := big.NewInt(77)
	v := IntFromBig(src, 32, true)
	src.SetInt64(0) // argument must have been copied
	if v.Int64() != 77 {
		t.Errorf("IntFromBig retained its argument: %s", v)
	}
}

// ---------------------------------------------------------------------------
// Float
// ---------------------------------------------------------------------------

func TestFloatBasics(t *testing.T) {
	v := FloatFromFloat64(2.5)
	if v.Float64() != 2.5 || v.Prec() != 53 {
		t.Errorf("FloatFromFloat64(2.5) = %s at prec %d", v, v.Prec())
	}
	if v.String() != "2.5" {
		t.Errorf("String = %q", v.String())
	}
}

func TestFloatFromString(t *testing.T) {
	v, err := FloatFromString("1.25", 64)
	if err != nil {
		t.Fatal(err)
	}
	if v.Prec() != 64 || v.Float64() != 1.25 {
		t.Errorf("parsed %s at prec %d", v, v.Prec())
	}
	if _, err := FloatFromString("not-a-number", 64); err == nil {
		t.Error("bad literal accepted")
	}
}

func TestFloatEqAndClone(t *testing.T) {
	a := FloatFromFloat64(1.5)
	b := FloatFromFloat64(1.5)
	if !a.Eq(b) {
		t.Error("equal floats compare unequal")
	}
	c, _ := FloatFromString("1.5", 64)
	if a.Eq(c) {
		t.Error("floats of different precision compare equal")
	}
	d := a.Clone()
	d.f.SetFloat64(9)
	if a.Float64() != 1.5 {
		t.Error("clone shares storage")
	}
}

// ---------------------------------------------------------------------------
// Fixed
// ---------------------------------------------------------------------------

func TestFixedBasics(t *testing.T) {
	v, err := FixedFromString("3.125", 32, 16, true)
	if err != nil {
		t.Fatal(err)
	}
	if v.BitWidth() != 32 || v.Scale() != 16 || !v.IsSigned() {
		t.Errorf("semantics: %d/%d signed=%v", v.BitWidth(), v.Scale(), v.IsSigned())
	}
	if v.String() != "3.125" {
		t.Errorf("String = %q", v.String())
	}
	if _, err := FixedFromString("bogus", 32, 16, true); err == nil {
		t.Error("bad literal accepted")
	}
}

func TestFixedEqAndClone(t *testing.T) {
	a, _ := FixedFromString("1.5", 32, 16, true)
	b, _ := FixedFromString("1.5", 32, 16, true)
	if !a.Eq(b) {
		t.Error("equal fixed values compare unequal")
	}
	c, _ := FixedFromString("1.5", 32, 8, true)
	if a.Eq(c) {
		t.Error("different scales compare equal")
	}
	d := a.Clone()
	d.dec.SetInt64(7)
	if !a.Eq(b) {
		t.Error("clone shares storage")
	}
}
