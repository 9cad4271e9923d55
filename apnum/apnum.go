// Package apnum provides the arbitrary-precision scalar payloads consumed by
// the constant-value layer: two's-complement integers with an explicit bit
// width and signedness, binary floats with a fixed mantissa precision, and
// fixed-point values stored as scaled decimals.
//
// Values are plain Go values. Clone always produces an independent copy; the
// underlying big-number storage is never shared between two live scalars.
package apnum

import (
	"math/big"

	"github.com/cockroachdb/apd/v3"
)

// ---------------------------------------------------------------------------
// Int: sized, signed-or-unsigned arbitrary-precision integer
// ---------------------------------------------------------------------------

// Int is an arbitrary-precision integer carrying its bit width and
// signedness. The stored magnitude is always canonical for the width: within
// [0, 2^w) when unsigned, within [-2^(w-1), 2^(w-1)) when signed.
type Int struct {
	bits   *big.Int
	width  uint32
	signed bool
}

// NewInt returns the zero value of the given width and signedness.
func NewInt(width uint32, signed bool) Int {
	if width == 0 {
		panic("apnum.NewInt: zero bit width")
	}
	return Int{bits: new(big.Int), width: width, signed: signed}
}

// IntFromInt64 builds a signed Int of the given width, wrapping v into range.
func IntFromInt64(v int64, width uint32) Int {
	n := NewInt(width, true)
	n.bits.SetInt64(v)
	n.normalize()
	return n
}

// IntFromUint64 builds an unsigned Int of the given width, wrapping v into
// range.
func IntFromUint64(v uint64, width uint32) Int {
	n := NewInt(width, false)
	n.bits.SetUint64(v)
	n.normalize()
	return n
}

// IntFromBig builds an Int from an arbitrary big.Int, wrapping into range.
// The argument is copied, never retained.
func IntFromBig(v *big.Int, width uint32, signed bool) Int {
	n := NewInt(width, signed)
	n.bits.Set(v)
	n.normalize()
	return n
}

// normalize reduces bits modulo 2^width and, for signed values, maps the
// upper half of that range to the negative half.
func (n *Int) normalize() {
	mod := new(big.Int).Lsh(big.NewInt(1), uint(n.width))
	n.bits.Mod(n.bits, mod) // Mod is Euclidean: result is in [0, mod)
	if n.signed {
		half := new(big.Int).Rsh(mod, 1)
		if n.bits.Cmp(half) >= 0 {
			n.bits.Sub(n.bits, mod)
		}
	}
}

// Clone returns an independent copy.
func (n Int) Clone() Int {
	return Int{bits: new(big.Int).Set(n.bits), width: n.width, signed: n.signed}
}

// BitWidth returns the value's bit width.
func (n Int) BitWidth() uint32 { return n.width }

// IsSigned reports whether the value is interpreted as signed.
func (n Int) IsSigned() bool { return n.signed }

// IsZero reports whether the value is zero.
func (n Int) IsZero() bool { return n.bits.Sign() == 0 }

// Sign returns -1, 0, or +1.
func (n Int) Sign() int { return n.bits.Sign() }

// Int64 returns the value as an int64. Only meaningful when the value fits.
func (n Int) Int64() int64 { return n.bits.Int64() }

// Uint64 returns the value as a uint64. Only meaningful when the value fits.
func (n Int) Uint64() uint64 { return n.bits.Uint64() }

// Eq reports whether two Ints agree in width, signedness, and magnitude.
func (n Int) Eq(o Int) bool {
	return n.width == o.width && n.signed == o.signed && n.bits.Cmp(o.bits) == 0
}

// ZextOrTrunc reinterprets the value's raw bit pattern as an unsigned integer
// of the given width, zero-extending or truncating as needed.
func (n Int) ZextOrTrunc(width uint32) Int {
	out := NewInt(width, false)
	// Recover the raw pattern at the source width first, so that e.g. -1 at
	// 8 bits widens to 0xFF rather than to an all-ones word.
	mod := new(big.Int).Lsh(big.NewInt(1), uint(n.width))
	out.bits.Mod(n.bits, mod)
	out.normalize()
	return out
}

// AddQuantity returns the value plus q, wrapped into the receiver's range.
func (n Int) AddQuantity(q int64) Int {
	out := n.Clone()
	out.bits.Add(out.bits, big.NewInt(q))
	out.normalize()
	return out
}

// String renders the value in decimal, negative values with a leading minus.
func (n Int) String() string {
	if n.bits == nil {
		return "0"
	}
	return n.bits.String()
}

// ---------------------------------------------------------------------------
// Float: fixed-precision binary float
// ---------------------------------------------------------------------------

// Float is an arbitrary-precision binary float with a fixed mantissa
// precision chosen at construction.
type Float struct {
	f *big.Float
}

// FloatFromFloat64 builds a Float from a float64 at IEEE double precision.
func FloatFromFloat64(v float64) Float {
	return Float{f: new(big.Float).SetPrec(53).SetFloat64(v)}
}

// FloatFromString parses a decimal literal at the given mantissa precision.
func FloatFromString(s string, prec uint) (Float, error) {
	f, _, err := big.ParseFloat(s, 10, prec, big.ToNearestEven)
	if err != nil {
		return Float{}, err
	}
	return Float{f: f}, nil
}

// Clone returns an independent copy.
func (x Float) Clone() Float {
	return Float{f: new(big.Float).Copy(x.f)}
}

// Prec returns the mantissa precision in bits.
func (x Float) Prec() uint { return x.f.Prec() }

// Eq reports whether two Floats have the same precision and compare equal.
func (x Float) Eq(o Float) bool {
	return x.f.Prec() == o.f.Prec() && x.f.Cmp(o.f) == 0
}

// Float64 returns the nearest float64.
func (x Float) Float64() float64 {
	v, _ := x.f.Float64()
	return v
}

// String renders the value in shortest decimal form.
func (x Float) String() string {
	if x.f == nil {
		return "0"
	}
	return x.f.Text('g', -1)
}

// ---------------------------------------------------------------------------
// Fixed: fixed-point value as a scaled decimal
// ---------------------------------------------------------------------------

// Fixed is a fixed-point value together with its semantics: total bit width,
// fractional scale, and signedness. The numeric content is held as a decimal.
type Fixed struct {
	dec    *apd.Decimal
	width  uint32
	scale  uint32
	signed bool
}

// FixedFromString parses a decimal literal into a fixed-point value with the
// given semantics.
func FixedFromString(s string, width, scale uint32, signed bool) (Fixed, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return Fixed{}, err
	}
	return Fixed{dec: d, width: width, scale: scale, signed: signed}, nil
}

// Clone returns an independent copy.
func (x Fixed) Clone() Fixed {
	return Fixed{
		dec:    new(apd.Decimal).Set(x.dec),
		width:  x.width,
		scale:  x.scale,
		signed: x.signed,
	}
}

// BitWidth returns the total bit width of the fixed-point semantics.
func (x Fixed) BitWidth() uint32 { return x.width }

// Scale returns the number of fractional bits.
func (x Fixed) Scale() uint32 { return x.scale }

// IsSigned reports whether the semantics are signed.
func (x Fixed) IsSigned() bool { return x.signed }

// Eq reports whether two Fixed values agree in semantics and magnitude.
func (x Fixed) Eq(o Fixed) bool {
	return x.width == o.width && x.scale == o.scale && x.signed == o.signed &&
		x.dec.Cmp(o.dec) == 0
}

// String renders the value in plain decimal notation.
func (x Fixed) String() string {
	if x.dec == nil {
		return "0"
	}
	return x.dec.Text('f')
}
