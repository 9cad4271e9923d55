package constval

import (
	"github.com/cyrene-lang/cyrene/apnum"
	"github.com/cyrene-lang/cyrene/ast"
)

// ToIntegralConstant attempts to reduce the value to a plain integer. It
// succeeds for an integer value (returned with identical bit pattern, width,
// and signedness), and for a null-pointer location with no tracked path,
// where the result is the target's null-pointer representation plus the
// location's byte offset, at pointer width.
//
// Any other kind is merely inapplicable: the query reports failure, it never
// panics for one.
func (v *Value) ToIntegralConstant(ctx *ast.Context) (apnum.Int, bool) {
	switch v.kind {
	case KindInt:
		return v.Int().Clone(), true
	case KindLValue:
		d := v.data.(*lvData)
		if !d.isNull || d.hasPath {
			return apnum.Int{}, false
		}
		n := apnum.IntFromUint64(ctx.NullPointerValue, ctx.PointerWidth)
		return n.AddQuantity(d.offset.Quantity()), true
	}
	return apnum.Int{}, false
}
