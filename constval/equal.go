package constval

// EqualValues reports deep structural equality: the same kind at every node,
// equal scalar leaves, and identical aggregate shape. Locations compare by
// base, offset, path, and flags; member pointers and label differences by
// referenced identity.
func EqualValues(a, b *Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindUninitialized:
		return true
	case KindInt:
		return a.Int().Eq(*b.Int())
	case KindFloat:
		return a.Float().Eq(*b.Float())
	case KindFixedPoint:
		return a.FixedPoint().Eq(*b.FixedPoint())
	case KindComplexInt:
		return a.ComplexIntReal().Eq(*b.ComplexIntReal()) &&
			a.ComplexIntImag().Eq(*b.ComplexIntImag())
	case KindComplexFloat:
		return a.ComplexFloatReal().Eq(*b.ComplexFloatReal()) &&
			a.ComplexFloatImag().Eq(*b.ComplexFloatImag())
	case KindLValue:
		return equalLValues(a.data.(*lvData), b.data.(*lvData))
	case KindVector:
		if a.VectorLength() != b.VectorLength() {
			return false
		}
		for i := uint32(0); i < a.VectorLength(); i++ {
			if !EqualValues(a.VectorElt(i), b.VectorElt(i)) {
				return false
			}
		}
		return true
	case KindArray:
		if a.ArraySize() != b.ArraySize() ||
			a.ArrayInitializedElts() != b.ArrayInitializedElts() {
			return false
		}
		for i := uint32(0); i < a.ArrayInitializedElts(); i++ {
			if !EqualValues(a.ArrayInitializedElt(i), b.ArrayInitializedElt(i)) {
				return false
			}
		}
		if a.HasArrayFiller() && !EqualValues(a.ArrayFiller(), b.ArrayFiller()) {
			return false
		}
		return true
	case KindStruct:
		if a.StructNumBases() != b.StructNumBases() ||
			a.StructNumFields() != b.StructNumFields() {
			return false
		}
		for i := uint32(0); i < a.StructNumBases(); i++ {
			if !EqualValues(a.StructBase(i), b.StructBase(i)) {
				return false
			}
		}
		for i := uint32(0); i < a.StructNumFields(); i++ {
			if !EqualValues(a.StructField(i), b.StructField(i)) {
				return false
			}
		}
		return true
	case KindUnion:
		return a.UnionField() == b.UnionField() &&
			EqualValues(a.UnionValue(), b.UnionValue())
	case KindMemberPointer:
		if a.MemberPointerDecl() != b.MemberPointerDecl() ||
			a.IsMemberPointerToDerivedMember() != b.IsMemberPointerToDerivedMember() {
			return false
		}
		ap, bp := a.MemberPointerPath(), b.MemberPointerPath()
		if len(ap) != len(bp) {
			return false
		}
		for i := range ap {
			if ap[i] != bp[i] {
				return false
			}
		}
		return true
	case KindAddrLabelDiff:
		return a.AddrLabelDiffLHS() == b.AddrLabelDiffLHS() &&
			a.AddrLabelDiffRHS() == b.AddrLabelDiffRHS()
	}
	return false
}

func equalLValues(a, b *lvData) bool {
	if !a.base.Equal(b.base) || a.offset != b.offset ||
		a.hasPath != b.hasPath || a.onePast != b.onePast || a.isNull != b.isNull {
		return false
	}
	if !a.hasPath {
		return true
	}
	if len(a.path) != len(b.path) {
		return false
	}
	for i := range a.path {
		if a.path[i] != b.path[i] {
			return false
		}
	}
	return true
}
