package constval

import (
	"github.com/cyrene-lang/cyrene/apnum"
	"github.com/cyrene-lang/cyrene/ast"
)

// Kind discriminates the payload a Value carries. Exactly one payload
// interpretation is valid per kind, and the discriminator and live payload
// are always in sync.
type Kind uint8

const (
	KindUninitialized Kind = iota
	KindInt
	KindFloat
	KindFixedPoint
	KindComplexInt
	KindComplexFloat
	KindLValue
	KindVector
	KindArray
	KindStruct
	KindUnion
	KindMemberPointer
	KindAddrLabelDiff
)

var kindNames = [...]string{
	KindUninitialized: "Uninitialized",
	KindInt:           "Int",
	KindFloat:         "Float",
	KindFixedPoint:    "FixedPoint",
	KindComplexInt:    "ComplexInt",
	KindComplexFloat:  "ComplexFloat",
	KindLValue:        "LValue",
	KindVector:        "Vector",
	KindArray:         "Array",
	KindStruct:        "Struct",
	KindUnion:         "Union",
	KindMemberPointer: "MemberPointer",
	KindAddrLabelDiff: "AddrLabelDiff",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Value is the result of evaluating an expression as a constant: a
// discriminated union over scalars, complex pairs, symbolic locations,
// aggregates, member pointers, and label-address differences.
//
// A Value starts Uninitialized, transitions into a concrete kind exactly once
// through a Make* call, and is thereafter mutated through kind-specific
// accessors. Destroy (or reassignment via SetFrom) recursively releases owned
// children and resets the value to Uninitialized.
//
// Every variable-size payload holds its elements in a separately allocated
// slice, never inline, so Swap is a two-word exchange for every kind.
type Value struct {
	kind Kind
	data payload
}

// payload is the per-kind storage. deepCopy produces an independent payload
// tree; release recursively drops owned children.
type payload interface {
	deepCopy() payload
	release()
}

// ---------------------------------------------------------------------------
// Kind predicates
// ---------------------------------------------------------------------------

// GetKind returns the active kind.
func (v *Value) GetKind() Kind { return v.kind }

func (v *Value) IsUninit() bool        { return v.kind == KindUninitialized }
func (v *Value) IsInt() bool           { return v.kind == KindInt }
func (v *Value) IsFloat() bool         { return v.kind == KindFloat }
func (v *Value) IsFixedPoint() bool    { return v.kind == KindFixedPoint }
func (v *Value) IsComplexInt() bool    { return v.kind == KindComplexInt }
func (v *Value) IsComplexFloat() bool  { return v.kind == KindComplexFloat }
func (v *Value) IsLValue() bool        { return v.kind == KindLValue }
func (v *Value) IsVector() bool        { return v.kind == KindVector }
func (v *Value) IsArray() bool         { return v.kind == KindArray }
func (v *Value) IsStruct() bool        { return v.kind == KindStruct }
func (v *Value) IsUnion() bool         { return v.kind == KindUnion }
func (v *Value) IsMemberPointer() bool { return v.kind == KindMemberPointer }
func (v *Value) IsAddrLabelDiff() bool { return v.kind == KindAddrLabelDiff }

// NeedsCleanup reports whether Destroy has work to do: true for every kind
// except Uninitialized.
func (v *Value) NeedsCleanup() bool { return v.kind != KindUninitialized }

// ---------------------------------------------------------------------------
// Lifecycle
// ---------------------------------------------------------------------------

// checkUninit enforces the become-once contract: a Value may transition out
// of Uninitialized at most once. Violations are programming errors.
func (v *Value) checkUninit(op string) {
	if v.kind != KindUninitialized {
		panic("Value." + op + ": bad state change from " + v.kind.String())
	}
}

// check enforces the accessor contract: the accessor's kind must be active.
func (v *Value) check(k Kind, op string) {
	if v.kind != k {
		panic("Value." + op + ": invalid accessor, active kind is " + v.kind.String())
	}
}

// Destroy recursively releases the active payload and resets the value to
// Uninitialized. Safe to call unconditionally and idempotent.
func (v *Value) Destroy() {
	if v.kind == KindUninitialized {
		return
	}
	v.data.release()
	v.data = nil
	v.kind = KindUninitialized
}

// Swap exchanges the contents of two values in O(1), regardless of how large
// the owned trees are.
func (v *Value) Swap(o *Value) {
	v.kind, o.kind = o.kind, v.kind
	v.data, o.data = o.data, v.data
}

// Take moves the contents out of v, leaving it Uninitialized. O(1).
func (v *Value) Take() Value {
	out := Value{kind: v.kind, data: v.data}
	v.kind = KindUninitialized
	v.data = nil
	return out
}

// Copy returns an independent deep copy of the whole owned tree.
func (v *Value) Copy() Value {
	if v.kind == KindUninitialized {
		return Value{}
	}
	return Value{kind: v.kind, data: v.data.deepCopy()}
}

// SetFrom replaces v's contents with a deep copy of o (copy-and-swap).
func (v *Value) SetFrom(o *Value) {
	tmp := o.Copy()
	v.Swap(&tmp)
	tmp.Destroy()
}

// ---------------------------------------------------------------------------
// Scalar payloads
// ---------------------------------------------------------------------------

type intData struct{ val apnum.Int }

func (d *intData) deepCopy() payload { return &intData{val: d.val.Clone()} }
func (d *intData) release()          {}

type floatData struct{ val apnum.Float }

func (d *floatData) deepCopy() payload { return &floatData{val: d.val.Clone()} }
func (d *floatData) release()          {}

type fixedData struct{ val apnum.Fixed }

func (d *fixedData) deepCopy() payload { return &fixedData{val: d.val.Clone()} }
func (d *fixedData) release()          {}

type complexIntData struct{ re, im apnum.Int }

func (d *complexIntData) deepCopy() payload {
	return &complexIntData{re: d.re.Clone(), im: d.im.Clone()}
}
func (d *complexIntData) release() {}

type complexFloatData struct{ re, im apnum.Float }

func (d *complexFloatData) deepCopy() payload {
	return &complexFloatData{re: d.re.Clone(), im: d.im.Clone()}
}
func (d *complexFloatData) release() {}

// MakeInt transitions an Uninitialized value into an integer.
func (v *Value) MakeInt(i apnum.Int) {
	v.checkUninit("MakeInt")
	v.data = &intData{val: i}
	v.kind = KindInt
}

// Int returns the integer payload for in-place mutation.
func (v *Value) Int() *apnum.Int {
	v.check(KindInt, "Int")
	return &v.data.(*intData).val
}

// SetInt replaces the integer payload.
func (v *Value) SetInt(i apnum.Int) {
	v.check(KindInt, "SetInt")
	v.data.(*intData).val = i
}

// MakeFloat transitions an Uninitialized value into a float.
func (v *Value) MakeFloat(f apnum.Float) {
	v.checkUninit("MakeFloat")
	v.data = &floatData{val: f}
	v.kind = KindFloat
}

// Float returns the float payload for in-place mutation.
func (v *Value) Float() *apnum.Float {
	v.check(KindFloat, "Float")
	return &v.data.(*floatData).val
}

// SetFloat replaces the float payload.
func (v *Value) SetFloat(f apnum.Float) {
	v.check(KindFloat, "SetFloat")
	v.data.(*floatData).val = f
}

// MakeFixedPoint transitions an Uninitialized value into a fixed-point value.
func (v *Value) MakeFixedPoint(x apnum.Fixed) {
	v.checkUninit("MakeFixedPoint")
	v.data = &fixedData{val: x}
	v.kind = KindFixedPoint
}

// FixedPoint returns the fixed-point payload for in-place mutation.
func (v *Value) FixedPoint() *apnum.Fixed {
	v.check(KindFixedPoint, "FixedPoint")
	return &v.data.(*fixedData).val
}

// SetFixedPoint replaces the fixed-point payload.
func (v *Value) SetFixedPoint(x apnum.Fixed) {
	v.check(KindFixedPoint, "SetFixedPoint")
	v.data.(*fixedData).val = x
}

// MakeComplexInt transitions an Uninitialized value into an integer complex
// pair. Both components must have the same bit width.
func (v *Value) MakeComplexInt(re, im apnum.Int) {
	v.checkUninit("MakeComplexInt")
	if re.BitWidth() != im.BitWidth() {
		panic("Value.MakeComplexInt: component bit widths differ")
	}
	v.data = &complexIntData{re: re, im: im}
	v.kind = KindComplexInt
}

// ComplexIntReal returns the real component.
func (v *Value) ComplexIntReal() *apnum.Int {
	v.check(KindComplexInt, "ComplexIntReal")
	return &v.data.(*complexIntData).re
}

// ComplexIntImag returns the imaginary component.
func (v *Value) ComplexIntImag() *apnum.Int {
	v.check(KindComplexInt, "ComplexIntImag")
	return &v.data.(*complexIntData).im
}

// MakeComplexFloat transitions an Uninitialized value into a floating complex
// pair. Both components must have the same precision.
func (v *Value) MakeComplexFloat(re, im apnum.Float) {
	v.checkUninit("MakeComplexFloat")
	if re.Prec() != im.Prec() {
		panic("Value.MakeComplexFloat: component precisions differ")
	}
	v.data = &complexFloatData{re: re, im: im}
	v.kind = KindComplexFloat
}

// ComplexFloatReal returns the real component.
func (v *Value) ComplexFloatReal() *apnum.Float {
	v.check(KindComplexFloat, "ComplexFloatReal")
	return &v.data.(*complexFloatData).re
}

// ComplexFloatImag returns the imaginary component.
func (v *Value) ComplexFloatImag() *apnum.Float {
	v.check(KindComplexFloat, "ComplexFloatImag")
	return &v.data.(*complexFloatData).im
}

// ---------------------------------------------------------------------------
// Aggregate payloads: Vector, Array, Struct, Union
// ---------------------------------------------------------------------------

func copyValues(src []Value) []Value {
	out := make([]Value, len(src))
	for i := range src {
		out[i] = src[i].Copy()
	}
	return out
}

func releaseValues(vs []Value) {
	for i := range vs {
		vs[i].Destroy()
	}
}

type vecData struct{ elts []Value }

func (d *vecData) deepCopy() payload { return &vecData{elts: copyValues(d.elts)} }
func (d *vecData) release()          { releaseValues(d.elts); d.elts = nil }

// arrData holds initElts explicit elements; when initElts != size, one extra
// trailing slot holds the filler standing in for the remaining elements.
type arrData struct {
	elts     []Value
	initElts uint32
	size     uint32
}

func (d *arrData) deepCopy() payload {
	return &arrData{elts: copyValues(d.elts), initElts: d.initElts, size: d.size}
}
func (d *arrData) release() { releaseValues(d.elts); d.elts = nil }

type structData struct {
	elts      []Value // bases first, then fields
	numBases  uint32
	numFields uint32
}

func (d *structData) deepCopy() payload {
	return &structData{elts: copyValues(d.elts), numBases: d.numBases, numFields: d.numFields}
}
func (d *structData) release() { releaseValues(d.elts); d.elts = nil }

// unionData with a nil field is the "no active member" state, which is a
// valid, inspectable state and not an error. value is always allocated.
type unionData struct {
	field *ast.FieldDecl
	value *Value
}

func (d *unionData) deepCopy() payload {
	inner := d.value.Copy()
	return &unionData{field: d.field, value: &inner}
}
func (d *unionData) release() {
	d.value.Destroy()
	d.field = nil
}

// MakeVector transitions an Uninitialized value into a vector of n
// Uninitialized elements, to be filled through VectorElt.
func (v *Value) MakeVector(n uint32) {
	v.checkUninit("MakeVector")
	v.data = &vecData{elts: make([]Value, n)}
	v.kind = KindVector
}

// VectorLength returns the element count.
func (v *Value) VectorLength() uint32 {
	v.check(KindVector, "VectorLength")
	return uint32(len(v.data.(*vecData).elts))
}

// VectorElt returns element i for reading or in-place construction.
func (v *Value) VectorElt(i uint32) *Value {
	v.check(KindVector, "VectorElt")
	d := v.data.(*vecData)
	if int(i) >= len(d.elts) {
		panic("Value.VectorElt: index out of range")
	}
	return &d.elts[i]
}

// MakeArray transitions an Uninitialized value into an array with initElts
// explicitly initialized elements out of size total. When initElts != size,
// the remaining elements are represented uniformly by a single filler slot.
// All slots start Uninitialized.
func (v *Value) MakeArray(initElts, size uint32) {
	v.checkUninit("MakeArray")
	if initElts > size {
		panic("Value.MakeArray: more initialized elements than the array holds")
	}
	n := initElts
	if initElts != size {
		n++ // filler slot
	}
	v.data = &arrData{elts: make([]Value, n), initElts: initElts, size: size}
	v.kind = KindArray
}

// ArrayInitializedElts returns the count of explicitly initialized elements.
func (v *Value) ArrayInitializedElts() uint32 {
	v.check(KindArray, "ArrayInitializedElts")
	return v.data.(*arrData).initElts
}

// ArraySize returns the array's total element count.
func (v *Value) ArraySize() uint32 {
	v.check(KindArray, "ArraySize")
	return v.data.(*arrData).size
}

// HasArrayFiller reports whether a filler stands in for trailing elements.
func (v *Value) HasArrayFiller() bool {
	v.check(KindArray, "HasArrayFiller")
	d := v.data.(*arrData)
	return d.initElts != d.size
}

// ArrayInitializedElt returns explicit element i.
func (v *Value) ArrayInitializedElt(i uint32) *Value {
	v.check(KindArray, "ArrayInitializedElt")
	d := v.data.(*arrData)
	if i >= d.initElts {
		panic("Value.ArrayInitializedElt: index out of range")
	}
	return &d.elts[i]
}

// ArrayFiller returns the filler value standing in for every element in
// [initElts, size). Accessing it on a fully initialized array is a
// programming error.
func (v *Value) ArrayFiller() *Value {
	v.check(KindArray, "ArrayFiller")
	d := v.data.(*arrData)
	if d.initElts == d.size {
		panic("Value.ArrayFiller: array has no filler")
	}
	return &d.elts[d.initElts]
}

// MakeStruct transitions an Uninitialized value into a struct with
// numBases base-class slots followed by numFields field slots, all starting
// Uninitialized.
func (v *Value) MakeStruct(numBases, numFields uint32) {
	v.checkUninit("MakeStruct")
	v.data = &structData{
		elts:      make([]Value, numBases+numFields),
		numBases:  numBases,
		numFields: numFields,
	}
	v.kind = KindStruct
}

// StructNumBases returns the base-class slot count.
func (v *Value) StructNumBases() uint32 {
	v.check(KindStruct, "StructNumBases")
	return v.data.(*structData).numBases
}

// StructNumFields returns the field slot count.
func (v *Value) StructNumFields() uint32 {
	v.check(KindStruct, "StructNumFields")
	return v.data.(*structData).numFields
}

// StructBase returns base-class sub-value i.
func (v *Value) StructBase(i uint32) *Value {
	v.check(KindStruct, "StructBase")
	d := v.data.(*structData)
	if i >= d.numBases {
		panic("Value.StructBase: index out of range")
	}
	return &d.elts[i]
}

// StructField returns field sub-value i.
func (v *Value) StructField(i uint32) *Value {
	v.check(KindStruct, "StructField")
	d := v.data.(*structData)
	if i >= d.numFields {
		panic("Value.StructField: index out of range")
	}
	return &d.elts[d.numBases+i]
}

// MakeUnion transitions an Uninitialized value into a union with no active
// member.
func (v *Value) MakeUnion() {
	v.checkUninit("MakeUnion")
	v.data = &unionData{value: &Value{}}
	v.kind = KindUnion
}

// UnionField returns the active member's declaration, or nil when no member
// is active.
func (v *Value) UnionField() *ast.FieldDecl {
	v.check(KindUnion, "UnionField")
	return v.data.(*unionData).field
}

// UnionValue returns the active member's value. With no active member this is
// an Uninitialized value.
func (v *Value) UnionValue() *Value {
	v.check(KindUnion, "UnionValue")
	return v.data.(*unionData).value
}

// SetUnion makes field the active member, holding a deep copy of val. The
// previous content is released first. A nil val activates the field with an
// Uninitialized value.
func (v *Value) SetUnion(field *ast.FieldDecl, val *Value) {
	v.check(KindUnion, "SetUnion")
	d := v.data.(*unionData)
	d.value.Destroy()
	d.field = field
	if val != nil {
		*d.value = val.Copy()
	}
}

// ---------------------------------------------------------------------------
// Member-pointer and label-difference payloads
// ---------------------------------------------------------------------------

// memberPtrData holds only non-owning references into the host graph.
type memberPtrData struct {
	decl      *ast.ValueDecl
	isDerived bool
	path      []*ast.RecordDecl
}

func (d *memberPtrData) deepCopy() payload {
	path := make([]*ast.RecordDecl, len(d.path))
	copy(path, d.path)
	return &memberPtrData{decl: d.decl, isDerived: d.isDerived, path: path}
}
func (d *memberPtrData) release() { d.path = nil }

type labelDiffData struct {
	lhs, rhs *ast.AddrLabelExpr
}

func (d *labelDiffData) deepCopy() payload { return &labelDiffData{lhs: d.lhs, rhs: d.rhs} }
func (d *labelDiffData) release()          {}

// MakeMemberPointer transitions an Uninitialized value into a pointer to the
// given class member. decl may be nil for a null member pointer. path holds
// the intermediate class declarations of the inheritance adjustment; it is
// copied, never retained.
func (v *Value) MakeMemberPointer(decl *ast.ValueDecl, isDerived bool, path []*ast.RecordDecl) {
	v.checkUninit("MakeMemberPointer")
	p := make([]*ast.RecordDecl, len(path))
	copy(p, path)
	v.data = &memberPtrData{decl: decl, isDerived: isDerived, path: p}
	v.kind = KindMemberPointer
}

// MemberPointerDecl returns the target member, or nil for a null member
// pointer.
func (v *Value) MemberPointerDecl() *ast.ValueDecl {
	v.check(KindMemberPointer, "MemberPointerDecl")
	return v.data.(*memberPtrData).decl
}

// IsMemberPointerToDerivedMember reports whether the adjustment path runs
// from a base class toward a derived one.
func (v *Value) IsMemberPointerToDerivedMember() bool {
	v.check(KindMemberPointer, "IsMemberPointerToDerivedMember")
	return v.data.(*memberPtrData).isDerived
}

// MemberPointerPath returns the inheritance adjustment path. The slice is
// owned by the value and must not be mutated by the caller.
func (v *Value) MemberPointerPath() []*ast.RecordDecl {
	v.check(KindMemberPointer, "MemberPointerPath")
	return v.data.(*memberPtrData).path
}

// MakeAddrLabelDiff transitions an Uninitialized value into the difference of
// two label addresses.
func (v *Value) MakeAddrLabelDiff(lhs, rhs *ast.AddrLabelExpr) {
	v.checkUninit("MakeAddrLabelDiff")
	v.data = &labelDiffData{lhs: lhs, rhs: rhs}
	v.kind = KindAddrLabelDiff
}

// AddrLabelDiffLHS returns the left label expression.
func (v *Value) AddrLabelDiffLHS() *ast.AddrLabelExpr {
	v.check(KindAddrLabelDiff, "AddrLabelDiffLHS")
	return v.data.(*labelDiffData).lhs
}

// AddrLabelDiffRHS returns the right label expression.
func (v *Value) AddrLabelDiffRHS() *ast.AddrLabelExpr {
	v.check(KindAddrLabelDiff, "AddrLabelDiffRHS")
	return v.data.(*labelDiffData).rhs
}

// SetAddrLabelDiff replaces both label expressions.
func (v *Value) SetAddrLabelDiff(lhs, rhs *ast.AddrLabelExpr) {
	v.check(KindAddrLabelDiff, "SetAddrLabelDiff")
	d := v.data.(*labelDiffData)
	d.lhs, d.rhs = lhs, rhs
}

// ---------------------------------------------------------------------------
// Whole-value constructors
// ---------------------------------------------------------------------------

// NewInt builds an integer value.
func NewInt(i apnum.Int) Value {
	var v Value
	v.MakeInt(i)
	return v
}

// NewFloat builds a float value.
func NewFloat(f apnum.Float) Value {
	var v Value
	v.MakeFloat(f)
	return v
}

// NewFixedPoint builds a fixed-point value.
func NewFixedPoint(x apnum.Fixed) Value {
	var v Value
	v.MakeFixedPoint(x)
	return v
}

// NewComplexInt builds an integer complex pair.
func NewComplexInt(re, im apnum.Int) Value {
	var v Value
	v.MakeComplexInt(re, im)
	return v
}

// NewComplexFloat builds a floating complex pair.
func NewComplexFloat(re, im apnum.Float) Value {
	var v Value
	v.MakeComplexFloat(re, im)
	return v
}

// NewVector builds a vector holding deep copies of the given elements.
func NewVector(elts []Value) Value {
	var v Value
	v.MakeVector(uint32(len(elts)))
	for i := range elts {
		*v.VectorElt(uint32(i)) = elts[i].Copy()
	}
	return v
}

// NewArray builds an array with initElts explicit slots out of size total,
// all Uninitialized.
func NewArray(initElts, size uint32) Value {
	var v Value
	v.MakeArray(initElts, size)
	return v
}

// NewStruct builds a struct with the given base and field slot counts, all
// Uninitialized.
func NewStruct(numBases, numFields uint32) Value {
	var v Value
	v.MakeStruct(numBases, numFields)
	return v
}

// NewUnion builds a union with the given active member holding a deep copy of
// val. Pass a nil field for the no-active-member state.
func NewUnion(field *ast.FieldDecl, val *Value) Value {
	var v Value
	v.MakeUnion()
	if field != nil || val != nil {
		v.SetUnion(field, val)
	}
	return v
}

// NewMemberPointer builds a member-pointer value.
func NewMemberPointer(decl *ast.ValueDecl, isDerived bool, path []*ast.RecordDecl) Value {
	var v Value
	v.MakeMemberPointer(decl, isDerived, path)
	return v
}

// NewAddrLabelDiff builds a label-address difference value.
func NewAddrLabelDiff(lhs, rhs *ast.AddrLabelExpr) Value {
	var v Value
	v.MakeAddrLabelDiff(lhs, rhs)
	return v
}
