package constval

import (
	"unsafe"

	"github.com/cyrene-lang/cyrene/ast"
)

// ---------------------------------------------------------------------------
// LValueBase: the root object a symbolic location is anchored to
// ---------------------------------------------------------------------------

// baseKind discriminates the three reference interpretations of an
// LValueBase, plus the null base and the two reserved map-key sentinels.
// An explicit discriminant next to one opaque reference word stands in for
// low-bit pointer tagging, which Go cannot guarantee alignment for.
type baseKind uint8

const (
	baseNull baseKind = iota
	baseDecl
	baseExpr
	baseTypeInfo
	baseEmptyKey     // reserved: hash-map "never used" sentinel
	baseTombstoneKey // reserved: hash-map "deleted" sentinel
)

// LValueBase identifies the root object of a location value: a declaration,
// an expression node, or a type-descriptor symbol. Exactly one interpretation
// of ref is active, selected by kind, and the auxiliary state is likewise
// kind-dependent: declaration and expression bases carry a (call-index,
// version) pair disambiguating multiple live activations of the same entity
// during recursive constant evaluation; type-info bases instead carry the
// queried type.
//
// The zero LValueBase is the null base, used by null-pointer locations.
//
// All references are non-owning; the referenced nodes belong to the host.
type LValueBase struct {
	kind baseKind
	ref  unsafe.Pointer // *ast.ValueDecl, *ast.Expr, or *ast.Type per kind

	// Auxiliary state. callIndex/version are valid for declaration and
	// expression bases; typeInfoType for type-info bases.
	callIndex    uint32
	version      uint32
	typeInfoType *ast.Type
}

// DeclBase anchors a location to a declaration, disambiguated by the
// activation's call index and version.
func DeclBase(d *ast.ValueDecl, callIndex, version uint32) LValueBase {
	if d == nil {
		panic("constval.DeclBase: nil declaration")
	}
	return LValueBase{
		kind:      baseDecl,
		ref:       unsafe.Pointer(d),
		callIndex: callIndex,
		version:   version,
	}
}

// ExprBase anchors a location to an expression node (e.g. a materialized
// temporary), disambiguated like a declaration base.
func ExprBase(e *ast.Expr, callIndex, version uint32) LValueBase {
	if e == nil {
		panic("constval.ExprBase: nil expression")
	}
	return LValueBase{
		kind:      baseExpr,
		ref:       unsafe.Pointer(e),
		callIndex: callIndex,
		version:   version,
	}
}

// TypeInfoBase anchors a location to the type-descriptor symbol of sym, as
// produced by a typeid-style query against the type queried.
func TypeInfoBase(sym, queried *ast.Type) LValueBase {
	if sym == nil {
		panic("constval.TypeInfoBase: nil type")
	}
	return LValueBase{kind: baseTypeInfo, ref: unsafe.Pointer(sym), typeInfoType: queried}
}

// IsNull reports whether this is the null base.
func (b LValueBase) IsNull() bool { return b.kind == baseNull }

// IsDecl reports whether the base references a declaration.
func (b LValueBase) IsDecl() bool { return b.kind == baseDecl }

// IsExpr reports whether the base references an expression node.
func (b LValueBase) IsExpr() bool { return b.kind == baseExpr }

// IsTypeInfo reports whether the base references a type-descriptor symbol.
func (b LValueBase) IsTypeInfo() bool { return b.kind == baseTypeInfo }

// Decl returns the referenced declaration.
func (b LValueBase) Decl() *ast.ValueDecl {
	if b.kind != baseDecl {
		panic("LValueBase.Decl: not a declaration base")
	}
	return (*ast.ValueDecl)(b.ref)
}

// Expr returns the referenced expression node.
func (b LValueBase) Expr() *ast.Expr {
	if b.kind != baseExpr {
		panic("LValueBase.Expr: not an expression base")
	}
	return (*ast.Expr)(b.ref)
}

// TypeInfo returns the referenced type-descriptor symbol.
func (b LValueBase) TypeInfo() *ast.Type {
	if b.kind != baseTypeInfo {
		panic("LValueBase.TypeInfo: not a type-info base")
	}
	return (*ast.Type)(b.ref)
}

// TypeInfoType returns the type the type-info query was made against.
func (b LValueBase) TypeInfoType() *ast.Type {
	if b.kind != baseTypeInfo {
		panic("LValueBase.TypeInfoType: not a type-info base")
	}
	return b.typeInfoType
}

// CallIndex returns the activation call index of a declaration or expression
// base.
func (b LValueBase) CallIndex() uint32 {
	if b.kind != baseDecl && b.kind != baseExpr {
		panic("LValueBase.CallIndex: base has no call index")
	}
	return b.callIndex
}

// Version returns the activation version of a declaration or expression base.
func (b LValueBase) Version() uint32 {
	if b.kind != baseDecl && b.kind != baseExpr {
		panic("LValueBase.Version: base has no version")
	}
	return b.version
}

// Equal reports whether two bases agree in reference kind, referenced entity,
// and the auxiliary interpretation matching that kind. A type-info base is
// never equal to a declaration or expression base, even if the underlying
// reference words collide.
func (b LValueBase) Equal(o LValueBase) bool {
	if b.kind != o.kind {
		return false
	}
	switch b.kind {
	case baseNull, baseEmptyKey, baseTombstoneKey:
		return true
	case baseTypeInfo:
		return b.ref == o.ref && b.typeInfoType == o.typeInfoType
	default:
		return b.ref == o.ref && b.callIndex == o.callIndex && b.version == o.version
	}
}

// Name returns a human-readable identity for rendering.
func (b LValueBase) Name() string {
	switch b.kind {
	case baseDecl:
		return b.Decl().Name
	case baseExpr:
		return b.Expr().Desc
	case baseTypeInfo:
		return "typeid(" + b.TypeInfoType().String() + ")"
	default:
		return "<null>"
	}
}

// ---------------------------------------------------------------------------
// PathEntry: one navigation step from a base to a subobject
// ---------------------------------------------------------------------------

// PathEntry is one subobject navigation step, packed into a single 64-bit
// word with no stored discriminator: either a (declaration, is-virtual-base)
// pair identifying a field or base-class subobject, or a plain array index.
// Which interpretation applies is determined by the static type at that path
// position; the caller must track that context.
type PathEntry struct {
	bits uint64
}

// virtualBaseBit tags a base-or-member entry as a virtual base subobject.
// Declaration headers are word-aligned, so bit 0 of their address is free.
const virtualBaseBit uint64 = 1

// NewBaseOrMemberEntry packs a field or base-class step. The declaration is a
// non-owning reference into the host graph; the host keeps it alive.
func NewBaseOrMemberEntry(d *ast.Decl, isVirtualBase bool) PathEntry {
	bits := uint64(uintptr(unsafe.Pointer(d)))
	if isVirtualBase {
		bits |= virtualBaseBit
	}
	return PathEntry{bits: bits}
}

// NewArrayIndexEntry packs an array-index step.
func NewArrayIndexEntry(i uint64) PathEntry {
	return PathEntry{bits: i}
}

// BaseOrMember unpacks the entry as a (declaration, is-virtual-base) step.
// Only valid when the type context at this position names a record.
func (p PathEntry) BaseOrMember() (*ast.Decl, bool) {
	d := (*ast.Decl)(unsafe.Pointer(uintptr(p.bits &^ virtualBaseBit)))
	return d, p.bits&virtualBaseBit != 0
}

// ArrayIndex unpacks the entry as an array index. Only valid when the type
// context at this position names an array.
func (p PathEntry) ArrayIndex() uint64 { return p.bits }

// ---------------------------------------------------------------------------
// LValue payload on Value
// ---------------------------------------------------------------------------

// lvData is the location payload: base + byte offset + optional subobject
// path + flags. With no tracked path, onePast is always false and the value
// denotes exactly the base object at the given offset.
type lvData struct {
	base    LValueBase
	offset  ast.CharUnits
	path    []PathEntry
	hasPath bool
	onePast bool
	isNull  bool
}

func (d *lvData) deepCopy() payload {
	out := &lvData{
		base:    d.base,
		offset:  d.offset,
		hasPath: d.hasPath,
		onePast: d.onePast,
		isNull:  d.isNull,
	}
	if d.hasPath {
		out.path = make([]PathEntry, len(d.path))
		copy(out.path, d.path)
	}
	return out
}
func (d *lvData) release() { d.path = nil }

// MakeLValue transitions an Uninitialized value into a location with no
// tracked subobject path.
func (v *Value) MakeLValue(base LValueBase, offset ast.CharUnits, isNullPointer bool) {
	v.checkUninit("MakeLValue")
	v.data = &lvData{base: base, offset: offset, isNull: isNullPointer}
	v.kind = KindLValue
}

// MakeLValueWithPath transitions an Uninitialized value into a location with
// a tracked subobject path. The path is copied, never retained.
func (v *Value) MakeLValueWithPath(base LValueBase, offset ast.CharUnits,
	path []PathEntry, onePastTheEnd, isNullPointer bool) {
	v.checkUninit("MakeLValueWithPath")
	p := make([]PathEntry, len(path))
	copy(p, path)
	v.data = &lvData{
		base:    base,
		offset:  offset,
		path:    p,
		hasPath: true,
		onePast: onePastTheEnd,
		isNull:  isNullPointer,
	}
	v.kind = KindLValue
}

// NewLValue builds a location value with no tracked path.
func NewLValue(base LValueBase, offset ast.CharUnits, isNullPointer bool) Value {
	var v Value
	v.MakeLValue(base, offset, isNullPointer)
	return v
}

// NewLValueWithPath builds a location value with a tracked subobject path.
func NewLValueWithPath(base LValueBase, offset ast.CharUnits,
	path []PathEntry, onePastTheEnd, isNullPointer bool) Value {
	var v Value
	v.MakeLValueWithPath(base, offset, path, onePastTheEnd, isNullPointer)
	return v
}

// NewNullPointer builds the canonical null-pointer location: null base, zero
// offset, no path.
func NewNullPointer() Value {
	return NewLValue(LValueBase{}, ast.CharUnitsZero, true)
}

// LValueBase returns the location's symbolic base.
func (v *Value) LValueBase() LValueBase {
	v.check(KindLValue, "LValueBase")
	return v.data.(*lvData).base
}

// LValueOffset returns the location's byte offset for reading or mutation.
func (v *Value) LValueOffset() *ast.CharUnits {
	v.check(KindLValue, "LValueOffset")
	return &v.data.(*lvData).offset
}

// HasLValuePath reports whether a subobject path is tracked. A tracked path
// may be empty; that is distinct from no path at all.
func (v *Value) HasLValuePath() bool {
	v.check(KindLValue, "HasLValuePath")
	return v.data.(*lvData).hasPath
}

// LValuePath returns the tracked subobject path. The slice is owned by the
// value and must not be mutated by the caller.
func (v *Value) LValuePath() []PathEntry {
	v.check(KindLValue, "LValuePath")
	d := v.data.(*lvData)
	if !d.hasPath {
		panic("Value.LValuePath: no path tracked")
	}
	return d.path
}

// IsLValueOnePastTheEnd reports whether the location denotes the position
// immediately after an array's last element.
func (v *Value) IsLValueOnePastTheEnd() bool {
	v.check(KindLValue, "IsLValueOnePastTheEnd")
	return v.data.(*lvData).onePast
}

// IsNullPointer reports whether the location is a null pointer (possibly
// offset).
func (v *Value) IsNullPointer() bool {
	v.check(KindLValue, "IsNullPointer")
	return v.data.(*lvData).isNull
}

// LValueCallIndex returns the base's activation call index.
func (v *Value) LValueCallIndex() uint32 {
	v.check(KindLValue, "LValueCallIndex")
	return v.data.(*lvData).base.CallIndex()
}

// LValueVersion returns the base's activation version.
func (v *Value) LValueVersion() uint32 {
	v.check(KindLValue, "LValueVersion")
	return v.data.(*lvData).base.Version()
}
