// Package ast holds the slice of the host declaration/expression/type graph
// that the constant-value layer references. The value layer stores non-owning
// pointers into this graph; it never allocates or frees these nodes, and the
// host is responsible for keeping them alive for as long as any constant
// value refers to them.
//
// This package is a boundary model only. It carries exactly the identity and
// target facts the value layer touches, not the frontend's full semantics.
package ast

import "fmt"

// Decl is the common header embedded by every declaration node. Path entries
// and other packed representations identify a declaration by the address of
// this header, so it must never be copied out of its enclosing node.
type Decl struct {
	Name string
}

// ValueDecl is a named declaration that can anchor a constant location:
// a variable, function, or class member.
type ValueDecl struct {
	Decl
	Type *Type
}

// FieldDecl is a field of a record. Index is its position among the record's
// fields.
type FieldDecl struct {
	ValueDecl
	Index int
}

// RecordDecl is a class, struct, or union declaration. It appears in
// base-class path steps and member-pointer adjustment paths.
type RecordDecl struct {
	Decl
}

// Expr is an expression node. Constant locations anchored to materialized
// temporaries and similar expression-identified objects reference one.
type Expr struct {
	Desc string
}

// AddrLabelExpr is a label-address expression (&&label).
type AddrLabelExpr struct {
	Label string
}

// Type is an opaque type descriptor supplied by the host.
type Type struct {
	Spelling string
}

func (t *Type) String() string {
	if t == nil {
		return "<no type>"
	}
	return t.Spelling
}

// ---------------------------------------------------------------------------
// CharUnits: opaque byte-offset quantity
// ---------------------------------------------------------------------------

// CharUnits is an affine byte-offset quantity. The value layer stores and
// compares it verbatim; all arithmetic meaning belongs to the host.
type CharUnits int64

// CharUnitsZero is the zero offset.
const CharUnitsZero CharUnits = 0

// CharUnitsFromQuantity builds an offset of q bytes.
func CharUnitsFromQuantity(q int64) CharUnits { return CharUnits(q) }

// Quantity returns the offset in bytes.
func (c CharUnits) Quantity() int64 { return int64(c) }

// Add returns the sum of two offsets.
func (c CharUnits) Add(o CharUnits) CharUnits { return c + o }

// IsZero reports whether the offset is zero.
func (c CharUnits) IsZero() bool { return c == 0 }

func (c CharUnits) String() string { return fmt.Sprintf("%d", int64(c)) }

// ---------------------------------------------------------------------------
// Context: target facts for rendering and conversion queries
// ---------------------------------------------------------------------------

// Context resolves the target facts the value layer needs when rendering a
// constant or reducing one to an integer: pointer width and the bit pattern
// of a null pointer on the target.
type Context struct {
	PointerWidth     uint32 // bits
	CharWidth        uint32 // bits per byte
	NullPointerValue uint64 // target representation of a null pointer
}

// DefaultContext describes a conventional 64-bit target.
func DefaultContext() *Context {
	return &Context{PointerWidth: 64, CharWidth: 8, NullPointerValue: 0}
}
