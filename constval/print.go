package constval

import (
	"fmt"
	"strings"

	"github.com/cyrene-lang/cyrene/ast"
)

// Policy controls the human-oriented rendering of constant values.
type Policy struct {
	Indent    int  // spaces per nesting level when Multiline is set
	MaxDepth  int  // aggregates nested deeper than this render as "..."
	Multiline bool // one aggregate element per line
}

// DefaultPolicy matches the frontend's diagnostic output.
func DefaultPolicy() Policy {
	return Policy{Indent: 2, MaxDepth: 8}
}

// String returns the debug rendering.
func (v *Value) String() string { return v.Dump() }

// Dump returns a kind-annotated single-line rendering for debugging. It needs
// no host context; references render by identity and path entries render as
// raw words, since their interpretation depends on type context this layer
// does not hold.
func (v *Value) Dump() string {
	var sb strings.Builder
	v.dump(&sb)
	return sb.String()
}

func (v *Value) dump(sb *strings.Builder) {
	switch v.kind {
	case KindUninitialized:
		sb.WriteString("Uninitialized")
	case KindInt:
		fmt.Fprintf(sb, "Int %s", v.Int())
	case KindFloat:
		fmt.Fprintf(sb, "Float %s", v.Float())
	case KindFixedPoint:
		fmt.Fprintf(sb, "FixedPoint %s", v.FixedPoint())
	case KindComplexInt:
		fmt.Fprintf(sb, "ComplexInt %s+%si", v.ComplexIntReal(), v.ComplexIntImag())
	case KindComplexFloat:
		fmt.Fprintf(sb, "ComplexFloat %s+%si", v.ComplexFloatReal(), v.ComplexFloatImag())
	case KindLValue:
		d := v.data.(*lvData)
		sb.WriteString("LValue ")
		if d.isNull {
			sb.WriteString("null ")
		}
		sb.WriteString(d.base.Name())
		if !d.offset.IsZero() {
			fmt.Fprintf(sb, "+%s", d.offset)
		}
		if d.hasPath {
			fmt.Fprintf(sb, " path[")
			for i, e := range d.path {
				if i > 0 {
					sb.WriteString(" ")
				}
				fmt.Fprintf(sb, "%#x", e.bits)
			}
			sb.WriteString("]")
			if d.onePast {
				sb.WriteString(" one-past-the-end")
			}
		}
	case KindVector:
		sb.WriteString("Vector {")
		for i := uint32(0); i < v.VectorLength(); i++ {
			if i > 0 {
				sb.WriteString(", ")
			}
			v.VectorElt(i).dump(sb)
		}
		sb.WriteString("}")
	case KindArray:
		fmt.Fprintf(sb, "Array [%d/%d] {", v.ArrayInitializedElts(), v.ArraySize())
		for i := uint32(0); i < v.ArrayInitializedElts(); i++ {
			if i > 0 {
				sb.WriteString(", ")
			}
			v.ArrayInitializedElt(i).dump(sb)
		}
		if v.HasArrayFiller() {
			if v.ArrayInitializedElts() > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("filler: ")
			v.ArrayFiller().dump(sb)
		}
		sb.WriteString("}")
	case KindStruct:
		sb.WriteString("Struct {")
		n := v.StructNumBases() + v.StructNumFields()
		d := v.data.(*structData)
		for i := uint32(0); i < n; i++ {
			if i > 0 {
				sb.WriteString(", ")
			}
			d.elts[i].dump(sb)
		}
		sb.WriteString("}")
	case KindUnion:
		sb.WriteString("Union {")
		if f := v.UnionField(); f != nil {
			fmt.Fprintf(sb, ".%s = ", f.Name)
			v.UnionValue().dump(sb)
		}
		sb.WriteString("}")
	case KindMemberPointer:
		sb.WriteString("MemberPointer ")
		if d := v.MemberPointerDecl(); d != nil {
			sb.WriteString("&")
			sb.WriteString(d.Name)
		} else {
			sb.WriteString("null")
		}
	case KindAddrLabelDiff:
		fmt.Fprintf(sb, "AddrLabelDiff &&%s - &&%s",
			v.AddrLabelDiffLHS().Label, v.AddrLabelDiffRHS().Label)
	}
}

// Pretty renders the value the way a diagnostic would quote it: C-ish
// spelling, using the host-supplied type descriptor as a cast prefix on
// aggregates and ctx for target facts. Read-only; no state changes.
func (v *Value) Pretty(ctx *ast.Context, pol Policy, ty *ast.Type) string {
	var sb strings.Builder
	v.pretty(&sb, ctx, pol, ty, 0)
	return sb.String()
}

func (v *Value) pretty(sb *strings.Builder, ctx *ast.Context, pol Policy, ty *ast.Type, depth int) {
	switch v.kind {
	case KindUninitialized:
		sb.WriteString("<uninitialized>")
	case KindInt:
		sb.WriteString(v.Int().String())
	case KindFloat:
		sb.WriteString(v.Float().String())
	case KindFixedPoint:
		sb.WriteString(v.FixedPoint().String())
	case KindComplexInt:
		writeComplex(sb, v.ComplexIntReal().String(), v.ComplexIntImag().String())
	case KindComplexFloat:
		writeComplex(sb, v.ComplexFloatReal().String(), v.ComplexFloatImag().String())
	case KindLValue:
		v.prettyLValue(sb)
	case KindVector, KindArray, KindStruct, KindUnion:
		v.prettyAggregate(sb, ctx, pol, ty, depth)
	case KindMemberPointer:
		if d := v.MemberPointerDecl(); d != nil {
			sb.WriteString("&")
			sb.WriteString(d.Name)
		} else {
			sb.WriteString("0")
		}
	case KindAddrLabelDiff:
		fmt.Fprintf(sb, "&&%s - &&%s", v.AddrLabelDiffLHS().Label, v.AddrLabelDiffRHS().Label)
	}
}

func writeComplex(sb *strings.Builder, re, im string) {
	sb.WriteString(re)
	if !strings.HasPrefix(im, "-") {
		sb.WriteString("+")
	}
	sb.WriteString(im)
	sb.WriteString("i")
}

func (v *Value) prettyLValue(sb *strings.Builder) {
	d := v.data.(*lvData)
	if d.isNull {
		sb.WriteString("nullptr")
		if !d.offset.IsZero() {
			fmt.Fprintf(sb, " + %s", d.offset)
		}
		return
	}
	needsParen := !d.offset.IsZero()
	if needsParen {
		sb.WriteString("(")
	}
	sb.WriteString("&")
	sb.WriteString(d.base.Name())
	// Path steps carry no discriminator; without the static type at each
	// position they cannot be spelled, only counted.
	if d.hasPath && len(d.path) > 0 {
		fmt.Fprintf(sb, " <%d subobject steps>", len(d.path))
	}
	if d.onePast {
		sb.WriteString(" + 1")
	}
	if needsParen {
		fmt.Fprintf(sb, " + %s)", d.offset)
	}
}

func (v *Value) prettyAggregate(sb *strings.Builder, ctx *ast.Context, pol Policy, ty *ast.Type, depth int) {
	if pol.MaxDepth > 0 && depth >= pol.MaxDepth {
		sb.WriteString("...")
		return
	}
	if ty != nil && depth == 0 {
		fmt.Fprintf(sb, "(%s)", ty)
	}

	var elts []*Value
	var labels []string
	switch v.kind {
	case KindVector:
		for i := uint32(0); i < v.VectorLength(); i++ {
			elts = append(elts, v.VectorElt(i))
			labels = append(labels, "")
		}
	case KindArray:
		for i := uint32(0); i < v.ArrayInitializedElts(); i++ {
			elts = append(elts, v.ArrayInitializedElt(i))
			labels = append(labels, "")
		}
		if v.HasArrayFiller() {
			elts = append(elts, v.ArrayFiller())
			labels = append(labels, fmt.Sprintf("[%d...%d] = ",
				v.ArrayInitializedElts(), v.ArraySize()-1))
		}
	case KindStruct:
		d := v.data.(*structData)
		for i := range d.elts {
			elts = append(elts, &d.elts[i])
			labels = append(labels, "")
		}
	case KindUnion:
		if f := v.UnionField(); f != nil {
			elts = append(elts, v.UnionValue())
			labels = append(labels, "."+f.Name+" = ")
		}
	}

	sb.WriteString("{")
	for i, e := range elts {
		if i > 0 {
			sb.WriteString(",")
			if !pol.Multiline {
				sb.WriteString(" ")
			}
		}
		if pol.Multiline {
			sb.WriteString("\n")
			sb.WriteString(strings.Repeat(" ", pol.Indent*(depth+1)))
		}
		sb.WriteString(labels[i])
		e.pretty(sb, ctx, pol, nil, depth+1)
	}
	if pol.Multiline && len(elts) > 0 {
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", pol.Indent*depth))
	}
	sb.WriteString("}")
}
