package main

import (
	"fmt"
	"strconv"

	"github.com/cyrene-lang/cyrene/apnum"
	"github.com/cyrene-lang/cyrene/ast"
	"github.com/cyrene-lang/cyrene/constval"
)

// node is one constant in the TOML input document. Kind selects which of the
// remaining fields apply; nested nodes describe owned children.
type node struct {
	Kind string `toml:"kind"`

	// Scalars.
	Int      *int64 `toml:"int"`
	Width    uint32 `toml:"width"`    // bit width, default 32
	Unsigned bool   `toml:"unsigned"` //
	Float    string `toml:"float"`    // decimal literal
	Prec     uint   `toml:"prec"`     // mantissa bits, default 53
	Fixed    string `toml:"fixed"`    // decimal literal
	Scale    uint32 `toml:"scale"`    // fractional bits, default 16

	// Complex pairs (decimal literals, or integers for complex-int).
	Real string `toml:"real"`
	Imag string `toml:"imag"`

	// Locations.
	Null   bool   `toml:"null"`
	Decl   string `toml:"decl"`
	Offset int64  `toml:"offset"`

	// Aggregates.
	Elts   []node `toml:"elts"`
	Size   uint32 `toml:"size"` // array total size, default len(elts)
	Filler *node  `toml:"filler"`
	Bases  []node `toml:"bases"`
	Fields []node `toml:"fields"`
	Field  string `toml:"field"` // union active member name
	Value  *node  `toml:"value"` // union member content

	// Member pointers and label differences.
	Member string `toml:"member"`
	LHS    string `toml:"lhs"`
	RHS    string `toml:"rhs"`
}

func (n *node) width() uint32 {
	if n.Width == 0 {
		return 32
	}
	return n.Width
}

func (n *node) prec() uint {
	if n.Prec == 0 {
		return 53
	}
	return n.Prec
}

func (n *node) scale() uint32 {
	if n.Scale == 0 {
		return 16
	}
	return n.Scale
}

func (n *node) intPayload() (apnum.Int, error) {
	if n.Int == nil {
		return apnum.Int{}, fmt.Errorf("kind %q requires an 'int' field", n.Kind)
	}
	if n.Unsigned {
		return apnum.IntFromUint64(uint64(*n.Int), n.width()), nil
	}
	return apnum.IntFromInt64(*n.Int, n.width()), nil
}

// buildValue turns a parsed node tree into a constant value. Declarations
// named in the document are fabricated on the fly; constdump is its own host
// and owns them for the life of the process.
func buildValue(n *node) (constval.Value, error) {
	switch n.Kind {
	case "int":
		i, err := n.intPayload()
		if err != nil {
			return constval.Value{}, err
		}
		return constval.NewInt(i), nil

	case "float":
		f, err := apnum.FloatFromString(n.Float, n.prec())
		if err != nil {
			return constval.Value{}, fmt.Errorf("bad float literal %q: %w", n.Float, err)
		}
		return constval.NewFloat(f), nil

	case "fixed":
		x, err := apnum.FixedFromString(n.Fixed, n.width(), n.scale(), !n.Unsigned)
		if err != nil {
			return constval.Value{}, fmt.Errorf("bad fixed literal %q: %w", n.Fixed, err)
		}
		return constval.NewFixedPoint(x), nil

	case "complex-int":
		re, err := strconv.ParseInt(n.Real, 10, 64)
		if err != nil {
			return constval.Value{}, fmt.Errorf("bad real part %q: %w", n.Real, err)
		}
		im, err := strconv.ParseInt(n.Imag, 10, 64)
		if err != nil {
			return constval.Value{}, fmt.Errorf("bad imaginary part %q: %w", n.Imag, err)
		}
		return constval.NewComplexInt(
			apnum.IntFromInt64(re, n.width()),
			apnum.IntFromInt64(im, n.width())), nil

	case "complex-float":
		re, err := apnum.FloatFromString(n.Real, n.prec())
		if err != nil {
			return constval.Value{}, fmt.Errorf("bad real part %q: %w", n.Real, err)
		}
		im, err := apnum.FloatFromString(n.Imag, n.prec())
		if err != nil {
			return constval.Value{}, fmt.Errorf("bad imaginary part %q: %w", n.Imag, err)
		}
		return constval.NewComplexFloat(re, im), nil

	case "lvalue":
		if n.Null {
			v := constval.NewLValue(constval.LValueBase{},
				ast.CharUnitsFromQuantity(n.Offset), true)
			return v, nil
		}
		if n.Decl == "" {
			return constval.Value{}, fmt.Errorf("lvalue requires 'decl' or 'null'")
		}
		d := &ast.ValueDecl{Decl: ast.Decl{Name: n.Decl}}
		return constval.NewLValue(constval.DeclBase(d, 0, 0),
			ast.CharUnitsFromQuantity(n.Offset), false), nil

	case "vector":
		elts, err := buildValues(n.Elts)
		if err != nil {
			return constval.Value{}, err
		}
		return constval.NewVector(elts), nil

	case "array":
		size := n.Size
		if size == 0 {
			size = uint32(len(n.Elts))
		}
		if uint32(len(n.Elts)) > size {
			return constval.Value{}, fmt.Errorf("array lists %d elements but size is %d",
				len(n.Elts), size)
		}
		v := constval.NewArray(uint32(len(n.Elts)), size)
		for i := range n.Elts {
			elt, err := buildValue(&n.Elts[i])
			if err != nil {
				return constval.Value{}, err
			}
			*v.ArrayInitializedElt(uint32(i)) = elt
		}
		if v.HasArrayFiller() {
			if n.Filler == nil {
				return constval.Value{}, fmt.Errorf("array of size %d with %d elements requires a filler",
					size, len(n.Elts))
			}
			filler, err := buildValue(n.Filler)
			if err != nil {
				return constval.Value{}, err
			}
			*v.ArrayFiller() = filler
		}
		return v, nil

	case "struct":
		v := constval.NewStruct(uint32(len(n.Bases)), uint32(len(n.Fields)))
		for i := range n.Bases {
			b, err := buildValue(&n.Bases[i])
			if err != nil {
				return constval.Value{}, err
			}
			*v.StructBase(uint32(i)) = b
		}
		for i := range n.Fields {
			f, err := buildValue(&n.Fields[i])
			if err != nil {
				return constval.Value{}, err
			}
			*v.StructField(uint32(i)) = f
		}
		return v, nil

	case "union":
		if n.Field == "" {
			return constval.NewUnion(nil, nil), nil
		}
		if n.Value == nil {
			return constval.Value{}, fmt.Errorf("union field %q has no value", n.Field)
		}
		inner, err := buildValue(n.Value)
		if err != nil {
			return constval.Value{}, err
		}
		f := &ast.FieldDecl{ValueDecl: ast.ValueDecl{Decl: ast.Decl{Name: n.Field}}}
		return constval.NewUnion(f, &inner), nil

	case "member-pointer":
		var d *ast.ValueDecl
		if n.Member != "" {
			d = &ast.ValueDecl{Decl: ast.Decl{Name: n.Member}}
		}
		return constval.NewMemberPointer(d, false, nil), nil

	case "label-diff":
		if n.LHS == "" || n.RHS == "" {
			return constval.Value{}, fmt.Errorf("label-diff requires 'lhs' and 'rhs'")
		}
		return constval.NewAddrLabelDiff(
			&ast.AddrLabelExpr{Label: n.LHS},
			&ast.AddrLabelExpr{Label: n.RHS}), nil

	case "":
		return constval.Value{}, fmt.Errorf("node has no 'kind'")
	default:
		return constval.Value{}, fmt.Errorf("unknown kind %q", n.Kind)
	}
}

func buildValues(nodes []node) ([]constval.Value, error) {
	out := make([]constval.Value, len(nodes))
	for i := range nodes {
		v, err := buildValue(&nodes[i])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
