package main

import (
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/cyrene-lang/cyrene/ast"
	"github.com/cyrene-lang/cyrene/constval"
)

func parseDoc(t *testing.T, src string) *document {
	t.Helper()
	var doc document
	if err := toml.Unmarshal([]byte(src), &doc); err != nil {
		t.Fatalf("parse: %v", err)
	}
	return &doc
}

func TestBuildScalar(t *testing.T) {
	doc := parseDoc(t, `
[value]
kind = "int"
int = -7
width = 16
`)
	v, err := buildValue(&doc.Value)
	if err != nil {
		t.Fatal(err)
	}
	if !v.IsInt() || v.Int().Int64() != -7 || v.Int().BitWidth() != 16 {
		t.Errorf("built %s", v.Dump())
	}
}

func TestBuildArrayWithFiller(t *testing.T) {
	doc := parseDoc(t, `
[value]
kind = "array"
size = 5

[[value.elts]]
kind = "int"
int = 1

[[value.elts]]
kind = "int"
int = 2

[value.filler]
kind = "int"
int = 0
`)
	v, err := buildValue(&doc.Value)
	if err != nil {
		t.Fatal(err)
	}
	if !v.IsArray() || v.ArraySize() != 5 || v.ArrayInitializedElts() != 2 {
		t.Fatalf("built %s", v.Dump())
	}
	if !v.HasArrayFiller() || v.ArrayFiller().Int().Int64() != 0 {
		t.Error("filler lost")
	}
}

func TestBuildArrayMissingFiller(t *testing.T) {
	doc := parseDoc(t, `
[value]
kind = "array"
size = 3

[[value.elts]]
kind = "int"
int = 1
`)
	if _, err := buildValue(&doc.Value); err == nil {
		t.Error("partial array without filler accepted")
	}
}

func TestBuildStructAndRender(t *testing.T) {
	doc := parseDoc(t, `
type = "struct P"

[value]
kind = "struct"

[[value.fields]]
kind = "int"
int = 3

[[value.fields]]
kind = "int"
int = 4
`)
	v, err := buildValue(&doc.Value)
	if err != nil {
		t.Fatal(err)
	}
	ty := &ast.Type{Spelling: doc.Type}
	got := v.Pretty(ast.DefaultContext(), constval.DefaultPolicy(), ty)
	if got != "(struct P){3, 4}" {
		t.Errorf("rendered %q", got)
	}
}

func TestBuildUnion(t *testing.T) {
	doc := parseDoc(t, `
[value]
kind = "union"
field = "n"

[value.value]
kind = "int"
int = 9
`)
	v, err := buildValue(&doc.Value)
	if err != nil {
		t.Fatal(err)
	}
	if !v.IsUnion() || v.UnionField() == nil || v.UnionField().Name != "n" {
		t.Fatalf("built %s", v.Dump())
	}
}

func TestBuildNullPointerLValue(t *testing.T) {
	doc := parseDoc(t, `
[value]
kind = "lvalue"
null = true
offset = 16
`)
	v, err := buildValue(&doc.Value)
	if err != nil {
		t.Fatal(err)
	}
	got, ok := v.ToIntegralConstant(ast.DefaultContext())
	if !ok || got.Uint64() != 16 {
		t.Errorf("offset-from-null conversion = %s, %v", got, ok)
	}
}

func TestBuildRejectsUnknownKind(t *testing.T) {
	doc := parseDoc(t, `
[value]
kind = "matrix"
`)
	if _, err := buildValue(&doc.Value); err == nil {
		t.Error("unknown kind accepted")
	}
}
