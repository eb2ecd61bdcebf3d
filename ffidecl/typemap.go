package ffidecl

import (
	"go/ast"
	"go/types"
)

// MappingKind classifies the result of mapping a type.
type MappingKind int

const (
	// Primitive is one of the supported numeric types.
	Primitive MappingKind = iota
	// Opaque is any other type. A named type keeps its own name as the
	// keyword; a spelled-out one (pointer, slice, func...) becomes void.
	Opaque
	// Void stands for a missing result.
	Void
)

func (k MappingKind) String() string {
	switch k {
	case Primitive:
		return "primitive"
	case Opaque:
		return "opaque"
	case Void:
		return "void"
	}
	return "unknown"
}

// Mapping is a C declaration keyword together with how it was obtained.
// Source is the Go type as written and is only used in diagnostics.
type Mapping struct {
	Kind    MappingKind
	Keyword string
	Source  string
}

var primitiveKeywords = map[string]string{
	"int32":   "int32_t",
	"uint32":  "uint32_t",
	"int64":   "int64_t",
	"uint64":  "uint64_t",
	"float64": "double",
	"float32": "float",
}

// MapType maps a Go type to its C declaration keyword. Named types outside
// the primitive table map to themselves as Opaque; unnamed types map to
// void.
func MapType(t TypeRef) Mapping {
	if t.Kind == Unnamed {
		return Mapping{Kind: Opaque, Keyword: "void", Source: t.Name}
	}
	if kw, ok := primitiveKeywords[t.Name]; ok {
		return Mapping{Kind: Primitive, Keyword: kw, Source: t.Name}
	}
	return Mapping{Kind: Opaque, Keyword: t.Name, Source: t.Name}
}

// MapResult maps a function result; nil means no result.
func MapResult(t *TypeRef) Mapping {
	if t == nil {
		return Mapping{Kind: Void, Keyword: "void"}
	}
	return MapType(*t)
}

// typeRefOf resolves a type expression one level deep.
func typeRefOf(expr ast.Expr) TypeRef {
	switch e := expr.(type) {
	case *ast.ParenExpr:
		return typeRefOf(e.X)
	case *ast.Ident:
		return TypeRef{Kind: Named, Name: e.Name}
	case *ast.SelectorExpr:
		return TypeRef{Kind: Named, Name: e.Sel.Name}
	}
	return TypeRef{Kind: Unnamed, Name: types.ExprString(expr)}
}
