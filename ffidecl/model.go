// Package ffidecl scans Go packages for cgo-exported functions and
// synthesizes a catalog of C prototypes describing them.
package ffidecl

import (
	"go/ast"
	"go/token"
)

// FunctionSignature is the C-facing shape of one exported function.
type FunctionSignature struct {
	Name   string
	Params []Param
	Result *TypeRef // nil when the function has no result
	Pos    token.Position
}

// Param is a single parameter of an exported function.
type Param struct {
	Name string   // empty for unnamed parameters
	Type *TypeRef // nil for receiver-style parameters with no usable type
}

// TypeRefKind tells whether a TypeRef names a type or spells one out.
type TypeRefKind int

const (
	// Named is an identifier or a qualified identifier such as C.int.
	Named TypeRefKind = iota
	// Unnamed is any composite type expression (pointer, slice, func, ...).
	Unnamed
)

// TypeRef is a type as written in the source, resolved one level deep.
type TypeRef struct {
	Kind TypeRefKind
	Name string // identifier name for Named, Go expression text for Unnamed
}

// Item is a top-level declaration of the scanned package.
type Item struct {
	Decl ast.Decl
	Pos  token.Position
}

// ScanResult holds the output of Scan. Signatures and Passthrough are both
// in declaration order.
type ScanResult struct {
	Signatures  []FunctionSignature
	Passthrough []Item
}

// DeclarationLine is one rendered C prototype, always ending in ";".
type DeclarationLine string

// Unit is everything synthesized for one namespace.
type Unit struct {
	Namespace   string
	Accessor    string
	Signatures  []FunctionSignature
	Passthrough []Item
	Catalog     *Catalog
}
