package ffidecl

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"
)

const exportDirective = "//export "

// Scan walks the top-level declarations of one package's files, in the
// order given, and separates cgo-exported functions from everything else.
// fset may be nil, in which case positions are left empty.
func Scan(fset *token.FileSet, files []*ast.File) (ScanResult, error) {
	var res ScanResult
	for _, file := range files {
		for _, decl := range file.Decls {
			pos := position(fset, decl.Pos())

			fn, ok := decl.(*ast.FuncDecl)
			if !ok {
				res.Passthrough = append(res.Passthrough, Item{Decl: decl, Pos: pos})
				continue
			}
			exported, name := exportName(fn.Doc)
			if !exported {
				res.Passthrough = append(res.Passthrough, Item{Decl: decl, Pos: pos})
				continue
			}
			if name != fn.Name.Name {
				return ScanResult{}, posError(pos, fmt.Errorf("%w: //export %s on func %s", ErrExportMismatch, name, fn.Name.Name))
			}

			sig, err := signatureOf(fn)
			if err != nil {
				return ScanResult{}, posError(pos, err)
			}
			sig.Pos = pos
			res.Signatures = append(res.Signatures, sig)
		}
	}
	return res, nil
}

// exportName reports whether doc carries a cgo export directive and, if
// so, the name it exports.
func exportName(doc *ast.CommentGroup) (bool, string) {
	if doc == nil {
		return false, ""
	}
	for _, c := range doc.List {
		if !strings.HasPrefix(c.Text, exportDirective) {
			continue
		}
		name := strings.TrimSpace(strings.TrimPrefix(c.Text, exportDirective))
		if name != "" {
			return true, name
		}
	}
	return false, ""
}

func signatureOf(fn *ast.FuncDecl) (FunctionSignature, error) {
	sig := FunctionSignature{Name: fn.Name.Name}

	// A receiver has no C counterpart; it is carried as an untyped
	// parameter so rendering can reject it or degrade it.
	if fn.Recv != nil {
		for _, field := range fn.Recv.List {
			sig.Params = append(sig.Params, Param{Name: firstName(field)})
		}
	}

	if fn.Type.Params != nil {
		for _, field := range fn.Type.Params.List {
			ref := typeRefOf(field.Type)
			if len(field.Names) == 0 {
				sig.Params = append(sig.Params, Param{Type: &ref})
				continue
			}
			for _, n := range field.Names {
				t := ref
				sig.Params = append(sig.Params, Param{Name: n.Name, Type: &t})
			}
		}
	}

	if fn.Type.Results != nil {
		if fn.Type.Results.NumFields() > 1 {
			return FunctionSignature{}, fmt.Errorf("%w: func %s", ErrMultipleResults, fn.Name.Name)
		}
		if len(fn.Type.Results.List) == 1 {
			ref := typeRefOf(fn.Type.Results.List[0].Type)
			sig.Result = &ref
		}
	}

	return sig, nil
}

func firstName(field *ast.Field) string {
	if len(field.Names) == 0 {
		return ""
	}
	return field.Names[0].Name
}

func position(fset *token.FileSet, p token.Pos) token.Position {
	if fset == nil {
		return token.Position{}
	}
	return fset.Position(p)
}
