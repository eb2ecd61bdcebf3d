package ffidecl

import (
	"bytes"
	"fmt"

	"github.com/dave/jennifer/jen"
)

// DefaultGoFunc is the name of the generated Go-side catalog accessor.
const DefaultGoFunc = "FFIDecls"

// GenerateGoGlue returns the Go file that declares the C accessor to cgo
// and exposes the catalog to Go callers as funcName() string, alongside a
// funcName+"Symbol" constant holding the accessor's C name. The file is
// type-checked before it is returned; problems are reported against
// filename, the name the glue is written under.
func GenerateGoGlue(u *Unit, pkgName, funcName, filename string) (string, error) {
	if funcName == "" {
		funcName = DefaultGoFunc
	}
	if filename == "" {
		filename = DefaultGoFile
	}

	f := jen.NewFile(pkgName)
	f.HeaderComment(generatedMarker)
	f.CgoPreamble(fmt.Sprintf("const char *%s(void);", u.Accessor))

	f.Commentf("%sSymbol is the C symbol returning the declaration catalog.", funcName)
	f.Const().Id(funcName + "Symbol").Op("=").Lit(u.Accessor)

	f.Commentf("%s returns the C declarations of this package's exported functions,", funcName)
	f.Comment("one prototype per line, ready for ffi.cdef.")
	f.Func().Id(funcName).Params().String().Block(
		jen.Return(jen.Qual("C", "GoString").Call(jen.Qual("C", u.Accessor).Call())),
	)

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return "", fmt.Errorf("rendering Go glue: %w", err)
	}
	code := buf.String()

	if errs := NewCodeValidator(filename).Validate(code); len(errs) > 0 {
		return "", fmt.Errorf("generated Go glue is invalid:\n%s", FormatValidationErrors(errs, filename))
	}
	return code, nil
}
