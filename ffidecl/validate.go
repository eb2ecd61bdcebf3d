package ffidecl

// This file checks generated Go glue in memory using go/parser and go/types.

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"strconv"
	"strings"
)

// ValidationError is a problem found in generated Go source.
type ValidationError struct {
	Line     int
	Column   int
	Function string // function containing the error, "<package>" outside one
	Message  string
}

// CodeValidator parses and type-checks generated Go source.
type CodeValidator struct {
	fset     *token.FileSet
	filename string
}

// NewCodeValidator creates a validator; filename is used in messages only.
func NewCodeValidator(filename string) *CodeValidator {
	return &CodeValidator{
		filename: filename,
	}
}

// Validate returns every syntax and type error in source. References to the
// cgo pseudo-package are accepted without resolving them.
func (cv *CodeValidator) Validate(source string) []ValidationError {
	cv.fset = token.NewFileSet()

	file, err := parser.ParseFile(cv.fset, cv.filename, source, parser.AllErrors|parser.ParseComments)
	if err != nil {
		return []ValidationError{{Line: 1, Column: 1, Message: err.Error()}}
	}

	funcMap := cv.buildFunctionMap(file)

	var typeCheckErrors []ValidationError
	conf := types.Config{
		Importer:    importer.Default(),
		FakeImportC: true,
		Error: func(err error) {
			typeErr, ok := err.(types.Error)
			if !ok {
				return
			}
			pos := cv.fset.Position(typeErr.Pos)
			name, ok := funcMap[pos.Line]
			if !ok {
				name = "<package>"
			}
			typeCheckErrors = append(typeCheckErrors, ValidationError{
				Line:     pos.Line,
				Column:   pos.Column,
				Function: name,
				Message:  typeErr.Msg,
			})
		},
	}

	_, _ = conf.Check(file.Name.Name, cv.fset, []*ast.File{file}, nil)

	return typeCheckErrors
}

func (cv *CodeValidator) buildFunctionMap(file *ast.File) map[int]string {
	funcMap := make(map[int]string)
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}
		start := cv.fset.Position(fn.Pos()).Line
		end := cv.fset.Position(fn.End()).Line
		for line := start; line <= end; line++ {
			funcMap[line] = fn.Name.Name
		}
	}
	return funcMap
}

// FormatValidationErrors returns a human-readable report of errs.
func FormatValidationErrors(errs []ValidationError, filename string) string {
	if len(errs) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, err := range errs {
		sb.WriteString("  ")
		sb.WriteString(filename)
		sb.WriteString(":")
		sb.WriteString(strconv.Itoa(err.Line))
		sb.WriteString(": ")
		if err.Function != "" && err.Function != "<package>" {
			sb.WriteString(err.Function)
			sb.WriteString(": ")
		}
		sb.WriteString(err.Message)
		sb.WriteString("\n")
	}
	return sb.String()
}
