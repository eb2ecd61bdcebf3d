package ffidecl

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"
)

// Source is the parsed, ordered input of one Go package.
type Source struct {
	Name  string // Go package name
	Dir   string
	Fset  *token.FileSet
	Files []*ast.File
}

// LoadPackage resolves pattern (a directory or import path) relative to dir
// with the go command and parses the package's original Go files. Files
// named in skip (base names) are left out, which keeps previously generated
// output from feeding back into the scan.
//
// Files that import "C" are always part of the result: the go command is
// run with CGO_ENABLED=1 whatever the caller's environment says, since a
// cgo-disabled listing moves them to IgnoredFiles and drops every export.
func LoadPackage(dir, pattern string, skip ...string) (*Source, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles,
		Dir:  dir,
		Env:  append(os.Environ(), "CGO_ENABLED=1"),
	}

	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", pattern, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoPackage, pattern)
	}
	if len(pkgs) > 1 {
		return nil, fmt.Errorf("pattern %s matches %d packages, want one", pattern, len(pkgs))
	}
	if len(pkgs[0].Errors) > 0 {
		return nil, fmt.Errorf("package errors: %v", pkgs[0].Errors)
	}

	pkg := pkgs[0]
	if len(pkg.GoFiles) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoPackage, pattern)
	}
	return parseFiles(filepath.Dir(pkg.GoFiles[0]), pkg.GoFiles, skip)
}

// ParseDir parses the non-test Go files of dir directly, without the go
// command. Build constraints are not evaluated.
func ParseDir(dir string, skip ...string) (*Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoPackage, dir)
	}
	return parseFiles(dir, paths, skip)
}

// ParseSource parses in-memory files. Keys are file names; files are
// scanned in sorted name order.
func ParseSource(files map[string]string) (*Source, error) {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	src := &Source{Fset: token.NewFileSet()}
	for _, name := range names {
		f, err := parser.ParseFile(src.Fset, name, files[name], parser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		if err := src.add(f); err != nil {
			return nil, err
		}
	}
	if len(src.Files) == 0 {
		return nil, ErrNoPackage
	}
	return src, nil
}

func parseFiles(dir string, paths []string, skip []string) (*Source, error) {
	skipped := make(map[string]bool, len(skip))
	for _, s := range skip {
		skipped[s] = true
	}

	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)

	src := &Source{Dir: dir, Fset: token.NewFileSet()}
	for _, path := range sorted {
		if skipped[filepath.Base(path)] {
			continue
		}
		f, err := parser.ParseFile(src.Fset, path, nil, parser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		if err := src.add(f); err != nil {
			return nil, err
		}
	}
	if len(src.Files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoPackage, dir)
	}
	return src, nil
}

func (s *Source) add(f *ast.File) error {
	name := f.Name.Name
	if s.Name == "" {
		s.Name = name
	} else if s.Name != name {
		return fmt.Errorf("found packages %s and %s in one directory", s.Name, name)
	}
	s.Files = append(s.Files, f)
	return nil
}
