package ffidecl

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
)

// Default names of the generated companion files.
const (
	DefaultGoFile = "ffidecls_gen.go"
	DefaultCFile  = "ffidecls_gen.c"
)

// Config controls Generate. Zero fields take their defaults.
type Config struct {
	Namespace string // defaults to the Go package name
	Suffix    string
	Policy    Policy
	GoFile    string
	CFile     string
	GoFunc    string
}

// OutputFile is one generated file.
type OutputFile struct {
	Path    string
	Content []byte
}

// Output is the result of Generate.
type Output struct {
	Unit  *Unit
	Files []OutputFile
}

// Generate synthesizes the catalog for src and renders the companion files
// into src.Dir.
func Generate(src *Source, cfg Config) (*Output, error) {
	cfg = cfg.withDefaults(src.Name)

	u, err := Synthesize(cfg.Namespace, src.Fset, src.Files, Options{Policy: cfg.Policy, Suffix: cfg.Suffix})
	if err != nil {
		return nil, err
	}

	goCode, err := GenerateGoGlue(u, src.Name, cfg.GoFunc, cfg.GoFile)
	if err != nil {
		return nil, err
	}

	return &Output{
		Unit: u,
		Files: []OutputFile{
			{Path: filepath.Join(src.Dir, cfg.CFile), Content: []byte(GenerateCSource(u))},
			{Path: filepath.Join(src.Dir, cfg.GoFile), Content: []byte(goCode)},
		},
	}, nil
}

// GeneratedNames returns the base names of the files Generate writes, so
// they can be skipped when loading the package.
func (c Config) GeneratedNames() []string {
	c = c.withDefaults("")
	return []string{c.GoFile, c.CFile}
}

func (c Config) withDefaults(pkgName string) Config {
	if c.Namespace == "" {
		c.Namespace = NamespaceFromPackage(pkgName)
	}
	if c.GoFile == "" {
		c.GoFile = DefaultGoFile
	}
	if c.CFile == "" {
		c.CFile = DefaultCFile
	}
	if c.GoFunc == "" {
		c.GoFunc = DefaultGoFunc
	}
	return c
}

// Write writes every file whose content differs from what is on disk and
// returns the paths it wrote.
func (o *Output) Write() ([]string, error) {
	stale, err := o.Stale()
	if err != nil {
		return nil, err
	}
	for _, f := range o.Files {
		if !slices.Contains(stale, f.Path) {
			continue
		}
		if err := os.WriteFile(f.Path, f.Content, 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", f.Path, err)
		}
		log.Infof("wrote %s", f.Path)
	}
	return stale, nil
}

// Stale returns the paths whose on-disk content is missing or differs.
func (o *Output) Stale() ([]string, error) {
	var stale []string
	for _, f := range o.Files {
		existing, err := os.ReadFile(f.Path)
		if errors.Is(err, fs.ErrNotExist) {
			stale = append(stale, f.Path)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.Path, err)
		}
		if !bytes.Equal(existing, f.Content) {
			stale = append(stale, f.Path)
		}
	}
	return stale, nil
}
