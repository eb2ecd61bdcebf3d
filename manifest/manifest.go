// Package manifest handles ffidecl.toml generator configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/chazu/ffidecl/ffidecl"
)

// FileName is the configuration file looked up by FindAndLoad.
const FileName = "ffidecl.toml"

// Manifest represents an ffidecl.toml file.
type Manifest struct {
	Catalog Catalog `toml:"catalog"`
	Policy  Policy  `toml:"policy"`
	Output  Output  `toml:"output"`

	// Dir is the directory containing the ffidecl.toml file (set at load time).
	Dir string `toml:"-"`
}

// Catalog configures the namespace and accessor symbol.
type Catalog struct {
	Namespace string `toml:"namespace"`
	Suffix    string `toml:"suffix"`
}

// Policy configures how types outside the primitive table are handled.
type Policy struct {
	Opaque  string `toml:"opaque"`  // "passthrough" or "reject"
	Untyped string `toml:"untyped"` // "reject" or "empty"
}

// Output configures generated file and function names.
type Output struct {
	GoFile string `toml:"go-file"`
	CFile  string `toml:"c-file"`
	GoFunc string `toml:"go-func"`
}

// Load parses an ffidecl.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	return LoadFile(filepath.Join(dir, FileName))
}

// LoadFile parses the configuration file at path.
func LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}

	if _, err := m.Config(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &m, nil
}

// FindAndLoad walks up from startDir to find an ffidecl.toml file,
// then loads and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

// Config converts the manifest to generator settings. A nil manifest
// yields the defaults.
func (m *Manifest) Config() (ffidecl.Config, error) {
	if m == nil {
		return ffidecl.Config{}, nil
	}

	cfg := ffidecl.Config{
		Namespace: m.Catalog.Namespace,
		Suffix:    m.Catalog.Suffix,
		GoFile:    m.Output.GoFile,
		CFile:     m.Output.CFile,
		GoFunc:    m.Output.GoFunc,
	}

	switch m.Policy.Opaque {
	case "", "passthrough":
		cfg.Policy.Opaque = ffidecl.OpaquePassthrough
	case "reject":
		cfg.Policy.Opaque = ffidecl.OpaqueReject
	default:
		return ffidecl.Config{}, fmt.Errorf("policy.opaque: unknown value %q (want passthrough or reject)", m.Policy.Opaque)
	}

	switch m.Policy.Untyped {
	case "", "reject":
		cfg.Policy.Untyped = ffidecl.UntypedReject
	case "empty":
		cfg.Policy.Untyped = ffidecl.UntypedEmpty
	default:
		return ffidecl.Config{}, fmt.Errorf("policy.untyped: unknown value %q (want reject or empty)", m.Policy.Untyped)
	}

	if cfg.Namespace != "" {
		if err := ffidecl.ValidateNamespace(cfg.Namespace); err != nil {
			return ffidecl.Config{}, fmt.Errorf("catalog.namespace: %w", err)
		}
	}
	return cfg, nil
}
