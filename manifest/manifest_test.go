package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chazu/ffidecl/ffidecl"
)

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	tomlContent := `
[catalog]
namespace = "mathlib"
suffix = "cdefs"

[policy]
opaque = "reject"
untyped = "empty"

[output]
go-file = "decls.go"
c-file = "decls.c"
go-func = "Decls"
`
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(tomlContent), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if m.Catalog.Namespace != "mathlib" {
		t.Errorf("catalog namespace = %q, want mathlib", m.Catalog.Namespace)
	}
	if m.Output.GoFunc != "Decls" {
		t.Errorf("output go-func = %q, want Decls", m.Output.GoFunc)
	}

	cfg, err := m.Config()
	if err != nil {
		t.Fatalf("Config failed: %v", err)
	}
	if cfg.Namespace != "mathlib" || cfg.Suffix != "cdefs" {
		t.Errorf("config catalog = (%q, %q), want (mathlib, cdefs)", cfg.Namespace, cfg.Suffix)
	}
	if cfg.Policy.Opaque != ffidecl.OpaqueReject {
		t.Errorf("opaque policy = %v, want OpaqueReject", cfg.Policy.Opaque)
	}
	if cfg.Policy.Untyped != ffidecl.UntypedEmpty {
		t.Errorf("untyped policy = %v, want UntypedEmpty", cfg.Policy.Untyped)
	}
	if cfg.GoFile != "decls.go" || cfg.CFile != "decls.c" {
		t.Errorf("output files = (%q, %q), want (decls.go, decls.c)", cfg.GoFile, cfg.CFile)
	}
}

func TestLoadManifestDefaults(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("[catalog]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cfg, err := m.Config()
	if err != nil {
		t.Fatalf("Config failed: %v", err)
	}
	if cfg != (ffidecl.Config{}) {
		t.Errorf("default config = %+v, want zero value", cfg)
	}
}

func TestNilManifestConfig(t *testing.T) {
	var m *Manifest
	cfg, err := m.Config()
	if err != nil {
		t.Fatalf("Config on nil manifest: %v", err)
	}
	if cfg != (ffidecl.Config{}) {
		t.Errorf("nil manifest config = %+v, want zero value", cfg)
	}
}

func TestLoadManifestBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"opaque", "[policy]\nopaque = \"maybe\"\n", "policy.opaque"},
		{"untyped", "[policy]\nuntyped = \"skip\"\n", "policy.untyped"},
		{"namespace", "[catalog]\nnamespace = \"my-lib\"\n", "catalog.namespace"},
		{"syntax", "[catalog\n", "parse error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, FileName), []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(dir)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestFindAndLoad(t *testing.T) {
	// Create nested directory structure
	dir := t.TempDir()
	subDir := filepath.Join(dir, "a", "b", "c")
	if err := os.MkdirAll(subDir, 0755); err != nil {
		t.Fatal(err)
	}

	tomlContent := `[catalog]
namespace = "found"
`
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(tomlContent), 0644); err != nil {
		t.Fatal(err)
	}

	// Should find manifest when starting from a deep subdirectory
	m, err := FindAndLoad(subDir)
	if err != nil {
		t.Fatalf("FindAndLoad failed: %v", err)
	}
	if m == nil {
		t.Fatal("FindAndLoad returned nil")
	}
	if m.Catalog.Namespace != "found" {
		t.Errorf("catalog namespace = %q, want found", m.Catalog.Namespace)
	}
	abs, _ := filepath.Abs(dir)
	if m.Dir != abs {
		t.Errorf("manifest dir = %q, want %q", m.Dir, abs)
	}
}

func TestFindAndLoadNotFound(t *testing.T) {
	dir := t.TempDir()
	m, err := FindAndLoad(dir)
	if err != nil {
		t.Fatalf("FindAndLoad error: %v", err)
	}
	if m != nil {
		t.Error("expected nil manifest when no ffidecl.toml exists")
	}
}
