package ffidecl

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeExportsPackage(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "exports.go"), []byte(exportsSource), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestGenerate_WriteAndStale(t *testing.T) {
	dir := writeExportsPackage(t)

	src, err := ParseDir(dir, Config{}.GeneratedNames()...)
	if err != nil {
		t.Fatalf("ParseDir: %v", err)
	}
	out, err := Generate(src, Config{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(out.Files) != 2 {
		t.Fatalf("expected 2 output files, got %d", len(out.Files))
	}

	stale, err := out.Stale()
	if err != nil {
		t.Fatal(err)
	}
	if len(stale) != 2 {
		t.Errorf("expected both files stale before writing, got %v", stale)
	}

	written, err := out.Write()
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(written) != 2 {
		t.Errorf("expected 2 files written, got %v", written)
	}

	cSrc, err := os.ReadFile(filepath.Join(dir, DefaultCFile))
	if err != nil {
		t.Fatalf("reading C output: %v", err)
	}
	if !strings.Contains(string(cSrc), `"int32_t another_c_function(int32_t x);";`) {
		t.Errorf("C output missing last prototype:\n%s", cSrc)
	}
	if _, err := os.Stat(filepath.Join(dir, DefaultGoFile)); err != nil {
		t.Errorf("Go output missing: %v", err)
	}

	// A second run over the same input writes nothing.
	src, err = ParseDir(dir, Config{}.GeneratedNames()...)
	if err != nil {
		t.Fatal(err)
	}
	again, err := Generate(src, Config{})
	if err != nil {
		t.Fatal(err)
	}
	written, err = again.Write()
	if err != nil {
		t.Fatal(err)
	}
	if len(written) != 0 {
		t.Errorf("expected no rewrites, got %v", written)
	}
}

func TestGenerate_Config(t *testing.T) {
	dir := writeExportsPackage(t)
	cfg := Config{Namespace: "mathlib", GoFile: "decls.go", CFile: "decls.c", GoFunc: "Decls"}

	src, err := ParseDir(dir, cfg.GeneratedNames()...)
	if err != nil {
		t.Fatal(err)
	}
	out, err := Generate(src, cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if out.Unit.Accessor != "mathlib_luajit_ffi_decls" {
		t.Errorf("accessor = %q", out.Unit.Accessor)
	}
	if filepath.Base(out.Files[0].Path) != "decls.c" || filepath.Base(out.Files[1].Path) != "decls.go" {
		t.Errorf("output paths = %s, %s", out.Files[0].Path, out.Files[1].Path)
	}
	if !strings.Contains(string(out.Files[1].Content), "package exports") {
		t.Error("Go glue should stay in the scanned package")
	}
	if !strings.Contains(string(out.Files[1].Content), "func Decls() string") {
		t.Error("expected configured Go function name")
	}
}

func TestConfigGeneratedNames(t *testing.T) {
	names := Config{}.GeneratedNames()
	if len(names) != 2 || names[0] != DefaultGoFile || names[1] != DefaultCFile {
		t.Errorf("GeneratedNames = %v", names)
	}
}
