package ffidecl

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestGenerateCSource_Exports(t *testing.T) {
	src, err := ParseDir(filepath.Join("testdata", "exports"))
	if err != nil {
		t.Fatalf("ParseDir: %v", err)
	}
	u, err := Synthesize(src.Name, src.Fset, src.Files, Options{})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	code := GenerateCSource(u)
	if !strings.Contains(code, "const char *exports_luajit_ffi_decls(void) {") {
		t.Error("expected accessor definition")
	}
	if !strings.Contains(code, "static const char exports_luajit_ffi_decls_data[]") {
		t.Error("expected static catalog storage")
	}

	goldenFile := filepath.Join("testdata", "exports_ffidecls.c.golden")
	updateGolden(t, goldenFile, code)
	compareGolden(t, goldenFile, code)
}

func TestGenerateCSource_Empty(t *testing.T) {
	u := &Unit{Namespace: "none", Accessor: "none_luajit_ffi_decls", Catalog: Assemble(nil)}
	code := GenerateCSource(u)
	if !strings.Contains(code, "none_luajit_ffi_decls_data[] =\n\t\"\";\n") {
		t.Errorf("empty catalog should be an empty string literal:\n%s", code)
	}
}

func TestCEscape(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"void f();", "void f();"},
		{`say "hi"`, `say \"hi\"`},
		{`a\b`, `a\\b`},
		{"tab\there", `tab\011here`},
		{"wh??!", `wh\??!`},
		{"caf\xc3\xa9", `caf\303\251`},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := cEscape(tt.input); got != tt.expected {
				t.Errorf("cEscape(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
