package ffidecl

import (
	"fmt"
	"strings"
)

// DefaultAccessorSuffix marks the accessor returning a namespace's
// declaration catalog.
const DefaultAccessorSuffix = "luajit_ffi_decls"

// AccessorName returns the C symbol of the catalog accessor for namespace,
// e.g. "exports" -> "exports_luajit_ffi_decls". An empty suffix selects
// DefaultAccessorSuffix.
func AccessorName(namespace, suffix string) string {
	if suffix == "" {
		suffix = DefaultAccessorSuffix
	}
	return namespace + "_" + suffix
}

// ValidateNamespace checks that namespace can prefix a C identifier.
func ValidateNamespace(namespace string) error {
	if namespace == "" {
		return fmt.Errorf("empty namespace")
	}
	if !isCIdent(namespace) {
		return fmt.Errorf("namespace %q is not a valid C identifier", namespace)
	}
	return nil
}

// NamespaceFromPackage derives a namespace from a Go package name. Go
// package names are already C identifiers unless they carry non-ASCII
// letters, which are replaced with underscores.
// e.g., "exports" -> "exports", "größe" -> "gr__e"
func NamespaceFromPackage(pkgName string) string {
	var b strings.Builder
	for i, r := range pkgName {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			b.WriteRune(r)
		case r >= '0' && r <= '9' && i > 0:
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

func isCIdent(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return s != ""
}
