package ffidecl

import (
	"fmt"
	"strings"
)

// generatedMarker makes the go tool and linters treat output as generated.
const generatedMarker = "Code generated by ffidecl. DO NOT EDIT."

// GenerateCSource returns the C translation unit that owns the catalog
// storage and defines the accessor. The catalog lives in a static const
// array written as a string literal, so the compiler appends the single NUL
// terminator and the storage lasts for the life of the process.
func GenerateCSource(u *Unit) string {
	var b strings.Builder

	fmt.Fprintf(&b, "// %s\n\n", generatedMarker)
	fmt.Fprintf(&b, "static const char %s_data[] =\n", u.Accessor)

	lines := u.Catalog.Lines()
	if len(lines) == 0 {
		b.WriteString("\t\"\";\n")
	}
	for i, l := range lines {
		b.WriteString("\t\"")
		b.WriteString(cEscape(string(l)))
		if i < len(lines)-1 {
			b.WriteString("\\n\"\n")
		} else {
			b.WriteString("\";\n")
		}
	}

	fmt.Fprintf(&b, "\nconst char *%s(void) {\n", u.Accessor)
	fmt.Fprintf(&b, "\treturn %s_data;\n", u.Accessor)
	b.WriteString("}\n")

	return b.String()
}

// cEscape quotes s for use inside a C string literal. Bytes outside
// printable ASCII are written as three-digit octal escapes, which cannot
// swallow a following character the way hex escapes can.
func cEscape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"' || c == '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '?' && i+1 < len(s) && s[i+1] == '?':
			// Break up trigraph sequences.
			b.WriteString(`\?`)
		case c < 0x20 || c >= 0x7f:
			fmt.Fprintf(&b, "\\%03o", c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
