// Package cdecl reads declaration catalogs the way an FFI binder does:
// it parses the prototypes back out of the text and binds them to
// implementations by name.
package cdecl

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnterminated is returned when a catalog buffer does not end in NUL.
	ErrUnterminated = errors.New("catalog is not NUL-terminated")

	// ErrTrailingBreak is returned when the last line of a catalog is
	// followed by a line break.
	ErrTrailingBreak = errors.New("catalog has a line break before its terminator")

	// ErrEmbeddedNUL is returned when a NUL appears before the terminator.
	ErrEmbeddedNUL = errors.New("catalog has an embedded NUL")

	// ErrSyntax is returned for a line that is not a "<ret> <name>(<params>);"
	// prototype.
	ErrSyntax = errors.New("malformed prototype")
)

// Prototype is one parsed C function declaration.
type Prototype struct {
	Return string
	Name   string
	Params []Param
}

// Param is one parameter of a Prototype. Name may be empty.
type Param struct {
	Type string
	Name string
}

func (p Prototype) String() string {
	params := make([]string, len(p.Params))
	for i, pr := range p.Params {
		if pr.Name == "" {
			params[i] = pr.Type
		} else {
			params[i] = pr.Type + " " + pr.Name
		}
	}
	return fmt.Sprintf("%s %s(%s);", p.Return, p.Name, strings.Join(params, ", "))
}

// ParseCatalog parses a NUL-terminated catalog buffer.
func ParseCatalog(buf []byte) ([]Prototype, error) {
	if len(buf) == 0 || buf[len(buf)-1] != 0 {
		return nil, ErrUnterminated
	}
	text := buf[:len(buf)-1]
	if bytes.IndexByte(text, 0) >= 0 {
		return nil, ErrEmbeddedNUL
	}
	if len(text) > 0 && text[len(text)-1] == '\n' {
		return nil, ErrTrailingBreak
	}
	return Parse(string(text))
}

// Parse parses catalog text, one prototype per line. Blank lines are
// ignored.
func Parse(text string) ([]Prototype, error) {
	var protos []Prototype
	for i, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		p, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		protos = append(protos, p)
	}
	return protos, nil
}

// ParseLine parses a single "<ret> <name>(<params>);" declaration.
func ParseLine(line string) (Prototype, error) {
	s := strings.TrimSpace(line)
	if !strings.HasSuffix(s, ");") {
		return Prototype{}, fmt.Errorf("%w: missing \");\" in %q", ErrSyntax, line)
	}
	open := strings.IndexByte(s, '(')
	if open < 0 {
		return Prototype{}, fmt.Errorf("%w: missing \"(\" in %q", ErrSyntax, line)
	}

	ret, name := splitLast(strings.TrimSpace(s[:open]))
	if ret == "" || !isIdent(name) {
		return Prototype{}, fmt.Errorf("%w: bad return type or name in %q", ErrSyntax, line)
	}

	p := Prototype{Return: ret, Name: name}
	inner := strings.TrimSpace(s[open+1 : len(s)-2])
	if inner == "" || inner == "void" {
		return p, nil
	}
	for _, part := range strings.Split(inner, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return Prototype{}, fmt.Errorf("%w: empty parameter in %q", ErrSyntax, line)
		}
		typ, pname := splitLast(part)
		if typ == "" || !isIdent(pname) {
			// A lone type such as "int32_t" declares an unnamed parameter.
			p.Params = append(p.Params, Param{Type: part})
			continue
		}
		p.Params = append(p.Params, Param{Type: typ, Name: pname})
	}
	return p, nil
}

// splitLast splits s at its last identifier, e.g. "const char *name" gives
// ("const char *", "name") and "double" gives ("", "double").
func splitLast(s string) (string, string) {
	i := len(s)
	for i > 0 && isIdentByte(s[i-1]) {
		i--
	}
	return strings.TrimSpace(s[:i]), s[i:]
}

func isIdent(s string) bool {
	if s == "" || (s[0] >= '0' && s[0] <= '9') {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isIdentByte(s[i]) {
			return false
		}
	}
	return true
}

func isIdentByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
