package ffidecl

import (
	"bytes"
	"go/ast"
	"go/token"
	"strings"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("ffidecl")

// Catalog is the NUL-terminated declaration text of one namespace. It is
// built once by Assemble and never changes afterwards.
type Catalog struct {
	lines []DeclarationLine
	data  []byte
}

// Assemble joins lines with "\n" in the given order and appends a single
// NUL byte. There is no newline before the terminator.
func Assemble(lines []DeclarationLine) *Catalog {
	var b bytes.Buffer
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(l))
	}
	b.WriteByte(0)

	return &Catalog{
		lines: append([]DeclarationLine(nil), lines...),
		data:  b.Bytes(),
	}
}

// Bytes returns a copy of the catalog including its NUL terminator.
func (c *Catalog) Bytes() []byte {
	return append([]byte(nil), c.data...)
}

// Text returns the catalog without its NUL terminator.
func (c *Catalog) Text() string {
	return string(c.data[:len(c.data)-1])
}

// Lines returns the rendered prototypes in catalog order.
func (c *Catalog) Lines() []DeclarationLine {
	return append([]DeclarationLine(nil), c.lines...)
}

// Len is the number of prototypes in the catalog.
func (c *Catalog) Len() int {
	return len(c.lines)
}

// Options controls Synthesize.
type Options struct {
	Policy Policy
	// Suffix overrides DefaultAccessorSuffix when non-empty.
	Suffix string
}

// Synthesize scans files, renders every exported function and assembles
// the catalog for namespace. Running it twice on the same input yields the
// same catalog bytes and accessor name.
func Synthesize(namespace string, fset *token.FileSet, files []*ast.File, opts Options) (*Unit, error) {
	if err := ValidateNamespace(namespace); err != nil {
		return nil, err
	}

	res, err := Scan(fset, files)
	if err != nil {
		return nil, err
	}

	lines := make([]DeclarationLine, 0, len(res.Signatures))
	for _, sig := range res.Signatures {
		line, err := Render(sig, opts.Policy)
		if err != nil {
			return nil, posError(sig.Pos, err)
		}
		if opaque := opaqueTypes(sig); len(opaque) > 0 {
			log.Warningf("%s: %s uses types with no C primitive mapping (%s): %s",
				sig.Pos, sig.Name, strings.Join(opaque, ", "), line)
		}
		lines = append(lines, line)
	}

	accessor := AccessorName(namespace, opts.Suffix)
	log.Debugf("namespace %s: %d exported, %d passthrough, accessor %s",
		namespace, len(res.Signatures), len(res.Passthrough), accessor)

	return &Unit{
		Namespace:   namespace,
		Accessor:    accessor,
		Signatures:  res.Signatures,
		Passthrough: res.Passthrough,
		Catalog:     Assemble(lines),
	}, nil
}

// opaqueTypes lists the Go types of sig, result first, that have no
// primitive C mapping.
func opaqueTypes(sig FunctionSignature) []string {
	var out []string
	if m := MapResult(sig.Result); m.Kind == Opaque {
		out = append(out, m.Source)
	}
	for _, p := range sig.Params {
		if p.Type == nil {
			continue
		}
		if m := MapType(*p.Type); m.Kind == Opaque {
			out = append(out, m.Source)
		}
	}
	return out
}
