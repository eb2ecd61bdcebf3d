package ffidecl

import (
	"fmt"
	"strings"
)

// OpaquePolicy decides what happens to a type with no primitive mapping.
type OpaquePolicy int

const (
	// OpaquePassthrough emits the type's own name.
	OpaquePassthrough OpaquePolicy = iota
	// OpaqueReject fails rendering with ErrOpaqueType.
	OpaqueReject
)

// UntypedPolicy decides what happens to a parameter with no usable type.
type UntypedPolicy int

const (
	// UntypedReject fails rendering with ErrUnsupportedParam.
	UntypedReject UntypedPolicy = iota
	// UntypedEmpty renders the parameter as an empty token, which leaves
	// a malformed prototype such as "void f(, int32_t x);".
	UntypedEmpty
)

// Policy collects the call-site decisions for types that fall outside the
// primitive table. The zero value passes opaque types through and rejects
// untyped parameters.
type Policy struct {
	Opaque  OpaquePolicy
	Untyped UntypedPolicy
}

// Render produces the C prototype for sig:
//
//	<ret> <name>(<type> <param>, ...);
func Render(sig FunctionSignature, policy Policy) (DeclarationLine, error) {
	ret, err := policy.keyword(MapResult(sig.Result), sig.Name, "result")
	if err != nil {
		return "", err
	}

	params := make([]string, 0, len(sig.Params))
	for i, p := range sig.Params {
		if p.Type == nil {
			if policy.Untyped == UntypedReject {
				return "", fmt.Errorf("%w: func %s parameter %d (%s)", ErrUnsupportedParam, sig.Name, i, paramLabel(p))
			}
			params = append(params, "")
			continue
		}
		kw, err := policy.keyword(MapType(*p.Type), sig.Name, paramLabel(p))
		if err != nil {
			return "", err
		}
		if p.Name == "" || p.Name == "_" {
			params = append(params, kw)
		} else {
			params = append(params, kw+" "+p.Name)
		}
	}

	return DeclarationLine(fmt.Sprintf("%s %s(%s);", ret, sig.Name, strings.Join(params, ", "))), nil
}

func (p Policy) keyword(m Mapping, fn, what string) (string, error) {
	if m.Kind == Opaque && p.Opaque == OpaqueReject {
		return "", fmt.Errorf("%w: func %s %s has type %s", ErrOpaqueType, fn, what, m.Source)
	}
	return m.Keyword, nil
}

func paramLabel(p Param) string {
	if p.Name == "" {
		return "unnamed"
	}
	return p.Name
}
