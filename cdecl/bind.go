package cdecl

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrUnresolved is returned when a prototype has no implementation, or
	// when a call names a function the library does not hold.
	ErrUnresolved = errors.New("symbol not resolved")

	// ErrUnsupportedType is returned for a prototype that uses a C type
	// outside the primitive set.
	ErrUnsupportedType = errors.New("unsupported C type")

	// ErrMismatch is returned when an implementation's signature differs
	// from its prototype.
	ErrMismatch = errors.New("implementation does not match prototype")
)

var primitiveKinds = map[string]reflect.Kind{
	"int32_t":  reflect.Int32,
	"uint32_t": reflect.Uint32,
	"int64_t":  reflect.Int64,
	"uint64_t": reflect.Uint64,
	"double":   reflect.Float64,
	"float":    reflect.Float32,
}

// Library is a set of prototypes bound to Go implementations.
type Library struct {
	funcs map[string]boundFunc
	order []string
}

type boundFunc struct {
	proto Prototype
	fn    reflect.Value
}

// Bind resolves every prototype against impls, keyed by C name, and checks
// that each implementation has the declared arity and primitive kinds.
func Bind(protos []Prototype, impls map[string]any) (*Library, error) {
	lib := &Library{funcs: make(map[string]boundFunc, len(protos))}
	for _, p := range protos {
		impl, ok := impls[p.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnresolved, p.Name)
		}
		fn := reflect.ValueOf(impl)
		if !fn.IsValid() || (fn.Kind() == reflect.Func && fn.IsNil()) {
			return nil, fmt.Errorf("%w: %s has a nil implementation", ErrUnresolved, p.Name)
		}
		if err := check(p, fn.Type()); err != nil {
			return nil, err
		}
		if _, dup := lib.funcs[p.Name]; !dup {
			lib.order = append(lib.order, p.Name)
		}
		lib.funcs[p.Name] = boundFunc{proto: p, fn: fn}
	}
	return lib, nil
}

func check(p Prototype, t reflect.Type) error {
	if t.Kind() != reflect.Func {
		return fmt.Errorf("%w: %s is a %s", ErrMismatch, p.Name, t.Kind())
	}
	if t.IsVariadic() || t.NumIn() != len(p.Params) {
		return fmt.Errorf("%w: %s takes %d arguments, declared %d", ErrMismatch, p.Name, t.NumIn(), len(p.Params))
	}
	for i, param := range p.Params {
		kind, ok := primitiveKinds[param.Type]
		if !ok {
			return fmt.Errorf("%w: %s parameter %d is %s", ErrUnsupportedType, p.Name, i, param.Type)
		}
		if t.In(i).Kind() != kind {
			return fmt.Errorf("%w: %s parameter %d is %s, declared %s", ErrMismatch, p.Name, i, t.In(i), param.Type)
		}
	}

	if p.Return == "void" {
		if t.NumOut() != 0 {
			return fmt.Errorf("%w: %s returns a value, declared void", ErrMismatch, p.Name)
		}
		return nil
	}
	kind, ok := primitiveKinds[p.Return]
	if !ok {
		return fmt.Errorf("%w: %s returns %s", ErrUnsupportedType, p.Name, p.Return)
	}
	if t.NumOut() != 1 || t.Out(0).Kind() != kind {
		return fmt.Errorf("%w: %s result does not match %s", ErrMismatch, p.Name, p.Return)
	}
	return nil
}

// Names returns the bound function names in catalog order.
func (l *Library) Names() []string {
	return append([]string(nil), l.order...)
}

// Prototype returns the declaration bound under name.
func (l *Library) Prototype(name string) (Prototype, bool) {
	b, ok := l.funcs[name]
	return b.proto, ok
}

// Call invokes name with args converted to the declared parameter types,
// the way an FFI converts script numbers. It returns nil for void
// functions.
func (l *Library) Call(name string, args ...any) (any, error) {
	b, ok := l.funcs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnresolved, name)
	}
	t := b.fn.Type()
	if len(args) != t.NumIn() {
		return nil, fmt.Errorf("%s: got %d arguments, want %d", name, len(args), t.NumIn())
	}

	in := make([]reflect.Value, len(args))
	for i, a := range args {
		v := reflect.ValueOf(a)
		if !v.IsValid() || !v.Type().ConvertibleTo(t.In(i)) {
			return nil, fmt.Errorf("%s: argument %d (%T) cannot convert to %s", name, i, a, b.proto.Params[i].Type)
		}
		in[i] = v.Convert(t.In(i))
	}

	out := b.fn.Call(in)
	if len(out) == 0 {
		return nil, nil
	}
	return out[0].Interface(), nil
}
