package container

import (
	"errors"
	"fmt"
	"reflect"
)

// Params are caller-supplied overrides, keyed by parameter name or by the
// TypeKey of the parameter's declared type. A matching entry is injected
// verbatim and skips resolution.
type Params map[string]any

func mergeParams(list []Params) Params {
	switch len(list) {
	case 0:
		return nil
	case 1:
		return list[0]
	}
	out := make(Params)
	for _, p := range list {
		for k, v := range p {
			out[k] = v
		}
	}
	return out
}

// Param describes one parameter of a constructor, function or method. Go
// reflection cannot see parameter names, so they are supplied alongside the
// function with Arg; Type is always taken from the signature.
type Param struct {
	Name       string
	Type       reflect.Type
	HasDefault bool
	Default    any
}

// Arg names a parameter.
func Arg(name string) Param { return Param{Name: name} }

// WithDefault returns a copy of p carrying a default value, used when the
// parameter has no override and cannot be resolved from the container.
func (p Param) WithDefault(v any) Param {
	p.HasDefault = true
	p.Default = v
	return p
}

func (p Param) label(i int) string {
	if p.Name != "" {
		return "$" + p.Name
	}
	return fmt.Sprintf("#%d", i)
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// signature holds the reflected metadata of a callable.
type signature struct {
	fn           reflect.Value
	params       []Param
	returnsError bool
}

// parseFunc reads the parameters of fn and overlays the supplied names and
// defaults by position.
func parseFunc(fn reflect.Value, named []Param) (*signature, error) {
	if !fn.IsValid() || fn.Kind() != reflect.Func {
		return nil, fmt.Errorf("expected a function, got %v", fn.Kind())
	}
	if fn.IsNil() {
		return nil, errors.New("function is nil")
	}
	ft := fn.Type()
	if len(named) > ft.NumIn() {
		return nil, fmt.Errorf("%d parameter names given for a function of %d parameters", len(named), ft.NumIn())
	}

	params := make([]Param, ft.NumIn())
	for i := range params {
		if i < len(named) {
			params[i] = named[i]
		}
		params[i].Type = ft.In(i)
	}

	numOut := ft.NumOut()
	return &signature{
		fn:           fn,
		params:       params,
		returnsError: numOut > 0 && ft.Out(numOut-1) == errorType,
	}, nil
}

// parseConstructor is parseFunc restricted to T and (T, error) results.
func parseConstructor(fn reflect.Value, named []Param) (*signature, error) {
	sig, err := parseFunc(fn, named)
	if err != nil {
		return nil, fmt.Errorf("invalid constructor: %w", err)
	}
	ft := fn.Type()
	switch {
	case ft.NumOut() == 1 && !sig.returnsError:
	case ft.NumOut() == 2 && sig.returnsError:
	default:
		return nil, fmt.Errorf("invalid constructor: must return T or (T, error), got %v", ft)
	}
	return sig, nil
}

// invoke calls the function. A trailing non-nil error is returned as the
// error; one remaining result is returned as-is and several as []any.
func (s *signature) invoke(args []reflect.Value) (any, error) {
	var out []reflect.Value
	if s.fn.Type().IsVariadic() {
		out = s.fn.CallSlice(args)
	} else {
		out = s.fn.Call(args)
	}

	if s.returnsError {
		last := out[len(out)-1]
		out = out[:len(out)-1]
		if !last.IsNil() {
			return nil, last.Interface().(error)
		}
	}

	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		return out[0].Interface(), nil
	}
	results := make([]any, len(out))
	for i, v := range out {
		results[i] = v.Interface()
	}
	return results, nil
}

// resolveParams builds the positional argument list for ps. owner names the
// thing being built or called, for error messages.
func (c *Container) resolveParams(r *resolution, owner string, ps []Param, params Params) ([]reflect.Value, error) {
	args := make([]reflect.Value, len(ps))
	for i, p := range ps {
		v, err := c.resolveParam(r, p, params)
		if err != nil {
			return nil, &ResolutionError{Abstract: owner, Param: p.label(i), Cause: err}
		}
		args[i] = v
	}
	return args, nil
}

// resolveParam decides the value injected for a single parameter: an override
// by name, an override by type key, the container, the default, or zero.
func (c *Container) resolveParam(r *resolution, p Param, params Params) (reflect.Value, error) {
	if p.Name != "" {
		if v, ok := params[p.Name]; ok {
			return adapt(v, p.Type)
		}
	}
	key := typeKey(p.Type)
	if v, ok := params[key]; ok {
		return adapt(v, p.Type)
	}

	// Laravel: ->needs('$name')->give(...)
	if f := c.contextualFor(r, "$"+p.Name, key); f != nil {
		v, err := f(c, nil)
		if err != nil {
			return reflect.Value{}, err
		}
		return adapt(v, p.Type)
	}

	if c.resolvable(p.Type, key) {
		v, err := c.make(r, key, nil)
		if err == nil {
			return adapt(v, p.Type)
		}
		if !p.HasDefault || !errors.Is(err, ErrNotInstantiable) {
			return reflect.Value{}, err
		}
	}

	if p.HasDefault {
		return adapt(p.Default, p.Type)
	}
	return reflect.Zero(p.Type), nil
}

// resolvable reports whether a declared type names something the container
// can be asked for: anything it already knows under key, or a named interface
// or struct type outside the builtin universe. Struct and interface types are
// recorded in the catalog so that Make can describe them.
func (c *Container) resolvable(t reflect.Type, key string) bool {
	if c.Bound(key) {
		return true
	}
	bt := baseType(t)
	if bt.Name() == "" || bt.PkgPath() == "" {
		return false
	}
	switch bt.Kind() {
	case reflect.Struct, reflect.Interface:
		c.mu.Lock()
		c.catalog.learn(newDescriptor(key, bt))
		c.mu.Unlock()
		return true
	}
	return false
}

// adapt turns v into a value assignable to t. A *T given for a T parameter is
// dereferenced and a T given for a *T parameter is copied behind a pointer.
func adapt(v any, t reflect.Type) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(t), nil
	}
	rv := reflect.ValueOf(v)
	vt := rv.Type()

	switch {
	case vt.AssignableTo(t):
		return rv, nil
	case vt.Kind() == reflect.Pointer && !rv.IsNil() && vt.Elem().AssignableTo(t):
		return rv.Elem(), nil
	case t.Kind() == reflect.Pointer && vt.AssignableTo(t.Elem()):
		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(rv)
		return ptr, nil
	case sameFamily(vt, t) && vt.ConvertibleTo(t):
		return rv.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %T as %v", v, t)
}

// sameFamily limits conversions to numeric→numeric and string→string so that
// an int is never turned into a rune string.
func sameFamily(a, b reflect.Type) bool {
	return (isNumber(a) && isNumber(b)) || (a.Kind() == reflect.String && b.Kind() == reflect.String)
}

func isNumber(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
