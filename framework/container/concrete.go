package container

import (
	"fmt"
	"reflect"
)

// Kind tags the three shapes a Concrete can take.
type Kind uint8

const (
	// KindType is a constructible type: built by reflection, optionally
	// through a constructor function.
	KindType Kind = iota + 1
	// KindFactory is a Factory that is fully responsible for construction.
	KindFactory
	// KindValue is an opaque value returned as-is.
	KindValue
)

func (k Kind) String() string {
	switch k {
	case KindType:
		return "type"
	case KindFactory:
		return "factory"
	case KindValue:
		return "value"
	default:
		return "invalid"
	}
}

// Factory builds a value from the container. params holds the overrides the
// caller passed to Make, untouched.
//
//	// Laravel: $app->bind(Mailer::class, fn($app, $params) => new Mailer($params['from']))
//	c.Bind("mailer", container.Closure(func(c *container.Container, p container.Params) (any, error) {
//	    return mail.New(p["from"].(string)), nil
//	}))
type Factory func(c *Container, params Params) (any, error)

// Concrete is the construction strategy stored for an abstract. The zero value
// is invalid; use Class, TypeOf, Ctor, Closure or Value.
type Concrete struct {
	kind    Kind
	name    string
	desc    *descriptor
	factory Factory
	value   any
}

// Kind reports which of the three strategies c holds.
func (c Concrete) Kind() Kind { return c.kind }

func (c Concrete) String() string {
	switch c.kind {
	case KindType:
		if c.desc != nil {
			return c.desc.name
		}
		return c.name
	case KindFactory:
		return "factory"
	case KindValue:
		return fmt.Sprintf("value(%T)", c.value)
	default:
		return "<invalid>"
	}
}

// Class refers to a constructible type by its catalog name. Binding an
// abstract without a concrete is the same as binding it to Class(abstract).
func Class(name string) Concrete {
	return Concrete{kind: KindType, name: name}
}

// TypeOf describes T as a constructible type. Structs are allocated with
// reflect.New and their `inject`-tagged fields resolved; anything else needs
// WithConstructor.
//
//	c.Bind(container.KeyOf[Engine](), container.TypeOf[V8Engine]())
func TypeOf[T any](opts ...TypeOption) Concrete {
	t := reflect.TypeOf((*T)(nil)).Elem()
	d := newDescriptor(typeKey(t), baseType(t))
	for _, opt := range opts {
		opt(d)
	}
	return Concrete{kind: KindType, name: d.name, desc: d}
}

// Ctor describes the type returned by fn, built by calling fn. Parameters of fn
// are resolved like struct fields; params names them (by position) and may
// carry defaults. fn must return T or (T, error).
//
//	c.Singleton("db", container.Ctor(NewDB, container.Arg("dsn").WithDefault("sqlite://")))
func Ctor(fn any, params ...Param) Concrete {
	sig, err := parseConstructor(reflect.ValueOf(fn), params)
	if err != nil {
		return Concrete{kind: KindType, name: fmt.Sprintf("%T", fn), desc: &descriptor{name: fmt.Sprintf("%T", fn), err: err}}
	}
	ret := sig.fn.Type().Out(0)
	d := newDescriptor(typeKey(ret), baseType(ret))
	d.ctor = sig
	return Concrete{kind: KindType, name: d.name, desc: d}
}

// Closure wraps a Factory.
func Closure(f Factory) Concrete {
	return Concrete{kind: KindFactory, factory: f}
}

// Value wraps an already-built value; Make returns it as-is.
func Value(v any) Concrete {
	return Concrete{kind: KindValue, value: v}
}

// TypeOption adds metadata to a type description.
type TypeOption func(d *descriptor)

// WithConstructor builds the type through fn instead of reflect.New.
func WithConstructor(fn any, params ...Param) TypeOption {
	return func(d *descriptor) {
		sig, err := parseConstructor(reflect.ValueOf(fn), params)
		if err != nil {
			d.err = err
			return
		}
		d.ctor = sig
	}
}

// WithMethod names the parameters of a method so that Call can match
// overrides to them.
//
//	container.TypeOf[Greeter](container.WithMethod("Greet", container.Arg("name")))
func WithMethod(method string, params ...Param) TypeOption {
	return func(d *descriptor) {
		if d.methods == nil {
			d.methods = make(map[string][]Param)
		}
		d.methods[method] = params
	}
}
