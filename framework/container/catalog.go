package container

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// descriptor is the construction metadata recorded for a type identifier.
type descriptor struct {
	name    string
	typ     reflect.Type
	ctor    *signature
	methods map[string][]Param
	err     error
}

func newDescriptor(name string, t reflect.Type) *descriptor {
	return &descriptor{name: name, typ: t}
}

// richer reports whether d carries more than the bare type.
func (d *descriptor) richer() bool {
	return d.ctor != nil || len(d.methods) > 0
}

// fieldParam is a struct field that takes part in injection.
type fieldParam struct {
	Param
	index int
}

// catalog is the container's table of named types and functions. It plays the
// part runtime class lookup plays in dynamic languages: Class("Car") and
// "Car@Drive" are looked up here.
type catalog struct {
	types  map[string]*descriptor
	byType map[reflect.Type]*descriptor
	funcs  map[string]*signature
	fields map[reflect.Type][]fieldParam
}

func newCatalog() *catalog {
	return &catalog{
		types:  make(map[string]*descriptor),
		byType: make(map[reflect.Type]*descriptor),
		funcs:  make(map[string]*signature),
		fields: make(map[reflect.Type][]fieldParam),
	}
}

// declare records d under its name, replacing what was there.
func (cat *catalog) declare(d *descriptor) {
	cat.types[d.name] = d
	if d.typ == nil {
		return
	}
	if prev, ok := cat.byType[d.typ]; !ok || d.richer() || !prev.richer() {
		cat.byType[d.typ] = d
	}
}

// learn records d unless the name is already known, or replaces a bare entry
// with a richer one.
func (cat *catalog) learn(d *descriptor) {
	if prev, ok := cat.types[d.name]; ok && (prev.richer() || !d.richer()) {
		return
	}
	cat.declare(d)
}

func (cat *catalog) lookup(name string) (*descriptor, bool) {
	d, ok := cat.types[name]
	return d, ok
}

// methodParams returns the declared parameter names of method on t, if any.
func (cat *catalog) methodParams(t reflect.Type, method string) []Param {
	if d, ok := cat.byType[baseType(t)]; ok {
		return d.methods[method]
	}
	return nil
}

// fieldParams returns the injectable fields of struct type t: exported fields
// carrying an `inject` tag. The tag value names the parameter ("-" skips the
// field); a `default` tag supplies its default.
func (cat *catalog) fieldParams(t reflect.Type) ([]fieldParam, error) {
	if fields, ok := cat.fields[t]; ok {
		return fields, nil
	}

	var fields []fieldParam
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag, ok := f.Tag.Lookup("inject")
		if !ok || tag == "-" || !f.IsExported() {
			continue
		}
		name := strings.TrimSpace(tag)
		if name == "" {
			name = lowerFirst(f.Name)
		}
		p := Param{Name: name, Type: f.Type}
		if def, ok := f.Tag.Lookup("default"); ok {
			v, err := parseDefault(def, f.Type)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", f.Name, err)
			}
			p = p.WithDefault(v)
		}
		fields = append(fields, fieldParam{Param: p, index: i})
	}

	cat.fields[t] = fields
	return fields, nil
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}

// parseDefault converts a `default` tag to the field's kind.
func parseDefault(raw string, t reflect.Type) (any, error) {
	if t == reflect.TypeOf(time.Duration(0)) {
		return time.ParseDuration(raw)
	}
	v := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.String:
		v.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(raw, 10, t.Bits())
		if err != nil {
			return nil, err
		}
		v.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(raw, 10, t.Bits())
		if err != nil {
			return nil, err
		}
		v.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, t.Bits())
		if err != nil {
			return nil, err
		}
		v.SetFloat(f)
	default:
		return nil, fmt.Errorf("default tag not supported for %v", t)
	}
	return v.Interface(), nil
}

// Declare records a constructible type under name, so that name can be bound
// to itself, used in Class(name), resolved without a binding, or used as the
// target of "name@Method" calls.
//
//	c.Declare("Car", container.TypeOf[Car](container.WithMethod("Drive", container.Arg("speed"))))
//	c.Bind("Car")
func (c *Container) Declare(name string, concrete Concrete) error {
	if concrete.kind != KindType {
		return &InstantiationError{Abstract: name, Reason: "only types can be declared, got " + concrete.kind.String()}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	d := concrete.desc
	if d == nil {
		ref, ok := c.catalog.lookup(concrete.name)
		if !ok {
			return &InstantiationError{Abstract: concrete.name, Reason: "type is not declared"}
		}
		d = ref
	}
	named := *d
	named.name = name
	c.catalog.declare(&named)
	return nil
}

// DeclareType declares T under its type key and returns the key.
//
//	key := container.DeclareType[Car](c)
//	car, err := c.Make(key)
func DeclareType[T any](c *Container, opts ...TypeOption) string {
	concrete := TypeOf[T](opts...)
	c.mu.Lock()
	c.catalog.declare(concrete.desc)
	c.mu.Unlock()
	return concrete.desc.name
}

// DeclareFunc registers fn under name so that Call(name) invokes it.
func (c *Container) DeclareFunc(name string, fn any, params ...Param) error {
	sig, err := parseFunc(reflect.ValueOf(fn), params)
	if err != nil {
		return &InvalidCallableError{Callable: name, Reason: err.Error()}
	}
	c.mu.Lock()
	c.catalog.funcs[name] = sig
	c.mu.Unlock()
	return nil
}
