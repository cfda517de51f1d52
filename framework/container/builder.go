package container

import (
	"fmt"
	"reflect"
)

// build turns concrete into a value for abstract. Factories run as-is, values
// are returned untouched, and types are constructed with their parameters
// resolved through the container.
func (c *Container) build(r *resolution, abstract string, concrete Concrete, params Params) (any, error) {
	switch concrete.kind {
	case KindFactory:
		return concrete.factory(c, params)

	case KindValue:
		return concrete.value, nil

	case KindType:
		d, err := c.describe(concrete)
		if err != nil {
			return nil, err
		}
		if err := r.enter(abstract); err != nil {
			return nil, err
		}
		defer r.leave()
		return c.construct(r, abstract, d, params)
	}
	return nil, &InstantiationError{Abstract: abstract, Reason: "empty concrete"}
}

// describe returns the descriptor behind a type concrete, looking named
// references up in the catalog.
func (c *Container) describe(concrete Concrete) (*descriptor, error) {
	d := concrete.desc
	if d == nil {
		c.mu.RLock()
		found, ok := c.catalog.lookup(concrete.name)
		c.mu.RUnlock()
		if !ok {
			return nil, &InstantiationError{Abstract: concrete.name, Reason: "type is not declared"}
		}
		d = found
	}
	if d.err != nil {
		return nil, &InstantiationError{Abstract: d.name, Reason: d.err.Error()}
	}
	return d, nil
}

// construct calls the constructor, or allocates the struct and fills its
// injectable fields.
func (c *Container) construct(r *resolution, abstract string, d *descriptor, params Params) (any, error) {
	if d.ctor != nil {
		args, err := c.resolveParams(r, abstract, d.ctor.params, params)
		if err != nil {
			return nil, err
		}
		instance, err := d.ctor.invoke(args)
		if err != nil {
			return nil, &ResolutionError{Abstract: abstract, Cause: err}
		}
		return instance, nil
	}

	switch d.typ.Kind() {
	case reflect.Interface:
		return nil, &InstantiationError{Abstract: abstract, Reason: fmt.Sprintf("%v is an interface", d.typ)}
	case reflect.Struct:
	default:
		return nil, &InstantiationError{Abstract: abstract, Reason: fmt.Sprintf("%v has no constructor", d.typ)}
	}

	c.mu.Lock()
	fields, err := c.catalog.fieldParams(d.typ)
	c.mu.Unlock()
	if err != nil {
		return nil, &InstantiationError{Abstract: abstract, Reason: err.Error()}
	}

	ptr := reflect.New(d.typ)
	if len(fields) == 0 {
		return ptr.Interface(), nil
	}

	ps := make([]Param, len(fields))
	for i, f := range fields {
		ps[i] = f.Param
	}
	args, err := c.resolveParams(r, abstract, ps, params)
	if err != nil {
		return nil, err
	}
	elem := ptr.Elem()
	for i, f := range fields {
		elem.Field(f.index).Set(args[i])
	}
	return ptr.Interface(), nil
}

// resolution is the state of one top-level Make or Call: the abstracts whose
// types are being constructed, outermost first. Each entry point starts its
// own, so concurrent resolutions never see each other's path.
type resolution struct {
	path []string
}

// enter records abstract as under construction, failing when it already is
// further down the path.
func (r *resolution) enter(abstract string) error {
	for i, a := range r.path {
		if a == abstract {
			cycle := append(append([]string(nil), r.path[i:]...), abstract)
			return &CircularDependencyError{Path: cycle}
		}
	}
	r.path = append(r.path, abstract)
	return nil
}

func (r *resolution) leave() {
	r.path = r.path[:len(r.path)-1]
}

// building returns the abstract whose type is being constructed innermost.
func (r *resolution) building() (string, bool) {
	if len(r.path) == 0 {
		return "", false
	}
	return r.path[len(r.path)-1], true
}
