package container

import (
	"fmt"
	"reflect"
	"strings"
)

// Callable is a function together with the names (and defaults) of its
// parameters, so that Call can match overrides to them.
type Callable struct {
	fn     any
	params []Param
}

// Func attaches parameter metadata to fn.
//
//	c.Call(container.Func(SendMail, container.Arg("to")), container.Params{"to": "a@b.c"})
func Func(fn any, params ...Param) Callable {
	return Callable{fn: fn, params: params}
}

// Call invokes callable with its parameters resolved like a constructor's.
// Accepted forms:
//
//	c.Call(func(m *Mailer) error { ... })                  // function or closure
//	c.Call(container.Func(fn, container.Arg("to")))        // function with parameter names
//	c.Call("mailer@Send", container.Params{"to": addr})   // Make("mailer"), then .Send
//	c.Call("report")                                       // function declared with DeclareFunc
//	c.Call([]any{mailer, "Send"})                          // method on a given target
//	c.Call([]any{"Mailer", "Send"})                        // method on a declared type, no Make
//
// Anything else fails with *InvalidCallableError. The results of the callable
// come back unchanged: nothing is nil, a trailing non-nil error is returned as
// the error, one other result is returned as-is and several as []any.
func (c *Container) Call(callable any, params ...Params) (any, error) {
	sig, label, err := c.classify(callable)
	if err != nil {
		return nil, err
	}
	args, err := c.resolveParams(new(resolution), label, sig.params, mergeParams(params))
	if err != nil {
		return nil, err
	}
	c.log.Debug("container: call", "callable", label)
	return sig.invoke(args)
}

// classify turns one of the accepted callable forms into a signature.
func (c *Container) classify(callable any) (*signature, string, error) {
	switch v := callable.(type) {
	case nil:
		return nil, "", &InvalidCallableError{Callable: callable, Reason: "nil"}

	case Callable:
		sig, err := parseFunc(reflect.ValueOf(v.fn), v.params)
		if err != nil {
			return nil, "", &InvalidCallableError{Callable: v.fn, Reason: err.Error()}
		}
		return sig, typeName(v.fn), nil

	case string:
		if class, method, ok := strings.Cut(v, "@"); ok {
			if class == "" || method == "" {
				return nil, "", &InvalidCallableError{Callable: v, Reason: `expected "Class@method"`}
			}
			target, err := c.Make(class)
			if err != nil {
				return nil, "", err
			}
			return c.methodSignature(v, target, method)
		}
		c.mu.RLock()
		sig, ok := c.catalog.funcs[v]
		c.mu.RUnlock()
		if !ok {
			return nil, "", &InvalidCallableError{Callable: v, Reason: "no function declared under this name"}
		}
		return sig, v, nil

	case []any:
		if len(v) != 2 {
			return nil, "", &InvalidCallableError{Callable: v, Reason: "expected [target, method]"}
		}
		method, ok := v[1].(string)
		if !ok || method == "" {
			return nil, "", &InvalidCallableError{Callable: v, Reason: "method name must be a non-empty string"}
		}
		target := v[0]
		if name, ok := target.(string); ok {
			c.mu.RLock()
			d, found := c.catalog.lookup(name)
			c.mu.RUnlock()
			if !found || d.typ == nil {
				return nil, "", &InvalidCallableError{Callable: v, Reason: fmt.Sprintf("type %q is not declared", name)}
			}
			target = reflect.New(d.typ).Interface()
		}
		return c.methodSignature(v, target, method)
	}

	if fn := reflect.ValueOf(callable); fn.Kind() == reflect.Func {
		sig, err := parseFunc(fn, nil)
		if err != nil {
			return nil, "", &InvalidCallableError{Callable: callable, Reason: err.Error()}
		}
		return sig, typeName(callable), nil
	}
	return nil, "", &InvalidCallableError{Callable: callable, Reason: "not a function, \"Class@method\" or [target, method]"}
}

// methodSignature finds method on target, falling back to a pointer receiver
// when target is a plain value, and attaches the declared parameter names.
func (c *Container) methodSignature(callable, target any, method string) (*signature, string, error) {
	if target == nil {
		return nil, "", &InvalidCallableError{Callable: callable, Reason: "target is nil"}
	}
	rv := reflect.ValueOf(target)
	m := rv.MethodByName(method)
	if !m.IsValid() && rv.Kind() != reflect.Pointer {
		ptr := reflect.New(rv.Type())
		ptr.Elem().Set(rv)
		m = ptr.MethodByName(method)
	}
	if !m.IsValid() {
		return nil, "", &InvalidCallableError{Callable: callable, Reason: fmt.Sprintf("%T has no method %s", target, method)}
	}

	c.mu.RLock()
	named := c.catalog.methodParams(rv.Type(), method)
	c.mu.RUnlock()

	sig, err := parseFunc(m, named)
	if err != nil {
		return nil, "", &InvalidCallableError{Callable: callable, Reason: err.Error()}
	}
	return sig, fmt.Sprintf("%T.%s", target, method), nil
}
