package container

import "reflect"

// TypeKey returns the package-qualified type name of v, the abstract key the
// container uses for values of that type. Pointers are stripped, so *Car and
// Car share a key.
//
//	key := container.TypeKey((*UserRepository)(nil))  // "main.UserRepository"
//	c.Singleton(key, container.TypeOf[EloquentUserRepository]())
func TypeKey(v any) string {
	if t, ok := v.(reflect.Type); ok {
		return typeKey(t)
	}
	return typeKey(reflect.TypeOf(v))
}

// KeyOf is TypeKey for a type parameter. It works for interfaces, which
// TypeKey can only reach through a nil pointer.
//
//	c.Bind(container.KeyOf[Engine](), container.TypeOf[V8Engine]())
func KeyOf[T any]() string {
	return typeKey(reflect.TypeOf((*T)(nil)).Elem())
}

func typeKey(t reflect.Type) string {
	if t == nil {
		return ""
	}
	t = baseType(t)
	if t.Name() == "" {
		return t.String()
	}
	if t.PkgPath() == "" {
		return t.Name()
	}
	return t.PkgPath() + "." + t.Name()
}

func baseType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func reflectTypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
