package container

// Map-style access, mirroring Laravel's ArrayAccess on the container:
// isset($app['x']), $app['x'], $app['x'] = ..., unset($app['x']).

// Exists reports whether key is bound, instanced or aliased.
func (c *Container) Exists(key string) bool { return c.Bound(key) }

// Get resolves key.
func (c *Container) Get(key string) (any, error) { return c.Make(key) }

// Set binds key. A Concrete is bound as given, a Factory (or a function with
// the same signature) as a closure, and anything else as a value.
func (c *Container) Set(key string, value any) {
	switch v := value.(type) {
	case Concrete:
		c.Bind(key, v)
	case Factory:
		c.Bind(key, Closure(v))
	case func(*Container, Params) (any, error):
		c.Bind(key, Closure(v))
	default:
		c.Bind(key, Value(v))
	}
}

// Delete removes the binding and cached instance of key.
func (c *Container) Delete(key string) { c.Forget(key) }
