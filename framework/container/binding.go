package container

// binding holds a registered concrete and whether it is a singleton.
type binding struct {
	concrete Concrete
	unique   bool
}

// bindingTable maps abstracts to their bindings.
type bindingTable map[string]*binding

// concrete returns the bound concrete, or the abstract itself as a type name
// when nothing is bound.
func (t bindingTable) concrete(abstract string) Concrete {
	if b, ok := t[abstract]; ok {
		return b.concrete
	}
	return Class(abstract)
}

func (t bindingTable) isUnique(abstract string) bool {
	if b, ok := t[abstract]; ok {
		return b.unique
	}
	return false
}

// Bind registers a transient binding: every Make builds a new value. Without a
// concrete the abstract is bound to itself, i.e. to Class(abstract).
//
//	// Laravel: $app->bind(UserRepository::class, EloquentUserRepository::class)
//	c.Bind(container.KeyOf[UserRepository](), container.TypeOf[EloquentUserRepository]())
func (c *Container) Bind(abstract string, concrete ...Concrete) {
	c.bind(abstract, first(concrete, abstract), false)
}

// Singleton registers a binding whose value is cached after first resolution.
//
//	// Laravel: $app->singleton(Cache::class, fn($app) => new RedisCache($app))
//	c.Singleton("cache", container.Closure(func(c *container.Container, _ container.Params) (any, error) {
//	    return cache.NewRedis(container.MustResolve[*config.Config](c, "config")), nil
//	}))
func (c *Container) Singleton(abstract string, concrete ...Concrete) {
	c.bind(abstract, first(concrete, abstract), true)
}

// bind stores the binding, drops the cached instance and alias under abstract
// and fires rebound callbacks when the abstract had already been resolved.
func (c *Container) bind(abstract string, concrete Concrete, unique bool) {
	c.mu.Lock()
	if concrete.kind == KindType && concrete.desc != nil {
		c.catalog.learn(concrete.desc)
	}
	delete(c.instances, abstract)
	delete(c.aliases, abstract)
	c.bindings[abstract] = &binding{concrete: concrete, unique: unique}
	wasResolved := c.resolved[abstract]
	callbacks := len(c.reboundCallbacks[abstract]) > 0
	c.mu.Unlock()

	c.log.Debug("container: bind", "abstract", abstract, "concrete", concrete.String(), "unique", unique)

	if wasResolved && callbacks {
		c.rebound(abstract)
	}
}

func first(concrete []Concrete, abstract string) Concrete {
	if len(concrete) > 0 && concrete[0].kind != 0 {
		return concrete[0]
	}
	return Class(abstract)
}
