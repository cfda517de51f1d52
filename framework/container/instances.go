package container

// Instance registers a pre-built value and returns it. Make(abstract) returns
// exactly this value until the abstract is rebound or the instance forgotten.
// An alias registered under the same name is dropped.
//
//	// Laravel: $app->instance(Config::class, $config)
//	c.Instance("config", cfg)
func (c *Container) Instance(abstract string, instance any) any {
	c.mu.Lock()
	delete(c.aliases, abstract)
	_, wasBound := c.bindings[abstract]
	c.instances[abstract] = instance
	callbacks := len(c.reboundCallbacks[abstract]) > 0
	c.mu.Unlock()

	c.log.Debug("container: instance", "abstract", abstract, "type", typeName(instance))

	if wasBound && callbacks {
		c.fireRebound(abstract, instance)
	}
	return instance
}

// ForgetInstance drops the cached value of abstract; the binding survives.
func (c *Container) ForgetInstance(abstract string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.instances, abstract)
}

// Resolved reports whether abstract has been resolved at least once or holds
// a registered instance.
//
//	// Laravel: $app->resolved(Cache::class)
func (c *Container) Resolved(abstract string) bool {
	key, err := c.GetAlias(abstract)
	if err != nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, cached := c.instances[key]
	return cached || c.resolved[key]
}

func (c *Container) cached(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	inst, ok := c.instances[key]
	return inst, ok
}
