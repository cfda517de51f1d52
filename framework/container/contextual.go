package container

// ContextualBuilder implements the fluent contextual binding API.
//
//	// Laravel: $app->when(PhotoController::class)->needs(Filesystem::class)->give(...)
//	c.When("PhotoController").Needs(container.KeyOf[Filesystem]()).Give(func(c *container.Container, _ container.Params) (any, error) {
//	    return filesystem.NewS3(...), nil
//	})
type ContextualBuilder struct {
	container *Container
	concrete  string
	needs     string
}

// When starts a contextual binding chain for the abstract being built.
func (c *Container) When(concrete string) *ContextualBuilder {
	return &ContextualBuilder{container: c, concrete: concrete}
}

// Needs specifies which abstract the concrete type depends on.
func (b *ContextualBuilder) Needs(abstract string) *ContextualBuilder {
	b.needs = abstract
	return b
}

// Give provides the factory used when the concrete type resolves the
// specified abstract.
func (b *ContextualBuilder) Give(factory Factory) {
	b.container.mu.Lock()
	defer b.container.mu.Unlock()

	if _, ok := b.container.contextual[b.concrete]; !ok {
		b.container.contextual[b.concrete] = make(map[string]Factory)
	}
	b.container.contextual[b.concrete][b.needs] = factory
}

// GiveValue is a shorthand for Give when the value is a simple scalar or
// pre-built instance.
//
//	// Laravel: ->give('/tmp/photos')
//	c.When("PhotoController").Needs("storagePath").GiveValue("/tmp/photos")
func (b *ContextualBuilder) GiveValue(value any) {
	b.Give(func(*Container, Params) (any, error) { return value, nil })
}

// contextualFor returns the contextual factory registered for the type r is
// currently constructing and the requested abstract (under its own name, the
// name it resolves to, or any alias of that name), or nil.
func (c *Container) contextualFor(r *resolution, abstract, key string) Factory {
	caller, ok := r.building()
	if !ok {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	needs, ok := c.contextual[caller]
	if !ok {
		return nil
	}
	if f, ok := needs[abstract]; ok {
		return f
	}
	if f, ok := needs[key]; ok {
		return f
	}
	// Laravel: aliases of the requested abstract match too
	for name, f := range needs {
		if target, err := c.aliases.resolve(name); err == nil && target == key {
			return f
		}
	}
	return nil
}
