package container

import "slices"

// aliasTable maps alias names to the abstract they stand for.
type aliasTable map[string]string

// resolve follows name through the table until it reaches a name with no
// further alias. A chain that comes back to a name already visited fails.
func (t aliasTable) resolve(name string) (string, error) {
	path := []string{name}
	current := name
	for {
		next, ok := t[current]
		if !ok {
			return current, nil
		}
		if next == current {
			return "", &AliasCycleError{Alias: current, Path: []string{current}}
		}
		if slices.Contains(path, next) {
			return "", &AliasCycleError{Alias: name, Path: append(path, next)}
		}
		path = append(path, next)
		current = next
	}
}

// Alias makes alias resolve to abstract.
//
//	// Laravel: $app->alias(Cache::class, 'cache')
//	c.Alias("cache", container.KeyOf[Cache]())
func (c *Container) Alias(alias, abstract string) {
	c.mu.Lock()
	c.aliases[alias] = abstract
	c.mu.Unlock()

	if alias == abstract {
		c.log.Warn("container: alias points at itself", "alias", alias)
		return
	}
	c.log.Debug("container: alias", "alias", alias, "abstract", abstract)
}

// RemoveAlias deletes alias. Unknown names are ignored.
func (c *Container) RemoveAlias(alias string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.aliases, alias)
}

// IsAlias reports whether name is registered as an alias.
func (c *Container) IsAlias(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.aliases[name]
	return ok
}

// GetAlias returns the abstract name ultimately resolves to. Names that are not
// aliases come back unchanged. Cycles, including a name aliased to itself,
// return an *AliasCycleError.
func (c *Container) GetAlias(name string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.aliases.resolve(name)
}
