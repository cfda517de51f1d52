package container

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// extender wraps an already-resolved instance with decorator logic.
type extender func(instance any, c *Container) any

// ── Container ─────────────────────────────────────────────────────────────────

// Container is the IoC container. It mirrors Laravel's Illuminate\Container\Container.
//
// It supports:
//   - Bind / Singleton / Instance / Alias
//   - Make / Resolve (generic) with automatic constructor and field injection
//   - Call on functions, "Class@method" strings and [target, method] pairs
//   - Tags, Extend, contextual binding, rebound and resolved callbacks
//
// A Container is safe for concurrent use. Every Make and Call tracks its own
// resolution path; the maps are guarded by one mutex. Two goroutines racing
// on the first Make of a singleton may both build it, and the first to finish
// is kept.
type Container struct {
	mu sync.RWMutex

	log *slog.Logger

	// abstract → binding
	bindings bindingTable

	// abstract → resolved singleton or registered instance
	instances map[string]any

	// alias → abstract
	aliases aliasTable

	// named types and functions with their parameter metadata
	catalog *catalog

	// abstracts resolved at least once
	resolved map[string]bool

	// abstract → extender funcs
	extenders map[string][]extender

	// tag → []abstract
	tags map[string][]string

	// contextual: when[concrete][abstract] = factory
	contextual map[string]map[string]Factory

	// rebound callbacks: abstract → []func(any)
	reboundCallbacks map[string][]func(any)

	// resolved callbacks: []func(abstract, instance)
	afterResolving []func(string, any)
}

// Option configures a Container.
type Option func(c *Container)

// WithLogger sends the container's debug output to l.
func WithLogger(l *slog.Logger) Option {
	return func(c *Container) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates an empty container. The container is bound to itself under
// "container" and KeyOf[Container](), and becomes the process-wide default
// if none has been set yet.
func New(opts ...Option) *Container {
	c := &Container{
		log:       slog.New(slog.DiscardHandler),
		bindings:  make(bindingTable),
		instances: make(map[string]any),
		aliases:   make(aliasTable),
		catalog:   newCatalog(),
		resolved:  make(map[string]bool),
	}
	c.reset()
	for _, opt := range opts {
		opt(c)
	}

	// Bind the container to itself, like Laravel's $app->instance()
	self := KeyOf[Container]()
	c.Instance(self, c)
	c.Alias("container", self)

	setDefaultOnce(c)
	return c
}

func (c *Container) reset() {
	c.extenders = make(map[string][]extender)
	c.tags = make(map[string][]string)
	c.contextual = make(map[string]map[string]Factory)
	c.reboundCallbacks = make(map[string][]func(any))
	c.afterResolving = nil
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Make resolves an abstract from the container. params override constructor
// parameters by name or by type key; several maps are merged left to right.
//
//	// Laravel: $app->make(Car::class, ['engine' => $engine])
//	car, err := c.Make("car", container.Params{"engine": engine})
func (c *Container) Make(abstract string, params ...Params) (any, error) {
	return c.make(new(resolution), abstract, mergeParams(params))
}

// MustMake is Make for bootstrap code: it panics on error.
func (c *Container) MustMake(abstract string, params ...Params) any {
	instance, err := c.Make(abstract, params...)
	if err != nil {
		panic(err)
	}
	return instance
}

// make is the internal resolver (no outer lock; individual ops lock as needed).
func (c *Container) make(r *resolution, abstract string, params Params) (any, error) {
	key, err := c.GetAlias(abstract)
	if err != nil {
		return nil, err
	}

	// Check contextual binding (look at the type being built)
	if f := c.contextualFor(r, abstract, key); f != nil {
		return f(c, params)
	}

	if inst, ok := c.cached(key); ok {
		return inst, nil
	}

	c.mu.RLock()
	concrete := c.bindings.concrete(key)
	unique := c.bindings.isUnique(key)
	exts := c.extenders[key]
	c.mu.RUnlock()

	instance, err := c.build(r, key, concrete, params)
	if err != nil {
		c.log.Debug("container: build failed", "abstract", key, "err", err)
		return nil, err
	}

	for _, ext := range exts {
		instance = ext(instance, c)
	}

	c.mu.Lock()
	if unique {
		if first, ok := c.instances[key]; ok {
			instance = first
		} else {
			c.instances[key] = instance
		}
	}
	c.resolved[key] = true
	c.mu.Unlock()

	c.fireAfterResolving(key, instance)
	return instance, nil
}

// ── Extend ────────────────────────────────────────────────────────────────────

// Extend decorates the resolved instance of an abstract. A cached instance is
// decorated immediately.
//
//	// Laravel: $app->extend(Logger::class, fn($logger, $app) => new TimestampLogger($logger))
//	c.Extend("logger", func(instance any, c *container.Container) any {
//	    return &TimestampLogger{Inner: instance.(*Logger)}
//	})
func (c *Container) Extend(abstract string, fn func(instance any, c *Container) any) {
	key, err := c.GetAlias(abstract)
	if err != nil {
		key = abstract
	}

	c.mu.Lock()
	c.extenders[key] = append(c.extenders[key], fn)
	inst, ok := c.instances[key]
	c.mu.Unlock()

	if ok {
		extended := fn(inst, c)
		c.mu.Lock()
		c.instances[key] = extended
		c.mu.Unlock()
		c.fireRebound(key, extended)
	}
}

// ── Tags ──────────────────────────────────────────────────────────────────────

// Tag associates multiple abstracts under a named group.
//
//	// Laravel: $app->tag([CpuReport::class, MemoryReport::class], 'reports')
//	c.Tag([]string{"CpuReport", "MemoryReport"}, "reports")
func (c *Container) Tag(abstracts []string, tag string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tags[tag] = append(c.tags[tag], abstracts...)
}

// Tagged resolves all abstracts registered under a tag, in tagging order.
func (c *Container) Tagged(tag string) ([]any, error) {
	c.mu.RLock()
	abstracts := append([]string(nil), c.tags[tag]...)
	c.mu.RUnlock()

	result := make([]any, 0, len(abstracts))
	for _, abs := range abstracts {
		instance, err := c.make(new(resolution), abs, nil)
		if err != nil {
			return nil, fmt.Errorf("container: tag %q: %w", tag, err)
		}
		result = append(result, instance)
	}
	return result, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// Bound returns true if an abstract has a binding, an instance or an alias.
//
//	// Laravel: $app->bound(UserRepository::class)
func (c *Container) Bound(abstract string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, hasBinding := c.bindings[abstract]
	_, hasInstance := c.instances[abstract]
	_, hasAlias := c.aliases[abstract]
	return hasBinding || hasInstance || hasAlias
}

// Forget removes the binding and cached instance of an abstract.
func (c *Container) Forget(abstract string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.bindings, abstract)
	delete(c.instances, abstract)
	delete(c.resolved, abstract)
}

// Flush resets the entire container, including its binding to itself.
func (c *Container) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bindings = make(bindingTable)
	c.instances = make(map[string]any)
	c.aliases = make(aliasTable)
	c.catalog = newCatalog()
	c.resolved = make(map[string]bool)
	c.reset()
}

// Bindings returns every abstract with a binding or an instance (for debugging).
func (c *Container) Bindings() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.bindings)+len(c.instances))
	for k := range c.bindings {
		out = append(out, k)
	}
	for k := range c.instances {
		if _, already := c.bindings[k]; !already {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}

// ── Callbacks ─────────────────────────────────────────────────────────────────

// Rebinding registers a callback fired with the fresh instance whenever an
// already-resolved abstract is bound again.
//
//	// Laravel: $app->rebinding(UserRepository::class, fn($app, $repo) => ...)
func (c *Container) Rebinding(abstract string, cb func(any)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reboundCallbacks[abstract] = append(c.reboundCallbacks[abstract], cb)
}

// AfterResolving registers a callback fired after any abstract is resolved.
//
//	// Laravel: $app->afterResolving(fn($object, $app) => ...)
func (c *Container) AfterResolving(cb func(abstract string, instance any)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.afterResolving = append(c.afterResolving, cb)
}

// rebound rebuilds abstract and hands the result to its rebound callbacks.
func (c *Container) rebound(abstract string) {
	instance, err := c.make(new(resolution), abstract, nil)
	if err != nil {
		c.log.Warn("container: rebuild after rebind failed", "abstract", abstract, "err", err)
		return
	}
	c.fireRebound(abstract, instance)
}

func (c *Container) fireRebound(abstract string, instance any) {
	c.mu.RLock()
	cbs := c.reboundCallbacks[abstract]
	c.mu.RUnlock()
	for _, cb := range cbs {
		cb(instance)
	}
}

func (c *Container) fireAfterResolving(abstract string, instance any) {
	c.mu.RLock()
	cbs := c.afterResolving
	c.mu.RUnlock()
	for _, cb := range cbs {
		cb(abstract, instance)
	}
}

// ── Generics helper ───────────────────────────────────────────────────────────

// Resolve is a generic helper that calls Make and type-asserts the result.
//
//	// Instead of: db := c.MustMake("db").(*sql.DB)
//	// Write:      db, err := container.Resolve[*sql.DB](c, "db")
func Resolve[T any](c *Container, abstract string, params ...Params) (T, error) {
	var zero T
	instance, err := c.Make(abstract, params...)
	if err != nil {
		return zero, err
	}
	if instance == nil {
		return zero, nil
	}
	if typed, ok := instance.(T); ok {
		return typed, nil
	}
	// a *T built by reflection satisfies a request for T
	if v, err := adapt(instance, reflectTypeOf[T]()); err == nil {
		if typed, ok := v.Interface().(T); ok {
			return typed, nil
		}
	}
	return zero, fmt.Errorf("container: Resolve[%s]: [%s] resolved to %T", KeyOf[T](), abstract, instance)
}

// MustResolve is like Resolve but panics on error.
func MustResolve[T any](c *Container, abstract string, params ...Params) T {
	typed, err := Resolve[T](c, abstract, params...)
	if err != nil {
		panic(err)
	}
	return typed
}

// ResolveType resolves T by its type key, describing T to the container first
// if it has never seen it.
//
//	car, err := container.ResolveType[*Car](c)
func ResolveType[T any](c *Container, params ...Params) (T, error) {
	key := KeyOf[T]()
	var zero T
	if !c.resolvable(reflectTypeOf[T](), key) {
		return zero, &InstantiationError{Abstract: key, Reason: "type cannot be resolved by the container"}
	}
	return Resolve[T](c, key, params...)
}

func typeName(v any) string { return fmt.Sprintf("%T", v) }
