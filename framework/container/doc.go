// Package container provides a Laravel-compatible IoC (Inversion of Control)
// container and Service Provider system for Go.
//
// # Overview
//
// The container maps abstract identifiers (strings, or type keys produced by
// TypeKey / KeyOf) to construction strategies and builds values on demand,
// resolving constructor parameters and `inject`-tagged struct fields from the
// container recursively.
//
// It mirrors the public API of Laravel's Illuminate\Container\Container as
// closely as Go's type system allows. Reflection gives parameter types but
// not parameter names, so names and defaults are declared next to the
// function (Arg, WithMethod) or read from struct tags.
//
// # Container Lifecycle
//
//  1. Create: c := container.New()
//  2. Register providers: registry.Register(&MyProvider{})
//  3. Boot: registry.Boot(), after which everything is safe to resolve
//  4. Serve requests
//
// # Bindings
//
// A concrete is one of three things: a type (TypeOf, Ctor, Class), a factory
// (Closure) or a value (Value).
//
//	// Laravel: $app->bind(Engine::class, V8Engine::class)
//	c.Bind(container.KeyOf[Engine](), container.TypeOf[V8Engine]())
//
//	// Constructor with named parameters
//	c.Bind("car", container.Ctor(NewCar, container.Arg("engine"), container.Arg("color").WithDefault("red")))
//
//	// Singleton: created once, reused
//	c.Singleton("cache", container.Closure(func(c *container.Container, _ container.Params) (any, error) {
//	    return cache.NewRedis(container.MustResolve[*Config](c, "config")), nil
//	}))
//
//	// Pre-built value
//	c.Instance("config", myConfig)
//
//	// Alias: "cache" resolves to the Cache key
//	c.Alias("cache", container.KeyOf[Cache]())
//
// # Struct injection
//
//	type Car struct {
//	    Engine Engine `inject:""`                     // parameter "engine", resolved by type
//	    Color  string `inject:"color" default:"red"`  // override or default
//	}
//
// # Resolving
//
//	raw, err := c.Make("car", container.Params{"color": "blue"})
//	car, err := container.Resolve[*Car](c, "car")
//	car, err := container.ResolveType[*Car](c)
//
// # Calling
//
//	c.Call("car@Drive", container.Params{"speed": 120})
//	c.Call([]any{car, "Drive"})
//	c.Call(func(e Engine) string { return e.Name() })
//
// # Contextual Binding
//
//	c.When("PhotoController").
//	    Needs(container.KeyOf[Filesystem]()).
//	    Give(func(c *container.Container, _ container.Params) (any, error) { return &S3Filesystem{}, nil })
//
// # Tags
//
//	c.Tag([]string{"CpuReport", "MemReport"}, "reports")
//	reports, err := c.Tagged("reports")  // []any
//
// # Extend / Decorate
//
//	c.Extend("logger", func(instance any, c *container.Container) any {
//	    return &TimestampLogger{Inner: instance.(*Logger)}
//	})
//
// # Service Providers
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(app *container.Container) {
//	    app.Singleton("mailer", container.Ctor(mail.NewSMTP))
//	}
//
//	registry := container.NewProviderRegistry(c)
//	registry.Register(&AppServiceProvider{})
//	registry.Boot()
//
// # Deferred Providers
//
//	type HeavyProvider struct{ container.BaseProvider }
//
//	func (p *HeavyProvider) IsDeferred() bool     { return true }
//	func (p *HeavyProvider) Provides() []string   { return []string{"heavy"} }
//	func (p *HeavyProvider) Register(app *container.Container) {
//	    app.Singleton("heavy", container.Ctor(heavySetup)) // only registered on first app.Make("heavy")
//	}
package container
