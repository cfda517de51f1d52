package providers

import (
	"io"
	"log/slog"
	"os"

	"github.com/km-arc/go-container/framework/config"
	"github.com/km-arc/go-container/framework/container"
	"github.com/km-arc/go-container/framework/logging"
	"github.com/km-arc/go-container/framework/routing"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider loads the application configuration from .env and
// binds it into the container as "config".
//
// Bound abstracts:
//   - "config"                   → *config.Config
//   - "configuration"            → alias of "config"
//   - KeyOf[config.Config]()     → alias of "config", for injection by type
//
// Laravel equivalent:
//
//	// Illuminate\Foundation\Bootstrap\LoadConfiguration
//	$app->singleton('config', fn() => new Repository($items));
type ConfigServiceProvider struct {
	container.BaseProvider
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(app *container.Container) {
	envFiles := p.EnvFiles
	app.Singleton("config", container.Closure(func(*container.Container, container.Params) (any, error) {
		return config.Load(envFiles...)
	}))
	app.Alias("configuration", "config")
	app.Alias(container.KeyOf[config.Config](), "config")
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider builds the application logger from the "log"
// section of the configuration.
//
// Bound abstracts:
//   - "log"                      → *slog.Logger
//   - KeyOf[slog.Logger]()       → alias of "log"
//
// Laravel equivalent:
//
//	// Illuminate\Log\LogServiceProvider
//	$app->singleton('log', fn($app) => new LogManager($app));
type LoggingServiceProvider struct {
	container.BaseProvider
	Output io.Writer // default: os.Stderr
}

func (p *LoggingServiceProvider) Register(app *container.Container) {
	out := p.Output
	if out == nil {
		out = os.Stderr
	}
	app.Singleton("log", container.Ctor(func(cfg *config.Config) *slog.Logger {
		return logging.New(cfg.Log.Level, cfg.Log.Format, out)
	}, container.Arg("config")))
	app.Alias(container.KeyOf[slog.Logger](), "log")
}

// Boot logs the loaded environment once every provider is registered.
func (p *LoggingServiceProvider) Boot(app *container.Container) {
	cfg, err := container.Resolve[*config.Config](app, "config")
	if err != nil {
		return
	}
	log := container.MustResolve[*slog.Logger](app, "log")
	log.Debug("application booted", "app", cfg.App.Name, "env", cfg.App.Env)
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router.
//
// Bound abstracts:
//   - "router"                   → *routing.Router
//   - KeyOf[routing.Router]()    → alias of "router"
//
// Laravel equivalent:
//
//	// Illuminate\Routing\RoutingServiceProvider
//	$app->singleton('router', fn($app) => new Router($app['events'], $app));
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *container.Container) {
	app.Singleton("router", container.Ctor(routing.New, container.Arg("container")))
	app.Alias(container.KeyOf[routing.Router](), "router")
}
