package providers_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-container/framework/config"
	"github.com/km-arc/go-container/framework/container"
	"github.com/km-arc/go-container/framework/providers"
	"github.com/km-arc/go-container/framework/routing"
)

func bootFramework(t *testing.T, out *bytes.Buffer) *container.Container {
	t.Helper()
	t.Setenv("APP_NAME", "ProviderTest")
	t.Setenv("APP_ENV", "testing")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")

	c := container.New()
	reg := container.NewProviderRegistry(c)
	reg.Register(&providers.ConfigServiceProvider{})
	reg.Register(&providers.LoggingServiceProvider{Output: out})
	reg.Register(&providers.RoutingServiceProvider{})
	reg.Boot()
	return c
}

func TestConfigServiceProvider_BindsConfigUnderEveryName(t *testing.T) {
	c := bootFramework(t, &bytes.Buffer{})

	byName, err := container.Resolve[*config.Config](c, "config")
	require.NoError(t, err)
	assert.Equal(t, "ProviderTest", byName.App.Name)

	byAlias := container.MustResolve[*config.Config](c, "configuration")
	byType, err := container.ResolveType[*config.Config](c)
	require.NoError(t, err)

	assert.Same(t, byName, byAlias)
	assert.Same(t, byName, byType)
}

func TestConfigServiceProvider_MissingEnvFileFails(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	reg.Register(&providers.ConfigServiceProvider{EnvFiles: []string{"testdata/nope.env"}})

	_, err := c.Make("config")
	assert.Error(t, err)
}

func TestLoggingServiceProvider_UsesConfiguredLogger(t *testing.T) {
	var out bytes.Buffer
	c := bootFramework(t, &out)

	log, err := container.ResolveType[*slog.Logger](c)
	require.NoError(t, err)
	assert.Same(t, container.MustResolve[*slog.Logger](c, "log"), log)

	assert.Contains(t, out.String(), "application booted")
	assert.Contains(t, out.String(), "app=ProviderTest")
}

func TestRoutingServiceProvider_RouterDispatchesThroughContainer(t *testing.T) {
	var out bytes.Buffer
	c := bootFramework(t, &out)

	router, err := container.ResolveType[*routing.Router](c)
	require.NoError(t, err)
	assert.Same(t, container.MustResolve[*routing.Router](c, "router"), router)

	router.Get("/env", func(cfg *config.Config) string { return cfg.App.Env })

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/env", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"data":"testing"}`, rr.Body.String())
	assert.Contains(t, out.String(), "http request", "router logs through the bound logger")
}
