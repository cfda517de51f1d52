package config_test

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-container/framework/config"
)

var appKeys = []string{"APP_NAME", "APP_ENV", "APP_DEBUG", "APP_URL", "APP_PORT", "LOG_LEVEL", "LOG_FORMAT"}

// isolateEnv unsets keys for the duration of the test, restoring them after.
// Load writes file values into the process env, so every test that loads a
// file must isolate the keys it touches.
func isolateEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

// ── Load ─────────────────────────────────────────────────────────────────────

func TestLoad_Defaults(t *testing.T) {
	isolateEnv(t, appKeys...)

	cfg, err := config.Load()
	require.NoError(t, err)

	want := &config.Config{
		App: config.AppConfig{Name: "GoContainer", Env: "local", Debug: true, URL: "http://localhost", Port: "8000"},
		Log: config.LogConfig{Level: "debug", Format: "text"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, ":8000", cfg.App.Addr())
}

func TestLoad_FromFile(t *testing.T) {
	isolateEnv(t, appKeys...)

	cfg, err := config.Load("testdata/app.env")
	require.NoError(t, err)

	assert.Equal(t, "FromFile", cfg.App.Name)
	assert.Equal(t, "testing", cfg.App.Env)
	assert.False(t, cfg.App.Debug)
	assert.Equal(t, "9100", cfg.App.Port)
	assert.Equal(t, "info", cfg.Log.Level, "non-debug apps log at info")
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	isolateEnv(t, appKeys...)
	t.Setenv("APP_NAME", "FromEnv")

	cfg, err := config.Load("testdata/app.env")
	require.NoError(t, err)
	assert.Equal(t, "FromEnv", cfg.App.Name)
	assert.Equal(t, "9100", cfg.App.Port)
}

func TestLoad_MissingNamedFileFails(t *testing.T) {
	_, err := config.Load("testdata/missing.env")
	assert.Error(t, err)
}

func TestLoad_AppDebug(t *testing.T) {
	for val, want := range map[string]bool{"true": true, "false": false, "garbage": true} {
		t.Run(val, func(t *testing.T) {
			isolateEnv(t, appKeys...)
			t.Setenv("APP_DEBUG", val)

			cfg, err := config.Load()
			require.NoError(t, err)
			assert.Equal(t, want, cfg.App.Debug)
		})
	}
}

// ── Get / GetInt / GetBool ───────────────────────────────────────────────────

func TestGet(t *testing.T) {
	t.Setenv("CUSTOM_KEY", "hello")
	assert.Equal(t, "hello", config.Get("CUSTOM_KEY", "default"))
	assert.Equal(t, "fallback", config.Get("MISSING_KEY_FOR_TEST", "fallback"))
}

func TestGetInt(t *testing.T) {
	t.Setenv("SOME_INT", "42")
	assert.Equal(t, 42, config.GetInt("SOME_INT", 0))

	t.Setenv("SOME_INT", "notanint")
	assert.Equal(t, 99, config.GetInt("SOME_INT", 99))
}

func TestGetBool(t *testing.T) {
	for _, val := range []string{"true", "1", "True", "TRUE"} {
		t.Setenv("BOOL_KEY", val)
		assert.True(t, config.GetBool("BOOL_KEY", false), val)
	}

	t.Setenv("BOOL_KEY", "false")
	assert.False(t, config.GetBool("BOOL_KEY", true))

	t.Setenv("BOOL_KEY", "notabool")
	assert.True(t, config.GetBool("BOOL_KEY", true))
}
