package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the typed application configuration, bound in the container as
// "config".
type Config struct {
	App AppConfig
	Log LogConfig
}

type AppConfig struct {
	Name  string
	Env   string // local | production | testing
	Debug bool
	URL   string
	Port  string
}

// Addr is the listen address for the HTTP server.
func (a AppConfig) Addr() string { return ":" + a.Port }

type LogConfig struct {
	Level  string // debug | info | warn | error
	Format string // text | json
}

// Load reads the given env files (".env" when none are given) and populates a
// Config from the environment. Variables already set in the process win over
// file values. A missing default .env is not an error; a missing named file is.
//
//	cfg, err := config.Load()
//	cfg, err := config.Load(".env", ".env.local")
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load .env: %w", err)
		}
	} else if err := godotenv.Load(envFiles...); err != nil {
		return nil, fmt.Errorf("config: load %v: %w", envFiles, err)
	}

	debug := envBool("APP_DEBUG", true)
	level := "info"
	if debug {
		level = "debug"
	}

	return &Config{
		App: AppConfig{
			Name:  env("APP_NAME", "GoContainer"),
			Env:   env("APP_ENV", "local"),
			Debug: debug,
			URL:   env("APP_URL", "http://localhost"),
			Port:  env("APP_PORT", "8000"),
		},
		Log: LogConfig{
			Level:  env("LOG_LEVEL", level),
			Format: env("LOG_FORMAT", "text"),
		},
	}, nil
}

// Get returns a raw env value, falling back to defaultVal.
func Get(key, defaultVal string) string {
	return env(key, defaultVal)
}

// GetInt returns an int env value.
func GetInt(key string, defaultVal int) int {
	i, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultVal
	}
	return i
}

// GetBool returns a bool env value.
func GetBool(key string, defaultVal bool) bool {
	return envBool(key, defaultVal)
}

// ── helpers ─────────────────────────────────────────────────────────────────

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return b
}
