package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workflow.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
listen = ":8080"
workspace = "team"

[store]
backend = "badger"
dir = "/var/lib/workflow"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, "team", cfg.Workspace)
	assert.Equal(t, BackendBadger, cfg.Store.Backend)
	assert.Equal(t, "/var/lib/workflow", cfg.Store.Dir)
	// Untouched keys keep their defaults.
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workflow.toml")
	require.NoError(t, os.WriteFile(path, []byte("[store]\nbackend = \"file\"\n"), 0o644))

	t.Setenv("WORKFLOW_BACKEND", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/workflow")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendPostgres, cfg.Store.Backend)
	assert.Equal(t, "postgres://localhost/workflow", cfg.Store.DatabaseURL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"memory", func(c *Config) { c.Store.Backend = BackendMemory }, true},
		{"unknown backend", func(c *Config) { c.Store.Backend = "sqlite" }, false},
		{"file without dir", func(c *Config) { c.Store.Dir = "" }, false},
		{"postgres without url", func(c *Config) { c.Store.Backend = BackendPostgres }, false},
		{"redis with addr", func(c *Config) {
			c.Store.Backend = BackendRedis
			c.Store.RedisAddr = "localhost:6379"
		}, true},
		{"redis without addr", func(c *Config) { c.Store.Backend = BackendRedis }, false},
		{"mongo without uri", func(c *Config) { c.Store.Backend = BackendMongo }, false},
		{"empty workspace", func(c *Config) { c.Workspace = "" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestApplyEnvIgnoresEmpty(t *testing.T) {
	cfg := Default()
	cfg.applyEnv(func(name string) (string, bool) {
		if name == "WORKFLOW_LISTEN" {
			return "", true
		}
		return "", false
	})
	assert.Equal(t, ":3000", cfg.Listen)
}
