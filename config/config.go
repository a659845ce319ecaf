// Package config loads workflow settings from a TOML file and the
// environment. Environment variables win over the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/BurntSushi/toml"
)

// DefaultPath is read when no --config flag is given. It may be absent.
const DefaultPath = "workflow.toml"

// Backend names accepted in Store.Backend.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendBadger   = "badger"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMongo    = "mongo"
)

var backends = []string{BackendMemory, BackendFile, BackendBadger, BackendPostgres, BackendRedis, BackendMongo}

// Config is the top-level configuration.
type Config struct {
	Listen    string `toml:"listen"`
	LogLevel  string `toml:"log_level"`
	Workspace string `toml:"workspace"`
	Store     Store  `toml:"store"`
}

// Store selects and configures the persistence backend.
type Store struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	DatabaseURL   string `toml:"database_url"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Listen:    ":3000",
		LogLevel:  "info",
		Workspace: "default",
		Store: Store{
			Backend:       BackendFile,
			Dir:           ".workflow",
			MongoDatabase: "workflow",
		},
	}
}

// Load reads path on top of Default, applies environment overrides and
// validates the result. A missing file at DefaultPath is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	cfg.applyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	set := func(dst *string, name string) {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}
	set(&c.Listen, "WORKFLOW_LISTEN")
	set(&c.LogLevel, "WORKFLOW_LOG_LEVEL")
	set(&c.Workspace, "WORKFLOW_WORKSPACE")
	set(&c.Store.Backend, "WORKFLOW_BACKEND")
	set(&c.Store.Dir, "WORKFLOW_DIR")
	set(&c.Store.DatabaseURL, "DATABASE_URL")
	set(&c.Store.RedisAddr, "REDIS_ADDR")
	set(&c.Store.MongoURI, "MONGO_URI")
}

// Validate checks that the selected backend has what it needs.
func (c Config) Validate() error {
	if !slices.Contains(backends, c.Store.Backend) {
		return fmt.Errorf("config: unknown backend %q (want one of %v)", c.Store.Backend, backends)
	}
	if c.Workspace == "" {
		return errors.New("config: workspace is empty")
	}
	switch c.Store.Backend {
	case BackendFile, BackendBadger:
		if c.Store.Dir == "" {
			return fmt.Errorf("config: %s backend needs store.dir", c.Store.Backend)
		}
	case BackendPostgres:
		if c.Store.DatabaseURL == "" {
			return errors.New("config: postgres backend needs DATABASE_URL")
		}
	case BackendRedis:
		if c.Store.RedisAddr == "" {
			return errors.New("config: redis backend needs REDIS_ADDR")
		}
	case BackendMongo:
		if c.Store.MongoURI == "" || c.Store.MongoDatabase == "" {
			return errors.New("config: mongo backend needs MONGO_URI and store.mongo_database")
		}
	}
	return nil
}
