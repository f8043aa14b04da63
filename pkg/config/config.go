// Package config loads the ontodag server configuration from TOML.
//
// Every field has a default (see [Default]); a file only needs to name what
// it changes. Durations are written as Go duration strings:
//
//	[server]
//	addr = ":8080"
//	optimized = true
//
//	[session]
//	ttl = "2h"
//
//	[store]
//	backend = "redis"
//	ttl = "168h"
//
//	[store.redis]
//	url = "redis://localhost:6379/0"
//
// Command-line flags override file values after loading.
package config

import (
	"os"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/ontodag/pkg/errors"
	"github.com/matzehuels/ontodag/pkg/store"
)

// Config is the complete server configuration.
type Config struct {
	Server  Server  `toml:"server"`
	Session Session `toml:"session"`
	Store   Store   `toml:"store"`
	Log     Log     `toml:"log"`
}

// Server configures the HTTP listener.
type Server struct {
	Addr         string        `toml:"addr"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout"`

	// Optimized makes optimized insertion the default for put requests that
	// do not say otherwise.
	Optimized bool `toml:"optimized"`
}

// Session configures the live-session janitor.
type Session struct {
	// TTL is how long an idle session survives. Zero disables expiry.
	TTL             time.Duration `toml:"ttl"`
	CleanupInterval time.Duration `toml:"cleanup_interval"`
}

// Store selects the snapshot backend.
type Store struct {
	Backend string        `toml:"backend"`
	TTL     time.Duration `toml:"ttl"`

	File   FileStore   `toml:"file"`
	Redis  RedisStore  `toml:"redis"`
	Badger BadgerStore `toml:"badger"`
	Mongo  MongoStore  `toml:"mongo"`
}

type FileStore struct {
	Dir string `toml:"dir"`
}

type RedisStore struct {
	URL string `toml:"url"`
}

type BadgerStore struct {
	Dir      string `toml:"dir"`
	InMemory bool   `toml:"in_memory"`
}

type MongoStore struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Log configures the logger.
type Log struct {
	Level string `toml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: Server{
			Addr:         ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Session: Session{
			TTL:             24 * time.Hour,
			CleanupInterval: 5 * time.Minute,
		},
		Store: Store{
			Backend: store.BackendNull,
			TTL:     7 * 24 * time.Hour,
			Redis:   RedisStore{URL: "redis://localhost:6379/0"},
			Mongo:   MongoStore{URI: "mongodb://localhost:27017", Database: "ontodag", Collection: "snapshots"},
		},
		Log: Log{Level: "info"},
	}
}

// Load reads path over the defaults and validates the result. Keys the
// file does not know are rejected so that typos do not go unnoticed.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInternal, err, "read config %s", path)
	}
	if err := cfg.decode(string(data)); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse reads TOML source over the defaults and validates the result.
func Parse(src string) (Config, error) {
	cfg := Default()
	if err := cfg.decode(src); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) decode(src string) error {
	md, err := toml.Decode(src, c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	return c.Validate()
}

// Validate checks value ranges and names.
func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "server.addr must not be empty")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server timeouts must not be negative")
	}
	if c.Session.TTL < 0 || c.Store.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "ttl must not be negative")
	}
	if c.Session.TTL > 0 && c.Session.CleanupInterval <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "session.cleanup_interval must be positive when session.ttl is set")
	}
	if !slices.Contains(store.Backends, c.Store.Backend) {
		return errors.New(errors.ErrCodeInvalidConfig, "store.backend %q is not one of %s",
			c.Store.Backend, strings.Join(store.Backends, ", "))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "log.level")
	}
	return nil
}

// StoreConfig converts the [store] section into the form [store.Open] takes.
func (c Config) StoreConfig() store.Config {
	cfg := store.Config{Backend: c.Store.Backend}
	switch c.Store.Backend {
	case store.BackendFile:
		cfg.Dir = c.Store.File.Dir
	case store.BackendRedis:
		cfg.URL = c.Store.Redis.URL
	case store.BackendBadger:
		cfg.Dir = c.Store.Badger.Dir
		cfg.InMemory = c.Store.Badger.InMemory
	case store.BackendMongo:
		cfg.URL = c.Store.Mongo.URI
		cfg.Database = c.Store.Mongo.Database
		cfg.Collection = c.Store.Mongo.Collection
	}
	return cfg
}
