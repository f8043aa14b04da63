package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/ontodag/pkg/errors"
	"github.com/matzehuels/ontodag/pkg/store"
)

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func TestParse_OverridesDefaults(t *testing.T) {
	cfg, err := Parse(`
[server]
addr = "127.0.0.1:9000"
optimized = true

[session]
ttl = "2h"

[store]
backend = "badger"

[store.badger]
in_memory = true

[log]
level = "debug"
`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := Default()
	want.Server.Addr = "127.0.0.1:9000"
	want.Server.Optimized = true
	want.Session.TTL = 2 * time.Hour
	want.Store.Backend = store.BackendBadger
	want.Store.Badger.InMemory = true
	want.Log.Level = "debug"

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", "[server"},
		{"unknown key", "[server]\nport = 80\n"},
		{"unknown backend", "[store]\nbackend = \"cassandra\"\n"},
		{"bad level", "[log]\nlevel = \"loud\"\n"},
		{"negative ttl", "[session]\nttl = \"-1h\"\n"},
		{"empty addr", "[server]\naddr = \"\"\n"},
		{"no cleanup interval", "[session]\nttl = \"1h\"\ncleanup_interval = \"0s\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Parse() error = %v, want %s", err, errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ontodag.toml")
	if err := os.WriteFile(path, []byte("[store]\nbackend = \"file\"\n[store.file]\ndir = \"/tmp/snaps\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := store.Config{Backend: store.BackendFile, Dir: "/tmp/snaps"}
	if got := cfg.StoreConfig(); got != want {
		t.Errorf("StoreConfig() = %+v, want %+v", got, want)
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load() error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestStoreConfig(t *testing.T) {
	cfg := Default()

	cfg.Store.Backend = store.BackendRedis
	if got := cfg.StoreConfig(); got.URL != "redis://localhost:6379/0" {
		t.Errorf("redis StoreConfig().URL = %q", got.URL)
	}

	cfg.Store.Backend = store.BackendMongo
	got := cfg.StoreConfig()
	if got.URL != "mongodb://localhost:27017" || got.Database != "ontodag" || got.Collection != "snapshots" {
		t.Errorf("mongo StoreConfig() = %+v", got)
	}

	cfg.Store.Backend = store.BackendNull
	if got := cfg.StoreConfig(); got != (store.Config{Backend: store.BackendNull}) {
		t.Errorf("null StoreConfig() = %+v", got)
	}
}
