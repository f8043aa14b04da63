package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/matzehuels/ontodag/pkg/errors"
	"github.com/matzehuels/ontodag/pkg/observability"
)

// Store persists opaque snapshot bytes under string keys.
//
// Implementations must be safe for concurrent use. A ttl of zero means the
// entry never expires.
type Store interface {
	// Get returns the stored bytes and true, or nil and false on a miss.
	// Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key, replacing any previous value.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases connections and file handles.
	Close() error
}

// Backend names accepted by [Open].
const (
	BackendNull   = "null"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendBadger = "badger"
	BackendMongo  = "mongo"
)

// Backends lists every backend name in the order they are documented.
var Backends = []string{BackendNull, BackendFile, BackendRedis, BackendBadger, BackendMongo}

// Config selects and configures a backend for [Open].
type Config struct {
	Backend string

	// Dir is the directory of the file and badger backends.
	Dir string

	// InMemory runs badger without touching disk.
	InMemory bool

	// URL is the redis URL or the mongo connection URI.
	URL string

	// Database and Collection name the mongo collection holding snapshots.
	Database   string
	Collection string
}

// Open creates the configured backend and wraps it so that every access is
// reported to [observability.Store]. An empty backend means "null".
func Open(ctx context.Context, cfg Config) (Store, error) {
	var (
		s   Store
		err error
	)
	backend := cfg.Backend
	switch backend {
	case "", BackendNull:
		backend = BackendNull
		s = NewNullStore()
	case BackendFile:
		s, err = NewFileStore(cfg.Dir)
	case BackendRedis:
		s, err = NewRedisStore(ctx, RedisOptions{URL: cfg.URL})
	case BackendBadger:
		s, err = NewBadgerStore(BadgerOptions{Dir: cfg.Dir, InMemory: cfg.InMemory})
	case BackendMongo:
		s, err = NewMongoStore(ctx, MongoOptions{URI: cfg.URL, Database: cfg.Database, Collection: cfg.Collection})
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s store", backend)
	}
	return Instrument(s, backend), nil
}

// Instrument wraps s so that hits, misses and writes are reported to the
// registered store hooks under the given backend label.
func Instrument(s Store, backend string) Store {
	return &instrumented{Store: s, backend: backend}
}

type instrumented struct {
	Store
	backend string
}

func (s *instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := s.Store.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if ok {
		observability.Store().OnStoreHit(ctx, s.backend)
	} else {
		observability.Store().OnStoreMiss(ctx, s.backend)
	}
	return data, ok, nil
}

func (s *instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := s.Store.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Store().OnStoreSet(ctx, s.backend, len(data))
	return nil
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
