package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// BadgerOptions configures the embedded Badger database.
type BadgerOptions struct {
	// Dir holds the database files. Ignored when InMemory is set.
	Dir string

	// InMemory keeps everything in RAM; data is lost on Close.
	InMemory bool
}

// BadgerStore keeps snapshots in an embedded Badger key-value database.
// Expiry uses Badger's per-entry TTL.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens (or creates) the database. An empty Dir without
// InMemory means a sibling of [DefaultDir] with a "-badger" suffix.
func NewBadgerStore(opts BadgerOptions) (*BadgerStore, error) {
	var badgerOpts badger.Options
	if opts.InMemory {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		dir := opts.Dir
		if dir == "" {
			base, err := DefaultDir()
			if err != nil {
				return nil, err
			}
			dir = base + "-badger"
		}
		badgerOpts = badger.DefaultOptions(dir)
	}

	// Snapshots are small; keep the memory footprint low.
	badgerOpts = badgerOpts.
		WithLogger(nil).
		WithMemTableSize(16 << 20).
		WithValueLogFileSize(64 << 20).
		WithNumMemtables(2).
		WithBlockCacheSize(16 << 20)

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// Get reads key inside a read-only transaction. Expired entries are misses.
func (s *BadgerStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("badger get %s: %w", key, err)
	}
	return data, true, nil
}

// Set writes key, with a TTL when ttl is positive.
func (s *BadgerStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(key), data)
		if ttl > 0 {
			e = e.WithTTL(ttl)
		}
		return txn.SetEntry(e)
	})
	if err != nil {
		return fmt.Errorf("badger set %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Badger treats a missing key as deleted.
func (s *BadgerStore) Delete(ctx context.Context, key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("badger delete %s: %w", key, err)
	}
	return nil
}

// Close flushes and closes the database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

var _ Store = (*BadgerStore)(nil)
