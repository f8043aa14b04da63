package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileStore keeps snapshots as files in a directory, one file per key.
// Each file carries its own expiry so no background sweeper is needed.
type FileStore struct {
	dir string
}

// NewFileStore creates a file store rooted at dir, creating the directory if
// needed. An empty dir means [DefaultDir].
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// DefaultDir returns the per-user snapshot directory,
// for example ~/.cache/ontodag/snapshots on Linux.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locate cache dir: %w", err)
	}
	return filepath.Join(base, "ontodag", "snapshots"), nil
}

type fileEntry struct {
	Key       string    `json:"key"`
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Get reads the entry for key. Unreadable and expired entries are removed
// and reported as misses.
func (s *FileStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := s.path(key)

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read snapshot file: %w", err)
	}

	var entry fileEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if !entry.ExpiresAt.IsZero() && time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return entry.Data, true, nil
}

// Set writes the entry atomically through a temporary file.
func (s *FileStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := fileEntry{Key: key, Data: data}
	if ttl > 0 {
		entry.ExpiresAt = time.Now().Add(ttl)
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	path := s.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write snapshot file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write snapshot file: %w", err)
	}
	return nil
}

// Delete removes the entry for key.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove snapshot file: %w", err)
	}
	return nil
}

// Close does nothing for the file store.
func (s *FileStore) Close() error {
	return nil
}

// Dir returns the directory holding the snapshot files.
func (s *FileStore) Dir() string {
	return s.dir
}

// path maps a key to a file. The first two hex characters of the key hash
// become a subdirectory to keep directories small.
func (s *FileStore) path(key string) string {
	hash := Hash([]byte(key))
	return filepath.Join(s.dir, hash[:2], hash[2:]+".json")
}

var _ Store = (*FileStore)(nil)
