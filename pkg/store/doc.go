// Package store persists ontology snapshots.
//
// A snapshot is the JSON interchange document of an ontology (see package
// io); this package treats it as opaque bytes under a string key. The
// session manager writes snapshots on persist and reads them back on
// restore.
//
// # Backends
//
//   - null: discards everything (the default)
//   - file: one JSON file per key under a directory
//   - redis: Redis strings with native expiry
//   - badger: embedded Badger database, on disk or in memory
//   - mongo: one document per key with a TTL index
//
// [Open] builds a backend from a [Config] and instruments it for the
// observability hooks:
//
//	s, err := store.Open(ctx, store.Config{Backend: store.BackendRedis, URL: "redis://localhost:6379/0"})
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	err = s.Set(ctx, key, data, time.Hour)
//	data, ok, err := s.Get(ctx, key)
//
// Network backends ping the server on creation and retry transient failures
// with [RetryWithBackoff].
package store
