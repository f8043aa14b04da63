// Package session holds live ontologies for concurrent clients.
//
// An [onto.Ontology] is not safe for concurrent use. The [Manager] gives
// every ontology its own session, keyed by a random id, and guards it with a
// read/write lock: any number of readers may run at once, a mutation runs
// alone. Callers never touch an ontology outside [Manager.View] or
// [Manager.Update].
//
// # Lifecycle
//
// Sessions are created empty or from an existing ontology, expire after a
// configurable idle time (see [Manager.Cleanup] and [Manager.Run]) and can
// be saved to and restored from a [store.Store]:
//
//	m := session.NewManager(session.Options{Store: s, TTL: time.Hour})
//	id, _ := m.Create(ctx, nil)
//
//	err := m.Update(ctx, id, "put", func(o *onto.Ontology) error {
//	    return o.Put("Dog", []string{"Mammal"})
//	})
//
//	err = m.Persist(ctx, id)
//
// Every View and Update is reported to [observability.Ontology] under the
// operation name the caller passes.
package session

import (
	"context"
	"io"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/ontodag/pkg/errors"
	"github.com/matzehuels/ontodag/pkg/observability"
	"github.com/matzehuels/ontodag/pkg/onto"
	"github.com/matzehuels/ontodag/pkg/store"
)

// Default durations.
const (
	// DefaultTTL is how long an idle session survives.
	DefaultTTL = 24 * time.Hour

	// DefaultSnapshotTTL is how long a persisted snapshot is kept.
	DefaultSnapshotTTL = 7 * 24 * time.Hour
)

// Session is one live ontology.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.RWMutex
	o        *onto.Ontology
	lastUsed atomic.Int64 // unix nanoseconds
}

func (s *Session) touch(now time.Time) { s.lastUsed.Store(now.UnixNano()) }

// LastUsed reports when the session was last read or written.
func (s *Session) LastUsed() time.Time { return time.Unix(0, s.lastUsed.Load()) }

// Options configures a [Manager].
type Options struct {
	// Store receives snapshots. Nil means a [store.NullStore].
	Store store.Store

	// TTL is the idle time after which Cleanup drops a session.
	// Zero means sessions never expire.
	TTL time.Duration

	// SnapshotTTL is passed to the store on Persist. Zero keeps snapshots
	// forever.
	SnapshotTTL time.Duration

	// Logger defaults to a logger that discards everything.
	Logger *log.Logger
}

// Manager owns every live session.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	store       store.Store
	ttl         time.Duration
	snapshotTTL time.Duration
	logger      *log.Logger
	now         func() time.Time
}

// NewManager creates an empty manager.
func NewManager(opts Options) *Manager {
	if opts.Store == nil {
		opts.Store = store.NewNullStore()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Manager{
		sessions:    make(map[string]*Session),
		store:       opts.Store,
		ttl:         opts.TTL,
		snapshotTTL: opts.SnapshotTTL,
		logger:      opts.Logger,
		now:         time.Now,
	}
}

// Create starts a session holding o, or a new empty ontology when o is nil,
// and returns its id. The manager takes ownership of o.
func (m *Manager) Create(ctx context.Context, o *onto.Ontology) (string, error) {
	if o == nil {
		o = onto.New()
	}
	id := uuid.NewString()
	m.add(ctx, id, o)
	m.logger.Debug("session created", "id", id, "categories", o.Len())
	return id, nil
}

func (m *Manager) add(ctx context.Context, id string, o *onto.Ontology) *Session {
	now := m.now()
	s := &Session{ID: id, CreatedAt: now, o: o}
	s.touch(now)

	m.mu.Lock()
	m.sessions[id] = s
	live := len(m.sessions)
	m.mu.Unlock()

	observability.Ontology().OnSessions(ctx, live)
	return s
}

// Delete drops a session. Its snapshot, if any, stays in the store.
func (m *Manager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	live := len(m.sessions)
	m.mu.Unlock()

	if !ok {
		return notFound(id)
	}
	observability.Ontology().OnSessions(ctx, live)
	m.logger.Debug("session deleted", "id", id)
	return nil
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// IDs returns the sorted ids of every live session.
func (m *Manager) IDs() []string {
	m.mu.RLock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.RUnlock()
	slices.Sort(ids)
	return ids
}

func (m *Manager) get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, notFound(id)
	}
	return s, nil
}

// View runs fn with shared access to the session's ontology. fn must not
// modify o or keep it after returning.
func (m *Manager) View(ctx context.Context, id, op string, fn func(o *onto.Ontology) error) error {
	s, err := m.get(id)
	if err != nil {
		return err
	}
	s.touch(m.now())

	start := time.Now()
	s.mu.RLock()
	err = fn(s.o)
	s.mu.RUnlock()
	observability.Ontology().OnOperation(ctx, op, time.Since(start), err)
	return err
}

// Update runs fn with exclusive access to the session's ontology. The
// ontology operations leave o unchanged when they fail, so an fn that
// performs a single operation is all-or-nothing.
func (m *Manager) Update(ctx context.Context, id, op string, fn func(o *onto.Ontology) error) error {
	s, err := m.get(id)
	if err != nil {
		return err
	}
	s.touch(m.now())

	start := time.Now()
	s.mu.Lock()
	err = fn(s.o)
	s.mu.Unlock()
	observability.Ontology().OnOperation(ctx, op, time.Since(start), err)
	if err != nil {
		m.logger.Debug("update failed", "id", id, "op", op, "err", err)
	}
	return err
}

// Replace swaps the session's ontology for o under the write lock. The
// manager takes ownership of o.
func (m *Manager) Replace(ctx context.Context, id string, o *onto.Ontology) error {
	s, err := m.get(id)
	if err != nil {
		return err
	}
	s.touch(m.now())

	s.mu.Lock()
	s.o = o
	s.mu.Unlock()
	return nil
}

// Snapshot returns a deep copy of the session's ontology that the caller
// may use freely.
func (m *Manager) Snapshot(ctx context.Context, id string) (*onto.Ontology, error) {
	var c *onto.Ontology
	err := m.View(ctx, id, "snapshot", func(o *onto.Ontology) error {
		c = o.Clone()
		return nil
	})
	return c, err
}

// Cleanup drops every session idle for longer than the TTL as of now and
// returns how many were dropped. It does nothing when the TTL is zero.
func (m *Manager) Cleanup(ctx context.Context, now time.Time) int {
	if m.ttl <= 0 {
		return 0
	}
	cutoff := now.Add(-m.ttl)

	m.mu.Lock()
	var dropped []string
	for id, s := range m.sessions {
		if s.LastUsed().Before(cutoff) {
			delete(m.sessions, id)
			dropped = append(dropped, id)
		}
	}
	live := len(m.sessions)
	m.mu.Unlock()

	if len(dropped) > 0 {
		observability.Ontology().OnSessions(ctx, live)
		m.logger.Info("expired idle sessions", "count", len(dropped), "live", live)
	}
	return len(dropped)
}

// Run calls Cleanup every interval until ctx is done. It always returns nil
// so that it can run inside an errgroup next to the HTTP server.
func (m *Manager) Run(ctx context.Context, interval time.Duration) error {
	if m.ttl <= 0 || interval <= 0 {
		<-ctx.Done()
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case t := <-ticker.C:
			m.Cleanup(ctx, t)
		}
	}
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeSessionNotFound, "session %q not found", id)
}
