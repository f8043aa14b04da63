package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/ontodag/pkg/errors"
	"github.com/matzehuels/ontodag/pkg/observability"
	"github.com/matzehuels/ontodag/pkg/onto"
	"github.com/matzehuels/ontodag/pkg/store"
)

func put(name string, supers ...string) func(*onto.Ontology) error {
	return func(o *onto.Ontology) error { return o.Put(name, supers) }
}

func newAnimals(t *testing.T, m *Manager) string {
	t.Helper()
	ctx := context.Background()
	id, err := m.Create(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, m.Update(ctx, id, "put", put("Animal")))
	require.NoError(t, m.Update(ctx, id, "put", put("Mammal", "Animal")))
	require.NoError(t, m.Update(ctx, id, "put", put("Dog", "Mammal")))
	return id
}

func TestManager_Lifecycle(t *testing.T) {
	ctx := context.Background()
	m := NewManager(Options{})

	id := newAnimals(t, m)
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, []string{id}, m.IDs())

	var got []string
	require.NoError(t, m.View(ctx, id, "get", func(o *onto.Ontology) error {
		var err error
		got, err = o.Get("Animal")
		return err
	}))
	assert.Equal(t, []string{"Dog", "Mammal"}, got)

	require.NoError(t, m.Delete(ctx, id))
	assert.Equal(t, 0, m.Len())

	err := m.View(ctx, id, "get", func(*onto.Ontology) error { return nil })
	assert.True(t, errors.Is(err, errors.ErrCodeSessionNotFound), "error = %v", err)
	err = m.Delete(ctx, id)
	assert.True(t, errors.Is(err, errors.ErrCodeSessionNotFound), "error = %v", err)
}

func TestManager_CreateFromOntology(t *testing.T) {
	ctx := context.Background()
	m := NewManager(Options{})

	o := onto.New()
	require.NoError(t, o.Put("A", nil))
	id, err := m.Create(ctx, o)
	require.NoError(t, err)

	require.NoError(t, m.View(ctx, id, "has", func(o *onto.Ontology) error {
		assert.True(t, o.Has("A"))
		return nil
	}))
}

func TestManager_UpdateErrorLeavesOntology(t *testing.T) {
	ctx := context.Background()
	m := NewManager(Options{})
	id := newAnimals(t, m)

	before, err := m.Snapshot(ctx, id)
	require.NoError(t, err)

	err = m.Update(ctx, id, "put", put("Cat", "Nonexistent"))
	assert.True(t, errors.Is(err, errors.ErrCodeUnknownCategory), "error = %v", err)

	after, err := m.Snapshot(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, before.Edges(), after.Edges())
}

func TestManager_SnapshotIsIndependent(t *testing.T) {
	ctx := context.Background()
	m := NewManager(Options{})
	id := newAnimals(t, m)

	snap, err := m.Snapshot(ctx, id)
	require.NoError(t, err)
	require.NoError(t, snap.Remove("Mammal"))

	require.NoError(t, m.View(ctx, id, "has", func(o *onto.Ontology) error {
		assert.True(t, o.Has("Mammal"), "mutating a snapshot changed the session")
		return nil
	}))
}

func TestManager_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	m := NewManager(Options{})
	id := newAnimals(t, m)

	const writers, readers = 8, 8
	var wg sync.WaitGroup
	for w := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 25 {
				err := m.Update(ctx, id, "put", put(fmt.Sprintf("Breed-%d-%d", w, i), "Dog"))
				assert.NoError(t, err)
			}
		}()
	}
	for range readers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 25 {
				err := m.View(ctx, id, "validate", func(o *onto.Ontology) error { return o.Validate() })
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	require.NoError(t, m.View(ctx, id, "count", func(o *onto.Ontology) error {
		assert.Equal(t, writers*25, o.DescendantCount("Dog"))
		assert.Equal(t, writers*25+2, o.DescendantCount("Animal"))
		return nil
	}))
}

func TestManager_Cleanup(t *testing.T) {
	ctx := context.Background()
	m := NewManager(Options{TTL: time.Hour})
	t0 := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return t0 }

	idle, err := m.Create(ctx, nil)
	require.NoError(t, err)

	m.now = func() time.Time { return t0.Add(50 * time.Minute) }
	busy, err := m.Create(ctx, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, m.Cleanup(ctx, t0.Add(30*time.Minute)))
	assert.Equal(t, 1, m.Cleanup(ctx, t0.Add(61*time.Minute)))
	assert.Equal(t, []string{busy}, m.IDs())

	err = m.View(ctx, idle, "get", func(*onto.Ontology) error { return nil })
	assert.True(t, errors.Is(err, errors.ErrCodeSessionNotFound))
}

func TestManager_CleanupWithoutTTL(t *testing.T) {
	ctx := context.Background()
	m := NewManager(Options{})
	_, err := m.Create(ctx, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, m.Cleanup(ctx, time.Now().Add(1000*time.Hour)))
	assert.Equal(t, 1, m.Len())
}

func TestManager_RunStopsOnCancel(t *testing.T) {
	m := NewManager(Options{TTL: time.Minute})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- m.Run(ctx, time.Millisecond) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestManager_PersistRestore(t *testing.T) {
	ctx := context.Background()
	fs, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	m := NewManager(Options{Store: fs, SnapshotTTL: time.Hour})
	id := newAnimals(t, m)

	want, err := m.Snapshot(ctx, id)
	require.NoError(t, err)
	require.NoError(t, m.Persist(ctx, id))

	// Restore over a live session replaces its ontology.
	require.NoError(t, m.Update(ctx, id, "remove", func(o *onto.Ontology) error { return o.Remove("Dog") }))
	require.NoError(t, m.Restore(ctx, id))
	got, err := m.Snapshot(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, want.Edges(), got.Edges())

	// Restore after deletion recreates the session under the same id.
	require.NoError(t, m.Delete(ctx, id))
	require.NoError(t, m.Restore(ctx, id))
	got, err = m.Snapshot(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, want.Edges(), got.Edges())
	assert.Equal(t, 3, got.DescendantCount(onto.Root))
	assert.NoError(t, got.Validate())
}

func TestManager_RestoreMissing(t *testing.T) {
	m := NewManager(Options{})
	err := m.Restore(context.Background(), "nope")
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound), "error = %v", err)
}

func TestManager_PersistUnknownSession(t *testing.T) {
	m := NewManager(Options{})
	err := m.Persist(context.Background(), "nope")
	assert.True(t, errors.Is(err, errors.ErrCodeSessionNotFound), "error = %v", err)
}

type recordingHooks struct {
	observability.NoopOntologyHooks
	mu   sync.Mutex
	ops  []string
	live int
}

func (h *recordingHooks) OnOperation(_ context.Context, op string, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ops = append(h.ops, op)
}

func (h *recordingHooks) OnSessions(_ context.Context, live int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.live = live
}

func TestManager_ReportsOperations(t *testing.T) {
	t.Cleanup(observability.Reset)
	hooks := &recordingHooks{}
	observability.SetOntologyHooks(hooks)

	ctx := context.Background()
	m := NewManager(Options{})
	id, err := m.Create(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, hooks.live)

	_ = m.Update(ctx, id, "put", put("A"))
	_ = m.View(ctx, id, "get", func(*onto.Ontology) error { return nil })
	assert.Equal(t, []string{"put", "get"}, hooks.ops)

	require.NoError(t, m.Delete(ctx, id))
	assert.Equal(t, 0, hooks.live)
}
