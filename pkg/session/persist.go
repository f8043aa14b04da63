package session

import (
	"bytes"
	"context"

	"github.com/matzehuels/ontodag/pkg/errors"
	ontoio "github.com/matzehuels/ontodag/pkg/io"
	"github.com/matzehuels/ontodag/pkg/onto"
)

// SnapshotKey is the store key under which a session's snapshot lives.
func SnapshotKey(id string) string {
	return "snapshot:" + id
}

// Persist writes the session's ontology to the store as a JSON interchange
// document. The ontology is serialized under the read lock, so readers keep
// running while the store write happens.
func (m *Manager) Persist(ctx context.Context, id string) error {
	var buf bytes.Buffer
	err := m.View(ctx, id, "persist", func(o *onto.Ontology) error {
		return ontoio.WriteJSON(o, &buf)
	})
	if err != nil {
		return err
	}
	if err := m.store.Set(ctx, SnapshotKey(id), buf.Bytes(), m.snapshotTTL); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "persist session %q", id)
	}
	m.logger.Debug("session persisted", "id", id, "bytes", buf.Len())
	return nil
}

// Restore loads the snapshot stored for id. A live session with that id has
// its ontology replaced; otherwise the session is recreated under the same
// id. Fails with NOT_FOUND when the store holds no snapshot.
func (m *Manager) Restore(ctx context.Context, id string) error {
	data, ok, err := m.store.Get(ctx, SnapshotKey(id))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "restore session %q", id)
	}
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "no snapshot for session %q", id)
	}

	o, err := ontoio.ReadJSON(bytes.NewReader(data))
	if err != nil {
		return err
	}

	if err := m.Replace(ctx, id, o); err == nil {
		m.logger.Debug("session restored", "id", id, "categories", o.Len())
		return nil
	}
	m.add(ctx, id, o)
	m.logger.Debug("session recreated from snapshot", "id", id, "categories", o.Len())
	return nil
}
