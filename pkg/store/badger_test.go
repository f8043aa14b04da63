package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBadgerStore_InMemory(t *testing.T) {
	s, err := NewBadgerStore(BadgerOptions{InMemory: true})
	require.NoError(t, err)
	defer s.Close()

	exerciseStore(t, s)
}

func TestBadgerStore_Reopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := NewBadgerStore(BadgerOptions{Dir: dir})
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "snap", []byte("persisted"), time.Hour))
	require.NoError(t, s.Close())

	s, err = NewBadgerStore(BadgerOptions{Dir: dir})
	require.NoError(t, err)
	defer s.Close()

	data, ok, err := s.Get(ctx, "snap")
	require.NoError(t, err)
	require.True(t, ok, "entry should survive a reopen")
	assert.Equal(t, "persisted", string(data))
}
