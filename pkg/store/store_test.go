package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeUnderTest runs the shared Store contract against an
// implementation.
func storeUnderTest(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Put(ctx, "k", []byte("v1")))

	got, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v1"), got)

	require.NoError(t, s.Put(ctx, "k", []byte("v2")))
	got, _, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)

	require.NoError(t, s.Remove(ctx, "k"))
	_, ok, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	// Remove is idempotent.
	assert.NoError(t, s.Remove(ctx, "k"))
}

func TestMemoryStore(t *testing.T) {
	s := NewMemory()
	defer func() { _ = s.Close() }()

	storeUnderTest(t, s)
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	value := []byte("original")
	require.NoError(t, s.Put(ctx, "k", value))
	value[0] = 'X'

	got, _, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), got)
}

func TestBadgerStore(t *testing.T) {
	s, err := OpenBadger(t.TempDir())
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	storeUnderTest(t, s)
}

func TestBadgerStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := OpenBadger(dir)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "k", []byte("survives")))
	require.NoError(t, s.Close())

	s, err = OpenBadger(dir)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	got, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("survives"), got)
}

func TestStoreRespectsContext(t *testing.T) {
	s := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, s.Put(ctx, "k", []byte("v")))
	_, _, err := s.Get(ctx, "k")
	assert.Error(t, err)
}
