package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	store, err := NewInMemorySnapshotStore()
	require.NoError(t, err)
	defer store.Close()

	_, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok, "fresh store must report no snapshot")

	require.NoError(t, store.Save(sampleTree()))

	topics, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sampleTree(), topics)
}

func TestSnapshotOverwrite(t *testing.T) {
	store, err := NewInMemorySnapshotStore()
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Save(sampleTree()))
	require.NoError(t, store.Save(nil))

	topics, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, topics)
}

func TestBadgerSnapshotStoreOnDisk(t *testing.T) {
	dir := t.TempDir()

	store, err := NewBadgerSnapshotStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Save(sampleTree()))
	require.NoError(t, store.Close())

	// Reopen and read back.
	store, err = NewBadgerSnapshotStore(dir)
	require.NoError(t, err)
	defer store.Close()

	topics, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sampleTree(), topics)
}
