package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateWindowStore_RecordAndCount(t *testing.T) {
	// Arrange
	client, _ := newTestClient(t)
	store, err := NewRateWindowStore(client)
	require.NoError(t, err)

	now := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, store.Record("client-1", now.Add(time.Duration(i)*time.Second)))
	}

	// Act
	count, err := store.PruneAndCount("client-1", now.Add(-time.Minute))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestRateWindowStore_PrunesOldEntries(t *testing.T) {
	// Arrange
	client, _ := newTestClient(t)
	store, err := NewRateWindowStore(client)
	require.NoError(t, err)

	now := time.Now()
	require.NoError(t, store.Record("client-1", now.Add(-2*time.Minute)))
	require.NoError(t, store.Record("client-1", now.Add(-90*time.Second)))
	require.NoError(t, store.Record("client-1", now.Add(-10*time.Second)))

	// Act: отметки старше минуты отсекаются
	count, err := store.PruneAndCount("client-1", now.Add(-time.Minute))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRateWindowStore_BoundaryEntryKept(t *testing.T) {
	// Arrange: отметка ровно на границе окна остается в нем
	client, _ := newTestClient(t)
	store, err := NewRateWindowStore(client)
	require.NoError(t, err)

	cutoff := time.Now()
	require.NoError(t, store.Record("client-1", cutoff))

	// Act
	count, err := store.PruneAndCount("client-1", cutoff)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRateWindowStore_ClientsIsolated(t *testing.T) {
	client, _ := newTestClient(t)
	store, err := NewRateWindowStore(client)
	require.NoError(t, err)

	now := time.Now()
	require.NoError(t, store.Record("client-1", now))

	count, err := store.PruneAndCount("client-2", now.Add(-time.Minute))
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRateWindowStore_SameTimestampEntriesDistinct(t *testing.T) {
	// Одновременные запросы не схлопываются в одну отметку
	client, _ := newTestClient(t)
	store, err := NewRateWindowStore(client)
	require.NoError(t, err)

	now := time.Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Record("client-1", now))
	}

	count, err := store.PruneAndCount("client-1", now.Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}
