package core_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/memo/pkg/core"
)

const testDebounce = 50 * time.Millisecond

func waitFlushes(t *testing.T, f *core.Flusher) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, f.Wait(ctx))
}

func TestFlusher_Coalesces(t *testing.T) {
	store := core.NewStore(nil)
	storage := NewMockStorage()
	f := core.NewFlusher(store, storage, testDebounce, nil)

	assert.True(t, f.Schedule(), "first schedule arms a flush")
	for i := 0; i < 10; i++ {
		assert.False(t, f.Schedule(), "later schedules are absorbed")
	}
	assert.True(t, f.Pending())

	waitFlushes(t, f)

	assert.Equal(t, 1, storage.Writes())
	assert.False(t, f.Pending())

	stats := f.Stats()
	assert.Equal(t, int64(1), stats.Scheduled)
	assert.Equal(t, int64(10), stats.Coalesced)
	assert.Equal(t, int64(1), stats.Writes)
}

func TestFlusher_ReadsStoreWhenFiring(t *testing.T) {
	store := core.NewStore(nil)
	storage := NewMockStorage()
	f := core.NewFlusher(store, storage, testDebounce, nil)

	f.Schedule()
	// Mutations after arming must be in the single write.
	require.NoError(t, store.InsertFront(core.Note{ID: "a"}))
	require.NoError(t, store.InsertFront(core.Note{ID: "b"}))

	waitFlushes(t, f)

	last, ok := storage.Last()
	require.True(t, ok)
	assert.Equal(t, []string{"b", "a"}, ids(last))
}

func TestFlusher_FailureClearsPending(t *testing.T) {
	store := core.NewStore(nil)
	storage := NewMockStorage()
	storage.FailWrites(errDiskFull)
	f := core.NewFlusher(store, storage, testDebounce, nil)

	f.Schedule()
	waitFlushes(t, f)

	assert.False(t, f.Pending(), "a failed write must not leave the gate closed")
	assert.Equal(t, int64(1), f.Stats().Failures)

	storage.FailWrites(nil)
	assert.True(t, f.Schedule(), "next mutation re-arms")
	waitFlushes(t, f)
	assert.Equal(t, 1, storage.Writes())
}

func TestFlusher_FlushNow(t *testing.T) {
	store := core.NewStore([]core.Note{{ID: "a"}})
	storage := NewMockStorage()
	f := core.NewFlusher(store, storage, testDebounce, nil)

	t.Run("Writes Synchronously", func(t *testing.T) {
		require.NoError(t, f.FlushNow())
		assert.Equal(t, 1, storage.Writes())
	})

	t.Run("Clears Pending", func(t *testing.T) {
		f.Schedule()
		require.NoError(t, f.FlushNow())
		assert.False(t, f.Pending())
		waitFlushes(t, f)
	})

	t.Run("Returns Storage Error", func(t *testing.T) {
		storage.FailWrites(errDiskFull)
		defer storage.FailWrites(nil)

		err := f.FlushNow()
		assert.ErrorIs(t, err, errDiskFull)
	})
}

func TestFlusher_DefaultDebounce(t *testing.T) {
	f := core.NewFlusher(core.NewStore(nil), NewMockStorage(), 0, nil)
	assert.Equal(t, core.DefaultDebounce, f.Debounce())
}
