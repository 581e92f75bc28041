package core_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/memo/pkg/core"
)

func TestStore_InsertFront(t *testing.T) {
	s := core.NewStore(nil)

	require.NoError(t, s.InsertFront(core.Note{ID: "a"}))
	require.NoError(t, s.InsertFront(core.Note{ID: "b"}))
	require.NoError(t, s.InsertFront(core.Note{ID: "c"}))

	all := s.All()
	require.Len(t, all, 3)
	assert.Equal(t, []string{"c", "b", "a"}, ids(all))

	t.Run("Rejects Duplicate Identity", func(t *testing.T) {
		err := s.InsertFront(core.Note{ID: "b"})
		assert.True(t, errors.Is(err, core.ErrDuplicate))
		assert.Equal(t, 3, s.Len())
	})
}

func TestStore_All_ReturnsCopy(t *testing.T) {
	s := core.NewStore([]core.Note{{ID: "a", Title: "x", Window: &core.WindowState{X: 1}}})

	all := s.All()
	all[0].Title = "mutated"
	all[0].Window.X = 99

	got, ok := s.Find("a")
	require.True(t, ok)
	assert.Equal(t, "x", got.Title)
	assert.Equal(t, float64(1), got.Window.X)
}

func TestStore_Update(t *testing.T) {
	s := core.NewStore([]core.Note{{ID: "a", Title: "x", Content: "old", Color: "yellow"}})
	stamp := func() uint64 { return 42 }

	t.Run("Applies Only Supplied Fields", func(t *testing.T) {
		got, err := s.Update("a", core.NoteUpdate{Content: ptr("new")}, stamp)
		require.NoError(t, err)

		assert.Equal(t, "x", got.Title)
		assert.Equal(t, "new", got.Content)
		assert.Equal(t, "yellow", got.Color)
		assert.Nil(t, got.Window)
		assert.Equal(t, uint64(42), got.UpdatedAt)
	})

	t.Run("Sets Window", func(t *testing.T) {
		got, err := s.Update("a", core.NoteUpdate{Window: &core.WindowState{IsOpen: true, Width: 300}}, stamp)
		require.NoError(t, err)
		require.NotNil(t, got.Window)
		assert.True(t, got.Window.IsOpen)
	})

	t.Run("Missing Identity", func(t *testing.T) {
		before := s.All()
		_, err := s.Update("ghost", core.NoteUpdate{Title: ptr("y")}, stamp)
		assert.True(t, errors.Is(err, core.ErrNotFound))
		assert.Equal(t, before, s.All())
	})
}

func TestStore_Remove(t *testing.T) {
	s := core.NewStore([]core.Note{{ID: "a"}, {ID: "b"}, {ID: "c"}})

	require.NoError(t, s.Remove("b"))
	assert.Equal(t, []string{"a", "c"}, ids(s.All()))

	err := s.Remove("b")
	assert.True(t, errors.Is(err, core.ErrNotFound))
	assert.Equal(t, 2, s.Len())
}

func TestStore_Replace(t *testing.T) {
	s := core.NewStore([]core.Note{{ID: "a"}})
	s.Replace([]core.Note{{ID: "x"}, {ID: "y"}})

	assert.Equal(t, []string{"x", "y"}, ids(s.All()))
	_, ok := s.Find("a")
	assert.False(t, ok)
}

func ids(notes []core.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.ID
	}
	return out
}
