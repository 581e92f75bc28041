package window_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/memo/pkg/adapters/window"
)

func TestRegistry_OpenIsIdempotent(t *testing.T) {
	r := window.NewRegistry(nil)

	require.NoError(t, r.OpenNote("a1"))
	require.NoError(t, r.OpenNote("a1"))

	assert.Equal(t, []string{"memo-a1"}, r.Open())
	w, ok := r.Lookup(window.Label("a1"))
	require.True(t, ok)
	assert.Equal(t, 2, w.Opened)
	assert.True(t, w.Focused)
}

func TestRegistry_CloseUnknownIsNoop(t *testing.T) {
	r := window.NewRegistry(nil)
	assert.NoError(t, r.CloseNote("ghost"))

	require.NoError(t, r.OpenNote("a1"))
	require.NoError(t, r.CloseNote("a1"))
	_, ok := r.Lookup(window.Label("a1"))
	assert.False(t, ok)
}

func TestRegistry_MainWindowHides(t *testing.T) {
	r := window.NewRegistry(nil)

	require.NoError(t, r.ShowMain())
	assert.Equal(t, []string{window.MainLabel}, r.Open())

	assert.True(t, r.RequestCloseMain())
	main, ok := r.Lookup(window.MainLabel)
	require.True(t, ok, "main window survives a close request")
	assert.False(t, main.Visible)
	assert.False(t, main.Focused)
}
