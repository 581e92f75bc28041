package fs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/memo/pkg/core"
)

func TestSerializers(t *testing.T) {
	notes := []core.Note{
		{ID: "n1", Title: "Groceries", Content: "milk\neggs", Color: "green", UpdatedAt: 42,
			Window: &core.WindowState{IsOpen: true, X: 1.5, Y: 2, Width: 300, Height: 350}},
		{ID: "n2", Title: "", Content: "", Color: core.DefaultColor, UpdatedAt: 7},
	}

	serializers := DefaultSerializers(false)

	for _, ext := range []string{".json", ".yaml", ".yml"} {
		t.Run(ext, func(t *testing.T) {
			s := serializers[ext]
			require.NotNil(t, s)

			data, err := s.Encode(notes)
			require.NoError(t, err)

			parsed, err := s.Decode(data)
			require.NoError(t, err)
			assert.Equal(t, notes, parsed)
		})
	}
}

func TestJSONSerializer_FieldNames(t *testing.T) {
	data, err := NewJSONSerializer(false).Encode([]core.Note{
		{ID: "x", UpdatedAt: 1, Window: &core.WindowState{AlwaysOnTop: true}},
	})
	require.NoError(t, err)

	out := string(data)
	for _, key := range []string{`"id"`, `"updatedAt"`, `"isOpen"`, `"alwaysOnTop"`} {
		assert.True(t, strings.Contains(out, key), "missing key %s in %s", key, out)
	}
}

func TestJSONSerializer_Decode(t *testing.T) {
	t.Run("Empty List", func(t *testing.T) {
		notes, err := NewJSONSerializer(false).Decode([]byte("[]"))
		require.NoError(t, err)
		assert.Empty(t, notes)
	})

	t.Run("Trailing Garbage", func(t *testing.T) {
		notes, err := NewJSONSerializer(false).Decode([]byte(`[{"id":"a"}] garbage{`))
		assert.Error(t, err)
		assert.Empty(t, notes)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := NewJSONSerializer(false).Decode([]byte("not json"))
		assert.Error(t, err)
	})
}
