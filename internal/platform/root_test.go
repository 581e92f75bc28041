package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveDataPath(t *testing.T) {
	t.Run("Explicit Path Wins", func(t *testing.T) {
		assert.Equal(t, "custom/notes.json", ResolveDataPath("custom/notes.json"))
	})

	t.Run("XDG Data Home", func(t *testing.T) {
		if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
			t.Skip("XDG layout only applies to Unix")
		}
		dir := t.TempDir()
		t.Setenv("XDG_DATA_HOME", dir)

		assert.Equal(t, filepath.Join(dir, "mymemo", "memos.json"), ResolveDataPath(""))
	})

	t.Run("Home Fallback", func(t *testing.T) {
		if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
			t.Skip("XDG layout only applies to Unix")
		}
		home := t.TempDir()
		t.Setenv("XDG_DATA_HOME", "")
		t.Setenv("HOME", home)

		assert.Equal(t, filepath.Join(home, ".local", "share", "mymemo", "memos.json"), ResolveDataPath(""))
	})
}

func TestResolveSafePath(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		forceTemp bool
		want      string
	}{
		{
			name: "No Force",
			path: "/home/user/.local/share/mymemo/memos.json",
			want: "/home/user/.local/share/mymemo/memos.json",
		},
		{
			name:      "Forced Into Dev Dir",
			path:      "/home/user/.local/share/mymemo/memos.json",
			forceTemp: true,
			want:      filepath.Join(os.TempDir(), "mymemo-dev", "memos.json"),
		},
		{
			name:      "Temp Path Is Trusted",
			path:      filepath.Join(os.TempDir(), "case", "memos.json"),
			forceTemp: true,
			want:      filepath.Join(os.TempDir(), "case", "memos.json"),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ResolveSafePath(tc.path, tc.forceTemp))
		})
	}
}

func TestIsDevRun(t *testing.T) {
	assert.True(t, IsDevRun(), "test binaries are dev runs")
}
