package platform

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	// AppDir is the directory name used under the per-user data and config dirs.
	AppDir = "mymemo"
	// DataFileName is the default data file name.
	DataFileName = "memos.json"
	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"
)

// ResolveDataPath returns the data file to use.
// An explicit path wins; otherwise <user data dir>/mymemo/memos.json.
// When no user data dir can be determined the current directory is used.
func ResolveDataPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return filepath.Join(userDataDir(), AppDir, DataFileName)
}

// DefaultConfigPath returns <user config dir>/mymemo/config.yaml, or an empty
// string when no config dir can be determined.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppDir, ConfigFileName)
}

// userDataDir returns the per-user local data directory:
// $XDG_DATA_HOME or ~/.local/share on Unix, %LOCALAPPDATA% on Windows and
// ~/Library/Application Support on macOS.
func userDataDir() string {
	switch runtime.GOOS {
	case "windows":
		if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
			return dir
		}
	case "darwin", "ios":
		if dir, err := os.UserConfigDir(); err == nil {
			return dir
		}
	default:
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" && filepath.IsAbs(dir) {
			return dir
		}
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, ".local", "share")
		}
	}
	return "."
}
