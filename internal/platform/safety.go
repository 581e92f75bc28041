package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// IsDevRun checks if the current process is running via `go run` or `go test`.
// It relies on the fact that these commands build binaries in temporary directories.
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}

	tempDir := os.TempDir()
	if strings.HasPrefix(strings.ToLower(exe), strings.ToLower(tempDir)) {
		return true
	}

	if strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe") {
		return true
	}

	return false
}

// ResolveSafePath re-roots the data file into a temporary directory when
// forceTemp is set. Paths already inside the system temp directory (for
// example from t.TempDir()) are trusted and returned as is.
func ResolveSafePath(dataPath string, forceTemp bool) string {
	if !forceTemp {
		return dataPath
	}

	clean := filepath.Clean(dataPath)
	rel, err := filepath.Rel(os.TempDir(), clean)
	if err == nil && !strings.HasPrefix(rel, "..") {
		return clean
	}

	name := filepath.Base(clean)
	if name == "." || name == string(os.PathSeparator) {
		name = DataFileName
	}
	return filepath.Join(os.TempDir(), AppDir+"-dev", name)
}
