package logging

import (
	"os"
	"path/filepath"
)

// DefaultLogDir returns the default log directory (~/.forgelode/logs/).
// Falls back to the temp directory if the home directory is unavailable.
func DefaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".forgelode", "logs")
	}
	return filepath.Join(home, ".forgelode", "logs")
}

// DefaultLogPath returns the default indexer log path.
func DefaultLogPath() string {
	return filepath.Join(DefaultLogDir(), "indexer.log")
}
