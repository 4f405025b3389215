// Package checkpoint persists the provisioning stage ordinal across process
// exits and reboots.
package checkpoint

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mdforge/mdforge/internal/domain/config"
)

// InitialOrdinal is the stage every fresh or unreadable checkpoint maps to.
const InitialOrdinal = 1

// FileStore keeps the stage ordinal as plain text in a single file.
//
// Reads are fail-open: an absent, unreadable or malformed record yields the
// initial ordinal so a corrupted checkpoint restarts the sequence instead of
// wedging it.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Current returns the persisted stage ordinal, or InitialOrdinal when the
// record is absent or not a valid positive integer.
func (s *FileStore) Current() int {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return InitialOrdinal
	}

	ordinal, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || ordinal < InitialOrdinal {
		return InitialOrdinal
	}
	return ordinal
}

// Save overwrites the persisted ordinal. The caller decides how fatal a write
// failure is; the stage's effects have already happened by the time this runs.
func (s *FileStore) Save(ordinal int) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return config.NewCheckpointWriteError(s.path, err)
	}
	if err := os.WriteFile(s.path, []byte(strconv.Itoa(ordinal)), 0o644); err != nil {
		return config.NewCheckpointWriteError(s.path, err)
	}
	return nil
}
