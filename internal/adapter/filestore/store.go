package filestore

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/couchcryptid/sounding-archiver/internal/domain"
)

// Store writes cleaned reports as plain-text files under a single directory.
// It implements pipeline.Store.
type Store struct {
	dir    string
	logger *slog.Logger
}

// NewStore creates a store rooted at dir. The directory is not touched until
// EnsureDir is called.
func NewStore(dir string, logger *slog.Logger) *Store {
	return &Store{dir: dir, logger: logger}
}

// Dir returns the output directory.
func (s *Store) Dir() string { return s.dir }

// EnsureDir creates the output directory and any missing parents.
func (s *Store) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create output directory %q: %w", s.dir, err)
	}
	return nil
}

// Write stores report.Text byte-for-byte as report.Filename, replacing any
// existing file. It returns the full path written.
func (s *Store) Write(report domain.Report) (string, error) {
	path := filepath.Join(s.dir, report.Filename)
	if err := os.WriteFile(path, []byte(report.Text), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", report.Filename, err)
	}
	s.logger.Debug("report written", "path", path, "bytes", len(report.Text))
	return path, nil
}
