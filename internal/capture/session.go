package capture

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/example/rscrot/internal/apperr"
	"github.com/example/rscrot/internal/logger"
)

// DefaultFileName is the capture file created inside the temp directory.
const DefaultFileName = "rscrot_screenshot.png"

// DefaultPath returns <tempdir>/rscrot_screenshot.png.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), DefaultFileName)
}

// Session owns the capture file for one run. Two runs sharing a path are
// not supported.
type Session struct {
	path string
	keep bool
}

// NewSession returns a session for path, or DefaultPath when path is empty.
func NewSession(path string) *Session {
	if path == "" {
		path = DefaultPath()
	}
	return &Session{path: path}
}

// Path is the capture file location.
func (s *Session) Path() string { return s.path }

// Prepare removes a stale file left by an earlier run. scrot refuses to
// overwrite and would otherwise write to a suffixed name.
func (s *Session) Prepare() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return apperr.Wrap(err, apperr.KindIO, "session", "remove stale capture")
	}
	return nil
}

// Keep stops Close from deleting the file.
func (s *Session) Keep() { s.keep = true }

// Kept reports whether the file will survive Close.
func (s *Session) Kept() bool { return s.keep }

// Close deletes the capture file unless Keep was called.
func (s *Session) Close() error {
	if s.keep {
		logger.Named("session").Debug().Str("path", s.path).Msg("keeping capture file")
		return nil
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return apperr.Wrap(err, apperr.KindIO, "session", "remove capture")
	}
	return nil
}
