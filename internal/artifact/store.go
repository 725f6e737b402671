// Package artifact stores generated workbooks in the output directory and
// serves them back for download.
package artifact

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/alert-extract/internal/fileutils"
	"fjacquet/alert-extract/internal/logging"
	"fjacquet/alert-extract/internal/parsererror"
)

// Store is a directory of generated artifacts.
type Store struct {
	root   string
	logger logging.Logger
}

// NewStore returns a Store rooted at root. The directory is created on the
// first Save.
func NewStore(root string, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Store{root: root, logger: logger}
}

// Root is the output directory.
func (s *Store) Root() string {
	return s.root
}

// Path is the location name would be saved to.
func (s *Store) Path(name string) string {
	return filepath.Join(s.root, filepath.Base(name))
}

// Save writes an artifact called name through write and returns its path. The
// artifact only becomes visible once write has succeeded completely; a
// failed save leaves any previous artifact of the same name in place.
func (s *Store) Save(name string, write func(io.Writer) error) (string, error) {
	if err := fileutils.EnsureDirectoryExists(s.root); err != nil {
		return "", &parsererror.IOFailureError{Op: "create output directory", Path: s.root, Err: err}
	}
	return s.SaveTo(s.Path(name), write)
}

// SaveTo is Save for an explicit path outside the store's root.
func (s *Store) SaveTo(path string, write func(io.Writer) error) (string, error) {
	if err := fileutils.WriteAtomic(path, write); err != nil {
		return "", &parsererror.IOFailureError{Op: "write artifact", Path: path, Err: err}
	}
	s.logger.Info("Artifact saved", logging.F(logging.FieldFile, path))
	return path, nil
}

// Open returns the bytes of the artifact referenced by ref. Only the final
// path element of ref is used, so references cannot leave the store's root.
func (s *Store) Open(ref string) ([]byte, error) {
	name := filepath.Base(strings.ReplaceAll(ref, "\\", "/"))
	if name == "." || name == "/" || name == ".." || name == "" {
		return nil, &parsererror.ArtifactUnreadableError{Ref: ref, Err: os.ErrNotExist}
	}

	path := filepath.Join(s.root, name)
	data, err := os.ReadFile(path)
	if err != nil {
		s.logger.WithError(err).Warn("Artifact not readable", logging.F(logging.FieldFile, path))
		return nil, &parsererror.ArtifactUnreadableError{Ref: ref, Err: err}
	}
	return data, nil
}
