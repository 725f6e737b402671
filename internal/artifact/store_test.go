package artifact

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/alert-extract/internal/logging"
	"fjacquet/alert-extract/internal/parsererror"
)

func writeString(s string) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	}
}

func TestStore_SaveCreatesRootAndOpenReadsBack(t *testing.T) {
	root := filepath.Join(t.TempDir(), "xml-extracts")
	logger := logging.NewMockLogger()
	s := NewStore(root, logger)

	path, err := s.Save("Alert_1_Data.xlsx", writeString("workbook"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "Alert_1_Data.xlsx"), path)
	assert.True(t, logger.HasEntry("INFO", "Artifact saved"))

	data, err := s.Open(path)
	require.NoError(t, err)
	assert.Equal(t, "workbook", string(data))

	data, err = s.Open("Alert_1_Data.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "workbook", string(data))
}

func TestStore_SaveOverwrites(t *testing.T) {
	s := NewStore(t.TempDir(), logging.NewMockLogger())

	_, err := s.Save("a.xlsx", writeString("first"))
	require.NoError(t, err)
	_, err = s.Save("a.xlsx", writeString("second"))
	require.NoError(t, err)

	data, err := s.Open("a.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestStore_FailedSaveKeepsPrevious(t *testing.T) {
	s := NewStore(t.TempDir(), logging.NewMockLogger())
	_, err := s.Save("a.xlsx", writeString("good"))
	require.NoError(t, err)

	_, err = s.Save("a.xlsx", func(w io.Writer) error {
		_, _ = io.WriteString(w, "half")
		return errors.New("render failed")
	})
	var ioErr *parsererror.IOFailureError
	require.ErrorAs(t, err, &ioErr)

	data, err := s.Open("a.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "good", string(data))

	entries, err := os.ReadDir(s.Root())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStore_SaveUncreatableRoot(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	s := NewStore(filepath.Join(blocker, "out"), logging.NewMockLogger())
	_, err := s.Save("a.xlsx", writeString("x"))

	var ioErr *parsererror.IOFailureError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "create output directory", ioErr.Op)
}

func TestStore_OpenUnreadable(t *testing.T) {
	s := NewStore(t.TempDir(), logging.NewMockLogger())

	for _, ref := range []string{"missing.xlsx", "", "..", "/"} {
		_, err := s.Open(ref)
		var unreadable *parsererror.ArtifactUnreadableError
		require.ErrorAs(t, err, &unreadable, "ref %q", ref)
		assert.Equal(t, ref, unreadable.Ref)
	}
}

func TestStore_OpenStaysInsideRoot(t *testing.T) {
	parent := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(parent, "secret.txt"), []byte("secret"), 0600))

	s := NewStore(filepath.Join(parent, "out"), logging.NewMockLogger())
	_, err := s.Open("../secret.txt")

	var unreadable *parsererror.ArtifactUnreadableError
	assert.ErrorAs(t, err, &unreadable)
}

func TestStore_SaveTo(t *testing.T) {
	s := NewStore(t.TempDir(), logging.NewMockLogger())
	target := filepath.Join(t.TempDir(), "nested", "custom.xlsx")

	path, err := s.SaveTo(target, writeString("custom"))
	require.NoError(t, err)
	assert.Equal(t, target, path)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "custom", string(data))
}
