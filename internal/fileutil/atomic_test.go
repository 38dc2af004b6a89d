package fileutil

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTranscript(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "round.log")
	require.NoError(t, WriteTranscript(path, []string{"=== Round 1 ===", "Dealer: Bob"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "=== Round 1 ===\nDealer: Bob\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestWriteTranscriptReplaces(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "round.log")
	require.NoError(t, WriteTranscript(path, []string{"first"}))
	require.NoError(t, WriteTranscript(path, []string{"second"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(data))
}

func TestWriteAtomicFailureKeepsOriginal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "round.log")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0o644))

	boom := errors.New("boom")
	err := WriteAtomic(path, 0o644, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return boom
	})
	require.ErrorIs(t, err, boom)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file is cleaned up")
}

func TestWriteAtomicMissingDir(t *testing.T) {
	t.Parallel()

	err := WriteTranscript(filepath.Join(t.TempDir(), "nope", "round.log"), nil)
	require.Error(t, err)
}
