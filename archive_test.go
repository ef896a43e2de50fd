package binsweep

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveWritesAndReadsBackBins(t *testing.T) {
	directory := filepath.Join(t.TempDir(), "bins")
	archive, err := NewArchive(directory)
	require.NoError(t, err)

	require.NoError(t, archive.OnSuccess(&Result{Bin: "abc", Body: `{"key":"value"}`}))
	require.NoError(t, archive.OnSuccess(&Result{Bin: "x9z", Body: `[]`}))
	require.NoError(t, os.WriteFile(filepath.Join(directory, "notes.txt"), []byte("ignored"), 0o644))

	files, err := ArchiveFrom(directory)
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "abc", files[0].Name)
	assert.Equal(t, `{"key":"value"}`, string(files[0].Payload))
	assert.Equal(t, int64(len(files[0].Payload)), files[0].Size)
	assert.Equal(t, "x9z", files[1].Name)
}

func TestArchiveRejectsPathsAsBins(t *testing.T) {
	archive, err := NewArchive(t.TempDir())
	require.NoError(t, err)

	for _, bin := range []string{"", ".", "..", "a/b", `a\b`} {
		assert.Error(t, archive.OnSuccess(&Result{Bin: bin}), "bin %q", bin)
	}
}

func TestFileFromMissingFile(t *testing.T) {
	file, err := FileFrom(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
	assert.Nil(t, file)
}
