package os

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureDirCreatesMissing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "mountpoint")

	created, err := EnsureDir(dir, false)
	require.NoError(t, err)
	require.True(t, created, "expected EnsureDir to report the directory as newly created")

	fi, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, fi.IsDir())
}

func TestEnsureDirRejectsNonEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "file.txt"), []byte("x"), 0o644))

	_, err := EnsureDir(dir, true)
	require.Error(t, err)
}

func TestEnsureDirRejectsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notadir")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	_, err := EnsureDir(path, false)
	require.Error(t, err)
}

func TestIsDirEmpty(t *testing.T) {
	dir := t.TempDir()
	empty, err := IsDirEmpty(dir)
	require.NoError(t, err)
	require.True(t, empty, "freshly created temp dir should be empty")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644))
	empty, err = IsDirEmpty(dir)
	require.NoError(t, err)
	require.False(t, empty, "expected the directory to no longer be empty")
}

func TestCopyFileToWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "src.bin")
	require.NoError(t, os.WriteFile(path, []byte("payload"), 0o644))

	var buf bytes.Buffer
	n, err := CopyFile(&buf, path)
	require.NoError(t, err)
	require.EqualValues(t, 7, n)
	require.Equal(t, "payload", buf.String())
}

func TestListFilesRegularFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.bin")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))

	files, err := ListFiles(path)
	require.NoError(t, err)
	require.Equal(t, []string{path}, files)
}

func TestListFilesDirectory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.bin", "b.bin"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))

	files, err := ListFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 2, "subdirectories must be excluded")
}
