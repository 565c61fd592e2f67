package io

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCopyFile(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "out.txt")

	require.NoError(t, CopyFile(dst, strings.NewReader("hello volume")))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, "hello volume", string(got))
}

func TestCopyFileTruncatesExisting(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, os.WriteFile(dst, []byte("this is much longer than the replacement"), 0o644))

	require.NoError(t, CopyFile(dst, strings.NewReader("short")))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, "short", string(got))
}
