package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureSubDir_CreatesDirectoryInCWD(t *testing.T) {
	tmp := t.TempDir()
	chdir(t, tmp)

	got, err := EnsureSubDir("reports")
	require.NoError(t, err)

	want := filepath.Join(tmp, "reports")
	require.Equal(t, want, got)

	fi, err := os.Stat(want)
	require.NoError(t, err)
	require.True(t, fi.IsDir())

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}

	again, err := EnsureSubDir("reports")
	require.NoError(t, err)
	assert.Equal(t, got, again, "idempotent")
}

func TestEnsureSubDir_FileInTheWay(t *testing.T) {
	tmp := t.TempDir()
	chdir(t, tmp)
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "reports"), []byte("x"), 0o600))

	_, err := EnsureSubDir("reports")
	require.Error(t, err)
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "r.json")

	require.NoError(t, WriteFileAtomic(path, []byte("one"), 0o600))
	require.NoError(t, WriteFileAtomic(path, []byte("two"), 0o600))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(b))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")

	if runtime.GOOS != "windows" {
		fi, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
	}
}

func TestWriteFileAtomic_MissingDir(t *testing.T) {
	err := WriteFileAtomic(filepath.Join(t.TempDir(), "nope", "r.json"), []byte("x"), 0o600)
	require.Error(t, err)
}
