package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMkdirRmdir_Success(t *testing.T) {
	t.Parallel()

	handler := newTestHandler()
	path := filepath.Join(t.TempDir(), "newdir")

	require.NoError(t, handler.Mkdir(path, 0o755))

	stats, err := handler.Stat(path)
	require.NoError(t, err, "no error should occur")
	assert.True(t, stats.IsDir())

	require.NoError(t, handler.Rmdir(path))

	_, err = handler.Stat(path)
	require.Error(t, err, "an error should occur")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMkdir_Fail_AlreadyExists(t *testing.T) {
	t.Parallel()

	handler := newTestHandler()
	path := t.TempDir()

	err := handler.Mkdir(path, 0o755)
	require.Error(t, err, "an error should occur")
	require.ErrorIs(t, err, ErrAlreadyExists)
}

func TestRmdir_Fail_NotEmpty(t *testing.T) {
	t.Parallel()

	handler := newTestHandler()
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "x.txt"), []byte("data"), 0o644))

	err := handler.Rmdir(dir)
	require.Error(t, err, "an error should occur")
	require.ErrorIs(t, err, ErrIO, "a non-empty directory should classify as a generic IO error")
}

func TestReadDir_ExcludesSelfAndParent(t *testing.T) {
	t.Parallel()

	handler := newTestHandler()
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("b"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	names, err := handler.ReadDir(dir)
	require.NoError(t, err, "no error should occur")

	assert.ElementsMatch(t, []string{"a.txt", "b.txt", "sub"}, names)
	assert.NotContains(t, names, ".")
	assert.NotContains(t, names, "..")
}

func TestReadDir_Fail_NotFound(t *testing.T) {
	t.Parallel()

	handler := newTestHandler()

	_, err := handler.ReadDir(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err, "an error should occur")
	require.ErrorIs(t, err, ErrNotFound)
}
