package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/soyuka/asyncfs/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStat_Fail_NotFound(t *testing.T) {
	t.Parallel()

	handler := newTestHandler()

	_, err := handler.Stat(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err, "an error should occur")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStat_Fail_NotADirectory(t *testing.T) {
	t.Parallel()

	handler := newTestHandler()
	file := filepath.Join(t.TempDir(), "x.txt")

	require.NoError(t, os.WriteFile(file, []byte("data"), 0o644))

	_, err := handler.Stat(filepath.Join(file, "below.txt"))
	require.Error(t, err, "an error should occur")
	require.ErrorIs(t, err, ErrNotADirectory)
}

func TestStatLstat_Symlink(t *testing.T) {
	t.Parallel()

	handler := newTestHandler()
	dir := t.TempDir()

	target := filepath.Join(dir, "target.txt")
	link := filepath.Join(dir, "link.txt")
	payload := []byte("symlinked payload")

	require.NoError(t, os.WriteFile(target, payload, 0o644))
	require.NoError(t, os.Symlink(target, link))

	linkStats, err := handler.Lstat(link)
	require.NoError(t, err, "no error should occur")
	assert.True(t, linkStats.IsSymlink(), "lstat should report the link itself")

	targetStats, err := handler.Stat(link)
	require.NoError(t, err, "no error should occur")
	assert.False(t, targetStats.IsSymlink(), "stat should resolve the link")
	assert.Equal(t, int64(len(payload)), targetStats.Size)

	direct, err := handler.Stat(target)
	require.NoError(t, err, "no error should occur")
	assert.Equal(t, direct.Inode, targetStats.Inode, "stat through the link should land on the target inode")
}

func TestStatLstat_AgreeOnNonLink(t *testing.T) {
	t.Parallel()

	handler := newTestHandler()
	path := filepath.Join(t.TempDir(), "x.txt")

	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))

	statted, err := handler.Stat(path)
	require.NoError(t, err, "no error should occur")

	lstatted, err := handler.Lstat(path)
	require.NoError(t, err, "no error should occur")

	assert.Equal(t, statted, lstatted, "stat and lstat should agree for a non-link path")
}

func TestFstat_MatchesStat(t *testing.T) {
	t.Parallel()

	handler := newTestHandler()
	path := filepath.Join(t.TempDir(), "x.txt")

	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))

	handle, err := handler.Open(path, schema.FlagRead, 0)
	require.NoError(t, err, "no error should occur")
	defer handler.Close(handle) //nolint:errcheck

	fstatted, err := handler.Fstat(handle)
	require.NoError(t, err, "no error should occur")

	statted, err := handler.Stat(path)
	require.NoError(t, err, "no error should occur")

	assert.Equal(t, statted.Inode, fstatted.Inode)
	assert.Equal(t, statted.Size, fstatted.Size)
}

func TestFstat_Fail_ClosedHandle(t *testing.T) {
	t.Parallel()

	handler := newTestHandler()
	path := filepath.Join(t.TempDir(), "x.txt")

	handle, err := handler.Open(path, schema.FlagWrite, 0o644)
	require.NoError(t, err, "no error should occur")
	require.NoError(t, handler.Close(handle))

	_, err = handler.Fstat(handle)
	require.Error(t, err, "an error should occur")
	require.ErrorIs(t, err, ErrInvalidHandle)
}
