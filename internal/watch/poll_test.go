package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/soyuka/asyncfs/internal/filesystem"
	"github.com/soyuka/asyncfs/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// flakyStatProvider succeeds for the first succeedFor stat calls and fails
// with err afterwards.
type flakyStatProvider struct {
	calls      atomic.Int64
	succeedFor int64
	err        error
}

func (p *flakyStatProvider) Stat(_ string, stat *unix.Stat_t) error {
	if p.calls.Add(1) > p.succeedFor {
		return p.err
	}

	*stat = unix.Stat_t{
		Ino:   1,
		Mode:  unix.S_IFREG | 0o644,
		Nlink: 1,
		Size:  4,
	}

	return nil
}

const pollTestInterval = 20 * time.Millisecond

func awaitPair(t *testing.T, sub *PollSubscription) StatsPair {
	t.Helper()

	select {
	case pair, ok := <-sub.Events():
		require.True(t, ok, "the subscription should still be active")

		return pair
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for a poll event")

		return StatsPair{}
	}
}

func TestWatchFile_DeliversChange(t *testing.T) {
	t.Parallel()

	handler := NewHandler(&schema.Unix{})
	path := filepath.Join(t.TempDir(), "x.txt")

	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	sub, err := handler.WatchFile(context.Background(), path, pollTestInterval)
	require.NoError(t, err, "no error should occur")
	defer sub.Close() //nolint:errcheck

	require.NoError(t, os.WriteFile(path, []byte("version two"), 0o644))

	pair := awaitPair(t, sub)
	assert.Equal(t, int64(11), pair.Current.Size)
	assert.Equal(t, int64(2), pair.Previous.Size)
}

func TestWatchFile_DeletionDeliversZeroStats(t *testing.T) {
	t.Parallel()

	handler := NewHandler(&schema.Unix{})
	path := filepath.Join(t.TempDir(), "x.txt")

	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))

	sub, err := handler.WatchFile(context.Background(), path, pollTestInterval)
	require.NoError(t, err, "no error should occur")
	defer sub.Close() //nolint:errcheck

	require.NoError(t, os.Remove(path))

	pair := awaitPair(t, sub)
	assert.True(t, pair.Current.IsZero(), "deletion should deliver all-zero current stats")
	assert.Equal(t, int64(4), pair.Previous.Size)
}

func TestWatchFile_MissingPathDoesNotFail(t *testing.T) {
	t.Parallel()

	handler := NewHandler(&schema.Unix{})
	path := filepath.Join(t.TempDir(), "late.txt")

	sub, err := handler.WatchFile(context.Background(), path, pollTestInterval)
	require.NoError(t, err, "watching a nonexistent path should not fail")
	defer sub.Close() //nolint:errcheck

	require.NoError(t, os.WriteFile(path, []byte("appeared"), 0o644))

	pair := awaitPair(t, sub)
	assert.True(t, pair.Previous.IsZero())
	assert.Equal(t, int64(8), pair.Current.Size)
}

func TestWatchFile_Fail_PermissionDenied(t *testing.T) {
	t.Parallel()

	handler := NewHandler(&flakyStatProvider{err: unix.EACCES})

	_, err := handler.WatchFile(context.Background(), "/some/forbidden/path", pollTestInterval)
	require.Error(t, err, "an error should occur")
	require.ErrorIs(t, err, filesystem.ErrPermissionDenied, "the error should classify as permission denied")
}

func TestWatchFile_UnrecoverableErrorDeliversTerminalPair(t *testing.T) {
	t.Parallel()

	handler := NewHandler(&flakyStatProvider{succeedFor: 1, err: unix.EACCES})

	sub, err := handler.WatchFile(context.Background(), "/some/revoked/path", pollTestInterval)
	require.NoError(t, err, "no error should occur")
	defer sub.Close() //nolint:errcheck

	pair := awaitPair(t, sub)
	require.Error(t, pair.Err, "the terminal pair should carry the error")
	require.ErrorIs(t, pair.Err, filesystem.ErrPermissionDenied, "the error should classify as permission denied")
	assert.Equal(t, int64(4), pair.Previous.Size)

	select {
	case _, ok := <-sub.Events():
		assert.False(t, ok, "no pairs should follow the terminal pair")
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for subscription termination")
	}
}

func TestStatsChanged_IgnoresAccessTime(t *testing.T) {
	t.Parallel()

	previous := schema.FileStats{
		Inode:      1,
		Size:       4,
		ModifiedAt: time.Unix(1000, 0),
		AccessedAt: time.Unix(1000, 0),
	}

	read := previous
	read.AccessedAt = time.Unix(2000, 0)
	assert.False(t, statsChanged(read, previous), "an access time update alone is not a change")

	written := previous
	written.Size = 8
	written.ModifiedAt = time.Unix(2000, 0)
	assert.True(t, statsChanged(written, previous))

	assert.True(t, statsChanged(schema.FileStats{}, previous), "disappearance is a change")
}

func TestWatchFile_Fail_EmptyPath(t *testing.T) {
	t.Parallel()

	handler := NewHandler(&schema.Unix{})

	_, err := handler.WatchFile(context.Background(), "", pollTestInterval)
	require.Error(t, err, "an error should occur")
	require.ErrorIs(t, err, ErrEmptyPath)
}

func TestWatchFile_CloseIsIdempotent(t *testing.T) {
	t.Parallel()

	handler := NewHandler(&schema.Unix{})
	path := filepath.Join(t.TempDir(), "x.txt")

	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))

	sub, err := handler.WatchFile(context.Background(), path, pollTestInterval)
	require.NoError(t, err, "no error should occur")

	require.NoError(t, sub.Close())
	require.NoError(t, sub.Close())

	for range sub.Events() { //nolint:revive
	}
}

func TestWatchFile_ContextCancelTerminates(t *testing.T) {
	t.Parallel()

	handler := NewHandler(&schema.Unix{})
	path := filepath.Join(t.TempDir(), "x.txt")

	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	sub, err := handler.WatchFile(ctx, path, pollTestInterval)
	require.NoError(t, err, "no error should occur")

	cancel()

	select {
	case _, ok := <-sub.Events():
		assert.False(t, ok, "the channel should close after cancellation")
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for subscription termination")
	}
}
