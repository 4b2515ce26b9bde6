package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"time"

	"github.com/soyuka/asyncfs/internal/filesystem"
	"github.com/soyuka/asyncfs/internal/schema"
	"golang.org/x/sys/unix"
)

// DefaultPollInterval is the stat-polling interval used when none is given.
const DefaultPollInterval = 5007 * time.Millisecond

// StatsPair is one polling observation: the current snapshot of the watched
// path and the previously observed one. For a path that has transitioned to
// nonexistent, Current is the all-zero snapshot. A non-nil Err marks the
// terminal pair of a subscription that hit an unrecoverable error; no pairs
// follow it and the snapshots of such a pair are not meaningful.
type StatsPair struct {
	Current  schema.FileStats
	Previous schema.FileStats
	Err      error
}

// PollSubscription is a polling fallback subscription comparing periodic stat
// snapshots instead of relying on the OS notification facility.
type PollSubscription struct {
	events    chan StatsPair
	closeOnce sync.Once
	done      chan struct{}
}

// WatchFile establishes a polling subscription on path, delivering a
// [StatsPair] whenever consecutive snapshots differ. An interval <= 0 selects
// [DefaultPollInterval]. The path transitioning to nonexistent delivers
// exactly one pair with all-zero current stats rather than failing; should the
// path reappear, observation resumes. Any other stat failure, at establishment
// or while polling, surfaces through the shared error taxonomy.
func (h *Handler) WatchFile(ctx context.Context, path string, interval time.Duration) (*PollSubscription, error) {
	if path == "" {
		return nil, fmt.Errorf("(watch-poll) %w", ErrEmptyPath)
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	previous, err := h.statQuiet(path)
	if err != nil {
		return nil, err
	}

	sub := &PollSubscription{
		events: make(chan StatsPair, eventBufferSize),
		done:   make(chan struct{}),
	}

	go sub.loop(ctx, h, path, interval, previous)

	return sub, nil
}

// Events returns the subscription's event channel. It is closed once the
// subscription has terminated.
func (s *PollSubscription) Events() <-chan StatsPair {
	return s.events
}

// Close terminates the subscription. It is safe to call more than once and
// after a terminal error pair.
func (s *PollSubscription) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
	})

	return nil
}

func (s *PollSubscription) loop(ctx context.Context, h *Handler, path string, interval time.Duration, previous schema.FileStats) {
	defer close(s.events)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return

		case <-ctx.Done():
			return

		case <-ticker.C:
			current, err := h.statQuiet(path)
			if err != nil {
				s.deliver(StatsPair{
					Previous: previous,
					Err:      err,
				})

				return
			}

			if statsChanged(current, previous) {
				s.deliver(StatsPair{
					Current:  current,
					Previous: previous,
				})
				previous = current
			}
		}
	}
}

func (s *PollSubscription) deliver(pair StatsPair) {
	select {
	case s.events <- pair:
	case <-s.done:
	}
}

// statsChanged reports whether two snapshots differ in anything but the
// access time. A bare read of the watched path is not a change.
func statsChanged(current, previous schema.FileStats) bool {
	current.AccessedAt = time.Time{}
	previous.AccessedAt = time.Time{}

	return current != previous
}

// statQuiet returns the snapshot for path, mapping a nonexistent path to the
// all-zero snapshot instead of an error. Any other failure classifies into
// the shared error taxonomy.
func (h *Handler) statQuiet(path string) (schema.FileStats, error) {
	var stat unix.Stat_t

	if err := h.unixOps.Stat(path, &stat); err != nil {
		var errno unix.Errno
		if errors.As(err, &errno) && (errno == unix.ENOENT || errno == unix.ENOTDIR) {
			return schema.FileStats{}, nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return schema.FileStats{}, nil
		}

		return schema.FileStats{}, fmt.Errorf("(watch-poll) %s: %w", path, filesystem.Classify(err))
	}

	return schema.StatsFromUnix(&stat), nil
}
