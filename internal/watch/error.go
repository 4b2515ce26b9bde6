package watch

import (
	"errors"
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/soyuka/asyncfs/internal/filesystem"
)

var (
	// ErrEmptyPath is an error that occurs when a subscription is requested
	// for an empty path.
	ErrEmptyPath = errors.New("empty watch path")

	// ErrWatchClosed is an error that occurs when the underlying notification
	// facility was torn down while the subscription was still active.
	ErrWatchClosed = errors.New("watch facility closed")

	// ErrWatchOverflow is an error that occurs when the operating system
	// dropped notifications because the event queue overflowed.
	ErrWatchOverflow = errors.New("watch event queue overflowed")
)

// classifyNotify normalizes fsnotify errors into the package's sentinels,
// keeping the underlying error wrapped. Operating system errors fall through
// to the shared taxonomy, so a watch on a missing path matches
// [filesystem.ErrNotFound] just like any other operation.
func classifyNotify(err error) error {
	switch {
	case errors.Is(err, fsnotify.ErrClosed):
		return fmt.Errorf("%w: %w", ErrWatchClosed, err)
	case errors.Is(err, fsnotify.ErrEventOverflow):
		return fmt.Errorf("%w: %w", ErrWatchOverflow, err)
	default:
		return filesystem.Classify(err)
	}
}
