// Package watch implements filesystem change subscriptions: an
// fsnotify-backed notification subscription and a stat-polling fallback for
// paths where the operating system facility is not usable.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/soyuka/asyncfs/internal/schema"
	"golang.org/x/sys/unix"
)

// EventKind is the kind of a delivered filesystem change event.
type EventKind int

const (
	// KindRename covers appearance, disappearance and renaming of entries.
	KindRename EventKind = iota

	// KindChange covers content and metadata modification of entries.
	KindChange

	// KindError is the terminal event of a subscription that hit an
	// unrecoverable error; no further events follow it.
	KindError
)

func (k EventKind) String() string {
	switch k {
	case KindRename:
		return "rename"
	case KindChange:
		return "change"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is one filesystem change notification. Name is the base name of the
// affected entry and may be empty; its presence is platform-dependent and must
// never be assumed. RawName carries the same bytes and is only populated under
// [schema.EncodingRaw].
type Event struct {
	Kind    EventKind
	Name    string
	RawName []byte
	Err     error
}

// Options configures a watch subscription.
type Options struct {
	// Persistent keeps the subscription alive independent of the given
	// context; it then only terminates on [Subscription.Close] or on an
	// unrecoverable error.
	Persistent bool

	// Recursive also watches subdirectories. Support is platform-dependent
	// and best-effort: where unavailable, the subscription degrades to the
	// top-level path instead of failing.
	Recursive bool

	// Encoding controls filename delivery, defaulting to UTF-8 text.
	Encoding schema.FilenameEncoding
}

// Subscription is an active filesystem-change listener bound to one path. It
// emits events on its channel while active and emits nothing after
// termination; the channel is closed once terminated.
type Subscription struct {
	events    chan Event
	notifier  *fsnotify.Watcher
	closeOnce sync.Once
	done      chan struct{}
}

// Handler is the principal implementation structure of the watch layer.
type Handler struct {
	unixOps unixProvider
}

type unixProvider interface {
	Stat(path string, stat *unix.Stat_t) error
}

// NewHandler returns a pointer to a new watch [Handler].
func NewHandler(unixOps unixProvider) *Handler {
	return &Handler{
		unixOps: unixOps,
	}
}

// Watch establishes a change subscription on path.
func (h *Handler) Watch(ctx context.Context, path string, opts Options) (*Subscription, error) {
	notifier, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("(watch) failed to establish notifier: %w", err)
	}

	if err := notifier.Add(path); err != nil {
		notifier.Close() //nolint:errcheck

		return nil, fmt.Errorf("(watch) %s: %w", path, classifyNotify(err))
	}

	if opts.Recursive {
		addSubdirWatches(notifier, path)
	}

	sub := &Subscription{
		events:   make(chan Event, eventBufferSize),
		notifier: notifier,
		done:     make(chan struct{}),
	}

	go sub.loop(ctx, opts)

	return sub, nil
}

// addSubdirWatches best-effort extends a watch to all current subdirectories.
// Failures degrade to the already established top-level watch.
func addSubdirWatches(notifier *fsnotify.Watcher, root string) {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil || !entry.IsDir() || path == root {
			return nil
		}

		if err := notifier.Add(path); err != nil {
			slog.Debug("Recursive watch degraded for subdirectory.",
				"path", path,
				"err", err,
			)
		}

		return nil
	})
	if err != nil {
		slog.Debug("Recursive watch walk failed, watching top-level only.",
			"root", root,
			"err", err,
		)
	}
}

const eventBufferSize = 64

// Events returns the subscription's event channel. It is closed once the
// subscription has terminated.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Close terminates the subscription. It is safe to call more than once and
// after a terminal error event.
func (s *Subscription) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
	})

	return nil
}

func (s *Subscription) loop(ctx context.Context, opts Options) {
	defer close(s.events)
	defer s.notifier.Close() //nolint:errcheck

	ctxDone := ctx.Done()
	if opts.Persistent {
		ctxDone = nil
	}

	for {
		select {
		case <-s.done:
			return

		case <-ctxDone:
			return

		case notification, ok := <-s.notifier.Events:
			if !ok {
				return
			}
			s.deliver(translate(notification, opts.Encoding))

		case err, ok := <-s.notifier.Errors:
			if !ok {
				return
			}
			s.deliver(Event{
				Kind: KindError,
				Err:  fmt.Errorf("(watch) %w", classifyNotify(err)),
			})

			return
		}
	}
}

// deliver emits an event unless the subscription was terminated meanwhile.
func (s *Subscription) deliver(event Event) {
	select {
	case s.events <- event:
	case <-s.done:
	}
}

// translate maps an fsnotify notification onto the two documented event
// kinds: entries appearing, disappearing or moving are renames, everything
// else is a change.
func translate(notification fsnotify.Event, encoding schema.FilenameEncoding) Event {
	kind := KindChange
	if notification.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
		kind = KindRename
	}

	event := Event{
		Kind: kind,
		Name: filepath.Base(notification.Name),
	}
	if event.Name == "." || event.Name == "/" {
		event.Name = ""
	}
	if encoding == schema.EncodingRaw && event.Name != "" {
		event.RawName = []byte(event.Name)
	}

	return event
}
