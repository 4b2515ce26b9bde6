// Package filesystem implements the file access layer: uniform blocking
// operations over the POSIX primitives, a handle table for open files and the
// error taxonomy shared by all of them. Non-blocking counterparts of the
// operations live alongside in this package and delegate to a dispatch pool.
//
// Path arguments are Go strings and may carry arbitrary byte sequences; they
// are handed to the operating system unmodified, without any encoding
// transform.
package filesystem

import (
	"fmt"
	"os"
	"sync"

	"github.com/soyuka/asyncfs/internal/dispatch"
	"github.com/soyuka/asyncfs/internal/schema"
	"golang.org/x/sys/unix"
)

// OffsetCurrent selects the handle's current file position instead of an
// absolute offset for read and write operations.
const OffsetCurrent int64 = -1

type osProvider interface {
	ReadDir(name string) ([]os.DirEntry, error)
	Readlink(name string) (string, error)
	Stat(name string) (os.FileInfo, error)
}

type unixProvider interface {
	Open(path string, mode int, perm uint32) (int, error)
	Close(fd int) error
	Read(fd int, p []byte) (int, error)
	Pread(fd int, p []byte, offset int64) (int, error)
	Write(fd int, p []byte) (int, error)
	Pwrite(fd int, p []byte, offset int64) (int, error)
	Fstat(fd int, stat *unix.Stat_t) error
	Stat(path string, stat *unix.Stat_t) error
	Lstat(path string, stat *unix.Stat_t) error
	Fsync(fd int) error
	Mkdir(path string, mode uint32) error
	Rmdir(path string) error
	Unlink(path string) error
	Rename(oldpath, newpath string) error
	Link(oldpath, newpath string) error
	Symlink(oldpath, newpath string) error
}

// openFile is a handle table entry for one open file descriptor.
type openFile struct {
	fd   int
	path string
	flag schema.OpenFlag
}

// Handler is the principal implementation structure of the file access layer.
//
// The handle table is the only internally synchronized state; the layer
// performs no per-handle locking. Two outstanding operations on the same
// handle without caller-side serialization have undefined ordering.
type Handler struct {
	mu      sync.Mutex
	nextID  schema.Handle
	handles map[schema.Handle]*openFile

	pool *dispatch.Pool

	OSOps   osProvider
	UnixOps unixProvider
}

// NewHandler returns a pointer to a new filesystem [Handler].
func NewHandler(pool *dispatch.Pool, osOps osProvider, unixOps unixProvider) *Handler {
	return &Handler{
		nextID:  1,
		handles: make(map[schema.Handle]*openFile),
		pool:    pool,
		OSOps:   osOps,
		UnixOps: unixOps,
	}
}

func sysFlags(flag schema.OpenFlag) (int, error) {
	switch flag {
	case schema.FlagRead:
		return unix.O_RDONLY, nil
	case schema.FlagWrite:
		return unix.O_WRONLY | unix.O_CREAT | unix.O_TRUNC, nil
	case schema.FlagWriteExclusive:
		return unix.O_WRONLY | unix.O_CREAT | unix.O_EXCL, nil
	case schema.FlagAppend:
		return unix.O_WRONLY | unix.O_CREAT | unix.O_APPEND, nil
	case schema.FlagReadWrite:
		return unix.O_RDWR, nil
	case schema.FlagReadWriteExclusive:
		return unix.O_RDWR | unix.O_CREAT | unix.O_EXCL, nil
	case schema.FlagAppendRead:
		return unix.O_RDWR | unix.O_CREAT | unix.O_APPEND, nil
	default:
		return 0, fmt.Errorf("(fs-open) unknown flag %d: %w", flag, ErrInvalidArgument)
	}
}

// Open opens path under the given access flag and POSIX permission bits,
// returning an opaque [schema.Handle]. The permission bits are passed through
// to the operating system unmodified, including sticky/setuid/setgid.
func (f *Handler) Open(path string, flag schema.OpenFlag, perms uint32) (schema.Handle, error) {
	mode, err := sysFlags(flag)
	if err != nil {
		return 0, err
	}

	fd, err := f.UnixOps.Open(path, mode|unix.O_CLOEXEC, perms)
	if err != nil {
		return 0, fmt.Errorf("(fs-open) %s: %w", path, Classify(err))
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	handle := f.nextID
	f.nextID++
	f.handles[handle] = &openFile{
		fd:   fd,
		path: path,
		flag: flag,
	}

	return handle, nil
}

// Close closes the handle and invalidates it. Closing an already closed or
// never issued handle fails with [ErrInvalidHandle].
func (f *Handler) Close(handle schema.Handle) error {
	f.mu.Lock()
	file, exists := f.handles[handle]
	if exists {
		delete(f.handles, handle)
	}
	f.mu.Unlock()

	if !exists {
		return fmt.Errorf("(fs-close) handle %d: %w", handle, ErrInvalidHandle)
	}

	if err := f.UnixOps.Close(file.fd); err != nil {
		return fmt.Errorf("(fs-close) %s: %w", file.path, Classify(err))
	}

	return nil
}

// resolve looks up a handle without removing it from the table.
func (f *Handler) resolve(handle schema.Handle) (*openFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	file, exists := f.handles[handle]
	if !exists {
		return nil, fmt.Errorf("(fs-handle) handle %d: %w", handle, ErrInvalidHandle)
	}

	return file, nil
}

// Read reads up to len(buffer) bytes from the handle, either at the absolute
// offset or at the current file position for [OffsetCurrent]. Reading at or
// past end-of-file returns zero bytes and no error.
func (f *Handler) Read(handle schema.Handle, buffer []byte, offset int64) (int, error) {
	file, err := f.resolve(handle)
	if err != nil {
		return 0, err
	}

	var n int
	if offset == OffsetCurrent {
		n, err = f.UnixOps.Read(file.fd, buffer)
	} else {
		n, err = f.UnixOps.Pread(file.fd, buffer, offset)
	}
	if err != nil {
		return 0, fmt.Errorf("(fs-read) %s: %w", file.path, Classify(err))
	}

	return n, nil
}

// Write writes data to the handle, either at the absolute offset or at the
// current file position for [OffsetCurrent]. Handles opened in append mode
// ignore any supplied offset and always write at end-of-file. Partial writes
// are surfaced through the returned count and never retried internally.
func (f *Handler) Write(handle schema.Handle, data []byte, offset int64) (int, error) {
	file, err := f.resolve(handle)
	if err != nil {
		return 0, err
	}

	var n int
	if offset == OffsetCurrent || file.flag.Appends() {
		n, err = f.UnixOps.Write(file.fd, data)
	} else {
		n, err = f.UnixOps.Pwrite(file.fd, data, offset)
	}
	if err != nil {
		return 0, fmt.Errorf("(fs-write) %s: %w", file.path, Classify(err))
	}

	return n, nil
}

// Sync flushes the handle's data and metadata to stable storage.
func (f *Handler) Sync(handle schema.Handle) error {
	file, err := f.resolve(handle)
	if err != nil {
		return err
	}

	if err := f.UnixOps.Fsync(file.fd); err != nil {
		return fmt.Errorf("(fs-sync) %s: %w", file.path, Classify(err))
	}

	return nil
}
