// Package fileio implements whole-file convenience operations on top of the
// file access layer: reading and writing complete files and a
// checksum-verified file copy.
package fileio

import (
	"context"
	"fmt"
	"os"

	"github.com/soyuka/asyncfs/internal/dispatch"
)

type osProvider interface {
	Open(name string) (*os.File, error)
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
	ReadFile(name string) ([]byte, error)
	Remove(name string) error
	Rename(oldpath, newpath string) error
	Stat(name string) (os.FileInfo, error)
}

// Handler is the principal implementation structure of the fileio package.
type Handler struct {
	pool  *dispatch.Pool
	OSOps osProvider
}

// NewHandler returns a pointer to a new fileio [Handler].
func NewHandler(pool *dispatch.Pool, osOps osProvider) *Handler {
	return &Handler{
		pool:  pool,
		OSOps: osOps,
	}
}

// ReadFile reads the entire file at path.
func (i *Handler) ReadFile(path string) ([]byte, error) {
	data, err := i.OSOps.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("(fileio-read) %s: %w", path, err)
	}

	return data, nil
}

// WriteFile writes data to path, creating or truncating the file. The written
// bytes read back bit-for-bit identical; no encoding transform is applied.
func (i *Handler) WriteFile(path string, data []byte, perm os.FileMode) error {
	file, err := i.OSOps.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("(fileio-write) failed to open %s: %w", path, err)
	}

	if _, err := file.Write(data); err != nil {
		file.Close() //nolint:errcheck

		return fmt.Errorf("(fileio-write) failed to write %s: %w", path, err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("(fileio-write) failed to close %s: %w", path, err)
	}

	return nil
}

// ReadFileAsync is the non-blocking variant of [Handler.ReadFile].
func (i *Handler) ReadFileAsync(ctx context.Context, path string) *dispatch.Operation[[]byte] {
	return dispatch.Submit(ctx, i.pool, func() ([]byte, error) {
		return i.ReadFile(path)
	})
}

// WriteFileAsync is the non-blocking variant of [Handler.WriteFile].
func (i *Handler) WriteFileAsync(ctx context.Context, path string, data []byte, perm os.FileMode) *dispatch.Operation[struct{}] {
	return dispatch.Submit(ctx, i.pool, func() (struct{}, error) {
		return struct{}{}, i.WriteFile(path, data, perm)
	})
}

// CopyFileAsync is the non-blocking variant of [Handler.CopyFile].
func (i *Handler) CopyFileAsync(ctx context.Context, src, dst string, perm os.FileMode) *dispatch.Operation[struct{}] {
	return dispatch.Submit(ctx, i.pool, func() (struct{}, error) {
		return struct{}{}, i.CopyFile(ctx, src, dst, perm)
	})
}
