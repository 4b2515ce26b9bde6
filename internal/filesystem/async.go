package filesystem

import (
	"context"

	"github.com/soyuka/asyncfs/internal/dispatch"
	"github.com/soyuka/asyncfs/internal/schema"
)

// The non-blocking variants below mirror their blocking counterparts
// one-to-one and report completion through a [dispatch.Operation], success and
// failure alike. The context gates pool admission only; dispatched work cannot
// be cancelled. Buffers handed to ReadAsync/WriteAsync belong to the operation
// until it resolves.

// OpenAsync is the non-blocking variant of [Handler.Open].
func (f *Handler) OpenAsync(ctx context.Context, path string, flag schema.OpenFlag, perms uint32) *dispatch.Operation[schema.Handle] {
	return dispatch.Submit(ctx, f.pool, func() (schema.Handle, error) {
		return f.Open(path, flag, perms)
	})
}

// CloseAsync is the non-blocking variant of [Handler.Close].
func (f *Handler) CloseAsync(ctx context.Context, handle schema.Handle) *dispatch.Operation[struct{}] {
	return dispatch.Submit(ctx, f.pool, func() (struct{}, error) {
		return struct{}{}, f.Close(handle)
	})
}

// ReadAsync is the non-blocking variant of [Handler.Read].
func (f *Handler) ReadAsync(ctx context.Context, handle schema.Handle, buffer []byte, offset int64) *dispatch.Operation[int] {
	return dispatch.Submit(ctx, f.pool, func() (int, error) {
		return f.Read(handle, buffer, offset)
	})
}

// WriteAsync is the non-blocking variant of [Handler.Write].
func (f *Handler) WriteAsync(ctx context.Context, handle schema.Handle, data []byte, offset int64) *dispatch.Operation[int] {
	return dispatch.Submit(ctx, f.pool, func() (int, error) {
		return f.Write(handle, data, offset)
	})
}

// StatAsync is the non-blocking variant of [Handler.Stat].
func (f *Handler) StatAsync(ctx context.Context, path string) *dispatch.Operation[schema.FileStats] {
	return dispatch.Submit(ctx, f.pool, func() (schema.FileStats, error) {
		return f.Stat(path)
	})
}

// LstatAsync is the non-blocking variant of [Handler.Lstat].
func (f *Handler) LstatAsync(ctx context.Context, path string) *dispatch.Operation[schema.FileStats] {
	return dispatch.Submit(ctx, f.pool, func() (schema.FileStats, error) {
		return f.Lstat(path)
	})
}

// FstatAsync is the non-blocking variant of [Handler.Fstat].
func (f *Handler) FstatAsync(ctx context.Context, handle schema.Handle) *dispatch.Operation[schema.FileStats] {
	return dispatch.Submit(ctx, f.pool, func() (schema.FileStats, error) {
		return f.Fstat(handle)
	})
}

// MkdirAsync is the non-blocking variant of [Handler.Mkdir].
func (f *Handler) MkdirAsync(ctx context.Context, path string, perms uint32) *dispatch.Operation[struct{}] {
	return dispatch.Submit(ctx, f.pool, func() (struct{}, error) {
		return struct{}{}, f.Mkdir(path, perms)
	})
}

// RmdirAsync is the non-blocking variant of [Handler.Rmdir].
func (f *Handler) RmdirAsync(ctx context.Context, path string) *dispatch.Operation[struct{}] {
	return dispatch.Submit(ctx, f.pool, func() (struct{}, error) {
		return struct{}{}, f.Rmdir(path)
	})
}

// ReadDirAsync is the non-blocking variant of [Handler.ReadDir].
func (f *Handler) ReadDirAsync(ctx context.Context, path string) *dispatch.Operation[[]string] {
	return dispatch.Submit(ctx, f.pool, func() ([]string, error) {
		return f.ReadDir(path)
	})
}

// UnlinkAsync is the non-blocking variant of [Handler.Unlink].
func (f *Handler) UnlinkAsync(ctx context.Context, path string) *dispatch.Operation[struct{}] {
	return dispatch.Submit(ctx, f.pool, func() (struct{}, error) {
		return struct{}{}, f.Unlink(path)
	})
}

// RenameAsync is the non-blocking variant of [Handler.Rename].
func (f *Handler) RenameAsync(ctx context.Context, oldpath, newpath string) *dispatch.Operation[struct{}] {
	return dispatch.Submit(ctx, f.pool, func() (struct{}, error) {
		return struct{}{}, f.Rename(oldpath, newpath)
	})
}

// LinkAsync is the non-blocking variant of [Handler.Link].
func (f *Handler) LinkAsync(ctx context.Context, oldpath, newpath string) *dispatch.Operation[struct{}] {
	return dispatch.Submit(ctx, f.pool, func() (struct{}, error) {
		return struct{}{}, f.Link(oldpath, newpath)
	})
}

// SymlinkAsync is the non-blocking variant of [Handler.Symlink].
func (f *Handler) SymlinkAsync(ctx context.Context, oldpath, newpath string) *dispatch.Operation[struct{}] {
	return dispatch.Submit(ctx, f.pool, func() (struct{}, error) {
		return struct{}{}, f.Symlink(oldpath, newpath)
	})
}

// ReadlinkAsync is the non-blocking variant of [Handler.Readlink].
func (f *Handler) ReadlinkAsync(ctx context.Context, path string) *dispatch.Operation[string] {
	return dispatch.Submit(ctx, f.pool, func() (string, error) {
		return f.Readlink(path)
	})
}

// RealpathAsync is the non-blocking variant of [Handler.Realpath].
func (f *Handler) RealpathAsync(ctx context.Context, path string, overrides map[string]string) *dispatch.Operation[string] {
	return dispatch.Submit(ctx, f.pool, func() (string, error) {
		return f.Realpath(path, overrides)
	})
}
