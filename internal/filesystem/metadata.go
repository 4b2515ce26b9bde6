package filesystem

import (
	"fmt"

	"github.com/soyuka/asyncfs/internal/schema"
	"golang.org/x/sys/unix"
)

// Stat returns a metadata snapshot for path, resolving a terminal symbolic
// link to its ultimate target.
func (f *Handler) Stat(path string) (schema.FileStats, error) {
	var stat unix.Stat_t

	if err := f.UnixOps.Stat(path, &stat); err != nil {
		return schema.FileStats{}, fmt.Errorf("(fs-stat) %s: %w", path, Classify(err))
	}

	return schema.StatsFromUnix(&stat), nil
}

// Lstat returns a metadata snapshot for path without following a terminal
// symbolic link; for a non-link path it agrees with [Handler.Stat].
func (f *Handler) Lstat(path string) (schema.FileStats, error) {
	var stat unix.Stat_t

	if err := f.UnixOps.Lstat(path, &stat); err != nil {
		return schema.FileStats{}, fmt.Errorf("(fs-lstat) %s: %w", path, Classify(err))
	}

	return schema.StatsFromUnix(&stat), nil
}

// Fstat returns a metadata snapshot for an open handle.
func (f *Handler) Fstat(handle schema.Handle) (schema.FileStats, error) {
	file, err := f.resolve(handle)
	if err != nil {
		return schema.FileStats{}, err
	}

	var stat unix.Stat_t
	if err := f.UnixOps.Fstat(file.fd, &stat); err != nil {
		return schema.FileStats{}, fmt.Errorf("(fs-fstat) %s: %w", file.path, Classify(err))
	}

	return schema.StatsFromUnix(&stat), nil
}
