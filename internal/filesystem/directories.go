package filesystem

import (
	"fmt"
)

// Mkdir creates a single directory with the given POSIX permission bits. It
// is one atomic operating system operation; creating a directory tree is left
// to the caller's composition.
func (f *Handler) Mkdir(path string, perms uint32) error {
	if err := f.UnixOps.Mkdir(path, perms); err != nil {
		return fmt.Errorf("(fs-mkdir) %s: %w", path, Classify(err))
	}

	return nil
}

// Rmdir removes an empty directory. A non-empty directory fails with the
// generic [ErrIO] classification (ENOTEMPTY).
func (f *Handler) Rmdir(path string) error {
	if err := f.UnixOps.Rmdir(path); err != nil {
		return fmt.Errorf("(fs-rmdir) %s: %w", path, Classify(err))
	}

	return nil
}

// ReadDir returns the entry names of a directory, excluding the self and
// parent entries. The order is whatever the underlying enumeration yields;
// no ordering is guaranteed by this layer.
func (f *Handler) ReadDir(path string) ([]string, error) {
	entries, err := f.OSOps.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("(fs-readdir) %s: %w", path, Classify(err))
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	return names, nil
}
