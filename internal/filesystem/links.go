package filesystem

import (
	"fmt"
)

// Unlink removes a file or symbolic link.
func (f *Handler) Unlink(path string) error {
	if err := f.UnixOps.Unlink(path); err != nil {
		return fmt.Errorf("(fs-unlink) %s: %w", path, Classify(err))
	}

	return nil
}

// Rename atomically renames oldpath to newpath.
func (f *Handler) Rename(oldpath, newpath string) error {
	if err := f.UnixOps.Rename(oldpath, newpath); err != nil {
		return fmt.Errorf("(fs-rename) %s -> %s: %w", oldpath, newpath, Classify(err))
	}

	return nil
}

// Link creates a hard link at newpath pointing to the inode of oldpath.
func (f *Handler) Link(oldpath, newpath string) error {
	if err := f.UnixOps.Link(oldpath, newpath); err != nil {
		return fmt.Errorf("(fs-link) %s -> %s: %w", oldpath, newpath, Classify(err))
	}

	return nil
}

// Symlink creates a symbolic link at newpath with the target oldpath.
func (f *Handler) Symlink(oldpath, newpath string) error {
	if err := f.UnixOps.Symlink(oldpath, newpath); err != nil {
		return fmt.Errorf("(fs-symlink) %s -> %s: %w", oldpath, newpath, Classify(err))
	}

	return nil
}

// Readlink returns the target of a symbolic link.
func (f *Handler) Readlink(path string) (string, error) {
	target, err := f.OSOps.Readlink(path)
	if err != nil {
		return "", fmt.Errorf("(fs-readlink) %s: %w", path, Classify(err))
	}

	return target, nil
}
