package filesystem

import (
	"fmt"
	"path/filepath"
)

// Realpath resolves path to a canonical absolute path with all symbolic links
// expanded. The overrides map is a caller-provided resolution cache: a hit is
// only an optimization hint and is verified against the filesystem, so a stale
// entry can never mask a real [ErrNotFound]. Pass nil for no cache.
func (f *Handler) Realpath(path string, overrides map[string]string) (string, error) {
	if cached, exists := overrides[path]; exists {
		if _, err := f.OSOps.Stat(cached); err == nil {
			return cached, nil
		}
	}

	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", fmt.Errorf("(fs-realpath) %s: %w", path, Classify(err))
	}

	absolute, err := filepath.Abs(resolved)
	if err != nil {
		return "", fmt.Errorf("(fs-realpath) %s: %w", path, Classify(err))
	}

	return absolute, nil
}
