package fileio

import "errors"

var (
	// ErrHashMismatch is an error that occurs when there is a source and
	// destination checksum mismatch after a copy, which usually points at
	// underlying transfer or hardware issues.
	ErrHashMismatch = errors.New("hash mismatch")

	// ErrCopyExists is an error that occurs when the verified intermediate
	// file is to be renamed to its final filename, but that final filename
	// already exists.
	ErrCopyExists = errors.New("copy destination already exists")
)
