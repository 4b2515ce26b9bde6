package filesystem

import (
	"errors"
	"fmt"
	"io/fs"

	"golang.org/x/sys/unix"
)

var (
	// ErrNotFound is an error that occurs when a path does not exist.
	ErrNotFound = errors.New("no such file or directory")

	// ErrAlreadyExists is an error that occurs when a path unexpectedly
	// exists, such as on an exclusive-create open of an existing file.
	ErrAlreadyExists = errors.New("file already exists")

	// ErrPermissionDenied is an error that occurs on an access-control
	// rejection by the operating system.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotADirectory is an error that occurs when a path component that
	// must be a directory is in fact not one.
	ErrNotADirectory = errors.New("not a directory")

	// ErrIsADirectory is an error that occurs when a file operation is
	// attempted on a directory.
	ErrIsADirectory = errors.New("is a directory")

	// ErrInvalidHandle is an error that occurs when a handle is used after
	// close, closed twice or was never issued by this layer.
	ErrInvalidHandle = errors.New("invalid file handle")

	// ErrInvalidArgument is an error that occurs when an argument is outside
	// of its documented domain, such as an unknown open flag.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInterrupted is an error that occurs when a system call was
	// interrupted before completing.
	ErrInterrupted = errors.New("interrupted system call")

	// ErrIO is the generic input/output error, covering every operating
	// system failure without a more specific classification.
	ErrIO = errors.New("input/output error")
)

// Classify normalizes an operating system error into the uniform error
// taxonomy of the layer. The returned error wraps both the taxonomy sentinel
// and the underlying error, so [errors.Is] matches against either. Packages
// layered on top of the file access layer use it to keep their operating
// system failures in the same taxonomy.
func Classify(err error) error {
	var errno unix.Errno
	if errors.As(err, &errno) {
		switch errno {
		case unix.ENOENT:
			return fmt.Errorf("%w: %w", ErrNotFound, err)
		case unix.EEXIST:
			return fmt.Errorf("%w: %w", ErrAlreadyExists, err)
		case unix.EACCES, unix.EPERM:
			return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
		case unix.ENOTDIR:
			return fmt.Errorf("%w: %w", ErrNotADirectory, err)
		case unix.EISDIR:
			return fmt.Errorf("%w: %w", ErrIsADirectory, err)
		case unix.EBADF:
			return fmt.Errorf("%w: %w", ErrInvalidHandle, err)
		case unix.EINVAL:
			return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
		case unix.EINTR:
			return fmt.Errorf("%w: %w", ErrInterrupted, err)
		}
	}

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, fs.ErrExist):
		return fmt.Errorf("%w: %w", ErrAlreadyExists, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	case errors.Is(err, fs.ErrInvalid):
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return fmt.Errorf("%w: %w", ErrIO, err)
}
