// Package schema implements shared structures and syscall providers
// that are used among the diverse packages of the application.
package schema

import (
	"time"

	"golang.org/x/sys/unix"
)

// Handle is an opaque identifier for an open file resource. It is issued by an
// open operation and remains valid until the first close; any use after that
// fails with an invalid handle error.
type Handle uint64

// OpenFlag describes the access mode of an open operation. It is a closed
// enumeration; anything outside of it is rejected as an invalid argument.
type OpenFlag int

const (
	// FlagRead opens an existing file for reading.
	FlagRead OpenFlag = iota

	// FlagWrite opens for writing, creating or truncating the file.
	FlagWrite

	// FlagWriteExclusive opens for writing, creating the file and failing if
	// it already exists.
	FlagWriteExclusive

	// FlagAppend opens for appending, creating the file if needed.
	FlagAppend

	// FlagReadWrite opens an existing file for reading and writing.
	FlagReadWrite

	// FlagReadWriteExclusive opens for reading and writing, creating the file
	// and failing if it already exists.
	FlagReadWriteExclusive

	// FlagAppendRead opens for reading and appending, creating the file if
	// needed.
	FlagAppendRead
)

// Appends reports whether the flag puts the handle into append mode, in which
// case any supplied write offset is ignored and writes happen at end-of-file.
func (f OpenFlag) Appends() bool {
	return f == FlagAppend || f == FlagAppendRead
}

// Readable reports whether the flag allows reading from the handle.
func (f OpenFlag) Readable() bool {
	switch f {
	case FlagRead, FlagReadWrite, FlagReadWriteExclusive, FlagAppendRead:
		return true
	default:
		return false
	}
}

func (f OpenFlag) String() string {
	switch f {
	case FlagRead:
		return "r"
	case FlagWrite:
		return "w"
	case FlagWriteExclusive:
		return "wx"
	case FlagAppend:
		return "a"
	case FlagReadWrite:
		return "r+"
	case FlagReadWriteExclusive:
		return "wx+"
	case FlagAppendRead:
		return "a+"
	default:
		return "invalid"
	}
}

// FilenameEncoding controls how filenames of watch events are delivered.
type FilenameEncoding int

const (
	// EncodingUTF8 delivers filenames as text (the default).
	EncodingUTF8 FilenameEncoding = iota

	// EncodingRaw additionally delivers filenames as raw byte sequences.
	EncodingRaw
)

// FileStats is an immutable metadata snapshot of a path or handle, taken at
// the moment of the respective stat call. Snapshots from different calls are
// never synchronized; comparisons are up to the caller.
type FileStats struct {
	Dev        uint64
	Inode      uint64
	Mode       uint32
	Nlink      uint64
	UID        uint32
	GID        uint32
	Rdev       uint64
	Size       int64
	BlockSize  int64
	Blocks     int64
	AccessedAt time.Time
	ModifiedAt time.Time
	ChangedAt  time.Time
}

// IsDir reports whether the snapshot describes a directory.
func (s FileStats) IsDir() bool {
	return (s.Mode & unix.S_IFMT) == unix.S_IFDIR
}

// IsSymlink reports whether the snapshot describes a symbolic link.
func (s FileStats) IsSymlink() bool {
	return (s.Mode & unix.S_IFMT) == unix.S_IFLNK
}

// IsZero reports whether the snapshot is the zero value, as delivered by a
// polling watch for a path that has ceased to exist.
func (s FileStats) IsZero() bool {
	return s == FileStats{}
}

// Perms returns the permission bits of the snapshot, including the
// sticky/setuid/setgid bits.
func (s FileStats) Perms() uint32 {
	return s.Mode & 0o7777
}

// StatsFromUnix converts a raw [unix.Stat_t] into a [FileStats] snapshot.
func StatsFromUnix(stat *unix.Stat_t) FileStats {
	return FileStats{
		Dev:        stat.Dev,
		Inode:      stat.Ino,
		Mode:       stat.Mode,
		Nlink:      stat.Nlink,
		UID:        stat.Uid,
		GID:        stat.Gid,
		Rdev:       stat.Rdev,
		Size:       stat.Size,
		BlockSize:  stat.Blksize,
		Blocks:     stat.Blocks,
		AccessedAt: time.Unix(stat.Atim.Sec, stat.Atim.Nsec),
		ModifiedAt: time.Unix(stat.Mtim.Sec, stat.Mtim.Nsec),
		ChangedAt:  time.Unix(stat.Ctim.Sec, stat.Ctim.Nsec),
	}
}
