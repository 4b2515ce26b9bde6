package schema

import (
	"os"

	"golang.org/x/sys/unix"
)

// OS is an implementation wrapping operating system functions.
type OS struct{}

// ReadDir wraps around [os.ReadDir].
func (*OS) ReadDir(name string) ([]os.DirEntry, error) {
	return os.ReadDir(name)
}

// Readlink wraps around [os.Readlink].
func (*OS) Readlink(name string) (string, error) {
	return os.Readlink(name)
}

// Open wraps around [os.Open].
func (*OS) Open(name string) (*os.File, error) {
	return os.Open(name)
}

// OpenFile wraps around [os.OpenFile].
func (*OS) OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(name, flag, perm)
}

// Remove wraps around [os.Remove].
func (*OS) Remove(name string) error {
	return os.Remove(name)
}

// Rename wraps around [os.Rename].
func (*OS) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

// Stat wraps around [os.Stat].
func (*OS) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// ReadFile wraps around [os.ReadFile].
func (*OS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// Unix is an implementation wrapping Unix operating system functions.
type Unix struct{}

// Open wraps around [unix.Open].
func (*Unix) Open(path string, mode int, perm uint32) (int, error) {
	return unix.Open(path, mode, perm)
}

// Close wraps around [unix.Close].
func (*Unix) Close(fd int) error {
	return unix.Close(fd)
}

// Read wraps around [unix.Read].
func (*Unix) Read(fd int, p []byte) (int, error) {
	return unix.Read(fd, p)
}

// Pread wraps around [unix.Pread].
func (*Unix) Pread(fd int, p []byte, offset int64) (int, error) {
	return unix.Pread(fd, p, offset)
}

// Write wraps around [unix.Write].
func (*Unix) Write(fd int, p []byte) (int, error) {
	return unix.Write(fd, p)
}

// Pwrite wraps around [unix.Pwrite].
func (*Unix) Pwrite(fd int, p []byte, offset int64) (int, error) {
	return unix.Pwrite(fd, p, offset)
}

// Fstat wraps around [unix.Fstat].
func (*Unix) Fstat(fd int, stat *unix.Stat_t) error {
	return unix.Fstat(fd, stat)
}

// Stat wraps around [unix.Stat].
func (*Unix) Stat(path string, stat *unix.Stat_t) error {
	return unix.Stat(path, stat)
}

// Lstat wraps around [unix.Lstat].
func (*Unix) Lstat(path string, stat *unix.Stat_t) error {
	return unix.Lstat(path, stat)
}

// Mkdir wraps around [unix.Mkdir].
func (*Unix) Mkdir(path string, mode uint32) error {
	return unix.Mkdir(path, mode)
}

// Rmdir wraps around [unix.Rmdir].
func (*Unix) Rmdir(path string) error {
	return unix.Rmdir(path)
}

// Unlink wraps around [unix.Unlink].
func (*Unix) Unlink(path string) error {
	return unix.Unlink(path)
}

// Rename wraps around [unix.Rename].
func (*Unix) Rename(oldpath, newpath string) error {
	return unix.Rename(oldpath, newpath)
}

// Link wraps around [unix.Link].
func (*Unix) Link(oldpath, newpath string) error {
	return unix.Link(oldpath, newpath)
}

// Symlink wraps around [unix.Symlink].
func (*Unix) Symlink(oldpath, newpath string) error {
	return unix.Symlink(oldpath, newpath)
}

// Fsync wraps around [unix.Fsync].
func (*Unix) Fsync(fd int) error {
	return unix.Fsync(fd)
}
