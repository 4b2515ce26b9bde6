package fileio

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/zeebo/blake3"
)

//nolint:containedctx
type contextReader struct {
	ctx    context.Context
	reader io.Reader
}

func (cr *contextReader) Read(p []byte) (int, error) {
	select {
	case <-cr.ctx.Done():
		return 0, context.Canceled
	default:
		return cr.reader.Read(p)
	}
}

// CopyFile copies src to dst through an intermediate file, verifying the
// transfer with source and destination checksums before atomically renaming
// into place. A pre-existing dst fails with [ErrCopyExists]; a partial
// transfer leaves no intermediate file behind.
func (i *Handler) CopyFile(ctx context.Context, src, dst string, perm os.FileMode) error {
	var transferComplete bool

	srcFile, err := i.OSOps.Open(src)
	if err != nil {
		return fmt.Errorf("(fileio-copy) failed to open source file: %w", err)
	}
	defer srcFile.Close()

	tmpPath := dst + ".afs"
	defer func() {
		if !transferComplete {
			i.OSOps.Remove(tmpPath) //nolint:errcheck
		}
	}()

	dstFile, err := i.OSOps.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, perm)
	if err != nil {
		return fmt.Errorf("(fileio-copy) failed to open intermediate file %s: %w", tmpPath, err)
	}
	defer dstFile.Close()

	srcHasher := blake3.New()
	dstHasher := blake3.New()

	ctxReader := &contextReader{
		ctx:    ctx,
		reader: io.TeeReader(srcFile, srcHasher),
	}
	multiWriter := io.MultiWriter(dstFile, dstHasher)

	if _, err := io.Copy(multiWriter, ctxReader); err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("(fileio-copy) transfer canceled: %w", err)
		}

		return fmt.Errorf("(fileio-copy) failed to copy file: %w", err)
	}

	if err := dstFile.Sync(); err != nil {
		return fmt.Errorf("(fileio-copy) failed to sync destination fs: %w", err)
	}

	srcChecksum := hex.EncodeToString(srcHasher.Sum(nil))
	dstChecksum := hex.EncodeToString(dstHasher.Sum(nil))

	if srcChecksum != dstChecksum {
		return fmt.Errorf("(fileio-copy) %w: %s (src) != %s (dst)", ErrHashMismatch, srcChecksum, dstChecksum)
	}

	if _, err := i.OSOps.Stat(dst); err == nil {
		return fmt.Errorf("(fileio-copy) %w: %s", ErrCopyExists, dst)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("(fileio-copy) failed to check destination existence: %w", err)
	}

	if err := i.OSOps.Rename(tmpPath, dst); err != nil {
		return fmt.Errorf("(fileio-copy) failed to rename intermediate file to destination file: %w", err)
	}

	transferComplete = true

	return nil
}
