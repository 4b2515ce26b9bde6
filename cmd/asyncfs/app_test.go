package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/soyuka/asyncfs/internal/configuration"
	"github.com/soyuka/asyncfs/internal/dispatch"
	"github.com/soyuka/asyncfs/internal/fileio"
	"github.com/soyuka/asyncfs/internal/filesystem"
	"github.com/soyuka/asyncfs/internal/schema"
	"github.com/soyuka/asyncfs/internal/watch"
	"github.com/stretchr/testify/require"
)

func newTestApp() *App {
	osProvider := &schema.OS{}
	unixProvider := &schema.Unix{}
	pool := dispatch.NewPool(2)

	config := &configuration.Config{
		MaxWorkers: 2,
		Encoding:   schema.EncodingUTF8,
	}

	return NewApp(config,
		filesystem.NewHandler(pool, osProvider, unixProvider),
		fileio.NewHandler(pool, osProvider),
		watch.NewHandler(unixProvider),
	)
}

func TestRun_Fail_NoCommand(t *testing.T) {
	t.Parallel()

	app := newTestApp()

	err := app.Run(context.Background(), nil)
	require.Error(t, err, "an error should occur")
	require.ErrorIs(t, err, ErrNoCommand)
}

func TestRun_Fail_UnknownCommand(t *testing.T) {
	t.Parallel()

	app := newTestApp()

	err := app.Run(context.Background(), []string{"frobnicate"})
	require.Error(t, err, "an error should occur")
	require.ErrorIs(t, err, ErrUnknownCommand)
}

func TestRun_MkdirRmdir(t *testing.T) {
	t.Parallel()

	app := newTestApp()
	path := filepath.Join(t.TempDir(), "newdir")

	require.NoError(t, app.Run(context.Background(), []string{"mkdir", path}))
	require.NoError(t, app.Run(context.Background(), []string{"rmdir", path}))
}

func TestRun_CopyRemove(t *testing.T) {
	t.Parallel()

	app := newTestApp()
	dir := t.TempDir()

	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")

	require.NoError(t, os.WriteFile(src, []byte("data"), 0o644))

	require.NoError(t, app.Run(context.Background(), []string{"cp", src, dst}))

	data, err := os.ReadFile(dst)
	require.NoError(t, err, "no error should occur")
	require.Equal(t, []byte("data"), data)

	require.NoError(t, app.Run(context.Background(), []string{"rm", dst}))

	_, err = os.Stat(dst)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun_Fail_WrongArguments(t *testing.T) {
	t.Parallel()

	app := newTestApp()

	err := app.Run(context.Background(), []string{"stat"})
	require.Error(t, err, "an error should occur")
	require.ErrorIs(t, err, ErrWrongArguments)
}
