package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/soyuka/asyncfs/internal/configuration"
	"github.com/soyuka/asyncfs/internal/fileio"
	"github.com/soyuka/asyncfs/internal/filesystem"
	"github.com/soyuka/asyncfs/internal/schema"
	"github.com/soyuka/asyncfs/internal/watch"
)

const dirPerms = 0o755

type App struct {
	config       *configuration.Config
	fsHandler    *filesystem.Handler
	ioHandler    *fileio.Handler
	watchHandler *watch.Handler
}

func NewApp(config *configuration.Config,
	fsHandler *filesystem.Handler,
	ioHandler *fileio.Handler,
	watchHandler *watch.Handler,
) *App {
	return &App{
		config:       config,
		fsHandler:    fsHandler,
		ioHandler:    ioHandler,
		watchHandler: watchHandler,
	}
}

func (app *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("(app) %w", ErrNoCommand)
	}

	command, args := args[0], args[1:]

	switch command {
	case "stat":
		return app.Stat(ctx, args)
	case "ls":
		return app.List(ctx, args)
	case "cat":
		return app.Cat(ctx, args)
	case "cp":
		return app.Copy(ctx, args)
	case "rm":
		return app.Remove(ctx, args)
	case "mkdir":
		return app.Mkdir(ctx, args)
	case "rmdir":
		return app.Rmdir(ctx, args)
	case "watch":
		return app.Watch(ctx, args)
	case "watchfile":
		return app.WatchFile(ctx, args)
	default:
		return fmt.Errorf("(app) %w: %s", ErrUnknownCommand, command)
	}
}

func (app *App) Stat(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("(app-stat) %w: stat <path>", ErrWrongArguments)
	}

	stats, err := app.fsHandler.LstatAsync(ctx, args[0]).Await(ctx)
	if err != nil {
		return fmt.Errorf("(app-stat) %w", err)
	}

	fmt.Printf("dev:    %d\n", stats.Dev)
	fmt.Printf("inode:  %d\n", stats.Inode)
	fmt.Printf("mode:   %o\n", stats.Mode)
	fmt.Printf("nlink:  %d\n", stats.Nlink)
	fmt.Printf("owner:  %d:%d\n", stats.UID, stats.GID)
	fmt.Printf("size:   %s (%d blocks of %d)\n", humanize.IBytes(uint64(stats.Size)), stats.Blocks, stats.BlockSize)
	fmt.Printf("atime:  %s\n", stats.AccessedAt)
	fmt.Printf("mtime:  %s (%s)\n", stats.ModifiedAt, humanize.Time(stats.ModifiedAt))
	fmt.Printf("ctime:  %s\n", stats.ChangedAt)

	if stats.IsSymlink() {
		target, err := app.fsHandler.Readlink(args[0])
		if err != nil {
			return fmt.Errorf("(app-stat) %w", err)
		}
		fmt.Printf("target: %s\n", target)
	}

	return nil
}

func (app *App) List(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("(app-ls) %w: ls <path>", ErrWrongArguments)
	}

	names, err := app.fsHandler.ReadDirAsync(ctx, args[0]).Await(ctx)
	if err != nil {
		return fmt.Errorf("(app-ls) %w", err)
	}

	for _, name := range names {
		fmt.Println(name)
	}

	return nil
}

func (app *App) Cat(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("(app-cat) %w: cat <path>", ErrWrongArguments)
	}

	data, err := app.ioHandler.ReadFileAsync(ctx, args[0]).Await(ctx)
	if err != nil {
		return fmt.Errorf("(app-cat) %w", err)
	}

	if _, err := os.Stdout.Write(data); err != nil {
		return fmt.Errorf("(app-cat) %w", err)
	}

	return nil
}

func (app *App) Copy(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("(app-cp) %w: cp <src> <dst>", ErrWrongArguments)
	}

	stats, err := app.fsHandler.Stat(args[0])
	if err != nil {
		return fmt.Errorf("(app-cp) %w", err)
	}

	op := app.ioHandler.CopyFileAsync(ctx, args[0], args[1], os.FileMode(stats.Perms()))
	if _, err := op.Await(ctx); err != nil {
		return fmt.Errorf("(app-cp) %w", err)
	}

	return nil
}

func (app *App) Remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("(app-rm) %w: rm <path>", ErrWrongArguments)
	}

	if _, err := app.fsHandler.UnlinkAsync(ctx, args[0]).Await(ctx); err != nil {
		return fmt.Errorf("(app-rm) %w", err)
	}

	return nil
}

func (app *App) Mkdir(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("(app-mkdir) %w: mkdir <path>", ErrWrongArguments)
	}

	if _, err := app.fsHandler.MkdirAsync(ctx, args[0], dirPerms).Await(ctx); err != nil {
		return fmt.Errorf("(app-mkdir) %w", err)
	}

	return nil
}

func (app *App) Rmdir(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("(app-rmdir) %w: rmdir <path>", ErrWrongArguments)
	}

	if _, err := app.fsHandler.RmdirAsync(ctx, args[0]).Await(ctx); err != nil {
		return fmt.Errorf("(app-rmdir) %w", err)
	}

	return nil
}

func (app *App) Watch(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("(app-watch) %w: watch <path>", ErrWrongArguments)
	}

	sub, err := app.watchHandler.Watch(ctx, args[0], watch.Options{
		Recursive: recursive != nil && *recursive,
		Encoding:  app.config.Encoding,
	})
	if err != nil {
		return fmt.Errorf("(app-watch) %w", err)
	}
	defer sub.Close() //nolint:errcheck

	for event := range sub.Events() {
		if event.Kind == watch.KindError {
			return fmt.Errorf("(app-watch) %w", event.Err)
		}

		name := event.Name
		if app.config.Encoding == schema.EncodingRaw {
			name = fmt.Sprintf("%q", event.RawName)
		}
		fmt.Printf("%s\t%s\n", event.Kind, name)
	}

	return nil
}

func (app *App) WatchFile(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("(app-watchfile) %w: watchfile <path>", ErrWrongArguments)
	}

	sub, err := app.watchHandler.WatchFile(ctx, args[0], app.config.PollInterval)
	if err != nil {
		return fmt.Errorf("(app-watchfile) %w", err)
	}
	defer sub.Close() //nolint:errcheck

	for pair := range sub.Events() {
		if pair.Err != nil {
			return fmt.Errorf("(app-watchfile) %w", pair.Err)
		}
		if pair.Current.IsZero() {
			fmt.Printf("gone\t(was %d bytes, mtime %s)\n", pair.Previous.Size, pair.Previous.ModifiedAt)

			continue
		}
		fmt.Printf("changed\t%d -> %d bytes, mtime %s\n", pair.Previous.Size, pair.Current.Size, pair.Current.ModifiedAt)
	}

	return nil
}
