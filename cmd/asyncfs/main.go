package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/soyuka/asyncfs/internal/configuration"
	"github.com/soyuka/asyncfs/internal/dispatch"
	"github.com/soyuka/asyncfs/internal/fileio"
	"github.com/soyuka/asyncfs/internal/filesystem"
	"github.com/soyuka/asyncfs/internal/schema"
	"github.com/soyuka/asyncfs/internal/watch"
)

const (
	stackTraceBufMax = 1 << 24
)

//nolint:gochecknoglobals
var (
	ExitCode = 0
	Version  string

	configFile = flag.String("config", "", "read configuration from this environment file")
	maxWorkers = flag.Int64("workers", 0, "maximum concurrent non-blocking operations (overrides config)")
	rawNames   = flag.Bool("raw", false, "deliver watch filenames as raw bytes")
	recursive  = flag.Bool("recursive", false, "watch subdirectories too (best-effort)")
	pollMs     = flag.Int64("interval", 0, "poll interval for watchfile in milliseconds")
)

func setupLogging() {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
		}),
	))
}

func setupSignalHandlers(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		<-sigChan
		cancel()
	}()

	sigChan2 := make(chan os.Signal, 1)
	signal.Notify(sigChan2, syscall.SIGUSR1)
	go func() {
		for range sigChan2 {
			buf := make([]byte, stackTraceBufMax)
			stacklen := runtime.Stack(buf, true)
			os.Stderr.Write(buf[:stacklen])
		}
	}()
}

func main() {
	defer func() {
		os.Exit(ExitCode)
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	flag.Parse()
	setupLogging()
	setupSignalHandlers(cancel)

	configProvider := &configuration.GodotenvProvider{}
	configHandler := configuration.NewHandler(configProvider)

	var configFiles []string
	if configFile != nil && *configFile != "" {
		configFiles = append(configFiles, *configFile)
	}

	config, err := configHandler.Load(configFiles...)
	if err != nil {
		slog.Error("Failed to read configuration.",
			"err", err,
		)
		ExitCode = 1

		return
	}

	if maxWorkers != nil && *maxWorkers > 0 {
		config.MaxWorkers = *maxWorkers
	}
	if pollMs != nil && *pollMs > 0 {
		config.PollInterval = time.Duration(*pollMs) * time.Millisecond
	}
	if rawNames != nil && *rawNames {
		config.Encoding = schema.EncodingRaw
	}

	osProvider := &schema.OS{}
	unixProvider := &schema.Unix{}

	pool := dispatch.NewPool(config.MaxWorkers)
	fsHandler := filesystem.NewHandler(pool, osProvider, unixProvider)
	ioHandler := fileio.NewHandler(pool, osProvider)
	watchHandler := watch.NewHandler(unixProvider)

	app := NewApp(config, fsHandler, ioHandler, watchHandler)

	if err := app.Run(ctx, flag.Args()); err != nil {
		slog.Error("Command failed.",
			"err", err,
		)
		ExitCode = 1
	}
}
