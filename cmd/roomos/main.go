package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/roomos/internal/client/api"
	"github.com/iudanet/roomos/internal/client/cli"
	"github.com/iudanet/roomos/internal/client/netwatch"
	"github.com/iudanet/roomos/internal/client/session"
	"github.com/iudanet/roomos/internal/client/storage"
	"github.com/iudanet/roomos/internal/client/storage/boltdb"
	"github.com/iudanet/roomos/internal/client/storage/sqlitedb"
	"github.com/iudanet/roomos/internal/client/sync"
	"github.com/iudanet/roomos/internal/config"
	"github.com/iudanet/roomos/internal/logging"
	"github.com/iudanet/roomos/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	configPath := flag.String("config", "", "Path to config file (json, toml or yaml)")

	flag.Parse()

	if *showVersion {
		printVersion()
		return nil
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage(os.Stdout)
		os.Exit(1)
	}
	command := args[0]

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}

	// Контекст живет до SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to open local store: %w", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Error("failed to close local store", "error", cerr)
		}
	}()

	recorder := startMetrics(cfg.Metrics, logger)

	watcher := netwatch.NewWatcher(cfg.Server.BaseURL, logger,
		netwatch.WithInterval(cfg.Sync.ProbeInterval))

	apiClient := api.NewClient(cfg.Server.BaseURL, store, logger,
		api.WithTimeout(cfg.Server.Timeout),
		api.WithOnlineProbe(watcher.Online),
		api.WithMetrics(recorder),
		api.WithSessionExpiredHook(func() {
			fmt.Fprintln(os.Stderr, "Session expired. Please login again.")
		}),
	)

	sessions := session.NewManager(store)

	engine := sync.NewEngine(store, apiClient, sessions, watcher.Online, logger,
		sync.WithMetrics(recorder))

	if command == "watch" {
		return runWatch(ctx, cfg, engine, watcher, logger)
	}

	app := cli.New(apiClient, sessions, store, engine, os.Stdout)
	if err := app.Run(ctx, command, args[1:]); err != nil {
		return err
	}
	return nil
}

// runWatch держит процесс живым и разгружает очередь при появлении связи
func runWatch(ctx context.Context, cfg config.Config, engine *sync.Engine, watcher *netwatch.Watcher, logger *slog.Logger) error {
	logger.Info("watching connectivity", "probe_interval", cfg.Sync.ProbeInterval.String())
	states := watcher.Watch(ctx)
	engine.Run(ctx, states, cfg.Sync.StartupDelay)
	return nil
}

// openStorage выбирает драйвер локального хранилища по конфигурации
func openStorage(ctx context.Context, cfg config.StorageConfig) (storage.Storage, error) {
	switch cfg.Driver {
	case "sqlite":
		return sqlitedb.New(ctx, cfg.Path)
	default:
		return boltdb.New(ctx, cfg.Path)
	}
}

// startMetrics поднимает promhttp-листенер, если он включен в конфигурации
func startMetrics(cfg config.MetricsConfig, logger *slog.Logger) *metrics.Recorder {
	if cfg.Listen == "" {
		return nil
	}

	recorder := metrics.NewRecorder(prometheus.NewRegistry())
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", recorder.Handler())
		if err := http.ListenAndServe(cfg.Listen, mux); err != nil {
			logger.Error("metrics listener failed", "error", err)
		}
	}()
	return recorder
}

func printVersion() {
	fmt.Printf("RoomOS Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
