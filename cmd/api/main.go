package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/hamed0406/pagewatch/internal/config"
	"github.com/hamed0406/pagewatch/internal/eventlog"
	"github.com/hamed0406/pagewatch/internal/fetch"
	"github.com/hamed0406/pagewatch/internal/httpapi"
	"github.com/hamed0406/pagewatch/internal/httpapi/middleware"
	"github.com/hamed0406/pagewatch/internal/logging"
	"github.com/hamed0406/pagewatch/internal/monitor"
	"github.com/hamed0406/pagewatch/internal/notify"
	"github.com/hamed0406/pagewatch/internal/registry"
	"github.com/hamed0406/pagewatch/internal/scheduler"
	"github.com/hamed0406/pagewatch/internal/snapshot"
)

func main() {
	cfg := config.FromEnv()
	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	reg, err := registry.NewFileRegistry(cfg.SitesFile)
	if err != nil {
		log.Fatal(err)
	}

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore()

	events, err := eventlog.NewFileLog(cfg.EventLog)
	if err != nil {
		log.Fatal(err)
	}
	defer events.Close()

	fetcher := fetch.NewHTTPFetcher(fetch.Options{
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.FetchTimeout,
	})

	var notifier notify.Notifier
	if s := notify.NewSlack(cfg.SlackWebhook); s != nil {
		notifier = notify.Multi{s}
	}

	runner := monitor.NewRunner(logger, reg, store, fetcher, events, notifier, cfg.Concurrency)

	watcher := scheduler.NewWatcher(logger, runner, cfg.CheckInterval)
	go watcher.Run(ctx)

	keys := middleware.Keys{Public: cfg.PublicAPIKeys, Admin: cfg.AdminAPIKeys}
	api := httpapi.NewServer(logger, reg, runner, keys, cfg.RateLimitRPM, cfg.RateBurst)

	logger.Info("api_listen",
		zap.String("addr", cfg.Addr),
		zap.String("snapshot_backend", cfg.SnapshotBackend),
	)
	if err := http.ListenAndServe(cfg.Addr, api.Router()); err != nil {
		log.Fatal(err)
	}
}

func openStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (snapshot.Store, func(), error) {
	switch cfg.SnapshotBackend {
	case "memory":
		return snapshot.NewMemoryStore(), func() {}, nil
	case "sqlite":
		s, err := snapshot.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case "postgres":
		s, err := snapshot.NewPostgresStore(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		s, err := snapshot.NewFileStore(cfg.SnapshotDir)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	}
}
