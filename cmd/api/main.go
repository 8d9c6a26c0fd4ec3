package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/oasis/talentboard/internal/blob"
	"github.com/oasis/talentboard/internal/cache"
	"github.com/oasis/talentboard/internal/catalog"
	"github.com/oasis/talentboard/internal/config"
	httpapi "github.com/oasis/talentboard/internal/http"
	"github.com/oasis/talentboard/internal/logger"
	"github.com/oasis/talentboard/internal/notify"
	"github.com/oasis/talentboard/internal/repository"
	"github.com/oasis/talentboard/internal/service"
)

func main() {
	if err := config.LoadDotEnv(".env", ".env.local"); err != nil {
		panic(err)
	}
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = log.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore := setupStore(ctx, cfg, log)
	defer closeStore()

	if err := store.SeedJobs(ctx, catalog.SeedJobs()); err != nil {
		log.Warn("seeding job catalog failed", zap.Error(err))
	}

	var snapshotCache catalog.SnapshotCache
	if cfg.RedisAddr != "" {
		catalogCache, err := cache.NewCatalogCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.CatalogCacheTTL, log)
		if err != nil {
			log.Warn("redis unavailable, catalog cache disabled", zap.Error(err))
		} else {
			defer catalogCache.Close()
			snapshotCache = catalogCache
		}
	}

	var catalogSource catalog.Source = store
	if cfg.CatalogSourceURL != "" {
		catalogSource = catalog.NewHTTPSource(cfg.CatalogSourceURL, 10*time.Second)
	}
	jobCatalog := catalog.New(catalogSource, snapshotCache, cfg.CatalogRefreshInterval, log)
	go jobCatalog.Start(ctx)

	webhook := notify.NewWebhook(notify.Config{
		NewApplicationURL: cfg.WebhookNewApplicationURL,
		StatusUpdateURL:   cfg.WebhookStatusUpdateURL,
		QueueSize:         cfg.NotifyQueueSize,
		MaxAttempts:       cfg.NotifyMaxAttempts,
	}, log)
	go webhook.Start(ctx)

	blobs, err := blob.NewLocalFS(cfg.MediaRoot)
	if err != nil {
		log.Fatal("media root unavailable", zap.Error(err))
	}

	board := service.NewBoardService(jobCatalog)
	submissions := service.NewSubmissionService(store, blobs, webhook, cfg.PublicOrigin, log)
	trackerSvc := service.NewTrackerService(store, webhook, cfg.ReviewerEmail, log)

	router := httpapi.NewRouter(cfg, board, submissions, trackerSvc, log)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("api listening", zap.String("addr", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	log.Info("api stopped")
}

// setupStore picks the persistence backend: Postgres when DATABASE_URL is
// set, SQLite when SQLITE_PATH is, in-memory otherwise. A backend that fails
// to open falls through to the next.
func setupStore(ctx context.Context, cfg config.Config, log *zap.Logger) (repository.Store, func()) {
	if cfg.DatabaseURL != "" {
		store, err := repository.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err == nil {
			log.Info("using postgres store")
			return store, store.Close
		}
		log.Warn("postgres unavailable", zap.Error(err))
	}

	if cfg.SQLitePath != "" {
		store, err := repository.NewSQLiteStore(cfg.SQLitePath)
		if err == nil {
			log.Info("using sqlite store", zap.String("path", cfg.SQLitePath))
			return store, func() { _ = store.Close() }
		}
		log.Warn("sqlite unavailable", zap.Error(err))
	}

	log.Info("using in-memory store")
	return repository.NewMemoryStore(), func() {}
}
