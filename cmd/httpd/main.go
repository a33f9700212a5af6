// Command httpd runs the taxonomy mapper HTTP service.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/casemark/taxonomy-mapper/internal/api"
	"github.com/casemark/taxonomy-mapper/internal/classifier"
	"github.com/casemark/taxonomy-mapper/internal/confidence"
	"github.com/casemark/taxonomy-mapper/internal/config"
	"github.com/casemark/taxonomy-mapper/internal/logging"
	"github.com/casemark/taxonomy-mapper/internal/mapper"
	"github.com/casemark/taxonomy-mapper/internal/processor"
	"github.com/casemark/taxonomy-mapper/internal/storage"
	"github.com/casemark/taxonomy-mapper/internal/taxonomy"
	"github.com/casemark/taxonomy-mapper/internal/telemetry"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "taxonomy-mapper: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.GetConfigPath("config.yml"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("starting taxonomy mapper",
		"version", cfg.Service.Version,
		"port", cfg.Service.Port,
		"resource_dir", cfg.Taxonomy.ResourceDir,
	)

	tel := telemetry.NewProvider()

	// Load and enrich the taxonomy once at startup; the store is
	// read-only from here on.
	store, err := taxonomy.Build(cfg.Taxonomy.ResourceDir, logger)
	if err != nil {
		return fmt.Errorf("build taxonomy: %w", err)
	}
	tel.SetTaxonomySize(store.Len())
	logger.Info("taxonomy loaded",
		"categories", store.Len(),
		"parents", store.ParentCount(),
	)

	taxonomyMapper := mapper.New(store, logger)
	scorer := confidence.NewScorer(logger)

	classifierInstance := classifier.New(taxonomyMapper, scorer, tel, logger, classifier.Config{
		Version: cfg.Service.Version,
	})

	limiter := processor.NewRateLimiter(cfg.Service.BatchRPS, logger)
	batchProcessor := processor.NewBatchProcessor(classifierInstance, limiter, cfg.Service.Concurrency, logger)

	db, err := storage.Open(cfg.Storage.HistoryPath)
	if err != nil {
		return fmt.Errorf("open history storage: %w", err)
	}
	defer db.Close()

	history := storage.NewHistoryRepository(db)
	if err := history.Migrate(context.Background()); err != nil {
		return fmt.Errorf("migrate history storage: %w", err)
	}
	logger.Info("history storage ready", "path", cfg.Storage.HistoryPath)

	handler := api.NewHandler(classifierInstance, batchProcessor, store, history, cfg.Storage.HistoryLimit, tel, logger)
	server := api.NewServer(handler, tel.Handler(), api.ServerConfig{
		Port:         cfg.Service.Port,
		ReadTimeout:  cfg.Service.ReadTimeout,
		WriteTimeout: cfg.Service.WriteTimeout,
		Debug:        cfg.Service.Debug,
	}, logger)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		logger.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		logger.Info("server stopped gracefully")
	}

	return nil
}
