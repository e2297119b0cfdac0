package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"maasertrack/internal/amqp"
	"maasertrack/internal/config"
	"maasertrack/internal/log"
	"maasertrack/internal/persist"
	"maasertrack/internal/sheets/google"
	"maasertrack/internal/storage"
	"maasertrack/internal/worker"
)

func main() {
	_ = godotenv.Load()

	logger := log.New(log.Config{
		Level:     log.DefaultConfig().Level,
		Component: log.ComponentWorker,
	})
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", log.FieldError, err)
		os.Exit(1)
	}
	if !cfg.SheetsConfigured() {
		logger.Error("Google Sheets credentials are required for the mirror worker")
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the mirror worker")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var (
		personalSnaps persist.PersonalStore
		businessSnaps persist.BusinessStore
	)
	switch cfg.DataBackend {
	case "sqlite":
		repo, err := storage.NewRepository(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to open SQLite backend", log.FieldError, err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		defer repo.Close()
		personalSnaps = repo.Personal()
		businessSnaps = repo.Business()
	default:
		personalSnaps = persist.NewFile[persist.PersonalSnapshot](cfg.PersonalSnapshotPath())
		businessSnaps = persist.NewFile[persist.BusinessSnapshot](cfg.BusinessSnapshotPath())
	}

	mirror, err := google.New(ctx, google.Options{
		SpreadsheetID:   cfg.GoogleSpreadsheetID,
		PersonalSheet:   cfg.GooglePersonalSheet,
		BusinessSheet:   cfg.GoogleBusinessSheet,
		CredentialsFile: cfg.GoogleCredentialsFile,
		CredentialsJSON: cfg.GoogleCredentialsJSON,
	})
	if err != nil {
		logger.Error("Failed to initialize Google Sheets mirror", log.FieldError, err)
		os.Exit(1)
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to connect to AMQP", log.FieldError, err)
		os.Exit(1)
	}
	defer client.Close()

	w := worker.New(personalSnaps, businessSnaps, mirror, logger)

	logger.Info("Starting mirror worker",
		"queue", cfg.AMQPQueue,
		"resync_interval", cfg.ResyncInterval.String())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return client.ConsumeRecordSync(gctx, func(msg *amqp.RecordSyncMessage) error {
			return w.HandleMessage(gctx, msg)
		})
	})
	g.Go(func() error {
		return w.RunResync(gctx, cfg.ResyncInterval)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}
