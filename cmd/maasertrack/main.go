package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"maasertrack/internal/amqp"
	"maasertrack/internal/config"
	apphttp "maasertrack/internal/http"
	"maasertrack/internal/log"
	"maasertrack/internal/persist"
	"maasertrack/internal/services"
	"maasertrack/internal/storage"
	"maasertrack/internal/store"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", log.FieldError, err)
		os.Exit(1)
	}

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
		logger.Info("Initialized SQLite backend", "path", cfg.SQLiteDBPath)
	default:
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			logger.Error("Failed to create data directory", log.FieldError, err, "dir", cfg.DataDir)
			os.Exit(1)
		}
		personalSnaps = persist.NewFile[persist.PersonalSnapshot](cfg.PersonalSnapshotPath())
		businessSnaps = persist.NewFile[persist.BusinessSnapshot](cfg.BusinessSnapshotPath())
		logger.Info("Initialized file backend", "dir", cfg.DataDir)
	}

	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to connect to AMQP", log.FieldError, err)
			os.Exit(1)
		}
		defer client.Close()
		amqpClient = client
		logger.Info("Connected to AMQP", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	}

	personal := services.NewPersonalService(store.NewPersonal(), personalSnaps, amqpClient)
	business := services.NewBusinessService(store.NewBusiness(), businessSnaps, amqpClient)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := personal.Load(ctx); err != nil {
		logger.Error("Failed to load personal ledger", log.FieldError, err)
		os.Exit(1)
	}
	if err := business.Load(ctx); err != nil {
		logger.Error("Failed to load business ledger", log.FieldError, err)
		os.Exit(1)
	}

	srv := apphttp.NewServer(":"+cfg.Port, personal, business)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting maasertrack server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
