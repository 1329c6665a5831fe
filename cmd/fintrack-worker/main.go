package main

import (
	"context"
	"os"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/backend"
	"fintrack/internal/cli"
	"fintrack/internal/finance"
	"fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/sheets"
	gsheet "fintrack/internal/sheets/google"
	"fintrack/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger)
	logger = cli.SetupLogger(cfg.LogLevel)
	appLogger := logger.WithComponent(log.ComponentApp)

	appLogger.Info("Starting fintrack-worker")

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		appLogger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}
	res, err := backend.NewFactory(logger).Open(context.Background(), backendCfg)
	if err != nil {
		appLogger.Error("Failed to open storage backend", log.FieldError, err, "backend", backendCfg.Type)
		os.Exit(1)
	}
	defer func() {
		if err := res.Close(); err != nil {
			appLogger.Error("Failed to close storage backend", log.FieldError, err)
		}
	}()

	repo := finance.NewRepository(res.Store, cfg.StorageKey, logger)
	// The worker only reads, so its service never publishes.
	svc := services.NewFinanceService(repo, services.Options{Logger: logger})

	var mirror sheets.Mirror
	if cfg.GoogleSpreadsheetID != "" {
		client, err := gsheet.New(context.Background(), cfg.GoogleSpreadsheetID, cfg.GoogleSheetName, logger)
		if err != nil {
			appLogger.Error("Failed to initialize Google Sheets client", log.FieldError, err)
			os.Exit(1)
		}
		mirror = client
	} else {
		appLogger.Info("Google Sheets disabled - no GOOGLE_SPREADSHEET_ID provided")
	}

	var source worker.ChangeSource
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
		if err != nil {
			appLogger.Error("Failed to initialize AMQP client", log.FieldError, err)
			os.Exit(1)
		}
		defer client.Close()
		source = client
	}

	ctx, done := cli.GracefulShutdown(appLogger, 30*time.Second, nil)

	syncWorker := worker.NewSyncWorker(repo, mirror, logger)
	if err := syncWorker.StartupSync(ctx); err != nil {
		appLogger.Error("Startup sync failed", log.FieldError, err)
	}

	runner := worker.NewRunner(source, syncWorker, worker.NewDigest(svc, logger), cfg.DigestSchedule, logger)
	if err := runner.Run(ctx); err != nil {
		appLogger.Error("Worker stopped with error", log.FieldError, err)
		os.Exit(1)
	}

	<-done
	appLogger.Info("Worker stopped gracefully")
}
