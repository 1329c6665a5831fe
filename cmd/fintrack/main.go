package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/backend"
	"fintrack/internal/cache"
	"fintrack/internal/cli"
	"fintrack/internal/config"
	"fintrack/internal/core"
	"fintrack/internal/finance"
	apphttp "fintrack/internal/http"
	"fintrack/internal/log"
	"fintrack/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger)
	logger = cli.SetupLogger(cfg.LogLevel)
	appLogger := logger.WithComponent(log.ComponentApp)

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

	repo := finance.NewRepository(res.Store, cfg.StorageKey, logger)

	var publisher services.EventPublisher
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
		if err != nil {
			appLogger.Error("Failed to initialize AMQP client", log.FieldError, err)
			os.Exit(1)
		}
		publisher = amqpClient
	} else {
		appLogger.Info("AMQP disabled - change events will not be published")
	}

	summaries := cache.NewLoader(cache.NewLRUCache[core.FinanceSummary](cfg.SummaryCacheSize, cfg.SummaryCacheTTL))
	cacheManager := cache.NewManager(logger)
	cacheManager.Register(summaries)

	svc := services.NewFinanceService(repo, services.Options{
		Publisher:    publisher,
		SummaryCache: summaries,
		Logger:       logger,
	})

	srv := apphttp.NewServer(":"+cfg.Port, svc, apphttp.Options{
		Logger:             logger,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		Ready:              res.Ping,
	})

	ctx, done := cli.GracefulShutdown(appLogger, 30*time.Second, func(ctx context.Context) {
		if err := srv.Shutdown(ctx); err != nil {
			appLogger.Error("Server shutdown error", log.FieldError, err)
		}
		cacheManager.Stop()
		if amqpClient != nil {
			if err := amqpClient.Close(); err != nil {
				appLogger.Error("Failed to close AMQP client", log.FieldError, err)
			}
		}
		if err := res.Close(); err != nil {
			appLogger.Error("Failed to close storage backend", log.FieldError, err)
		}
	})
	cacheManager.StartCleanup(ctx, time.Minute)

	appLogger.Info("Starting fintrack server",
		"port", cfg.Port,
		"backend", backendCfg.Type,
		"amqp", amqpClient != nil)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		appLogger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-done
	appLogger.Info("Server stopped gracefully")
}
