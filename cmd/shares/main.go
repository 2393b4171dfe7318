package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/sec-shares-service/internal/adapter/edgar"
	httpadapter "github.com/couchcryptid/sec-shares-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/sec-shares-service/internal/adapter/kafka"
	"github.com/couchcryptid/sec-shares-service/internal/config"
	"github.com/couchcryptid/sec-shares-service/internal/observability"
	"github.com/couchcryptid/sec-shares-service/internal/pipeline"
	"github.com/couchcryptid/sec-shares-service/internal/view"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		slog.Error("failed to load .env", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	formatter, err := view.NewFormatter(cfg.DisplayLocale)
	if err != nil {
		logger.Error("failed to create formatter", "error", err)
		os.Exit(1)
	}

	// Result publishing is feature-flagged via KAFKA_BROKERS.
	var publisher pipeline.ResultPublisher
	var writer *kafkaadapter.Writer
	if cfg.PublishEnabled() {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		metrics.PublisherEnabled.Set(1)
		logger.Info("result publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaResultsTopic)
	} else {
		logger.Info("result publishing disabled")
	}

	client := edgar.NewClient(cfg.SECBaseURL, cfg.SECUserAgent, metrics, logger)
	p := pipeline.New(client, publisher, cfg.DefaultCIK, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, p, formatter, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
