package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/ferry-wait-etl/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/ferry-wait-etl/internal/adapter/kafka"
	"github.com/couchcryptid/ferry-wait-etl/internal/config"
	"github.com/couchcryptid/ferry-wait-etl/internal/domain"
	"github.com/couchcryptid/ferry-wait-etl/internal/observability"
	"github.com/couchcryptid/ferry-wait-etl/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	extractor := domain.NewExtractor(cfg.Terminals)
	logger.Info("terminals configured",
		"terminals", cfg.Terminals.Names(),
		"route_prefix", cfg.Terminals.RoutePrefix(),
		"file", cfg.TerminalsFile,
	)

	dedupe, err := pipeline.NewDeduplicator(cfg.DedupeCacheSize)
	if err != nil {
		logger.Error("failed to create deduplicator", "error", err)
		os.Exit(1)
	}
	if dedupe == nil {
		logger.Info("observation dedupe disabled")
	}

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(extractor, logger)

	p := pipeline.New(reader, transformer, writer, dedupe, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, extractor, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	select {
	case <-done:
	case <-shutdownCtx.Done():
		logger.Warn("pipeline did not stop before shutdown timeout")
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
