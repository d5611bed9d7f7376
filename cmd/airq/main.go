package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/air-quality-forecast/internal/adapter/flatfile"
	"github.com/couchcryptid/air-quality-forecast/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/air-quality-forecast/internal/adapter/kafka"
	"github.com/couchcryptid/air-quality-forecast/internal/cli"
	"github.com/couchcryptid/air-quality-forecast/internal/config"
	"github.com/couchcryptid/air-quality-forecast/internal/domain"
	"github.com/couchcryptid/air-quality-forecast/internal/observability"
	"github.com/couchcryptid/air-quality-forecast/internal/pipeline"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	batch := flag.Bool("batch", false, "save the report and skip the interactive menu")
	flag.Parse()

	os.Exit(run(*batch))
}

func run(batch bool) int {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("failed to read .env", "error", err)
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	var publisher pipeline.Publisher
	var kafkaPublisher *kafkaadapter.Publisher
	if cfg.KafkaEnabled() {
		kafkaPublisher = kafkaadapter.NewPublisher(cfg, logger)
		publisher = kafkaPublisher
		logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	p := pipeline.New(
		flatfile.NewHistoricalLoader(cfg.DataDir),
		flatfile.NewClimateLoader(cfg.ClimateFile),
		pipeline.NewAnalyzer(domain.DefaultLimits, logger),
		publisher,
		logger,
		metrics,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var srv *httpadapter.Server
	if cfg.HTTPEnabled() {
		srv = httpadapter.NewServer(cfg.HTTPAddr, p, prometheus.DefaultGatherer, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server error", "error", err)
			}
		}()
	}

	code := 0
	analysis, err := p.Run(ctx)
	switch {
	case err != nil:
		var loadErr *flatfile.LoadError
		if errors.As(err, &loadErr) {
			fmt.Fprintf(os.Stderr, "Could not load %s. Exiting.\n", err)
		}
		logger.Error("analysis failed", "error", err)
		code = 1
	case batch:
		code = saveBatchReport(ctx, cfg, analysis, logger, metrics)
		if srv != nil {
			logger.Info("serving results until interrupted")
			<-ctx.Done()
		}
	default:
		session := cli.NewSession(os.Stdin, os.Stdout, analysis, flatfile.NewReportWriter(cfg.ReportFile), logger, metrics)
		done := make(chan error, 1)
		go func() { done <- session.Run(ctx) }()

		select {
		case err := <-done:
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("session error", "error", err)
				code = 1
			}
		case <-ctx.Done():
			logger.Info("interrupted")
		}
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if srv != nil {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown error", "error", err)
		}
	}
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}
	if cfg.MetricsTextfile != "" {
		if err := observability.WriteTextfile(cfg.MetricsTextfile, prometheus.DefaultGatherer); err != nil {
			logger.Error("metrics textfile write error", "path", cfg.MetricsTextfile, "error", err)
		}
	}

	logger.Info("shutdown complete")
	return code
}

func saveBatchReport(ctx context.Context, cfg *config.Config, analysis domain.Analysis, logger *slog.Logger, metrics *observability.Metrics) int {
	w := flatfile.NewReportWriter(cfg.ReportFile)
	if err := w.SaveReport(ctx, analysis); err != nil {
		metrics.ReportErrors.Inc()
		logger.Error("report save failed", "path", w.Path(), "error", err)
		return 1
	}
	metrics.ReportsWritten.Inc()
	logger.Info("report saved", "path", w.Path())
	return 0
}
