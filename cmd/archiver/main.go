// Command archiver downloads University of Wyoming upper-air soundings for one
// station over a date range and stores each day's report as a text file.
//
// All settings come from environment variables; see internal/config.
//
//	START_DATE=2026-01-22 END_DATE=2026-01-27 STATION_ID=15614 go run ./cmd/archiver
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/sounding-archiver/internal/adapter/filestore"
	httpadapter "github.com/couchcryptid/sounding-archiver/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/sounding-archiver/internal/adapter/kafka"
	"github.com/couchcryptid/sounding-archiver/internal/adapter/uwyo"
	"github.com/couchcryptid/sounding-archiver/internal/config"
	"github.com/couchcryptid/sounding-archiver/internal/observability"
	"github.com/couchcryptid/sounding-archiver/internal/pipeline"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	fetcher := uwyo.NewClient(cfg.FetchTimeout, logger)
	store := filestore.NewStore(cfg.OutputDir, logger)

	var opts []pipeline.Option
	var publisher *kafkaadapter.Publisher
	if cfg.KafkaEnabled() {
		publisher = kafkaadapter.NewPublisher(cfg, logger)
		opts = append(opts, pipeline.WithPublisher(publisher))
		logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	archiver := pipeline.New(pipeline.Settings{
		Start:        cfg.StartDate,
		End:          cfg.EndDate,
		Hour:         cfg.Hour,
		Station:      cfg.StationID,
		Region:       cfg.Region,
		BaseURL:      cfg.BaseURL,
		FilePrefix:   cfg.FilePrefix,
		StopMarker:   cfg.StopMarker,
		RequestDelay: cfg.RequestDelay,
	}, fetcher, store, os.Stdout, logger, metrics, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var srv *httpadapter.Server
	if cfg.HTTPAddr != "" {
		srv = httpadapter.NewServer(cfg.HTTPAddr, archiver, metrics.Gatherer(), logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server error", "error", err)
			}
		}()
	}

	_, runErr := archiver.Run(ctx)
	if runErr != nil {
		logger.Error("archiver aborted", "error", runErr, "output_dir", cfg.OutputDir)
	}

	if cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
			logger.Error("write metrics textfile failed", "error", err, "path", cfg.MetricsTextfile)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if srv != nil {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown error", "error", err)
		}
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	if runErr != nil {
		return 1
	}
	return 0
}
