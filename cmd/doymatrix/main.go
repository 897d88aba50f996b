// Command doymatrix reads a NOAA GHCN daily CSV and writes one CSV per
// station, re-projecting its TMAX readings into a day-of-year by year matrix
// for year-over-year comparison.
//
// Usage:
//
//	doymatrix <csvfile>
//
// Output files are named "{station_id}.csv" and land in OUTPUT_DIR (default:
// the current directory), overwriting existing files. Configuration beyond
// the input path comes from the environment; see internal/config.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/ghcn-doy-matrix/internal/adapter/csvfile"
	kafkaadapter "github.com/couchcryptid/ghcn-doy-matrix/internal/adapter/kafka"
	"github.com/couchcryptid/ghcn-doy-matrix/internal/config"
	"github.com/couchcryptid/ghcn-doy-matrix/internal/observability"
	"github.com/couchcryptid/ghcn-doy-matrix/internal/pipeline"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s <csvfile>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0)); err != nil {
		os.Exit(1)
	}
}

func run(inputPath string) error {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return err
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	extractor, err := csvfile.Open(inputPath)
	if err != nil {
		logger.Error("failed to open input", "path", inputPath, "error", err)
		return err
	}
	defer extractor.Close()

	loader := csvfile.NewWriter(cfg.OutputDir, logger)

	// Summary sink is feature-flagged via KAFKA_BROKERS / KAFKA_ENABLED.
	var publisher pipeline.SummaryPublisher
	if cfg.KafkaEnabled {
		kp := kafkaadapter.NewPublisher(cfg, logger)
		defer kp.Close()
		publisher = kp
		logger.Info("summary sink enabled", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := pipeline.New(extractor, loader, publisher, logger, metrics)
	if err := p.Run(ctx); err != nil {
		logger.Error("export failed", "error", err)
		return err
	}
	return nil
}
