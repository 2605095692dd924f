package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vanshika/degrees/internal/bootstrap"
	"github.com/vanshika/degrees/internal/config"
	"github.com/vanshika/degrees/internal/loader"
	"github.com/vanshika/degrees/internal/logging"
	"github.com/vanshika/degrees/internal/repository"
	"github.com/vanshika/degrees/internal/service"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr)
	cancel()
	os.Exit(code)
}

// run ingests the dataset named by args and returns the process exit code.
func run(ctx context.Context, args []string, stderr io.Writer) int {
	flags := flag.NewFlagSet("ingest", flag.ContinueOnError)
	flags.SetOutput(stderr)
	var (
		datasetDir = flags.String("dataset-dir", "", "Directory containing people.csv, movies.csv and stars.csv (default: bundled small dataset)")
		workers    = flags.Int("workers", 4, "Number of concurrent writers")
		chunkSize  = flags.Int("chunk-size", 2000, "Records handed to each writer at a time")
	)
	if err := flags.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return 1
	}

	logger := logging.New(cfg.Logging).With("component", "ingest")
	ctx = logging.WithLogger(ctx, logger)

	src := loader.BundledSource()
	if *datasetDir != "" {
		src = loader.DirSource(*datasetDir)
	}

	graphClient, err := bootstrap.GraphClient(ctx, logger, cfg.Graph)
	if err != nil {
		logger.Error("failed to create graph client", "error", err)
		return 1
	}
	defer func() {
		if err := graphClient.Close(context.Background()); err != nil {
			logger.Warn("closing graph client failed", "error", err)
		}
	}()

	repo := repository.New(graphClient, repository.WithBatchSize(cfg.Graph.BatchSize))
	ingestor := service.NewBulkIngestor(repo, *workers, *chunkSize)

	start := time.Now()
	logger.Info("ingesting dataset", "dir", *datasetDir, "workers", *workers)
	report, err := ingestor.Ingest(ctx, src)
	if err != nil {
		logger.Error("ingestion failed", "error", err)
		return 1
	}

	counts, err := repo.Counts(ctx)
	if err != nil {
		logger.Warn("counting graph contents failed", "error", err)
	}
	logger.Info("ingestion complete",
		"duration", time.Since(start).String(),
		"people", report.People,
		"movies", report.Movies,
		"stars", report.Stars,
		"linked", report.Linked,
		"graphPeople", counts.People,
		"graphMovies", counts.Movies,
		"graphStars", counts.Stars,
	)
	return 0
}
