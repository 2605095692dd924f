package service

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vanshika/degrees/internal/dataset"
	"github.com/vanshika/degrees/internal/loader"
	"github.com/vanshika/degrees/internal/logging"
)

const defaultChunkSize = 2000

// GraphWriter persists dataset records. *repository.Repository satisfies it.
type GraphWriter interface {
	EnsureSchema(ctx context.Context) error
	UpsertPeople(ctx context.Context, people []dataset.PersonRecord) error
	UpsertMovies(ctx context.Context, movies []dataset.MovieRecord) error
	LinkStars(ctx context.Context, stars []dataset.StarRecord) (int, error)
}

// IngestReport summarises a bulk ingestion.
type IngestReport struct {
	People int
	Movies int
	Stars  int
	Linked int
}

// BulkIngestor streams a dataset source into a graph writer, writing chunks
// concurrently. Stars are written only after every person and movie exists.
type BulkIngestor struct {
	writer    GraphWriter
	workers   int
	chunkSize int
}

// NewBulkIngestor creates a BulkIngestor with the provided concurrency.
func NewBulkIngestor(writer GraphWriter, workers, chunkSize int) *BulkIngestor {
	if workers <= 0 {
		workers = 4
	}
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	return &BulkIngestor{writer: writer, workers: workers, chunkSize: chunkSize}
}

// Ingest copies every record from src.
func (b *BulkIngestor) Ingest(ctx context.Context, src loader.Source) (IngestReport, error) {
	logger := logging.FromContext(ctx)
	var report IngestReport

	if err := b.writer.EnsureSchema(ctx); err != nil {
		return report, fmt.Errorf("ensure schema: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)

	people := make([]dataset.PersonRecord, 0, b.chunkSize)
	err := src.People(gctx, func(rec dataset.PersonRecord) error {
		people = append(people, rec)
		report.People++
		if len(people) == b.chunkSize {
			chunk := people
			g.Go(func() error { return b.writer.UpsertPeople(gctx, chunk) })
			people = make([]dataset.PersonRecord, 0, b.chunkSize)
		}
		return nil
	})
	if err != nil {
		if werr := g.Wait(); werr != nil {
			return report, werr
		}
		return report, fmt.Errorf("read people: %w", err)
	}
	if len(people) > 0 {
		g.Go(func() error { return b.writer.UpsertPeople(gctx, people) })
	}

	movies := make([]dataset.MovieRecord, 0, b.chunkSize)
	err = src.Movies(gctx, func(rec dataset.MovieRecord) error {
		movies = append(movies, rec)
		report.Movies++
		if len(movies) == b.chunkSize {
			chunk := movies
			g.Go(func() error { return b.writer.UpsertMovies(gctx, chunk) })
			movies = make([]dataset.MovieRecord, 0, b.chunkSize)
		}
		return nil
	})
	if err != nil {
		if werr := g.Wait(); werr != nil {
			return report, werr
		}
		return report, fmt.Errorf("read movies: %w", err)
	}
	if len(movies) > 0 {
		g.Go(func() error { return b.writer.UpsertMovies(gctx, movies) })
	}

	if err := g.Wait(); err != nil {
		return report, err
	}
	logger.Info("nodes ingested", "people", report.People, "movies", report.Movies)

	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(b.workers)
	var mu sync.Mutex
	write := func(chunk []dataset.StarRecord) {
		g.Go(func() error {
			n, err := b.writer.LinkStars(gctx, chunk)
			mu.Lock()
			report.Linked += n
			mu.Unlock()
			return err
		})
	}

	stars := make([]dataset.StarRecord, 0, b.chunkSize)
	err = src.Stars(gctx, func(rec dataset.StarRecord) error {
		stars = append(stars, rec)
		report.Stars++
		if len(stars) == b.chunkSize {
			write(stars)
			stars = make([]dataset.StarRecord, 0, b.chunkSize)
		}
		return nil
	})
	if err != nil {
		if werr := g.Wait(); werr != nil {
			return report, werr
		}
		return report, fmt.Errorf("read stars: %w", err)
	}
	if len(stars) > 0 {
		write(stars)
	}
	if err := g.Wait(); err != nil {
		return report, err
	}

	if skipped := report.Stars - report.Linked; skipped > 0 {
		logger.Warn("star rows not linked", "skipped", skipped)
	}
	return report, nil
}
