// Package loader builds a dataset.Store from a record Source.
package loader

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vanshika/degrees/internal/dataset"
	"github.com/vanshika/degrees/internal/logging"
)

// Report summarises a completed load.
type Report struct {
	People       int
	Movies       int
	Stars        int
	DroppedStars int
	Duration     time.Duration
}

// Load reads people and movies concurrently, then links stars, and returns
// the frozen store. Star rows that reference unknown ids are dropped.
func Load(ctx context.Context, src Source) (*dataset.Store, Report, error) {
	start := time.Now()
	logger := logging.FromContext(ctx)

	var (
		people []dataset.PersonRecord
		movies []dataset.MovieRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return src.People(gctx, func(rec dataset.PersonRecord) error {
			people = append(people, rec)
			return nil
		})
	})
	g.Go(func() error {
		return src.Movies(gctx, func(rec dataset.MovieRecord) error {
			movies = append(movies, rec)
			return nil
		})
	})
	if err := g.Wait(); err != nil {
		return nil, Report{}, fmt.Errorf("load records: %w", err)
	}

	b := dataset.NewBuilder()
	for _, rec := range people {
		if err := b.AddPerson(rec); err != nil {
			return nil, Report{}, fmt.Errorf("add person: %w", err)
		}
	}
	for _, rec := range movies {
		if err := b.AddMovie(rec); err != nil {
			return nil, Report{}, fmt.Errorf("add movie: %w", err)
		}
	}

	err := src.Stars(ctx, func(rec dataset.StarRecord) error {
		_, err := b.AddStar(rec)
		return err
	})
	if err != nil {
		return nil, Report{}, fmt.Errorf("load stars: %w", err)
	}

	store, err := b.Build()
	if err != nil {
		return nil, Report{}, err
	}

	stats := store.Stats()
	report := Report{
		People:       stats.People,
		Movies:       stats.Movies,
		Stars:        stats.Stars,
		DroppedStars: stats.DroppedStars,
		Duration:     time.Since(start),
	}
	if report.DroppedStars > 0 {
		logger.Warn("dropped star rows referencing unknown ids", "dropped", report.DroppedStars)
	}
	logger.Info("dataset loaded",
		"people", report.People,
		"movies", report.Movies,
		"stars", report.Stars,
		"duration", report.Duration.String(),
	)
	return store, report, nil
}
