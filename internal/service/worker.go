package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/vanshika/degrees/internal/domain"
)

// TaskError accumulates multiple errors produced during a batch run.
type TaskError struct {
	Errors []error
}

func (e *TaskError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := "multiple errors:"
	for _, err := range e.Errors {
		msg += " " + err.Error() + ";"
	}
	return msg
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (e *TaskError) Unwrap() []error {
	return e.Errors
}

func (e *TaskError) append(err error) {
	if err == nil {
		return
	}
	e.Errors = append(e.Errors, err)
}

func (e *TaskError) asError() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// Query names a source and target person by id.
type Query struct {
	Source string
	Target string
}

// Outcome is the result of one query in a batch.
type Outcome struct {
	Query      Query
	Connection domain.Connection
	Err        error
}

// BatchSearcher runs many queries against one service with bounded
// concurrency.
type BatchSearcher struct {
	service *Degrees
	workers int
}

// NewBatchSearcher creates a BatchSearcher with the provided concurrency.
func NewBatchSearcher(service *Degrees, workers int) *BatchSearcher {
	if workers <= 0 {
		workers = 4
	}
	return &BatchSearcher{
		service: service,
		workers: workers,
	}
}

// SearchAll answers every query. Outcomes are returned in query order; the
// error aggregates failed queries into a *TaskError, or is the context
// error when the batch was interrupted.
func (b *BatchSearcher) SearchAll(ctx context.Context, queries []Query) ([]Outcome, error) {
	outcomes := make([]Outcome, len(queries))
	if len(queries) == 0 {
		return outcomes, nil
	}

	var g errgroup.Group
	g.SetLimit(b.workers)
	for i, q := range queries {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			conn, err := b.service.ResolveAndSearch(ctx, q.Source, q.Target)
			outcomes[i] = Outcome{Query: q, Connection: conn, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return outcomes, err
	}

	var taskErr TaskError
	for _, o := range outcomes {
		if o.Err == nil {
			continue
		}
		taskErr.append(fmt.Errorf("%s -> %s: %w", o.Query.Source, o.Query.Target, o.Err))
	}
	return outcomes, taskErr.asError()
}
