package server

import (
	"context"
	"errors"

	"github.com/vanshika/degrees/internal/dataset"
	"github.com/vanshika/degrees/internal/graph"
)

// ErrEmptyDataset is reported when the loaded dataset has no people.
var ErrEmptyDataset = errors.New("dataset has no people")

// HealthService defines behaviour for readiness probes.
type HealthService interface {
	Probe(ctx context.Context) error
}

// HealthChecks runs every probe and joins their failures.
type HealthChecks []HealthService

// Probe implements the HealthService interface.
func (h HealthChecks) Probe(ctx context.Context) error {
	var errs []error
	for _, check := range h {
		if check == nil {
			continue
		}
		if err := check.Probe(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// DatasetHealthService reports whether a non-empty dataset is loaded.
type DatasetHealthService struct {
	Stats func() dataset.Stats
}

// Probe implements the HealthService interface.
func (s DatasetHealthService) Probe(_ context.Context) error {
	if s.Stats == nil || s.Stats().People == 0 {
		return ErrEmptyDataset
	}
	return nil
}

// GraphHealthService verifies Neo4j connectivity when the dataset came from it.
type GraphHealthService struct {
	Client graph.Client
}

// Probe implements the HealthService interface.
func (s GraphHealthService) Probe(ctx context.Context) error {
	if s.Client == nil {
		return nil
	}
	return s.Client.VerifyConnectivity(ctx)
}
