// Package bootstrap wires configuration into the components shared by the
// binaries: the dataset source, the graph client and the degrees service.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vanshika/degrees/internal/config"
	"github.com/vanshika/degrees/internal/dataset"
	"github.com/vanshika/degrees/internal/graph"
	"github.com/vanshika/degrees/internal/loader"
	"github.com/vanshika/degrees/internal/logging"
	"github.com/vanshika/degrees/internal/metrics"
	"github.com/vanshika/degrees/internal/repository"
	"github.com/vanshika/degrees/internal/search"
	"github.com/vanshika/degrees/internal/service"
)

// dialGraph is swapped in tests.
var dialGraph = graph.NewNeo4jClient

// GraphClient connects to Neo4j and verifies connectivity.
func GraphClient(ctx context.Context, logger *slog.Logger, cfg config.GraphConfig) (graph.Client, error) {
	if cfg.URI == "" {
		return nil, graph.ErrMissingURI
	}
	client, err := dialGraph(ctx, graph.Options{
		URI:            cfg.URI,
		Database:       cfg.Database,
		Username:       cfg.Username,
		Password:       cfg.Password,
		MaxConnections: cfg.MaxConnections,
	})
	if err != nil {
		return nil, err
	}
	if err := client.VerifyConnectivity(ctx); err != nil {
		_ = client.Close(ctx)
		return nil, fmt.Errorf("verify graph connectivity: %w", err)
	}
	logger.Info("connected to graph", "uri", cfg.URI, "database", cfg.Database)
	return client, nil
}

// OpenSource returns the dataset source selected by cfg. The graph client is
// non-nil only for the neo4j source and must be closed by the caller.
func OpenSource(ctx context.Context, logger *slog.Logger, cfg config.Config) (loader.Source, graph.Client, error) {
	switch cfg.Dataset.Source {
	case config.SourceCSV:
		return loader.DirSource(cfg.Dataset.Dir), nil, nil
	case config.SourceNeo4j:
		client, err := GraphClient(ctx, logger, cfg.Graph)
		if err != nil {
			return nil, nil, err
		}
		return repository.New(client, repository.WithBatchSize(cfg.Graph.BatchSize)), client, nil
	case config.SourceBundled, "":
		return loader.BundledSource(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown dataset source %q", cfg.Dataset.Source)
	}
}

// LoadStore opens the configured source and loads it into memory.
func LoadStore(ctx context.Context, logger *slog.Logger, cfg config.Config) (*dataset.Store, graph.Client, error) {
	src, client, err := OpenSource(ctx, logger, cfg)
	if err != nil {
		return nil, nil, err
	}
	store, _, err := loader.Load(logging.WithLogger(ctx, logger), src)
	if err != nil {
		if client != nil {
			_ = client.Close(context.Background())
		}
		return nil, nil, fmt.Errorf("load %s dataset: %w", cfg.Dataset.Source, err)
	}
	return store, client, nil
}

// NewService builds the degrees service from cfg. m may be nil.
func NewService(cfg config.SearchConfig, store *dataset.Store, logger *slog.Logger, m *metrics.Metrics, opts ...service.Option) *service.Degrees {
	base := []service.Option{
		service.WithTimeout(cfg.Timeout),
		service.WithMetrics(m),
	}
	if cfg.Trace {
		base = append(base, service.WithHooks(search.LogHooks(logger)))
	}
	return service.NewDegrees(store, append(base, opts...)...)
}
