package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vanshika/degrees/internal/bootstrap"
	"github.com/vanshika/degrees/internal/config"
	"github.com/vanshika/degrees/internal/logging"
	"github.com/vanshika/degrees/internal/metrics"
	"github.com/vanshika/degrees/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Stderr)
	cancel()
	os.Exit(code)
}

// run serves until ctx ends and returns the process exit code.
func run(ctx context.Context, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return 1
	}

	logger := logging.New(cfg.Logging).With("component", "server")

	store, graphClient, err := bootstrap.LoadStore(ctx, logger, cfg)
	if err != nil {
		logger.Error("failed to load dataset", "error", err, "source", cfg.Dataset.Source)
		return 1
	}
	defer func() {
		if graphClient != nil {
			if err := graphClient.Close(context.Background()); err != nil {
				logger.Warn("closing graph client failed", "error", err)
			}
		}
	}()

	deps := server.RouterDependencies{
		Health: server.HealthChecks{
			server.DatasetHealthService{Stats: store.Stats},
			server.GraphHealthService{Client: graphClient},
		},
		AllowedOrigins:   server.ParseAllowedOrigins(cfg.HTTP.AllowedOriginsCSV),
		AllowCredentials: cfg.HTTP.AllowCredentials,
	}

	var m *metrics.Metrics
	if cfg.HTTP.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m = metrics.New(reg)
		deps.Metrics = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}

	svc := bootstrap.NewService(cfg.Search, store, logger, m)
	deps.API = server.NewAPIHandlers(logger, svc, cfg.Search.Workers)

	srv := server.New(logger, cfg.HTTP, server.NewRouter(logger, deps))
	if err := srv.Run(ctx); err != nil {
		logger.Error("server stopped unexpectedly", "error", err)
		return 1
	}
	return 0
}
