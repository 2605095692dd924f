package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunReturnsZeroAfterShutdown(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DATASET_SOURCE", "bundled")
	t.Setenv("DATASET_DIR", "")
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("SERVER_PORT", "18089")
	t.Setenv("LOG_LEVEL", "error")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stderr bytes.Buffer
	assert.Equal(t, 0, run(ctx, &stderr))
}

func TestRunFailsOnMissingDataset(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DATASET_SOURCE", "csv")
	t.Setenv("DATASET_DIR", t.TempDir())
	t.Setenv("LOG_LEVEL", "error")

	var stderr bytes.Buffer
	assert.Equal(t, 1, run(context.Background(), &stderr))
}

func TestRunFailsOnInvalidConfig(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("SEARCH_WORKERS", "-1")

	var stderr bytes.Buffer
	assert.Equal(t, 1, run(context.Background(), &stderr))
	assert.Contains(t, stderr.String(), "failed to load config")
}
