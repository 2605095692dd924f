package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/degrees/internal/config"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DATASET_DIR", "")
	t.Setenv("DATASET_SOURCE", "")

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunWithFlags(t *testing.T) {
	out, err := execute(t, "", "--source", "Kevin Bacon", "--target", "Tom Hanks")
	require.NoError(t, err)
	assert.Contains(t, out, "Loading data from bundled dataset...\nData loaded.\n")
	assert.Contains(t, out, "1 degrees of separation.\n1: Kevin Bacon and Tom Hanks starred in Apollo 13\n")
}

func TestRunPromptsForNames(t *testing.T) {
	out, err := execute(t, "kevin bacon\nDustin Hoffman\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Name: Name: ")
	assert.Contains(t, out, "2 degrees of separation.")
	assert.Contains(t, out, "2: Tom Cruise and Dustin Hoffman starred in Rain Man")
}

func TestRunNotConnected(t *testing.T) {
	out, err := execute(t, "", "--source", "Kevin Bacon", "--target", "Emma Watson")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "Not connected.\n"))
}

func TestRunPersonNotFound(t *testing.T) {
	_, err := execute(t, "", "--source", "Nobody", "--target", "Tom Hanks")
	assert.ErrorIs(t, err, errPersonNotFound)

	_, err = execute(t, "\n")
	assert.ErrorIs(t, err, errPersonNotFound)
}

func TestRunTooManyArgs(t *testing.T) {
	_, err := execute(t, "", "small", "large")
	require.Error(t, err)
	assert.NotErrorIs(t, err, errPersonNotFound)
}

func writeDataset(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"people.csv": "id,name,birth\n1,Sam Smith,1970\n2,Sam Smith,1985\n3,Alex Lee,1990\n",
		"movies.csv": "id,title,year\n10,Harbor,2001\n",
		"stars.csv":  "person_id,movie_id\n2,10\n3,10\n",
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func TestRunDirectoryWithAmbiguousName(t *testing.T) {
	dir := writeDataset(t)

	out, err := execute(t, "2\n", dir, "--source", "sam smith", "--target", "Alex Lee")
	require.NoError(t, err)
	assert.Contains(t, out, "Loading data from "+dir+"...\n")
	assert.Contains(t, out, "Which 'sam smith'?")
	assert.Contains(t, out, "ID: 1, Name: Sam Smith, Birth: 1970")
	assert.Contains(t, out, "1: Sam Smith and Alex Lee starred in Harbor")

	_, err = execute(t, "3\n", dir, "--source", "sam smith", "--target", "Alex Lee")
	assert.ErrorIs(t, err, errPersonNotFound)

	out, err = execute(t, "", dir, "--strategy", "first", "--source", "sam smith", "--target", "Alex Lee")
	require.NoError(t, err)
	assert.Contains(t, out, "Not connected.")

	_, err = execute(t, "", dir, "--strategy", "strict", "--source", "sam smith", "--target", "Alex Lee")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "matches 2 people")
}

func TestDatasetLabel(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, "bundled dataset", datasetLabel(cfg))

	cfg.Dataset = config.DatasetConfig{Source: config.SourceCSV, Dir: "large"}
	assert.Equal(t, "large", datasetLabel(cfg))

	cfg.Dataset = config.DatasetConfig{Source: config.SourceNeo4j}
	cfg.Graph.URI = "neo4j://db:7687"
	assert.Equal(t, "neo4j://db:7687", datasetLabel(cfg))
}
