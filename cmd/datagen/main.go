package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/vanshika/degrees/internal/generator"
)

func main() {
	cfg := generator.DefaultConfig()
	var (
		people         = flag.Int("people", cfg.NumPeople, "number of people to generate")
		movies         = flag.Int("movies", cfg.NumMovies, "number of movies to generate")
		minCast        = flag.Int("min-cast", cfg.MinCast, "minimum stars per movie")
		maxCast        = flag.Int("max-cast", cfg.MaxCast, "maximum stars per movie")
		sharedChance   = flag.Float64("shared-name-chance", cfg.SharedNameChance, "probability of reusing an existing name")
		isolatedChance = flag.Float64("isolated-chance", cfg.IsolatedChance, "probability that a person stars in nothing")
		seed           = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation")
		outputDir      = flag.String("output-dir", "data/generated", "directory to write people.csv, movies.csv and stars.csv")
		writeStdout    = flag.Bool("stdout", false, "write the dataset as JSON to stdout instead of CSV files")
	)
	flag.Parse()

	genCfg := generator.Config{
		NumPeople:        *people,
		NumMovies:        *movies,
		MinCast:          *minCast,
		MaxCast:          *maxCast,
		SharedNameChance: *sharedChance,
		IsolatedChance:   *isolatedChance,
		Seed:             *seed,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ds, err := generator.New(genCfg).Generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	if *writeStdout {
		if err := json.NewEncoder(os.Stdout).Encode(ds); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write dataset to stdout: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := generator.WriteDataset(ds, *outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "Generated %d people, %d movies and %d stars into %s\n", len(ds.People), len(ds.Movies), len(ds.Stars), *outputDir)
}
