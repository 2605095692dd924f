package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/vanshika/degrees/data"
	"github.com/vanshika/degrees/internal/dataset"
)

// Default file names inside a dataset directory.
const (
	PeopleFile = "people.csv"
	MoviesFile = "movies.csv"
	StarsFile  = "stars.csv"
)

const rowsPerContextCheck = 1024

// ErrMissingColumn is returned when a CSV header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// CSVSource reads comma separated files with a header row. Columns are
// matched by name, so their order does not matter.
type CSVSource struct {
	FS fs.FS
}

// DirSource reads people.csv, movies.csv and stars.csv from dir.
func DirSource(dir string) *CSVSource {
	return &CSVSource{FS: os.DirFS(dir)}
}

// BundledSource reads the small dataset compiled into the binary.
func BundledSource() *CSVSource {
	return &CSVSource{FS: data.Small()}
}

func (s *CSVSource) People(ctx context.Context, fn func(dataset.PersonRecord) error) error {
	return s.each(ctx, PeopleFile, []string{"id", "name"}, func(row csvRow) error {
		return fn(dataset.PersonRecord{
			ID:    row.get("id"),
			Name:  row.get("name"),
			Birth: row.get("birth"),
		})
	})
}

func (s *CSVSource) Movies(ctx context.Context, fn func(dataset.MovieRecord) error) error {
	return s.each(ctx, MoviesFile, []string{"id", "title"}, func(row csvRow) error {
		return fn(dataset.MovieRecord{
			ID:    row.get("id"),
			Title: row.get("title"),
			Year:  row.get("year"),
		})
	})
}

func (s *CSVSource) Stars(ctx context.Context, fn func(dataset.StarRecord) error) error {
	return s.each(ctx, StarsFile, []string{"person_id", "movie_id"}, func(row csvRow) error {
		return fn(dataset.StarRecord{
			PersonID: row.get("person_id"),
			MovieID:  row.get("movie_id"),
		})
	})
}

type csvRow struct {
	columns map[string]int
	fields  []string
}

func (r csvRow) get(column string) string {
	idx, ok := r.columns[column]
	if !ok || idx >= len(r.fields) {
		return ""
	}
	return r.fields[idx]
}

func (s *CSVSource) each(ctx context.Context, name string, required []string, fn func(csvRow) error) error {
	file, err := s.FS.Open(name)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("read %s: empty file", name)
		}
		return fmt.Errorf("read %s header: %w", name, err)
	}

	columns := make(map[string]int, len(header))
	for i, col := range header {
		col = strings.TrimPrefix(col, "\ufeff")
		columns[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range required {
		if _, ok := columns[col]; !ok {
			return fmt.Errorf("read %s: %w %q", name, ErrMissingColumn, col)
		}
	}

	for rows := 0; ; rows++ {
		if rows%rowsPerContextCheck == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if err := fn(csvRow{columns: columns, fields: fields}); err != nil {
			return err
		}
	}
}
