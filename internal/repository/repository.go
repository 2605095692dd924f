package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/vanshika/degrees/internal/dataset"
	"github.com/vanshika/degrees/internal/graph"
)

const defaultBatchSize = 500

// Repository stores and streams the film dataset in a graph database. It
// satisfies loader.Source, so a Neo4j database can feed the in-memory store.
type Repository struct {
	client    graph.Client
	batchSize int
}

// Option customises a Repository.
type Option func(*Repository)

// WithBatchSize sets how many rows are sent per UNWIND write and fetched per
// streaming page.
func WithBatchSize(n int) Option {
	return func(r *Repository) {
		if n > 0 {
			r.batchSize = n
		}
	}
}

// New instantiates a Repository backed by the supplied graph client.
func New(client graph.Client, opts ...Option) *Repository {
	r := &Repository{client: client, batchSize: defaultBatchSize}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// EnsureSchema creates the uniqueness constraints and the name index.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range []string{personConstraintCypher, movieConstraintCypher, personNameIndexCypher} {
		if _, err := r.client.ExecuteWrite(ctx, stmt, nil); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// UpsertPeople merges person nodes in batches.
func (r *Repository) UpsertPeople(ctx context.Context, people []dataset.PersonRecord) error {
	return r.writeBatches(ctx, "upsert people", upsertPeopleCypher, len(people), func(i int) map[string]any {
		p := people[i]
		return map[string]any{
			"id":      p.ID,
			"name":    p.Name,
			"nameKey": dataset.NameKey(p.Name),
			"birth":   p.Birth,
		}
	}, nil)
}

// UpsertMovies merges movie nodes in batches.
func (r *Repository) UpsertMovies(ctx context.Context, movies []dataset.MovieRecord) error {
	return r.writeBatches(ctx, "upsert movies", upsertMoviesCypher, len(movies), func(i int) map[string]any {
		m := movies[i]
		return map[string]any{
			"id":    m.ID,
			"title": m.Title,
			"year":  m.Year,
		}
	}, nil)
}

// LinkStars merges STARRED_IN relationships and returns how many rows found
// both endpoints. Rows naming unknown people or movies are skipped by the
// MATCH clauses.
func (r *Repository) LinkStars(ctx context.Context, stars []dataset.StarRecord) (int, error) {
	linked := 0
	err := r.writeBatches(ctx, "link stars", linkStarsCypher, len(stars), func(i int) map[string]any {
		return map[string]any{
			"personId": stars[i].PersonID,
			"movieId":  stars[i].MovieID,
		}
	}, func(res graph.Result) {
		if len(res.Records) > 0 {
			linked += int(toInt64(res.Records[0]["linked"]))
		}
	})
	return linked, err
}

// People streams every person ordered by id.
func (r *Repository) People(ctx context.Context, fn func(dataset.PersonRecord) error) error {
	return r.stream(ctx, "stream people", streamPeopleCypher, func(rec graph.Record) error {
		return fn(dataset.PersonRecord{
			ID:    toString(rec["id"]),
			Name:  toString(rec["name"]),
			Birth: toString(rec["birth"]),
		})
	})
}

// Movies streams every movie ordered by id.
func (r *Repository) Movies(ctx context.Context, fn func(dataset.MovieRecord) error) error {
	return r.stream(ctx, "stream movies", streamMoviesCypher, func(rec graph.Record) error {
		return fn(dataset.MovieRecord{
			ID:    toString(rec["id"]),
			Title: toString(rec["title"]),
			Year:  toString(rec["year"]),
		})
	})
}

// Stars streams every STARRED_IN relationship.
func (r *Repository) Stars(ctx context.Context, fn func(dataset.StarRecord) error) error {
	return r.stream(ctx, "stream stars", streamStarsCypher, func(rec graph.Record) error {
		return fn(dataset.StarRecord{
			PersonID: toString(rec["personId"]),
			MovieID:  toString(rec["movieId"]),
		})
	})
}

// Counts returns the number of people, movies and star links stored.
func (r *Repository) Counts(ctx context.Context) (dataset.Stats, error) {
	res, err := r.client.ExecuteRead(ctx, countsCypher, nil)
	if err != nil {
		return dataset.Stats{}, fmt.Errorf("count dataset: %w", err)
	}
	if len(res.Records) == 0 {
		return dataset.Stats{}, nil
	}
	rec := res.Records[0]
	return dataset.Stats{
		People: int(toInt64(rec["people"])),
		Movies: int(toInt64(rec["movies"])),
		Stars:  int(toInt64(rec["stars"])),
	}, nil
}

func (r *Repository) writeBatches(ctx context.Context, op, cypher string, total int, row func(int) map[string]any, onResult func(graph.Result)) error {
	for start := 0; start < total; start += r.batchSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := min(start+r.batchSize, total)
		rows := make([]map[string]any, 0, end-start)
		for i := start; i < end; i++ {
			rows = append(rows, row(i))
		}
		res, err := r.client.ExecuteWrite(ctx, cypher, map[string]any{"rows": rows})
		if err != nil {
			return fmt.Errorf("%s [%d:%d]: %w", op, start, end, err)
		}
		if onResult != nil {
			onResult(res)
		}
	}
	return nil
}

// stream pages through a read query until a short page is returned.
func (r *Repository) stream(ctx context.Context, op, cypher string, fn func(graph.Record) error) error {
	for skip := 0; ; skip += r.batchSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := r.client.ExecuteRead(ctx, cypher, map[string]any{
			"skip":  skip,
			"limit": r.batchSize,
		})
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		for _, rec := range res.Records {
			if err := fn(rec); err != nil {
				return err
			}
		}
		if len(res.Records) < r.batchSize {
			return nil
		}
	}
}

func toString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func toInt64(val any) int64 {
	switch v := val.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}
