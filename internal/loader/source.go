package loader

import (
	"context"

	"github.com/vanshika/degrees/internal/dataset"
)

// Source streams the three record kinds a dataset is built from. Each
// method calls fn once per record and stops at the first error.
type Source interface {
	People(ctx context.Context, fn func(dataset.PersonRecord) error) error
	Movies(ctx context.Context, fn func(dataset.MovieRecord) error) error
	Stars(ctx context.Context, fn func(dataset.StarRecord) error) error
}
