package dataset

import "errors"

var (
	// ErrPersonNotFound is returned when a person id is absent from the store.
	ErrPersonNotFound = errors.New("person not found")
	// ErrMovieNotFound is returned when a movie id is absent from the store.
	ErrMovieNotFound = errors.New("movie not found")
	// ErrBuilderSealed is returned when a builder is used after Build.
	ErrBuilderSealed = errors.New("dataset builder already built")
	// ErrMissingID indicates a record without an identifier.
	ErrMissingID = errors.New("record id is required")
)
