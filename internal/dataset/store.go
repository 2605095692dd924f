package dataset

import (
	"fmt"

	"github.com/vanshika/degrees/internal/domain"
)

// Stats summarises a loaded dataset.
type Stats struct {
	People       int
	Movies       int
	Stars        int
	DroppedStars int
}

// Store is the read-only, in-memory index of people, movies and the
// co-starring relation. It is safe for concurrent readers.
type Store struct {
	people map[string]*domain.Person
	movies map[string]*domain.Movie
	names  map[string][]string
	stats  Stats
}

// Person returns the person with the given id.
func (s *Store) Person(id string) (domain.Person, error) {
	p, ok := s.people[id]
	if !ok {
		return domain.Person{}, fmt.Errorf("%w: %s", ErrPersonNotFound, id)
	}
	out := *p
	out.MovieIDs = append([]string(nil), p.MovieIDs...)
	return out, nil
}

// Movie returns the movie with the given id.
func (s *Store) Movie(id string) (domain.Movie, error) {
	m, ok := s.movies[id]
	if !ok {
		return domain.Movie{}, fmt.Errorf("%w: %s", ErrMovieNotFound, id)
	}
	out := *m
	out.StarIDs = append([]string(nil), m.StarIDs...)
	return out, nil
}

// HasPerson reports whether id is a known person.
func (s *Store) HasPerson(id string) bool {
	_, ok := s.people[id]
	return ok
}

// IDsByName returns the ids of every person whose name matches
// case-insensitively, sorted. The result is empty for unknown names.
func (s *Store) IDsByName(name string) []string {
	return append([]string(nil), s.names[NameKey(name)]...)
}

// Lookup returns summaries for every person matching name.
func (s *Store) Lookup(name string) []domain.PersonSummary {
	ids := s.names[NameKey(name)]
	out := make([]domain.PersonSummary, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.people[id].Summary())
	}
	return out
}

// MovieIDs returns the sorted movie ids of a person, nil when unknown. The
// slice is shared and must not be modified.
func (s *Store) MovieIDs(personID string) []string {
	if p, ok := s.people[personID]; ok {
		return p.MovieIDs
	}
	return nil
}

// StarIDs returns the sorted star ids of a movie, nil when unknown. The slice
// is shared and must not be modified.
func (s *Store) StarIDs(movieID string) []string {
	if m, ok := s.movies[movieID]; ok {
		return m.StarIDs
	}
	return nil
}

// Stats returns the dataset counters captured at build time.
func (s *Store) Stats() Stats {
	return s.stats
}
