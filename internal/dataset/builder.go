package dataset

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vanshika/degrees/internal/domain"
)

type personEntry struct {
	rec    PersonRecord
	movies map[string]struct{}
}

type movieEntry struct {
	rec   MovieRecord
	stars map[string]struct{}
}

// Builder accumulates records and produces an immutable Store. It is not safe
// for concurrent use.
type Builder struct {
	people  map[string]*personEntry
	movies  map[string]*movieEntry
	stars   int
	dropped int
	sealed  bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		people: make(map[string]*personEntry),
		movies: make(map[string]*movieEntry),
	}
}

// AddPerson inserts or replaces a person. Movie links already recorded for
// the same id are preserved.
func (b *Builder) AddPerson(rec PersonRecord) error {
	if b.sealed {
		return ErrBuilderSealed
	}
	rec.ID = strings.TrimSpace(rec.ID)
	if rec.ID == "" {
		return fmt.Errorf("person: %w", ErrMissingID)
	}
	if existing, ok := b.people[rec.ID]; ok {
		existing.rec = rec
		return nil
	}
	b.people[rec.ID] = &personEntry{rec: rec, movies: make(map[string]struct{})}
	return nil
}

// AddMovie inserts or replaces a movie. Star links already recorded for the
// same id are preserved.
func (b *Builder) AddMovie(rec MovieRecord) error {
	if b.sealed {
		return ErrBuilderSealed
	}
	rec.ID = strings.TrimSpace(rec.ID)
	if rec.ID == "" {
		return fmt.Errorf("movie: %w", ErrMissingID)
	}
	if existing, ok := b.movies[rec.ID]; ok {
		existing.rec = rec
		return nil
	}
	b.movies[rec.ID] = &movieEntry{rec: rec, stars: make(map[string]struct{})}
	return nil
}

// AddStar links a person and a movie in both directions. Associations that
// reference an unknown person or movie are dropped and reported as false.
func (b *Builder) AddStar(rec StarRecord) (bool, error) {
	if b.sealed {
		return false, ErrBuilderSealed
	}
	person, ok := b.people[strings.TrimSpace(rec.PersonID)]
	if !ok {
		b.dropped++
		return false, nil
	}
	movie, ok := b.movies[strings.TrimSpace(rec.MovieID)]
	if !ok {
		b.dropped++
		return false, nil
	}
	person.movies[movie.rec.ID] = struct{}{}
	movie.stars[person.rec.ID] = struct{}{}
	b.stars++
	return true, nil
}

// Build freezes the accumulated records into a Store. The builder cannot be
// used afterwards.
func (b *Builder) Build() (*Store, error) {
	if b.sealed {
		return nil, ErrBuilderSealed
	}
	b.sealed = true

	s := &Store{
		people: make(map[string]*domain.Person, len(b.people)),
		movies: make(map[string]*domain.Movie, len(b.movies)),
		names:  make(map[string][]string),
		stats: Stats{
			People:       len(b.people),
			Movies:       len(b.movies),
			Stars:        b.stars,
			DroppedStars: b.dropped,
		},
	}

	for id, entry := range b.people {
		s.people[id] = &domain.Person{
			ID:       id,
			Name:     entry.rec.Name,
			Birth:    entry.rec.Birth,
			MovieIDs: sortedKeys(entry.movies),
		}
		key := NameKey(entry.rec.Name)
		s.names[key] = append(s.names[key], id)
	}
	for _, ids := range s.names {
		sort.Strings(ids)
	}

	for id, entry := range b.movies {
		s.movies[id] = &domain.Movie{
			ID:      id,
			Title:   entry.rec.Title,
			Year:    entry.rec.Year,
			StarIDs: sortedKeys(entry.stars),
		}
	}

	b.people = nil
	b.movies = nil
	return s, nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// NameKey is the name index key: lowercase with whitespace runs collapsed
// to one space and the ends trimmed.
func NameKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
