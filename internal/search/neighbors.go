package search

// Graph is the read-only view of the co-starring relation needed by the
// search. *dataset.Store satisfies it.
type Graph interface {
	// HasPerson reports whether the person exists.
	HasPerson(personID string) bool
	// MovieIDs returns the sorted movies of a person, nil when unknown.
	MovieIDs(personID string) []string
	// StarIDs returns the sorted stars of a movie, nil when unknown.
	StarIDs(movieID string) []string
}

// Neighbor is a person reachable in one hop together with the movie linking them.
type Neighbor struct {
	MovieID  string
	PersonID string
}

// Neighbors returns every (movie, co-star) pair for personID, ordered by
// movie id then person id. Each distinct shared movie yields its own pair and
// no pair appears twice. The person is not their own neighbour.
func Neighbors(g Graph, personID string) []Neighbor {
	var out []Neighbor
	for _, movieID := range g.MovieIDs(personID) {
		for _, starID := range g.StarIDs(movieID) {
			if starID == personID {
				continue
			}
			out = append(out, Neighbor{MovieID: movieID, PersonID: starID})
		}
	}
	return out
}
