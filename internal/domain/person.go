package domain

// Person is a cast member from the people table.
type Person struct {
	ID    string
	Name  string
	Birth string
	// MovieIDs lists the movies the person starred in, sorted by id.
	MovieIDs []string
}

// Movie is a title from the movies table.
type Movie struct {
	ID    string
	Title string
	Year  string
	// StarIDs lists the people who starred in the movie, sorted by id.
	StarIDs []string
}

// PersonSummary is the lightweight view used by name lookups and listings.
type PersonSummary struct {
	ID         string
	Name       string
	Birth      string
	MovieCount int
}

// Summary returns the lightweight view of p.
func (p Person) Summary() PersonSummary {
	return PersonSummary{
		ID:         p.ID,
		Name:       p.Name,
		Birth:      p.Birth,
		MovieCount: len(p.MovieIDs),
	}
}
