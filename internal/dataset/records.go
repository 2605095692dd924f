package dataset

// PersonRecord is one row of the people table.
type PersonRecord struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Birth string `json:"birth" yaml:"birth"`
}

// MovieRecord is one row of the movies table.
type MovieRecord struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Year  string `json:"year" yaml:"year"`
}

// StarRecord asserts that a person starred in a movie.
type StarRecord struct {
	PersonID string `json:"person_id" yaml:"person_id"`
	MovieID  string `json:"movie_id" yaml:"movie_id"`
}
