package generator

// Config drives the synthetic data generator.
type Config struct {
	NumPeople        int
	NumMovies        int
	MinCast          int
	MaxCast          int
	SharedNameChance float64
	IsolatedChance   float64
	Seed             int64
}

// DefaultConfig returns a mid-sized dataset with some shared names and a few
// people who never appear in a movie.
func DefaultConfig() Config {
	return Config{
		NumPeople:        10000,
		NumMovies:        4000,
		MinCast:          2,
		MaxCast:          8,
		SharedNameChance: 0.05,
		IsolatedChance:   0.02,
		Seed:             42,
	}
}
