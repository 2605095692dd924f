package generator

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/vanshika/degrees/internal/dataset"
)

// Dataset contains the generated people, movies and star links.
type Dataset struct {
	People []dataset.PersonRecord `json:"people"`
	Movies []dataset.MovieRecord  `json:"movies"`
	Stars  []dataset.StarRecord   `json:"stars"`
}

// Generator produces synthetic people, movies and casts.
type Generator struct {
	cfg           Config
	rand          *rand.Rand
	nameFragments nameFragments
	names         []string
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	def := DefaultConfig()
	if cfg.NumPeople <= 0 {
		cfg.NumPeople = def.NumPeople
	}
	if cfg.NumMovies < 0 {
		cfg.NumMovies = 0
	}
	if cfg.MinCast <= 0 {
		cfg.MinCast = 1
	}
	if cfg.MaxCast < cfg.MinCast {
		cfg.MaxCast = cfg.MinCast
	}
	cfg.SharedNameChance = clampProbability(cfg.SharedNameChance)
	cfg.IsolatedChance = clampProbability(cfg.IsolatedChance)
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:           cfg,
		rand:          rand.New(rand.NewSource(cfg.Seed)),
		nameFragments: defaultNameFragments(),
	}
}

// Generate synthesises a dataset. It respects context cancellation.
func (g *Generator) Generate(ctx context.Context) (Dataset, error) {
	people := make([]dataset.PersonRecord, g.cfg.NumPeople)
	castable := make([]string, 0, g.cfg.NumPeople)

	for i := 0; i < g.cfg.NumPeople; i++ {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}

		id := strconv.Itoa(i + 1)
		people[i] = dataset.PersonRecord{
			ID:    id,
			Name:  g.maybeSharedName(),
			Birth: strconv.Itoa(1920 + g.rand.Intn(86)),
		}
		if g.rand.Float64() >= g.cfg.IsolatedChance {
			castable = append(castable, id)
		}
	}

	movies := make([]dataset.MovieRecord, g.cfg.NumMovies)
	var stars []dataset.StarRecord

	for i := 0; i < g.cfg.NumMovies; i++ {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}

		movieID := strconv.Itoa(100000 + i + 1)
		movies[i] = dataset.MovieRecord{
			ID:    movieID,
			Title: g.randomTitle(),
			Year:  strconv.Itoa(1950 + g.rand.Intn(75)),
		}
		for _, personID := range g.pickCast(castable) {
			stars = append(stars, dataset.StarRecord{PersonID: personID, MovieID: movieID})
		}
	}

	return Dataset{People: people, Movies: movies, Stars: stars}, nil
}

func (g *Generator) maybeSharedName() string {
	if len(g.names) > 0 && g.rand.Float64() < g.cfg.SharedNameChance {
		return g.names[g.rand.Intn(len(g.names))]
	}
	name := g.randomFullName()
	g.names = append(g.names, name)
	return name
}

// pickCast draws distinct people from pool.
func (g *Generator) pickCast(pool []string) []string {
	if len(pool) == 0 {
		return nil
	}
	size := g.cfg.MinCast + g.rand.Intn(g.cfg.MaxCast-g.cfg.MinCast+1)
	if size > len(pool) {
		size = len(pool)
	}

	chosen := make(map[int]struct{}, size)
	cast := make([]string, 0, size)
	for len(cast) < size {
		idx := g.rand.Intn(len(pool))
		if _, ok := chosen[idx]; ok {
			continue
		}
		chosen[idx] = struct{}{}
		cast = append(cast, pool[idx])
	}
	return cast
}

func (g *Generator) randomFullName() string {
	return fmt.Sprintf("%s %s", g.nameFragments.first[g.rand.Intn(len(g.nameFragments.first))],
		g.nameFragments.last[g.rand.Intn(len(g.nameFragments.last))])
}

func (g *Generator) randomTitle() string {
	return fmt.Sprintf("The %s %s", g.nameFragments.adjectives[g.rand.Intn(len(g.nameFragments.adjectives))],
		g.nameFragments.nouns[g.rand.Intn(len(g.nameFragments.nouns))])
}

func clampProbability(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}

type nameFragments struct {
	first      []string
	last       []string
	adjectives []string
	nouns      []string
}

func defaultNameFragments() nameFragments {
	return nameFragments{
		first:      []string{"Jane", "John", "Alex", "Priya", "Liu", "Maria", "Omar", "Sofia", "Noah", "Emma", "Lucas", "Mia", "Ava", "Ethan", "Zara", "Hugo", "Ines", "Kenji"},
		last:       []string{"Doe", "Smith", "Chen", "Patel", "Garcia", "Khan", "Kim", "Ivanov", "Nguyen", "Silva", "Brown", "Lee", "Moreau", "Rossi"},
		adjectives: []string{"Silent", "Last", "Crimson", "Hidden", "Endless", "Broken", "Golden", "Distant", "Wild", "Midnight"},
		nouns:      []string{"Harbor", "Promise", "Frontier", "Garden", "Signal", "Empire", "River", "Summer", "Witness", "Voyage"},
	}
}
