package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vanshika/degrees/internal/dataset"
	"github.com/vanshika/degrees/internal/domain"
	"github.com/vanshika/degrees/internal/logging"
	"github.com/vanshika/degrees/internal/metrics"
	"github.com/vanshika/degrees/internal/resolve"
	"github.com/vanshika/degrees/internal/search"
)

// ErrInvalidQuery is returned when a source or target is blank.
var ErrInvalidQuery = errors.New("source and target are required")

// Store is the dataset contract required by the service. *dataset.Store
// satisfies it.
type Store interface {
	search.Graph
	resolve.Directory
	Person(id string) (domain.Person, error)
	Movie(id string) (domain.Movie, error)
	Stats() dataset.Stats
}

// Degrees answers degrees-of-separation queries against one loaded dataset.
// It is safe for concurrent use.
type Degrees struct {
	store    Store
	engine   *search.Engine
	resolver *resolve.Resolver
	metrics  *metrics.Metrics
	hooks    search.Hooks
	timeout  time.Duration
	nowFn    func() time.Time
}

// Option customises a Degrees service.
type Option func(*Degrees)

// WithMetrics records every search in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Degrees) { s.metrics = m }
}

// WithTimeout bounds each search. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(s *Degrees) { s.timeout = d }
}

// WithStrategy sets the default disambiguation strategy for name queries.
func WithStrategy(strategy resolve.Strategy) Option {
	return func(s *Degrees) { s.resolver = resolve.New(s.store, strategy) }
}

// WithHooks installs traversal hooks on the search engine.
func WithHooks(h search.Hooks) Option {
	return func(s *Degrees) { s.hooks = h }
}

// NewDegrees constructs the service over store.
func NewDegrees(store Store, opts ...Option) *Degrees {
	s := &Degrees{
		store:    store,
		resolver: resolve.New(store, resolve.Strict{}),
		nowFn:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.engine = search.NewEngine(store, search.WithHooks(s.hooks))
	s.metrics.SetDataset(store.Stats())
	return s
}

// WithClock overrides the time provider (used primarily in tests).
func (s *Degrees) WithClock(nowFn func() time.Time) {
	if nowFn != nil {
		s.nowFn = nowFn
	}
}

// ResolveAndSearch finds the shortest chain between two known person ids.
// A pair with no chain yields a Connection with Connected false and no error.
func (s *Degrees) ResolveAndSearch(ctx context.Context, sourceID, targetID string) (domain.Connection, error) {
	start := s.nowFn()
	sourceID = sanitizeString(sourceID)
	targetID = sanitizeString(targetID)
	if sourceID == "" || targetID == "" {
		return domain.Connection{}, ErrInvalidQuery
	}

	source, err := s.store.Person(sourceID)
	if err != nil {
		s.metrics.ObserveSearch(metrics.OutcomeNotFound, s.nowFn().Sub(start), 0, 0)
		return domain.Connection{}, fmt.Errorf("source: %w", err)
	}
	target, err := s.store.Person(targetID)
	if err != nil {
		s.metrics.ObserveSearch(metrics.OutcomeNotFound, s.nowFn().Sub(start), 0, 0)
		return domain.Connection{}, fmt.Errorf("target: %w", err)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	res, err := s.engine.ShortestPath(ctx, sourceID, targetID)
	elapsed := s.nowFn().Sub(start)
	if err != nil {
		s.metrics.ObserveSearch(metrics.OutcomeError, elapsed, res.Explored, 0)
		logging.FromContext(ctx).Error("search failed", "error", err, "source", sourceID, "target", targetID)
		return domain.Connection{}, fmt.Errorf("search %s -> %s: %w", sourceID, targetID, err)
	}

	if res.Connected {
		if end := res.Path.Target(sourceID); end != targetID {
			s.metrics.ObserveSearch(metrics.OutcomeError, elapsed, res.Explored, 0)
			return domain.Connection{}, fmt.Errorf("%w: path ends at %s, want %s", search.ErrBrokenTrail, end, targetID)
		}
	}

	conn := domain.Connection{
		Source:    source.Summary(),
		Target:    target.Summary(),
		Path:      res.Path,
		Connected: res.Connected,
		Explored:  res.Explored,
	}
	if !res.Connected {
		s.metrics.ObserveSearch(metrics.OutcomeNotConnected, elapsed, res.Explored, 0)
		return conn, nil
	}

	conn.Hops, err = s.hops(source.Summary(), res.Path)
	if err != nil {
		return domain.Connection{}, err
	}
	s.metrics.ObserveSearch(metrics.OutcomeConnected, elapsed, res.Explored, res.Path.Degrees())
	logging.FromContext(ctx).Debug("search finished",
		"source", sourceID,
		"target", targetID,
		"degrees", res.Path.Degrees(),
		"explored", res.Explored,
		"duration", elapsed.String(),
	)
	return conn, nil
}

// SearchByName resolves both names and searches between them. A nil
// strategy uses the service default.
func (s *Degrees) SearchByName(ctx context.Context, sourceName, targetName string, strategy resolve.Strategy) (domain.Connection, error) {
	sourceID, err := s.ResolveName(ctx, sourceName, strategy)
	if err != nil {
		return domain.Connection{}, err
	}
	targetID, err := s.ResolveName(ctx, targetName, strategy)
	if err != nil {
		return domain.Connection{}, err
	}
	return s.ResolveAndSearch(ctx, sourceID, targetID)
}

// ResolveName maps a display name to one person id.
func (s *Degrees) ResolveName(ctx context.Context, name string, strategy resolve.Strategy) (string, error) {
	name = sanitizeString(name)
	if name == "" {
		return "", ErrInvalidQuery
	}
	if strategy == nil {
		return s.resolver.Resolve(ctx, name)
	}
	return s.resolver.ResolveWith(ctx, name, strategy)
}

// FindPeople lists everyone called name.
func (s *Degrees) FindPeople(name string) []domain.PersonSummary {
	return s.store.Lookup(sanitizeString(name))
}

// Person returns a person by id.
func (s *Degrees) Person(id string) (domain.Person, error) {
	return s.store.Person(sanitizeString(id))
}

// Movie returns a movie by id.
func (s *Degrees) Movie(id string) (domain.Movie, error) {
	return s.store.Movie(sanitizeString(id))
}

// Neighbors lists the one-hop co-stars of a person as hops starting at them.
func (s *Degrees) Neighbors(personID string) ([]domain.Hop, error) {
	person, err := s.store.Person(sanitizeString(personID))
	if err != nil {
		return nil, err
	}
	from := person.Summary()
	nbs := search.Neighbors(s.store, person.ID)
	hops := make([]domain.Hop, 0, len(nbs))
	for _, nb := range nbs {
		hop, err := s.hop(from, nb.MovieID, nb.PersonID)
		if err != nil {
			return nil, err
		}
		hops = append(hops, hop)
	}
	return hops, nil
}

// Stats returns the loaded dataset counters.
func (s *Degrees) Stats() dataset.Stats {
	return s.store.Stats()
}

func (s *Degrees) hops(source domain.PersonSummary, path domain.Path) ([]domain.Hop, error) {
	hops := make([]domain.Hop, 0, len(path))
	prev := source
	for _, step := range path {
		hop, err := s.hop(prev, step.MovieID, step.PersonID)
		if err != nil {
			return nil, err
		}
		hops = append(hops, hop)
		prev = hop.To
	}
	return hops, nil
}

func (s *Degrees) hop(from domain.PersonSummary, movieID, personID string) (domain.Hop, error) {
	movie, err := s.store.Movie(movieID)
	if err != nil {
		return domain.Hop{}, err
	}
	to, err := s.store.Person(personID)
	if err != nil {
		return domain.Hop{}, err
	}
	movie.StarIDs = nil
	return domain.Hop{From: from, To: to.Summary(), Movie: movie}, nil
}
