// Package resolve turns a display name into a single person id.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vanshika/degrees/internal/domain"
)

var (
	// ErrPersonNameNotFound is returned when no person carries the queried name.
	ErrPersonNameNotFound = errors.New("person not found")
	// ErrNoSelection is returned when a prompt ends without a valid choice.
	ErrNoSelection = errors.New("no person selected")
	// ErrUnknownStrategy is returned by ParseStrategy for unsupported names.
	ErrUnknownStrategy = errors.New("unknown disambiguation strategy")
)

// AmbiguousNameError reports a name shared by several people.
type AmbiguousNameError struct {
	Name       string
	Candidates []domain.PersonSummary
}

func (e *AmbiguousNameError) Error() string {
	ids := make([]string, 0, len(e.Candidates))
	for _, c := range e.Candidates {
		ids = append(ids, c.ID)
	}
	return fmt.Sprintf("name %q matches %d people: %s", e.Name, len(e.Candidates), strings.Join(ids, ", "))
}

// Directory looks people up by name. *dataset.Store satisfies it.
type Directory interface {
	Lookup(name string) []domain.PersonSummary
}

// Strategy picks one id among people sharing a name. Candidates are sorted
// by id and there are always at least two.
type Strategy interface {
	Choose(ctx context.Context, name string, candidates []domain.PersonSummary) (string, error)
}

// Resolver maps names to ids, delegating ties to a Strategy.
type Resolver struct {
	dir      Directory
	strategy Strategy
}

// New returns a Resolver. A nil strategy behaves like Strict.
func New(dir Directory, strategy Strategy) *Resolver {
	if strategy == nil {
		strategy = Strict{}
	}
	return &Resolver{dir: dir, strategy: strategy}
}

// Resolve returns the id of the person called name.
func (r *Resolver) Resolve(ctx context.Context, name string) (string, error) {
	return r.ResolveWith(ctx, name, r.strategy)
}

// ResolveWith is Resolve with a per-call strategy.
func (r *Resolver) ResolveWith(ctx context.Context, name string, strategy Strategy) (string, error) {
	candidates := r.dir.Lookup(name)
	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("%w: %q", ErrPersonNameNotFound, name)
	case 1:
		return candidates[0].ID, nil
	}

	id, err := strategy.Choose(ctx, name, candidates)
	if err != nil {
		return "", err
	}
	for _, c := range candidates {
		if c.ID == id {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %q is not a match for %q", ErrNoSelection, id, name)
}

// First picks the candidate with the lowest id.
type First struct{}

func (First) Choose(_ context.Context, _ string, candidates []domain.PersonSummary) (string, error) {
	return candidates[0].ID, nil
}

// Strict refuses to guess.
type Strict struct{}

func (Strict) Choose(_ context.Context, name string, candidates []domain.PersonSummary) (string, error) {
	return "", &AmbiguousNameError{Name: name, Candidates: candidates}
}

// Strategy names accepted by ParseStrategy.
const (
	StrategyFirst  = "first"
	StrategyStrict = "strict"
	StrategyPrompt = "prompt"
)

// ParseStrategy returns the strategy called name. prompt is used for
// StrategyPrompt and may be nil otherwise.
func ParseStrategy(name string, prompt *Prompt) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case StrategyFirst:
		return First{}, nil
	case StrategyStrict, "":
		return Strict{}, nil
	case StrategyPrompt:
		if prompt == nil {
			return nil, fmt.Errorf("%w: prompt needs a terminal", ErrUnknownStrategy)
		}
		return prompt, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}
