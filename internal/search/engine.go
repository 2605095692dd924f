package search

import (
	"context"
	"fmt"

	"github.com/vanshika/degrees/internal/domain"
)

// cancelCheckInterval is how many dequeues happen between context checks.
const cancelCheckInterval = 256

// Result is the outcome of one search. Connected is false when no chain of
// shared movies links source and target; that is a normal outcome, not an error.
type Result struct {
	Source    string
	Target    string
	Path      domain.Path
	Connected bool
	// Explored counts dequeued nodes, Discovered counts enqueued ones.
	Explored   int
	Discovered int
}

// Engine runs breadth-first searches over a Graph.
type Engine struct {
	graph Graph
	hooks Hooks
}

// Option configures an Engine.
type Option func(*Engine)

// WithHooks installs traversal hooks.
func WithHooks(h Hooks) Option {
	return func(e *Engine) {
		e.hooks = h
	}
}

// NewEngine returns an Engine over g.
func NewEngine(g Graph, opts ...Option) *Engine {
	e := &Engine{graph: g}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ShortestPath returns the shortest chain of shared movies from source to
// target. Both people must exist in the graph.
func (e *Engine) ShortestPath(ctx context.Context, source, target string) (Result, error) {
	res := Result{Source: source, Target: target}
	if !e.graph.HasPerson(source) {
		return res, fmt.Errorf("%w: source %s", ErrUnknownPerson, source)
	}
	if !e.graph.HasPerson(target) {
		return res, fmt.Errorf("%w: target %s", ErrUnknownPerson, target)
	}

	if source == target {
		res.Path = domain.Path{}
		res.Connected = true
		return res, nil
	}

	var t trail
	// Visited is marked on discovery so nobody enters the frontier twice.
	seen := map[string]struct{}{source: {}}
	root := t.push(source, "", noParent)
	e.hooks.enqueue(t.nodes[root])

	for t.pending() {
		if res.Explored%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				res.Discovered = len(t.nodes)
				return res, err
			}
		}

		cur := t.pop()
		n := t.nodes[cur]
		res.Explored++
		e.hooks.dequeue(n)

		if n.personID == target {
			path, err := t.materialize(cur, source, target)
			res.Discovered = len(t.nodes)
			if err != nil {
				return res, err
			}
			res.Path = path
			res.Connected = true
			return res, nil
		}

		for _, nb := range Neighbors(e.graph, n.personID) {
			if _, ok := seen[nb.PersonID]; ok {
				continue
			}
			seen[nb.PersonID] = struct{}{}
			idx := t.push(nb.PersonID, nb.MovieID, cur)
			e.hooks.enqueue(t.nodes[idx])
		}
	}

	res.Discovered = len(t.nodes)
	return res, nil
}
