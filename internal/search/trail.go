package search

import (
	"fmt"

	"github.com/vanshika/degrees/internal/domain"
)

const noParent = -1

// node is one discovered person. Parents are arena indices, so the search
// tree holds no pointers.
type node struct {
	personID string
	movieID  string
	parent   int
	depth    int
}

// trail is the node arena of a single search. Nodes are appended in
// discovery order, which makes the unexpanded tail of the arena the
// breadth-first frontier.
type trail struct {
	nodes []node
	next  int
}

func (t *trail) push(personID, movieID string, parent int) int {
	depth := 0
	if parent != noParent {
		depth = t.nodes[parent].depth + 1
	}
	t.nodes = append(t.nodes, node{
		personID: personID,
		movieID:  movieID,
		parent:   parent,
		depth:    depth,
	})
	return len(t.nodes) - 1
}

// pending reports whether discovered nodes remain unexpanded.
func (t *trail) pending() bool {
	return t.next < len(t.nodes)
}

// pop returns the index of the oldest unexpanded node.
func (t *trail) pop() int {
	idx := t.next
	t.next++
	return idx
}

// materialize walks parent links from terminal back to the root and returns
// the steps in source-to-target order.
func (t *trail) materialize(terminal int, source, target string) (domain.Path, error) {
	if terminal < 0 || terminal >= len(t.nodes) {
		return nil, fmt.Errorf("%w: node %d out of range", ErrBrokenTrail, terminal)
	}
	if got := t.nodes[terminal].personID; got != target {
		return nil, fmt.Errorf("%w: terminal node is %s, want %s", ErrBrokenTrail, got, target)
	}

	var steps domain.Path
	idx := terminal
	for t.nodes[idx].parent != noParent {
		if len(steps) >= len(t.nodes) {
			return nil, fmt.Errorf("%w: cycle detected", ErrBrokenTrail)
		}
		n := t.nodes[idx]
		steps = append(steps, domain.Step{MovieID: n.movieID, PersonID: n.personID})
		idx = n.parent
	}
	if got := t.nodes[idx].personID; got != source {
		return nil, fmt.Errorf("%w: chain ends at %s, want %s", ErrBrokenTrail, got, source)
	}

	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return steps, nil
}
