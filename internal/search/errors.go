package search

import "errors"

var (
	// ErrUnknownPerson is returned when the source or target is absent from the graph.
	ErrUnknownPerson = errors.New("search: unknown person")
	// ErrBrokenTrail signals that a discovered node does not lead back to the
	// source. It indicates a defect in the traversal, never a data problem.
	ErrBrokenTrail = errors.New("search: parent chain does not reach source")
)
