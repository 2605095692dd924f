// Package search finds the shortest chain of shared-movie links between two
// people.
//
// The co-starring graph is never materialised. Neighbors derives the edges of
// a person on demand from the dataset indices, and Engine runs a
// breadth-first search over them. Each call to Engine.ShortestPath owns its
// frontier, visited set and node arena, so one Engine can serve concurrent
// queries against the same read-only dataset.
package search
