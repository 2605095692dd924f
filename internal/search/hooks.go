package search

import (
	"context"
	"log/slog"
)

// Hooks observe a traversal. Nil callbacks are skipped.
type Hooks struct {
	// OnEnqueue is called when a person is discovered. movieID is empty for the source.
	OnEnqueue func(personID, movieID string, depth int)
	// OnDequeue is called just before a person is compared with the target and expanded.
	OnDequeue func(personID string, depth int)
}

func (h Hooks) enqueue(n node) {
	if h.OnEnqueue != nil {
		h.OnEnqueue(n.personID, n.movieID, n.depth)
	}
}

func (h Hooks) dequeue(n node) {
	if h.OnDequeue != nil {
		h.OnDequeue(n.personID, n.depth)
	}
}

// LogHooks returns hooks that write one debug record per traversal event.
func LogHooks(logger *slog.Logger) Hooks {
	ctx := context.Background()
	return Hooks{
		OnEnqueue: func(personID, movieID string, depth int) {
			logger.Log(ctx, slog.LevelDebug, "search enqueue", "personId", personID, "movieId", movieID, "depth", depth)
		},
		OnDequeue: func(personID string, depth int) {
			logger.Log(ctx, slog.LevelDebug, "search dequeue", "personId", personID, "depth", depth)
		},
	}
}
