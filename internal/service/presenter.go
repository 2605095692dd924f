package service

import (
	"fmt"
	"io"

	"github.com/vanshika/degrees/internal/domain"
)

// Render writes the human readable form of conn:
//
//	2 degrees of separation.
//	1: Kevin Bacon and Tom Cruise starred in A Few Good Men
//	2: Tom Cruise and Dustin Hoffman starred in Rain Man
func Render(w io.Writer, conn domain.Connection) error {
	if !conn.Connected {
		_, err := fmt.Fprintln(w, "Not connected.")
		return err
	}
	if _, err := fmt.Fprintf(w, "%d degrees of separation.\n", conn.Degrees()); err != nil {
		return err
	}
	for i, hop := range conn.Hops {
		if _, err := fmt.Fprintf(w, "%d: %s and %s starred in %s\n", i+1, hop.From.Name, hop.To.Name, hop.Movie.Title); err != nil {
			return err
		}
	}
	return nil
}
