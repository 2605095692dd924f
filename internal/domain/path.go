package domain

// Step is one movie link in a chain: the person reached and the movie that
// connects them to the previous person.
type Step struct {
	MovieID  string
	PersonID string
}

// Path is the ordered list of steps from the person after the source up to
// and including the target. An empty path means source and target coincide.
type Path []Step

// Degrees returns the number of movie links in the path.
func (p Path) Degrees() int {
	return len(p)
}

// Target returns the last person on the path, or fallback when the path is empty.
func (p Path) Target(fallback string) string {
	if len(p) == 0 {
		return fallback
	}
	return p[len(p)-1].PersonID
}

// Hop is a presenter-ready step carrying both endpoints and the shared movie.
type Hop struct {
	From  PersonSummary
	To    PersonSummary
	Movie Movie
}

// Connection is the outcome of a degrees query between two people.
type Connection struct {
	Source    PersonSummary
	Target    PersonSummary
	Path      Path
	Hops      []Hop
	Connected bool
	Explored  int
}

// Degrees returns the separation of a connected pair, or -1 when not connected.
func (c Connection) Degrees() int {
	if !c.Connected {
		return -1
	}
	return c.Path.Degrees()
}
