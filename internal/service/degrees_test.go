package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/degrees/internal/dataset"
	"github.com/vanshika/degrees/internal/domain"
	"github.com/vanshika/degrees/internal/loader"
	"github.com/vanshika/degrees/internal/metrics"
	"github.com/vanshika/degrees/internal/resolve"
	"github.com/vanshika/degrees/internal/search"
)

const (
	kevinBacon    = "102"
	tomCruise     = "129"
	cary          = "144"
	tomHanks      = "158"
	dustinHoffman = "163"
	emmaWatson    = "914612"
)

func bundledStore(t *testing.T) *dataset.Store {
	t.Helper()
	store, _, err := loader.Load(context.Background(), loader.BundledSource())
	require.NoError(t, err)
	return store
}

func assertChain(t *testing.T, conn domain.Connection) {
	t.Helper()
	require.Len(t, conn.Hops, conn.Degrees())
	prev := conn.Source.ID
	for i, hop := range conn.Hops {
		assert.Equal(t, prev, hop.From.ID, "hop %d", i)
		assert.Equal(t, conn.Path[i].PersonID, hop.To.ID, "hop %d", i)
		assert.Equal(t, conn.Path[i].MovieID, hop.Movie.ID, "hop %d", i)
		prev = hop.To.ID
	}
	assert.Equal(t, conn.Target.ID, prev)
}

func TestResolveAndSearchOneDegree(t *testing.T) {
	svc := NewDegrees(bundledStore(t))

	conn, err := svc.ResolveAndSearch(context.Background(), kevinBacon, tomHanks)
	require.NoError(t, err)
	require.True(t, conn.Connected)
	assert.Equal(t, 1, conn.Degrees())
	assert.Equal(t, "Kevin Bacon", conn.Source.Name)
	assert.Equal(t, "Tom Hanks", conn.Target.Name)
	assert.Equal(t, "Apollo 13", conn.Hops[0].Movie.Title)
	assertChain(t, conn)
}

func TestResolveAndSearchMultipleDegrees(t *testing.T) {
	svc := NewDegrees(bundledStore(t))

	cases := []struct {
		target  string
		degrees int
	}{
		{dustinHoffman, 2},
		{cary, 3},
		{tomCruise, 1},
	}
	for _, tc := range cases {
		conn, err := svc.ResolveAndSearch(context.Background(), kevinBacon, tc.target)
		require.NoError(t, err)
		require.True(t, conn.Connected)
		assert.Equal(t, tc.degrees, conn.Degrees(), "target %s", tc.target)
		assertChain(t, conn)
	}
}

func TestResolveAndSearchNotConnected(t *testing.T) {
	svc := NewDegrees(bundledStore(t))

	conn, err := svc.ResolveAndSearch(context.Background(), kevinBacon, emmaWatson)
	require.NoError(t, err)
	assert.False(t, conn.Connected)
	assert.Equal(t, -1, conn.Degrees())
	assert.Empty(t, conn.Hops)
	assert.Equal(t, "Emma Watson", conn.Target.Name)
}

func TestResolveAndSearchSamePerson(t *testing.T) {
	svc := NewDegrees(bundledStore(t))

	conn, err := svc.ResolveAndSearch(context.Background(), tomHanks, " 158 ")
	require.NoError(t, err)
	assert.True(t, conn.Connected)
	assert.Equal(t, 0, conn.Degrees())
	assert.Empty(t, conn.Hops)
}

func TestResolveAndSearchErrors(t *testing.T) {
	svc := NewDegrees(bundledStore(t))

	_, err := svc.ResolveAndSearch(context.Background(), "", tomHanks)
	assert.ErrorIs(t, err, ErrInvalidQuery)

	_, err = svc.ResolveAndSearch(context.Background(), "999", tomHanks)
	assert.ErrorIs(t, err, dataset.ErrPersonNotFound)

	_, err = svc.ResolveAndSearch(context.Background(), tomHanks, "999")
	assert.ErrorIs(t, err, dataset.ErrPersonNotFound)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.ResolveAndSearch(ctx, kevinBacon, emmaWatson)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSearchByName(t *testing.T) {
	svc := NewDegrees(bundledStore(t))

	conn, err := svc.SearchByName(context.Background(), "kevin  bacon", "TOM HANKS", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, conn.Degrees())

	_, err = svc.SearchByName(context.Background(), "Nobody Here", "Tom Hanks", nil)
	assert.ErrorIs(t, err, resolve.ErrPersonNameNotFound)

	_, err = svc.SearchByName(context.Background(), " ", "Tom Hanks", nil)
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestSearchByNameAmbiguous(t *testing.T) {
	b := dataset.NewBuilder()
	require.NoError(t, b.AddPerson(dataset.PersonRecord{ID: "1", Name: "Sam Smith"}))
	require.NoError(t, b.AddPerson(dataset.PersonRecord{ID: "2", Name: "Sam Smith"}))
	require.NoError(t, b.AddPerson(dataset.PersonRecord{ID: "3", Name: "Alex"}))
	require.NoError(t, b.AddMovie(dataset.MovieRecord{ID: "m", Title: "Movie"}))
	_, err := b.AddStar(dataset.StarRecord{PersonID: "2", MovieID: "m"})
	require.NoError(t, err)
	_, err = b.AddStar(dataset.StarRecord{PersonID: "3", MovieID: "m"})
	require.NoError(t, err)
	store, err := b.Build()
	require.NoError(t, err)

	svc := NewDegrees(store)
	_, err = svc.SearchByName(context.Background(), "Sam Smith", "Alex", nil)
	var ambiguous *resolve.AmbiguousNameError
	require.True(t, errors.As(err, &ambiguous))
	assert.Len(t, ambiguous.Candidates, 2)

	conn, err := svc.SearchByName(context.Background(), "Sam Smith", "Alex", resolve.First{})
	require.NoError(t, err)
	assert.Equal(t, "1", conn.Source.ID)
	assert.False(t, conn.Connected)

	firstByDefault := NewDegrees(store, WithStrategy(resolve.First{}))
	conn, err = firstByDefault.SearchByName(context.Background(), "Sam Smith", "Alex", nil)
	require.NoError(t, err)
	assert.Equal(t, "1", conn.Source.ID)
}

func TestResolveNameWithInnerWhitespace(t *testing.T) {
	b := dataset.NewBuilder()
	require.NoError(t, b.AddPerson(dataset.PersonRecord{ID: " 1 ", Name: "Mary  Jane"}))
	require.NoError(t, b.AddPerson(dataset.PersonRecord{ID: "2", Name: "Peter Parker"}))
	store, err := b.Build()
	require.NoError(t, err)
	svc := NewDegrees(store)

	for _, name := range []string{"Mary  Jane", "mary jane", " MARY   JANE "} {
		id, err := svc.ResolveName(context.Background(), name, nil)
		require.NoError(t, err, name)
		assert.Equal(t, "1", id, name)

		people := svc.FindPeople(name)
		require.Len(t, people, 1, name)
		assert.Equal(t, "Mary  Jane", people[0].Name)
	}

	person, err := svc.Person(" 1 ")
	require.NoError(t, err)
	assert.Equal(t, "1", person.ID)

	conn, err := svc.SearchByName(context.Background(), "Mary  Jane", "peter parker", nil)
	require.NoError(t, err)
	assert.False(t, conn.Connected)
}

func TestNeighbors(t *testing.T) {
	svc := NewDegrees(bundledStore(t))

	hops, err := svc.Neighbors(kevinBacon)
	require.NoError(t, err)
	// A Few Good Men: Cruise, Moore, Nicholson. Apollo 13: Hanks, Paxton, Sinise.
	require.Len(t, hops, 6)
	for _, hop := range hops {
		assert.Equal(t, kevinBacon, hop.From.ID)
		assert.NotEqual(t, kevinBacon, hop.To.ID)
	}
	assert.Equal(t, "A Few Good Men", hops[0].Movie.Title)
	assert.Equal(t, "Apollo 13", hops[5].Movie.Title)

	hops, err = svc.Neighbors(emmaWatson)
	require.NoError(t, err)
	assert.Empty(t, hops)

	_, err = svc.Neighbors("999")
	assert.ErrorIs(t, err, dataset.ErrPersonNotFound)
}

func TestLookups(t *testing.T) {
	svc := NewDegrees(bundledStore(t))

	people := svc.FindPeople("tom hanks")
	require.Len(t, people, 1)
	assert.Equal(t, tomHanks, people[0].ID)
	assert.Equal(t, 2, people[0].MovieCount)

	movie, err := svc.Movie("112384")
	require.NoError(t, err)
	assert.Equal(t, "Apollo 13", movie.Title)

	_, err = svc.Movie("1")
	assert.ErrorIs(t, err, dataset.ErrMovieNotFound)

	assert.Equal(t, 16, svc.Stats().People)
}

func TestMetricsRecorded(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	svc := NewDegrees(bundledStore(t), WithMetrics(m), WithTimeout(time.Second))

	_, err := svc.ResolveAndSearch(context.Background(), kevinBacon, tomHanks)
	require.NoError(t, err)
	_, err = svc.ResolveAndSearch(context.Background(), kevinBacon, emmaWatson)
	require.NoError(t, err)
	_, err = svc.ResolveAndSearch(context.Background(), kevinBacon, "nope")
	require.Error(t, err)

	count, err := testutil.GatherAndCount(reg, "degrees_searches_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestHooksObserveTraversal(t *testing.T) {
	var dequeued []string
	hooks := search.Hooks{OnDequeue: func(personID string, _ int) { dequeued = append(dequeued, personID) }}
	svc := NewDegrees(bundledStore(t), WithHooks(hooks))

	_, err := svc.ResolveAndSearch(context.Background(), kevinBacon, tomHanks)
	require.NoError(t, err)
	require.NotEmpty(t, dequeued)
	assert.Equal(t, kevinBacon, dequeued[0])
	assert.Equal(t, tomHanks, dequeued[len(dequeued)-1])
}

func TestWithClock(t *testing.T) {
	svc := NewDegrees(bundledStore(t))
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.WithClock(func() time.Time { return fixed })
	svc.WithClock(nil)

	assert.Equal(t, fixed, svc.nowFn())
}

func TestRender(t *testing.T) {
	svc := NewDegrees(bundledStore(t))

	conn, err := svc.ResolveAndSearch(context.Background(), kevinBacon, dustinHoffman)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, conn))
	assert.Equal(t, "2 degrees of separation.\n"+
		"1: Kevin Bacon and Tom Cruise starred in A Few Good Men\n"+
		"2: Tom Cruise and Dustin Hoffman starred in Rain Man\n", buf.String())

	buf.Reset()
	require.NoError(t, Render(&buf, domain.Connection{}))
	assert.Equal(t, "Not connected.\n", buf.String())
}
