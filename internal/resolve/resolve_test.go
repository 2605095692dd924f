package resolve

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/degrees/internal/domain"
)

type directory map[string][]domain.PersonSummary

func (d directory) Lookup(name string) []domain.PersonSummary {
	return d[strings.ToLower(name)]
}

func testDirectory() directory {
	return directory{
		"kevin bacon": {{ID: "102", Name: "Kevin Bacon", Birth: "1958"}},
		"chris evans": {
			{ID: "262", Name: "Chris Evans", Birth: "1981"},
			{ID: "263", Name: "Chris Evans", Birth: "1966"},
		},
	}
}

func TestResolver_UniqueAndMissing(t *testing.T) {
	r := New(testDirectory(), nil)

	id, err := r.Resolve(context.Background(), "Kevin Bacon")
	require.NoError(t, err)
	assert.Equal(t, "102", id)

	_, err = r.Resolve(context.Background(), "Nobody")
	assert.ErrorIs(t, err, ErrPersonNameNotFound)
}

func TestResolver_Strategies(t *testing.T) {
	dir := testDirectory()

	id, err := New(dir, First{}).Resolve(context.Background(), "Chris Evans")
	require.NoError(t, err)
	assert.Equal(t, "262", id)

	_, err = New(dir, Strict{}).Resolve(context.Background(), "Chris Evans")
	var ambiguous *AmbiguousNameError
	require.ErrorAs(t, err, &ambiguous)
	assert.Len(t, ambiguous.Candidates, 2)
	assert.Contains(t, err.Error(), "262, 263")
}

func TestPrompt_LineMode(t *testing.T) {
	var out bytes.Buffer
	p := &Prompt{In: bufio.NewReader(strings.NewReader("263\n")), Out: &out}

	id, err := New(testDirectory(), p).Resolve(context.Background(), "Chris Evans")
	require.NoError(t, err)
	assert.Equal(t, "263", id)
	assert.Contains(t, out.String(), "Which 'Chris Evans'?")
	assert.Contains(t, out.String(), "ID: 263, Name: Chris Evans, Birth: 1966")
}

func TestPrompt_RejectsForeignID(t *testing.T) {
	p := &Prompt{In: bufio.NewReader(strings.NewReader("999\n")), Out: &bytes.Buffer{}}

	_, err := New(testDirectory(), p).Resolve(context.Background(), "Chris Evans")
	assert.ErrorIs(t, err, ErrNoSelection)
}

func TestPrompt_EmptyInput(t *testing.T) {
	p := &Prompt{In: bufio.NewReader(strings.NewReader("")), Out: &bytes.Buffer{}}

	_, err := New(testDirectory(), p).Resolve(context.Background(), "Chris Evans")
	assert.ErrorIs(t, err, ErrNoSelection)
}

func TestPrompt_AskNameLineMode(t *testing.T) {
	var out bytes.Buffer
	p := &Prompt{In: bufio.NewReader(strings.NewReader(" Kevin Bacon \nTom Hanks")), Out: &out}

	first, err := p.AskName(context.Background(), "Source")
	require.NoError(t, err)
	assert.Equal(t, "Kevin Bacon", first)

	second, err := p.AskName(context.Background(), "Target")
	require.NoError(t, err)
	assert.Equal(t, "Tom Hanks", second)

	_, err = p.AskName(context.Background(), "Again")
	assert.Error(t, err)
	assert.Equal(t, "Name: Name: Name: ", out.String())
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("FIRST", nil)
	require.NoError(t, err)
	assert.IsType(t, First{}, s)

	s, err = ParseStrategy("", nil)
	require.NoError(t, err)
	assert.IsType(t, Strict{}, s)

	p := &Prompt{}
	s, err = ParseStrategy("prompt", p)
	require.NoError(t, err)
	assert.Same(t, p, s)

	_, err = ParseStrategy("prompt", nil)
	assert.ErrorIs(t, err, ErrUnknownStrategy)
	_, err = ParseStrategy("random", nil)
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}
