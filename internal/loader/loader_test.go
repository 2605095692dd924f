package loader

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/degrees/internal/dataset"
)

func mapSource(people, movies, stars string) *CSVSource {
	fsys := fstest.MapFS{}
	if people != "" {
		fsys[PeopleFile] = &fstest.MapFile{Data: []byte(people)}
	}
	if movies != "" {
		fsys[MoviesFile] = &fstest.MapFile{Data: []byte(movies)}
	}
	if stars != "" {
		fsys[StarsFile] = &fstest.MapFile{Data: []byte(stars)}
	}
	return &CSVSource{FS: fsys}
}

func TestLoad_BundledDataset(t *testing.T) {
	store, report, err := Load(context.Background(), BundledSource())
	require.NoError(t, err)

	assert.Equal(t, 16, report.People)
	assert.Equal(t, 5, report.Movies)
	assert.Equal(t, 20, report.Stars)
	assert.Zero(t, report.DroppedStars)

	bacon, err := store.Person("102")
	require.NoError(t, err)
	assert.Equal(t, "Kevin Bacon", bacon.Name)
	assert.Equal(t, []string{"104257", "112384"}, bacon.MovieIDs)

	assert.Equal(t, []string{"158"}, store.IDsByName("tom hanks"))
	assert.Empty(t, store.MovieIDs("914612"), "Emma Watson has no movies in the small dataset")
}

func TestLoad_ColumnOrderQuotesAndBOM(t *testing.T) {
	src := mapSource(
		"\ufeffbirth,name,id\n1958,\"Bacon, Kevin\",102\n,Nameless,7\n",
		"title,id,year\n\"A Few Good Men\",104257,1992\n",
		"movie_id,person_id\n104257,102\n104257,7\n",
	)

	store, report, err := Load(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Stars)

	p, err := store.Person("102")
	require.NoError(t, err)
	assert.Equal(t, "Bacon, Kevin", p.Name)
	assert.Equal(t, "1958", p.Birth)

	nameless, err := store.Person("7")
	require.NoError(t, err)
	assert.Empty(t, nameless.Birth)

	m, err := store.Movie("104257")
	require.NoError(t, err)
	assert.Equal(t, []string{"102", "7"}, m.StarIDs)
}

func TestLoad_DropsUnknownAssociations(t *testing.T) {
	src := mapSource(
		"id,name,birth\n1,A,\n",
		"id,title,year\nm1,M1,2000\n",
		"person_id,movie_id\n1,m1\n2,m1\n1,m2\n",
	)

	store, report, err := Load(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Stars)
	assert.Equal(t, 2, report.DroppedStars)
	assert.Equal(t, []string{"m1"}, store.MovieIDs("1"))
}

func TestLoad_Errors(t *testing.T) {
	cases := map[string]struct {
		src  *CSVSource
		want error
	}{
		"missing people file": {
			src: mapSource("", "id,title,year\n", "person_id,movie_id\n"),
		},
		"missing stars file": {
			src: mapSource("id,name,birth\n", "id,title,year\n", ""),
		},
		"missing column": {
			src:  mapSource("id,birth\n1,1950\n", "id,title,year\n", "person_id,movie_id\n"),
			want: ErrMissingColumn,
		},
		"empty file": {
			src: mapSource("id,name\n", "id,title\n", "\n"),
		},
		"blank person id": {
			src:  mapSource("id,name\n,Nobody\n", "id,title\n", "person_id,movie_id\n"),
			want: dataset.ErrMissingID,
		},
		"malformed quotes": {
			src: mapSource("id,name\n1,\"unterminated\n", "id,title\n", "person_id,movie_id\n"),
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := Load(context.Background(), tc.src)
			require.Error(t, err)
			if tc.want != nil {
				assert.ErrorIs(t, err, tc.want)
			}
		})
	}
}

func TestLoad_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := Load(ctx, BundledSource())
	assert.ErrorIs(t, err, context.Canceled)
}
