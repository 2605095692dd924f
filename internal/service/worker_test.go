package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/degrees/internal/dataset"
)

func TestSearchAllPreservesOrder(t *testing.T) {
	svc := NewDegrees(bundledStore(t))
	batch := NewBatchSearcher(svc, 3)

	queries := []Query{
		{Source: kevinBacon, Target: tomHanks},
		{Source: kevinBacon, Target: dustinHoffman},
		{Source: kevinBacon, Target: emmaWatson},
		{Source: cary, Target: kevinBacon},
	}
	outcomes, err := batch.SearchAll(context.Background(), queries)
	require.NoError(t, err)
	require.Len(t, outcomes, len(queries))

	want := []int{1, 2, -1, 3}
	for i, o := range outcomes {
		assert.Equal(t, queries[i], o.Query)
		assert.NoError(t, o.Err)
		assert.Equal(t, want[i], o.Connection.Degrees(), "query %d", i)
	}
}

func TestSearchAllAggregatesErrors(t *testing.T) {
	svc := NewDegrees(bundledStore(t))
	batch := NewBatchSearcher(svc, 0)

	outcomes, err := batch.SearchAll(context.Background(), []Query{
		{Source: kevinBacon, Target: tomHanks},
		{Source: "missing", Target: tomHanks},
		{Source: kevinBacon, Target: ""},
	})
	require.Error(t, err)

	var taskErr *TaskError
	require.True(t, errors.As(err, &taskErr))
	assert.Len(t, taskErr.Errors, 2)
	assert.ErrorIs(t, err, dataset.ErrPersonNotFound)
	assert.ErrorIs(t, err, ErrInvalidQuery)
	assert.Contains(t, err.Error(), "multiple errors")

	assert.NoError(t, outcomes[0].Err)
	assert.Error(t, outcomes[1].Err)
	assert.Error(t, outcomes[2].Err)
}

func TestSearchAllEmptyAndCancelled(t *testing.T) {
	batch := NewBatchSearcher(NewDegrees(bundledStore(t)), 2)

	outcomes, err := batch.SearchAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, outcomes)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = batch.SearchAll(ctx, []Query{{Source: kevinBacon, Target: tomHanks}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTaskErrorMessages(t *testing.T) {
	var e TaskError
	assert.Equal(t, "no errors", e.Error())
	assert.NoError(t, e.asError())

	e.append(nil)
	e.append(errors.New("boom"))
	assert.Equal(t, "boom", e.Error())
}
