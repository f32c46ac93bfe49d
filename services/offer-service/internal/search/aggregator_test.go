package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregator_FiltersInvalidScores(t *testing.T) {
	g := newFakeGateway()
	c := course("Calculus", "Math", 1, 3)
	g.rate(c, 3, 5, 7, -1)

	stats, err := NewAggregator(g).Aggregate(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Count)
	assert.Equal(t, 4.0, stats.Average)
}

func TestAggregator_NoRatingsIsNotAnError(t *testing.T) {
	g := newFakeGateway()
	c := course("Calculus", "Math", 1, 3)

	stats, err := NewAggregator(g).Aggregate(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, RatingStats{}, stats)

	g.rate(c, 0, 6, 100)
	stats, err = NewAggregator(g).Aggregate(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, RatingStats{}, stats)
}

func TestAggregator_BoundaryScores(t *testing.T) {
	g := newFakeGateway()
	c := course("Calculus", "Math", 1, 3)
	g.rate(c, 1, 5)

	stats, err := NewAggregator(g).Aggregate(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, RatingStats{Average: 3, Count: 2}, stats)
}

func TestAggregator_PropagatesStoreError(t *testing.T) {
	g := newFakeGateway()
	g.ratingErr = errors.New("db down")

	_, err := NewAggregator(g).Aggregate(context.Background(), course("x", "y", 1, 1).ID)
	assert.ErrorIs(t, err, g.ratingErr)
}
