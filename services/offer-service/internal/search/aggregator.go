package search

import (
	"context"

	"github.com/google/uuid"
)

// RatingStats: ноль оценок это нормальный результат, а не ошибка
type RatingStats struct {
	Average float64
	Count   int
}

type Aggregator struct {
	ratings RatingSource
}

func NewAggregator(rs RatingSource) *Aggregator {
	return &Aggregator{ratings: rs}
}

func (a *Aggregator) Aggregate(ctx context.Context, courseID uuid.UUID) (RatingStats, error) {
	ratings, err := a.ratings.RatingsForCourse(ctx, courseID)
	if err != nil {
		return RatingStats{}, err
	}

	var sum, count int
	for _, r := range ratings {
		if !r.Valid() {
			continue
		}
		sum += r.Score
		count++
	}
	if count == 0 {
		return RatingStats{}, nil
	}
	return RatingStats{Average: float64(sum) / float64(count), Count: count}, nil
}
