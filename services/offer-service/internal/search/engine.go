package search

import (
	"context"
	"time"

	"courseplatform/services/offer-service/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultParallelism = 8

// Причины неудачного поиска для метрик
const (
	FailureInvalid   = "invalid_criteria"
	FailureStore     = "store"
	FailureInvariant = "invariant"
	FailureCanceled  = "canceled"
)

type RankedResult struct {
	Course             domain.Course
	MinDiscountedPrice float64
	ClosestDate        time.Time
	Rating             float64
	NumberOfRatings    int
}

type Recorder interface {
	ObserveSearch(elapsed time.Duration, results int)
	SearchFailed(reason string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveSearch(time.Duration, int) {}
func (nopRecorder) SearchFailed(string)              {}

type Option func(*Engine)

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithParallelism ограничивает число одновременных запросов оценок в одном поиске
func WithParallelism(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.parallelism = n
		}
	}
}

// Engine не хранит состояния между вызовами, Search можно звать из разных горутин.
type Engine struct {
	gateway     Gateway
	aggregator  *Aggregator
	logger      *zap.Logger
	recorder    Recorder
	parallelism int
}

func NewEngine(gw Gateway, opts ...Option) *Engine {
	e := &Engine{
		gateway:     gw,
		aggregator:  NewAggregator(gw),
		logger:      zap.NewNop(),
		recorder:    nopRecorder{},
		parallelism: defaultParallelism,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Search: фильтр -> один запрос в хранилище -> лучшее предложение на курс -> оценки по курсам.
// Ошибки хранилища возвращаются как есть, без повторов.
func (e *Engine) Search(ctx context.Context, criteria Criteria) ([]RankedResult, error) {
	start := time.Now()
	c := criteria.Clone()

	if err := c.Validate(); err != nil {
		e.recorder.SearchFailed(FailureInvalid)
		return nil, err
	}

	offers, err := e.gateway.QueryOffers(ctx, BuildPredicate(c))
	if err != nil {
		e.logger.Error("offer query failed", zap.Error(err))
		e.recorder.SearchFailed(FailureStore)
		return nil, err
	}

	groups := GroupByCourse(offers)
	best := make([]domain.Offer, len(groups))
	for i, g := range groups {
		o, err := BestOffer(g)
		if err != nil {
			e.logger.Error("ranking invariant violated", zap.String("course_id", g.CourseID.String()), zap.Error(err))
			e.recorder.SearchFailed(FailureInvariant)
			return nil, err
		}
		best[i] = o
	}

	stats, err := e.aggregateAll(ctx, groups)
	if err != nil {
		if ctx.Err() != nil {
			e.recorder.SearchFailed(FailureCanceled)
			return nil, ctx.Err()
		}
		e.logger.Error("rating aggregation failed", zap.Error(err))
		e.recorder.SearchFailed(FailureStore)
		return nil, err
	}

	results := make([]RankedResult, 0, len(groups))
	for i := range groups {
		if !c.Rating.IsZero() && (stats[i].Count == 0 || !c.Rating.Contains(stats[i].Average)) {
			continue
		}
		results = append(results, RankedResult{
			Course:             best[i].Course,
			MinDiscountedPrice: best[i].EffectivePrice(),
			ClosestDate:        best[i].Date,
			Rating:             stats[i].Average,
			NumberOfRatings:    stats[i].Count,
		})
	}

	e.logger.Debug("search completed",
		zap.Int("offers", len(offers)),
		zap.Int("courses", len(groups)),
		zap.Int("results", len(results)),
		zap.Duration("elapsed", time.Since(start)),
	)
	e.recorder.ObserveSearch(time.Since(start), len(results))
	return results, nil
}

// CourseRating считает агрегат оценок одного курса
func (e *Engine) CourseRating(ctx context.Context, courseID uuid.UUID) (RatingStats, error) {
	return e.aggregator.Aggregate(ctx, courseID)
}

func (e *Engine) aggregateAll(ctx context.Context, groups []OfferGroup) ([]RatingStats, error) {
	stats := make([]RatingStats, len(groups))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallelism)
	for i := range groups {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s, err := e.aggregator.Aggregate(gctx, groups[i].CourseID)
			if err != nil {
				return err
			}
			stats[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}
