package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"courseplatform/services/offer-service/internal/domain"
	"courseplatform/services/offer-service/internal/search"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const DefaultRatingTTL = 10 * time.Minute

// CachedGateway кеширует оценки курса в redis. Предложения не кешируются:
// фильтры слишком разнообразны, а запрос один на поиск.
// Сброса нет: новые оценки появятся после истечения TTL.
type CachedGateway struct {
	next   search.Gateway
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedGateway(next search.Gateway, rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedGateway {
	if ttl <= 0 {
		ttl = DefaultRatingTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedGateway{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

func ratingsKey(courseID uuid.UUID) string {
	return "ratings:course:" + courseID.String()
}

func (g *CachedGateway) QueryOffers(ctx context.Context, p search.Predicate) ([]domain.Offer, error) {
	return g.next.QueryOffers(ctx, p)
}

func (g *CachedGateway) RatingsForCourse(ctx context.Context, courseID uuid.UUID) ([]domain.Rating, error) {
	key := ratingsKey(courseID)

	// 1. Кеш
	val, err := g.rdb.Get(ctx, key).Result()
	if err == nil {
		var ratings []domain.Rating
		if json.Unmarshal([]byte(val), &ratings) == nil {
			return ratings, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		// redis недоступен, идём в базу
		g.logger.Warn("rating cache read failed", zap.String("key", key), zap.Error(err))
	}

	// 2. Хранилище
	ratings, err := g.next.RatingsForCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	// 3. Пишем в кеш
	if data, err := json.Marshal(ratings); err == nil {
		if err := g.rdb.Set(ctx, key, data, g.ttl).Err(); err != nil {
			g.logger.Warn("rating cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return ratings, nil
}
