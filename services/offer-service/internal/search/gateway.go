package search

import (
	"context"

	"courseplatform/services/offer-service/internal/domain"

	"github.com/google/uuid"
)

// Gateway: доступ к хранилищу только на чтение. Реализации: repository.OfferRepository
// (postgres), repository.MemoryStore, cache.CachedGateway.
type Gateway interface {
	QueryOffers(ctx context.Context, p Predicate) ([]domain.Offer, error)
	RatingSource
}

type RatingSource interface {
	RatingsForCourse(ctx context.Context, courseID uuid.UUID) ([]domain.Rating, error)
}
