package search

import (
	"context"
	"sync"
	"time"

	"courseplatform/services/offer-service/internal/domain"

	"github.com/google/uuid"
)

var day0 = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func day(n int) time.Time { return day0.AddDate(0, 0, n) }

func ptr[T any](v T) *T { return &v }

// fakeGateway вычисляет предикат в памяти и считает вызовы
type fakeGateway struct {
	mu          sync.Mutex
	offers      []domain.Offer
	ratings     map[uuid.UUID][]domain.Rating
	offerErr    error
	ratingErr   error
	offerCalls  int
	ratingCalls int
	// блокирует RatingsForCourse до отмены контекста
	blockRatings bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{ratings: make(map[uuid.UUID][]domain.Rating)}
}

func (g *fakeGateway) QueryOffers(ctx context.Context, p Predicate) ([]domain.Offer, error) {
	g.mu.Lock()
	g.offerCalls++
	g.mu.Unlock()
	if g.offerErr != nil {
		return nil, g.offerErr
	}
	var out []domain.Offer
	for _, o := range g.offers {
		if p.Match(&o) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (g *fakeGateway) RatingsForCourse(ctx context.Context, courseID uuid.UUID) ([]domain.Rating, error) {
	g.mu.Lock()
	g.ratingCalls++
	g.mu.Unlock()
	if g.blockRatings {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if g.ratingErr != nil {
		return nil, g.ratingErr
	}
	return g.ratings[courseID], nil
}

func (g *fakeGateway) addOffer(c domain.Course, price, discount float64, date time.Time, visible bool) domain.Offer {
	o := domain.Offer{
		ID:         uuid.New(),
		CourseID:   c.ID,
		Course:     c,
		ProviderID: uuid.New(),
		Date:       date,
		Price:      price,
		Discount:   discount,
		Visible:    visible,
	}
	g.offers = append(g.offers, o)
	return o
}

func (g *fakeGateway) rate(c domain.Course, scores ...int) {
	for _, s := range scores {
		g.ratings[c.ID] = append(g.ratings[c.ID], domain.Rating{ID: uuid.New(), CourseID: c.ID, Score: s})
	}
}

func course(title, category string, level int, credits float64) domain.Course {
	return domain.Course{
		ID:          uuid.New(),
		Title:       title,
		Description: "About " + title,
		Category:    category,
		DiffLevel:   level,
		Credits:     credits,
	}
}
