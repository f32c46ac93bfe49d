package repository

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"

	"courseplatform/services/offer-service/internal/domain"
	"courseplatform/services/offer-service/internal/search"

	"github.com/google/uuid"
)

// MemoryStore хранит всё в памяти, фильтр считается через Predicate.Match.
// Используется при STORE_DRIVER=memory и в тестах.
type MemoryStore struct {
	mu        sync.RWMutex
	courses   map[uuid.UUID]domain.Course
	providers map[uuid.UUID]domain.Provider
	offers    []domain.Offer
	ratings   map[uuid.UUID][]domain.Rating
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		courses:   make(map[uuid.UUID]domain.Course),
		providers: make(map[uuid.UUID]domain.Provider),
		ratings:   make(map[uuid.UUID][]domain.Rating),
	}
}

func (s *MemoryStore) AddCourse(c domain.Course) domain.Course {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	s.mu.Lock()
	s.courses[c.ID] = c
	s.mu.Unlock()
	return c
}

func (s *MemoryStore) AddProvider(p domain.Provider) domain.Provider {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	s.mu.Lock()
	s.providers[p.ID] = p
	s.mu.Unlock()
	return p
}

// AddOffer требует, чтобы курс и провайдер уже были добавлены
func (s *MemoryStore) AddOffer(o domain.Offer) (domain.Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.courses[o.CourseID]; !ok {
		return domain.Offer{}, fmt.Errorf("%w: unknown course %s", domain.ErrInvalidOffer, o.CourseID)
	}
	if _, ok := s.providers[o.ProviderID]; !ok {
		return domain.Offer{}, fmt.Errorf("%w: unknown provider %s", domain.ErrInvalidOffer, o.ProviderID)
	}
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	s.offers = append(s.offers, o)
	sort.Slice(s.offers, func(i, j int) bool {
		return bytes.Compare(s.offers[i].ID[:], s.offers[j].ID[:]) < 0
	})
	return o, nil
}

func (s *MemoryStore) AddRating(r domain.Rating) domain.Rating {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	s.mu.Lock()
	s.ratings[r.CourseID] = append(s.ratings[r.CourseID], r)
	s.mu.Unlock()
	return r
}

// QueryOffers отдаёт предложения по возрастанию ID, как и postgres-реализация
func (s *MemoryStore) QueryOffers(ctx context.Context, p search.Predicate) ([]domain.Offer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Offer, 0)
	for _, o := range s.offers {
		o.Course = s.courses[o.CourseID]
		o.Provider = s.providers[o.ProviderID]
		if p.Match(&o) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *MemoryStore) RatingsForCourse(ctx context.Context, courseID uuid.UUID) ([]domain.Rating, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]domain.Rating(nil), s.ratings[courseID]...), nil
}
