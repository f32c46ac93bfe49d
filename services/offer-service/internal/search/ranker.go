package search

import (
	"bytes"
	"fmt"

	"courseplatform/services/offer-service/internal/domain"

	"github.com/google/uuid"
)

// OfferGroup: все подходящие предложения одного курса
type OfferGroup struct {
	CourseID uuid.UUID
	Offers   []domain.Offer
}

// GroupByCourse группирует по CourseID, группы идут в порядке первого появления курса.
func GroupByCourse(offers []domain.Offer) []OfferGroup {
	index := make(map[uuid.UUID]int)
	groups := make([]OfferGroup, 0)

	for _, o := range offers {
		i, ok := index[o.CourseID]
		if !ok {
			i = len(groups)
			index[o.CourseID] = i
			groups = append(groups, OfferGroup{CourseID: o.CourseID})
		}
		groups[i].Offers = append(groups[i].Offers, o)
	}
	return groups
}

// BestOffer выбирает минимальную эффективную цену, при равенстве самую раннюю дату,
// при полном совпадении наименьший ID предложения.
func BestOffer(g OfferGroup) (domain.Offer, error) {
	if len(g.Offers) == 0 {
		return domain.Offer{}, fmt.Errorf("%w: course %s", ErrEmptyGroup, g.CourseID)
	}

	best := g.Offers[0]
	for _, o := range g.Offers[1:] {
		if better(o, best) {
			best = o
		}
	}
	return best, nil
}

func better(a, b domain.Offer) bool {
	pa, pb := a.EffectivePrice(), b.EffectivePrice()
	if pa != pb {
		return pa < pb
	}
	if !a.Date.Equal(b.Date) {
		return a.Date.Before(b.Date)
	}
	return bytes.Compare(a.ID[:], b.ID[:]) < 0
}
