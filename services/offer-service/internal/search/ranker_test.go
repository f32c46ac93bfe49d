package search

import (
	"bytes"
	"errors"
	"testing"

	"courseplatform/services/offer-service/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByCourse_PreservesFirstOccurrence(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	offers := []domain.Offer{
		{ID: uuid.New(), CourseID: b},
		{ID: uuid.New(), CourseID: a},
		{ID: uuid.New(), CourseID: b},
		{ID: uuid.New(), CourseID: c},
		{ID: uuid.New(), CourseID: a},
	}

	groups := GroupByCourse(offers)
	require.Len(t, groups, 3)
	assert.Equal(t, []uuid.UUID{b, a, c}, []uuid.UUID{groups[0].CourseID, groups[1].CourseID, groups[2].CourseID})
	assert.Len(t, groups[0].Offers, 2)
	assert.Len(t, groups[1].Offers, 2)
	assert.Len(t, groups[2].Offers, 1)
}

func TestGroupByCourse_Empty(t *testing.T) {
	assert.Empty(t, GroupByCourse(nil))
}

func TestBestOffer(t *testing.T) {
	lowID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	highID := uuid.MustParse("ffffffff-0000-0000-0000-000000000001")

	tests := []struct {
		name   string
		offers []domain.Offer
		want   int
	}{
		{
			name: "lowest effective price wins",
			offers: []domain.Offer{
				{ID: uuid.New(), Price: 90, Date: day(2)},
				{ID: uuid.New(), Price: 100, Discount: 0.2, Date: day(1)},
			},
			want: 1,
		},
		{
			name: "earliest date breaks price tie",
			offers: []domain.Offer{
				{ID: uuid.New(), Price: 80, Date: day(3)},
				{ID: uuid.New(), Price: 160, Discount: 0.5, Date: day(1)},
				{ID: uuid.New(), Price: 80, Date: day(2)},
			},
			want: 1,
		},
		{
			name: "lowest id breaks full tie",
			offers: []domain.Offer{
				{ID: highID, Price: 50, Date: day(1)},
				{ID: lowID, Price: 50, Date: day(1)},
			},
			want: 1,
		},
		{
			name: "full discount is free",
			offers: []domain.Offer{
				{ID: uuid.New(), Price: 10, Date: day(1)},
				{ID: uuid.New(), Price: 1000, Discount: 1, Date: day(9)},
			},
			want: 1,
		},
		{
			name: "out of range discount does not crash",
			offers: []domain.Offer{
				{ID: uuid.New(), Price: 10, Discount: 1.5, Date: day(1)},
				{ID: uuid.New(), Price: 10, Date: day(1)},
			},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			best, err := BestOffer(OfferGroup{CourseID: uuid.New(), Offers: tt.offers})
			require.NoError(t, err)
			assert.Equal(t, tt.offers[tt.want].ID, best.ID)
		})
	}
}

func TestBestOffer_OrderIndependent(t *testing.T) {
	offers := []domain.Offer{
		{ID: uuid.New(), Price: 50, Date: day(1)},
		{ID: uuid.New(), Price: 50, Date: day(1)},
		{ID: uuid.New(), Price: 50, Date: day(1)},
	}
	want := offers[0]
	for _, o := range offers[1:] {
		if bytes.Compare(o.ID[:], want.ID[:]) < 0 {
			want = o
		}
	}

	reversed := []domain.Offer{offers[2], offers[1], offers[0]}
	a, err := BestOffer(OfferGroup{Offers: offers})
	require.NoError(t, err)
	b, err := BestOffer(OfferGroup{Offers: reversed})
	require.NoError(t, err)

	assert.Equal(t, want.ID, a.ID)
	assert.Equal(t, a.ID, b.ID)
}

func TestBestOffer_EmptyGroupIsInvariantViolation(t *testing.T) {
	_, err := BestOffer(OfferGroup{CourseID: uuid.New()})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyGroup))
}
