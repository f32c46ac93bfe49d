package domain

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrInvalidOffer = errors.New("invalid offer")

// Offer — курс, выставленный конкретным провайдером на дату по цене со скидкой
type Offer struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourseID   uuid.UUID `gorm:"type:uuid;index"`
	Course     Course    `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE;"`
	ProviderID uuid.UUID `gorm:"type:uuid;index"`
	Provider   Provider  `gorm:"foreignKey:ProviderID"`

	Date     time.Time `gorm:"index"`
	Price    float64
	Discount float64 // доля, 0.0 - 1.0
	Visible  bool    `gorm:"index"`

	CreatedAt time.Time
}

func (o *Offer) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// NewOffer проверяет цену и скидку. Курс и провайдер обязательны.
func NewOffer(course Course, provider Provider, date time.Time, price, discount float64, visible bool) (*Offer, error) {
	if course.ID == uuid.Nil {
		return nil, fmt.Errorf("%w: course is required", ErrInvalidOffer)
	}
	if provider.ID == uuid.Nil {
		return nil, fmt.Errorf("%w: provider is required", ErrInvalidOffer)
	}
	if math.IsNaN(price) || price < 0 {
		return nil, fmt.Errorf("%w: price must be >= 0, got %v", ErrInvalidOffer, price)
	}
	if math.IsNaN(discount) || discount < 0 || discount > 1 {
		return nil, fmt.Errorf("%w: discount must be within [0, 1], got %v", ErrInvalidOffer, discount)
	}

	return &Offer{
		ID:         uuid.New(),
		CourseID:   course.ID,
		Course:     course,
		ProviderID: provider.ID,
		Provider:   provider,
		Date:       date,
		Price:      price,
		Discount:   discount,
		Visible:    visible,
	}, nil
}

// EffectivePrice = price * (1 - discount)
func (o Offer) EffectivePrice() float64 {
	return o.Price * (1 - o.Discount)
}
