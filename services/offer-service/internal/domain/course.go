package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Course struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title         string    `gorm:"index"`
	Description   string
	Category      string `gorm:"index"`
	DiffLevel     int    `gorm:"index"`
	Credits       float64
	WeeklyHours   float64
	Certification string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ID генерируем сами, а не через default:gen_random_uuid(): не все хранилища это умеют
func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type Provider struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"uniqueIndex"`

	CreatedAt time.Time
}

func (p *Provider) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
