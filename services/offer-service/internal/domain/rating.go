package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MinScore = 1
	MaxScore = 5
)

type Rating struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourseID  uuid.UUID `gorm:"type:uuid;index"`
	LearnerID uuid.UUID `gorm:"type:uuid;index"`
	Score     int
	Comment   string
	Date      time.Time
}

func (r *Rating) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Valid: оценки вне 1..5 считаем мусорными данными и не учитываем
func (r Rating) Valid() bool {
	return r.Score >= MinScore && r.Score <= MaxScore
}
