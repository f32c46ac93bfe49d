package repository

import (
	"context"
	"time"

	"courseplatform/services/offer-service/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Catalog struct {
	Courses   []domain.Course
	Providers []domain.Provider
	Offers    []domain.Offer
	Ratings   []domain.Rating
}

// DemoCatalog: тестовые данные для пустой базы (SEED_DEMO=true)
func DemoCatalog(now time.Time) (Catalog, error) {
	day := now.UTC().Truncate(24 * time.Hour)

	python := domain.Course{
		ID:            uuid.New(),
		Title:         "Fullstack Python Разработчик",
		Description:   "Полный курс по разработке веб-приложений на Python + Django + Vue.js. От основ до деплоя.",
		Category:      "Программирование",
		DiffLevel:     2,
		Credits:       6,
		WeeklyHours:   8,
		Certification: "Сертификат о прохождении",
	}
	design := domain.Course{
		ID:          uuid.New(),
		Title:       "UX/UI Дизайн с нуля",
		Description: "Научитесь создавать удобные и красивые интерфейсы в Figma.",
		Category:    "Дизайн",
		DiffLevel:   1,
		Credits:     3,
		WeeklyHours: 4,
	}
	algebra := domain.Course{
		ID:          uuid.New(),
		Title:       "Линейная алгебра",
		Description: "Матрицы, векторные пространства и собственные значения.",
		Category:    "Математика",
		DiffLevel:   3,
		Credits:     5,
		WeeklyHours: 6,
	}

	mailru := domain.Provider{ID: uuid.New(), Name: "Академия Mail.ru"}
	uni := domain.Provider{ID: uuid.New(), Name: "Открытый университет"}

	type offerRow struct {
		course   domain.Course
		provider domain.Provider
		days     int
		price    float64
		discount float64
		visible  bool
	}
	rows := []offerRow{
		{python, mailru, 7, 45000, 0.2, true},
		{python, uni, 14, 39000, 0, true},
		{design, mailru, 3, 20000, 0.5, true},
		{design, uni, 30, 9000, 0, false},
		{algebra, uni, 1, 12000, 0.1, true},
	}

	cat := Catalog{
		Courses:   []domain.Course{python, design, algebra},
		Providers: []domain.Provider{mailru, uni},
	}
	for _, s := range rows {
		o, err := domain.NewOffer(s.course, s.provider, day.AddDate(0, 0, s.days), s.price, s.discount, s.visible)
		if err != nil {
			return Catalog{}, err
		}
		cat.Offers = append(cat.Offers, *o)
	}

	scores := map[uuid.UUID][]int{
		python.ID:  {5, 4, 5},
		design.ID:  {3, 4},
		algebra.ID: {},
	}
	for courseID, list := range scores {
		for _, score := range list {
			cat.Ratings = append(cat.Ratings, domain.Rating{
				ID:        uuid.New(),
				CourseID:  courseID,
				LearnerID: uuid.New(),
				Score:     score,
				Date:      day,
			})
		}
	}
	return cat, nil
}

// SeedDB наполняет базу, только если курсов ещё нет
func SeedDB(ctx context.Context, db *gorm.DB, cat Catalog) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&domain.Course{}).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(cat.Courses) > 0 {
			if err := tx.Create(&cat.Courses).Error; err != nil {
				return err
			}
		}
		if len(cat.Providers) > 0 {
			if err := tx.Create(&cat.Providers).Error; err != nil {
				return err
			}
		}
		if len(cat.Offers) > 0 {
			if err := tx.Omit(clause.Associations).Create(&cat.Offers).Error; err != nil {
				return err
			}
		}
		if len(cat.Ratings) > 0 {
			return tx.Create(&cat.Ratings).Error
		}
		return nil
	})
	return err == nil, err
}

func SeedMemory(s *MemoryStore, cat Catalog) error {
	for _, c := range cat.Courses {
		s.AddCourse(c)
	}
	for _, p := range cat.Providers {
		s.AddProvider(p)
	}
	for _, o := range cat.Offers {
		if _, err := s.AddOffer(o); err != nil {
			return err
		}
	}
	for _, r := range cat.Ratings {
		s.AddRating(r)
	}
	return nil
}
