package repository

import (
	"context"
	"fmt"
	"strings"

	"courseplatform/services/offer-service/internal/domain"
	"courseplatform/services/offer-service/internal/search"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OfferRepository struct {
	db *gorm.DB
}

func NewOfferRepository(db *gorm.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Course{}, &domain.Provider{}, &domain.Offer{}, &domain.Rating{})
}

// QueryOffers переводит дерево фильтра в WHERE и делает один запрос
func (r *OfferRepository) QueryOffers(ctx context.Context, p search.Predicate) ([]domain.Offer, error) {
	where, args, err := toSQL(p)
	if err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).
		Model(&domain.Offer{}).
		Select("offers.*").
		Joins("JOIN courses ON courses.id = offers.course_id").
		Preload("Course").
		Preload("Provider")
	if where != "" {
		query = query.Where(where, args...)
	}

	var offers []domain.Offer
	if err := query.Order("offers.id asc").Find(&offers).Error; err != nil {
		return nil, err
	}
	return offers, nil
}

func (r *OfferRepository) RatingsForCourse(ctx context.Context, courseID uuid.UUID) ([]domain.Rating, error) {
	var ratings []domain.Rating
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("ratings.date asc").
		Find(&ratings).Error
	return ratings, err
}

func toSQL(p search.Predicate) (string, []any, error) {
	switch e := p.(type) {
	case search.AndExpr:
		return joinSQL(e, " AND ", "1 = 1")
	case search.OrExpr:
		return joinSQL(e, " OR ", "1 = 0")
	case search.VisibleExpr:
		return "offers.visible = ?", []any{true}, nil
	case search.DiffLevelIn:
		return "courses.diff_level IN ?", []any{e.Levels}, nil
	case search.CategoryIn:
		return "courses.category IN ?", []any{e.Categories}, nil
	case search.CreditsBetween:
		return rangeSQL("courses.credits", e.Range)
	case search.PriceBetween:
		return rangeSQL("offers.price", e.Range)
	case search.DateBetween:
		var parts []string
		var args []any
		if e.Range.Start != nil {
			parts = append(parts, "offers.date >= ?")
			args = append(args, *e.Range.Start)
		}
		if e.Range.End != nil {
			parts = append(parts, "offers.date <= ?")
			args = append(args, *e.Range.End)
		}
		return strings.Join(parts, " AND "), args, nil
	case search.TextContains:
		column := "courses.title"
		if e.Field == search.FieldDescription {
			column = "courses.description"
		}
		return "LOWER(" + column + ") LIKE ? ESCAPE '\\'", []any{"%" + escapeLike(strings.ToLower(e.Value)) + "%"}, nil
	default:
		return "", nil, fmt.Errorf("unsupported predicate %T", p)
	}
}

// joinSQL: пустой AND = истина, пустой OR = ложь
func joinSQL(children []search.Predicate, op, empty string) (string, []any, error) {
	var parts []string
	var args []any
	for _, child := range children {
		sql, childArgs, err := toSQL(child)
		if err != nil {
			return "", nil, err
		}
		if sql == "" {
			continue
		}
		parts = append(parts, "("+sql+")")
		args = append(args, childArgs...)
	}
	if len(parts) == 0 {
		return empty, nil, nil
	}
	return strings.Join(parts, op), args, nil
}

func rangeSQL(column string, r search.FloatRange) (string, []any, error) {
	var parts []string
	var args []any
	if r.Min != nil {
		parts = append(parts, column+" >= ?")
		args = append(args, *r.Min)
	}
	if r.Max != nil {
		parts = append(parts, column+" <= ?")
		args = append(args, *r.Max)
	}
	return strings.Join(parts, " AND "), args, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
