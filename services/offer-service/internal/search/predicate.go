package search

import (
	"slices"
	"strings"

	"courseplatform/services/offer-service/internal/domain"
)

// Predicate: узел дерева фильтра. Gateway может либо вызывать Match,
// либо разобрать дерево по типам узлов и отдать его в SQL.
type Predicate interface {
	Match(o *domain.Offer) bool
}

type AndExpr []Predicate

func (e AndExpr) Match(o *domain.Offer) bool {
	for _, p := range e {
		if !p.Match(o) {
			return false
		}
	}
	return true
}

type OrExpr []Predicate

func (e OrExpr) Match(o *domain.Offer) bool {
	for _, p := range e {
		if p.Match(o) {
			return true
		}
	}
	return false
}

func And(ps ...Predicate) Predicate { return AndExpr(ps) }

func Or(ps ...Predicate) Predicate { return OrExpr(ps) }

// VisibleExpr добавляется всегда, пользователь его не контролирует
type VisibleExpr struct{}

func (VisibleExpr) Match(o *domain.Offer) bool { return o.Visible }

type DiffLevelIn struct{ Levels []int }

func (e DiffLevelIn) Match(o *domain.Offer) bool {
	return slices.Contains(e.Levels, o.Course.DiffLevel)
}

type CategoryIn struct{ Categories []string }

func (e CategoryIn) Match(o *domain.Offer) bool {
	return slices.Contains(e.Categories, o.Course.Category)
}

type CreditsBetween struct{ Range FloatRange }

func (e CreditsBetween) Match(o *domain.Offer) bool { return e.Range.Contains(o.Course.Credits) }

// PriceBetween сравнивает исходную цену, без скидки
type PriceBetween struct{ Range FloatRange }

func (e PriceBetween) Match(o *domain.Offer) bool { return e.Range.Contains(o.Price) }

type DateBetween struct{ Range TimeRange }

func (e DateBetween) Match(o *domain.Offer) bool { return e.Range.Contains(o.Date) }

type TextField int

const (
	FieldTitle TextField = iota
	FieldDescription
)

func (f TextField) String() string {
	if f == FieldDescription {
		return "description"
	}
	return "title"
}

// TextContains: регистронезависимый поиск подстроки
type TextContains struct {
	Field TextField
	Value string
}

func (e TextContains) Match(o *domain.Offer) bool {
	text := o.Course.Title
	if e.Field == FieldDescription {
		text = o.Course.Description
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(e.Value))
}

// BuildPredicate собирает AND из независимых условий; пара title/description идёт через OR.
// Пустые поля Criteria в дерево не попадают. Рейтинг курса относится к курсу целиком,
// его применяет Engine после агрегации.
func BuildPredicate(c Criteria) Predicate {
	c = c.Clone()
	clauses := AndExpr{VisibleExpr{}}

	if len(c.DiffLevels) > 0 {
		clauses = append(clauses, DiffLevelIn{Levels: c.DiffLevels})
	}
	// Пустое имя категории ограничением не считается
	categories := slices.DeleteFunc(c.Categories, func(s string) bool { return s == "" })
	if len(categories) > 0 {
		clauses = append(clauses, CategoryIn{Categories: categories})
	}
	if !c.Credits.IsZero() {
		clauses = append(clauses, CreditsBetween{Range: c.Credits})
	}
	if !c.Price.IsZero() {
		clauses = append(clauses, PriceBetween{Range: c.Price})
	}
	if c.SearchValue != "" {
		clauses = append(clauses, Or(
			TextContains{Field: FieldTitle, Value: c.SearchValue},
			TextContains{Field: FieldDescription, Value: c.SearchValue},
		))
	}
	if !c.Dates.IsZero() {
		clauses = append(clauses, DateBetween{Range: c.Dates})
	}

	return clauses
}
