package search

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrInvalidCriteria = errors.New("invalid criteria")
	ErrEmptyGroup      = errors.New("course group has no offers")
)

// FloatRange: включительный диапазон, nil-граница = без ограничения с этой стороны
type FloatRange struct {
	Min *float64
	Max *float64
}

func (r FloatRange) IsZero() bool {
	return r.Min == nil && r.Max == nil
}

func (r FloatRange) Contains(v float64) bool {
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

func (r FloatRange) validate(field string) error {
	if r.Min != nil && (math.IsNaN(*r.Min) || math.IsInf(*r.Min, 0)) {
		return fmt.Errorf("%w: %s min is not a number", ErrInvalidCriteria, field)
	}
	if r.Max != nil && (math.IsNaN(*r.Max) || math.IsInf(*r.Max, 0)) {
		return fmt.Errorf("%w: %s max is not a number", ErrInvalidCriteria, field)
	}
	if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
		return fmt.Errorf("%w: %s min %v is greater than max %v", ErrInvalidCriteria, field, *r.Min, *r.Max)
	}
	return nil
}

type TimeRange struct {
	Start *time.Time
	End   *time.Time
}

func (r TimeRange) IsZero() bool {
	return r.Start == nil && r.End == nil
}

func (r TimeRange) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}

// Criteria описывает один поиск. Пустое поле = нет ограничения.
type Criteria struct {
	DiffLevels  []int
	Categories  []string
	SearchValue string
	Credits     FloatRange
	Price       FloatRange
	Rating      FloatRange
	Dates       TimeRange
}

// Validate отклоняет битые диапазоны, ничего не подрезая.
func (c Criteria) Validate() error {
	if err := c.Credits.validate("credits"); err != nil {
		return err
	}
	if err := c.Price.validate("price"); err != nil {
		return err
	}
	if err := c.Rating.validate("rating"); err != nil {
		return err
	}
	if c.Dates.Start != nil && c.Dates.End != nil && c.Dates.Start.After(*c.Dates.End) {
		return fmt.Errorf("%w: start date %s is after end date %s", ErrInvalidCriteria,
			c.Dates.Start.Format(time.RFC3339), c.Dates.End.Format(time.RFC3339))
	}
	return nil
}

// Clone отвязывает срезы и указатели от вызывающего кода.
func (c Criteria) Clone() Criteria {
	out := c
	if c.DiffLevels != nil {
		out.DiffLevels = append([]int(nil), c.DiffLevels...)
	}
	if c.Categories != nil {
		out.Categories = append([]string(nil), c.Categories...)
	}
	out.Credits = c.Credits.clone()
	out.Price = c.Price.clone()
	out.Rating = c.Rating.clone()
	if c.Dates.Start != nil {
		s := *c.Dates.Start
		out.Dates.Start = &s
	}
	if c.Dates.End != nil {
		e := *c.Dates.End
		out.Dates.End = &e
	}
	return out
}

func (r FloatRange) clone() FloatRange {
	var out FloatRange
	if r.Min != nil {
		v := *r.Min
		out.Min = &v
	}
	if r.Max != nil {
		v := *r.Max
		out.Max = &v
	}
	return out
}
