package handlers

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"courseplatform/services/offer-service/internal/search"

	"github.com/gin-gonic/gin"
)

// criteriaFromQuery разбирает плоские параметры GET /search.
// Нечисловые значения считаются ошибкой клиента, ничего не подрезаем.
func criteriaFromQuery(c *gin.Context) (search.Criteria, error) {
	var crit search.Criteria
	var err error

	// diffLevels=1&diffLevels=2 и diffLevels=1,2 равнозначны
	for _, raw := range c.QueryArray("diffLevels") {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			level, err := strconv.Atoi(part)
			if err != nil {
				return crit, fmt.Errorf("%w: diffLevels must be integers, got %q", search.ErrInvalidCriteria, part)
			}
			crit.DiffLevels = append(crit.DiffLevels, level)
		}
	}
	for _, category := range c.QueryArray("categories") {
		if category != "" {
			crit.Categories = append(crit.Categories, category)
		}
	}
	crit.SearchValue = c.Query("search")

	if crit.Credits, err = floatRangeParam(c, "min-credits", "max-credits"); err != nil {
		return crit, err
	}
	if crit.Rating, err = floatRangeParam(c, "min-rating", "max-rating"); err != nil {
		return crit, err
	}
	if crit.Price, err = floatRangeParam(c, "min-price", "max-price"); err != nil {
		return crit, err
	}
	if crit.Dates.Start, err = millisParam(c, "startDate"); err != nil {
		return crit, err
	}
	if crit.Dates.End, err = millisParam(c, "endDate"); err != nil {
		return crit, err
	}
	return crit, nil
}

func floatRangeParam(c *gin.Context, minName, maxName string) (search.FloatRange, error) {
	var r search.FloatRange
	var err error
	if r.Min, err = floatParam(c, minName); err != nil {
		return r, err
	}
	if r.Max, err = floatParam(c, maxName); err != nil {
		return r, err
	}
	return r, nil
}

func floatParam(c *gin.Context, name string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%w: %s must be a number, got %q", search.ErrInvalidCriteria, name, raw)
	}
	return &v, nil
}

func millisParam(c *gin.Context, name string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be epoch milliseconds, got %q", search.ErrInvalidCriteria, name, raw)
	}
	t := time.UnixMilli(ms).UTC()
	return &t, nil
}
