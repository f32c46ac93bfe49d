package handlers

import (
	"time"

	"courseplatform/services/offer-service/internal/search"
)

// Тело POST /search. Даты в epoch-миллисекундах, как и в GET.
type searchRequest struct {
	DiffLevels      []int         `json:"diffLevels"`
	Categories      []string      `json:"categories"`
	SearchValue     string        `json:"searchValue"`
	CourseSizeRange *creditsRange `json:"courseSizeRange"`
	RatingRange     *ratingRange  `json:"ratingRange"`
	PriceRange      *priceRange   `json:"priceRange"`
	DateRange       *dateRange    `json:"dateRange"`
}

type creditsRange struct {
	MinCredits *float64 `json:"minCredits"`
	MaxCredits *float64 `json:"maxCredits"`
}

type ratingRange struct {
	MinRating *float64 `json:"minRating"`
	MaxRating *float64 `json:"maxRating"`
}

type priceRange struct {
	MinPrice *float64 `json:"minPrice"`
	MaxPrice *float64 `json:"maxPrice"`
}

type dateRange struct {
	StartDate *int64 `json:"startDate"`
	EndDate   *int64 `json:"endDate"`
}

func (r searchRequest) toCriteria() search.Criteria {
	c := search.Criteria{
		DiffLevels:  r.DiffLevels,
		Categories:  r.Categories,
		SearchValue: r.SearchValue,
	}
	if r.CourseSizeRange != nil {
		c.Credits = search.FloatRange{Min: r.CourseSizeRange.MinCredits, Max: r.CourseSizeRange.MaxCredits}
	}
	if r.RatingRange != nil {
		c.Rating = search.FloatRange{Min: r.RatingRange.MinRating, Max: r.RatingRange.MaxRating}
	}
	if r.PriceRange != nil {
		c.Price = search.FloatRange{Min: r.PriceRange.MinPrice, Max: r.PriceRange.MaxPrice}
	}
	if r.DateRange != nil {
		c.Dates = search.TimeRange{Start: fromMillis(r.DateRange.StartDate), End: fromMillis(r.DateRange.EndDate)}
	}
	return c
}

func fromMillis(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := time.UnixMilli(*ms).UTC()
	return &t
}

type courseResponse struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	DiffLevel     int     `json:"diffLevel"`
	Credits       float64 `json:"credits"`
	WeeklyHours   float64 `json:"weeklyHours"`
	Certification string  `json:"certification"`
}

type rankedResultResponse struct {
	Course             courseResponse `json:"course"`
	MinDiscountedPrice float64        `json:"minDiscountedPrice"`
	ClosestDate        time.Time      `json:"closestDate"`
	Rating             float64        `json:"rating"`
	NumberOfRatings    int            `json:"numberOfRatings"`
}

type ratingResponse struct {
	CourseID        string  `json:"courseId"`
	Rating          float64 `json:"rating"`
	NumberOfRatings int     `json:"numberOfRatings"`
}

func toResponse(results []search.RankedResult) []rankedResultResponse {
	out := make([]rankedResultResponse, 0, len(results))
	for _, r := range results {
		out = append(out, rankedResultResponse{
			Course: courseResponse{
				ID:            r.Course.ID.String(),
				Title:         r.Course.Title,
				Description:   r.Course.Description,
				Category:      r.Course.Category,
				DiffLevel:     r.Course.DiffLevel,
				Credits:       r.Course.Credits,
				WeeklyHours:   r.Course.WeeklyHours,
				Certification: r.Course.Certification,
			},
			MinDiscountedPrice: r.MinDiscountedPrice,
			ClosestDate:        r.ClosestDate.UTC(),
			Rating:             r.Rating,
			NumberOfRatings:    r.NumberOfRatings,
		})
	}
	return out
}
