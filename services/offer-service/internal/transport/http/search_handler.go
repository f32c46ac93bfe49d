package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"courseplatform/services/offer-service/internal/search"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Searcher interface {
	Search(ctx context.Context, c search.Criteria) ([]search.RankedResult, error)
	CourseRating(ctx context.Context, courseID uuid.UUID) (search.RatingStats, error)
}

type SearchHandler struct {
	engine Searcher
	logger *zap.Logger
}

func NewSearchHandler(engine Searcher, logger *zap.Logger) *SearchHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchHandler{engine: engine, logger: logger}
}

// GET /search
func (h *SearchHandler) SearchGet(c *gin.Context) {
	crit, err := criteriaFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.search(c, crit)
}

// POST /search
func (h *SearchHandler) SearchPost(c *gin.Context) {
	var req searchRequest
	// Пустое тело = поиск без фильтров
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	h.search(c, req.toCriteria())
}

func (h *SearchHandler) search(c *gin.Context, crit search.Criteria) {
	// Валидируем до похода в хранилище
	if err := crit.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := h.engine.Search(c.Request.Context(), crit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(results))
}

// GET /courses/:id/rating
func (h *SearchHandler) CourseRating(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course id"})
		return
	}

	stats, err := h.engine.CourseRating(c.Request.Context(), courseID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ratingResponse{
		CourseID:        courseID.String(),
		Rating:          stats.Average,
		NumberOfRatings: stats.Count,
	})
}

func (h *SearchHandler) fail(c *gin.Context, err error) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, search.ErrInvalidCriteria):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "search canceled"})
	case errors.Is(err, search.ErrEmptyGroup):
		h.logger.Error("search invariant violated", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	default:
		h.logger.Error("search failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store unavailable"})
	}
}

// GET /healthz
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
