package handlers

import (
	"courseplatform/services/offer-service/internal/infrastructure/metrics"
	"courseplatform/services/offer-service/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter собирает gin. limiter может быть nil (без redis лимита нет).
func NewRouter(searchHandler *SearchHandler, limiter gin.HandlerFunc, m *metrics.Manager, logger *zap.Logger, origins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))
	if m != nil {
		r.Use(m.Middleware())
	}

	config := cors.DefaultConfig()
	if len(origins) > 0 {
		config.AllowOrigins = origins
		config.AllowCredentials = true
	} else {
		config.AllowAllOrigins = true
	}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	r.Use(cors.New(config))

	r.GET("/healthz", Health)
	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	searchChain := func(h gin.HandlerFunc) []gin.HandlerFunc {
		if limiter == nil {
			return []gin.HandlerFunc{h}
		}
		return []gin.HandlerFunc{limiter, h}
	}

	// /search и /api/v1/search обслуживают одни и те же обработчики
	for _, g := range []*gin.RouterGroup{&r.RouterGroup, r.Group("/api/v1")} {
		g.GET("/search", searchChain(searchHandler.SearchGet)...)
		g.POST("/search", searchChain(searchHandler.SearchPost)...)
		g.GET("/courses/:id/rating", searchHandler.CourseRating)
	}

	return r
}
