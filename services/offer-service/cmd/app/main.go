package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"courseplatform/services/offer-service/config"
	"courseplatform/services/offer-service/internal/infrastructure/cache"
	"courseplatform/services/offer-service/internal/infrastructure/logger"
	"courseplatform/services/offer-service/internal/infrastructure/metrics"
	"courseplatform/services/offer-service/internal/infrastructure/repository"
	"courseplatform/services/offer-service/internal/middleware"
	"courseplatform/services/offer-service/internal/search"
	handlers "courseplatform/services/offer-service/internal/transport/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Config load failed: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Logger init failed: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	gateway, err := openGateway(cfg, zl)
	if err != nil {
		zl.Fatal("store init failed", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}

	// Redis опционален: кеш оценок и лимит запросов
	var limiter gin.HandlerFunc
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			zl.Fatal("redis connect failed", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		zl.Info("connected to redis", zap.String("addr", cfg.RedisAddr))

		gateway = cache.NewCachedGateway(gateway, rdb, cfg.RatingCacheTTL, zl.Named("cache"))
		if cfg.SearchRateLimit > 0 {
			limiter = middleware.NewRateLimiter(rdb, zl).Limit("search", cfg.SearchRateLimit, time.Minute)
		}
	}

	m := metrics.NewManager()
	engine := search.NewEngine(gateway,
		search.WithLogger(zl.Named("search")),
		search.WithRecorder(m),
		search.WithParallelism(cfg.SearchParallelism),
	)

	gin.SetMode(gin.ReleaseMode)
	router := handlers.NewRouter(handlers.NewSearchHandler(engine, zl), limiter, m, zl, cfg.Origins())

	srv := &http.Server{
		Addr:              cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("offer service running", zap.String("addr", cfg.HTTPPort), zap.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("serve failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit

	zl.Info("shutting down server", zap.String("signal", sig.String()))
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("server shutdown error", zap.Error(err))
	}
}

func openGateway(cfg config.Config, zl *zap.Logger) (search.Gateway, error) {
	if cfg.StoreDriver == config.StoreMemory {
		store := repository.NewMemoryStore()
		if cfg.SeedDemo {
			cat, err := repository.DemoCatalog(time.Now())
			if err != nil {
				return nil, err
			}
			if err := repository.SeedMemory(store, cat); err != nil {
				return nil, err
			}
			zl.Info("memory store seeded with demo catalog", zap.Int("courses", len(cat.Courses)))
		}
		return store, nil
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := repository.Migrate(db); err != nil {
		return nil, err
	}

	if cfg.SeedDemo {
		cat, err := repository.DemoCatalog(time.Now())
		if err != nil {
			return nil, err
		}
		seeded, err := repository.SeedDB(context.Background(), db, cat)
		if err != nil {
			return nil, err
		}
		if seeded {
			zl.Info("DB seeded with demo catalog", zap.Int("courses", len(cat.Courses)))
		}
	}
	return repository.NewOfferRepository(db), nil
}
