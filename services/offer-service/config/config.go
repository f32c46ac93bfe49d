package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	HTTPPort          string        `mapstructure:"HTTP_PORT"`
	StoreDriver       string        `mapstructure:"STORE_DRIVER"`
	DBHost            string        `mapstructure:"DB_HOST"`
	DBPort            string        `mapstructure:"DB_PORT"`
	DBUser            string        `mapstructure:"DB_USER"`
	DBPassword        string        `mapstructure:"DB_PASSWORD"`
	DBName            string        `mapstructure:"DB_NAME"`
	RedisAddr         string        `mapstructure:"REDIS_ADDR"`
	AllowedOrigins    string        `mapstructure:"ALLOWED_ORIGINS"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	RatingCacheTTL    time.Duration `mapstructure:"RATING_CACHE_TTL"`
	SearchParallelism int           `mapstructure:"SEARCH_PARALLELISM"`
	SearchRateLimit   int           `mapstructure:"SEARCH_RATE_LIMIT"`
	SeedDemo          bool          `mapstructure:"SEED_DEMO"`
}

var keys = []string{
	"HTTP_PORT",
	"STORE_DRIVER",
	"DB_HOST",
	"DB_PORT",
	"DB_USER",
	"DB_PASSWORD",
	"DB_NAME",
	"REDIS_ADDR",
	"ALLOWED_ORIGINS",
	"LOG_LEVEL",
	"RATING_CACHE_TTL",
	"SEARCH_PARALLELISM",
	"SEARCH_RATE_LIMIT",
	"SEED_DEMO",
}

func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("HTTP_PORT", ":8080")
	v.SetDefault("STORE_DRIVER", StorePostgres)
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("RATING_CACHE_TTL", "10m")
	v.SetDefault("SEARCH_PARALLELISM", 8)
	v.SetDefault("SEARCH_RATE_LIMIT", 120)
	v.SetDefault("SEED_DEMO", false)

	v.AutomaticEnv()

	// Явно биндим, чтобы Viper видел переменные без файла
	for _, key := range keys {
		if err = v.BindEnv(key); err != nil {
			return
		}
	}

	// Файла нет, работаем на ENV
	err = v.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}
	err = config.Validate()
	return
}

func (c Config) Validate() error {
	switch c.StoreDriver {
	case StorePostgres:
		if c.DBHost == "" || c.DBUser == "" || c.DBName == "" {
			return fmt.Errorf("postgres store requires DB_HOST, DB_USER and DB_NAME")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.SearchParallelism <= 0 {
		return fmt.Errorf("SEARCH_PARALLELISM must be positive, got %d", c.SearchParallelism)
	}
	if c.SearchRateLimit < 0 {
		return fmt.Errorf("SEARCH_RATE_LIMIT must not be negative, got %d", c.SearchRateLimit)
	}
	if c.RatingCacheTTL < 0 {
		return fmt.Errorf("RATING_CACHE_TTL must not be negative")
	}
	return nil
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

// Origins разбирает ALLOWED_ORIGINS через запятую
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
