package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_EnvOnly(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("SEARCH_PARALLELISM", "4")
	t.Setenv("RATING_CACHE_TTL", "30s")
	t.Setenv("SEED_DEMO", "true")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPPort)
	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.Equal(t, 4, cfg.SearchParallelism)
	assert.Equal(t, 120, cfg.SearchRateLimit)
	assert.Equal(t, 30*time.Second, cfg.RatingCacheTTL)
	assert.True(t, cfg.SeedDemo)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Origins())
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	content := "STORE_DRIVER=postgres\nDB_HOST=db\nDB_USER=app\nDB_PASSWORD=secret\nDB_NAME=courses\nHTTP_PORT=:9090\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte(content), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPPort)
	assert.Equal(t, "host=db user=app password=secret dbname=courses port=5432 sslmode=disable", cfg.DSN())
	assert.Equal(t, 10*time.Minute, cfg.RatingCacheTTL)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"unknown driver":   {"STORE_DRIVER": "mongo"},
		"postgres no host": {"STORE_DRIVER": "postgres"},
		"zero parallelism": {"STORE_DRIVER": "memory", "SEARCH_PARALLELISM": "0"},
		"negative limit":   {"STORE_DRIVER": "memory", "SEARCH_RATE_LIMIT": "-1"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig(t.TempDir())
			assert.Error(t, err)
		})
	}
}
