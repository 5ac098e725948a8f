package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/JoaoTravalini/EsporTz-sub001/backend/pkg/errors"
)

func TestLoad(t *testing.T) {
	t.Setenv("NEO4J_PASSWORD", "secret")
	t.Setenv("POSTGRES_DSN", "host=localhost user=espor dbname=espor")
	t.Setenv("TRENDING_CACHE_TTL", "5m")
	t.Setenv("TRENDING_DOUBLE_PREVIOUS", "true")
	t.Setenv("SUGGEST_BATCH_SIZE", "25")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "bolt://localhost:7687", cfg.Neo4jURI)
	assert.Equal(t, 5*time.Minute, cfg.TrendingCacheTTL)
	assert.True(t, cfg.TrendingDoublePrevious)
	assert.Equal(t, 25, cfg.SuggestBatchSize)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("NEO4J_PASSWORD", "")
	t.Setenv("POSTGRES_DSN", "")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeConfig))
}

func TestValidate_RejectsZeroTTL(t *testing.T) {
	cfg := &Config{
		Neo4jURI:      "bolt://localhost:7687",
		Neo4jUser:     "neo4j",
		Neo4jPassword: "secret",
		PostgresDSN:   "host=localhost",
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeConfig))
}

func TestGetEnvDuration_BadValueFallsBack(t *testing.T) {
	t.Setenv("TRENDING_CACHE_TTL", "soon")
	assert.Equal(t, 15*time.Minute, getEnvDuration("TRENDING_CACHE_TTL", 15*time.Minute))
}
