package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_NAME", "careerpath")
	t.Setenv("DB_USER", "careerpath")
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("ADZUNA_APP_ID", "app-id")
	t.Setenv("ADZUNA_APP_KEY", "app-key")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("LLM_TIMEOUT_SECONDS", "")
	t.Setenv("LLM_TEMPERATURE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "careerpath", cfg.App.AppName)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "5000", cfg.App.HTTPPort)
	assert.False(t, cfg.App.IsProduction())
	assert.Equal(t, defaultCORSOrigins, cfg.App.CORSOrigins)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.InDelta(t, 0.7, cfg.LLM.Temperature, 0.0001)
	assert.Equal(t, "gb", cfg.JobSearch.Country)
	assert.Equal(t, 5, cfg.JobSearch.ResultsPerPage)
	assert.Equal(t, time.Hour, cfg.JWT.ExpiresIn)
	assert.Equal(t, 600*time.Second, cfg.Redis.TTL)
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("ADZUNA_APP_KEY", " ")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errMissingRequiredEnv))
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
	assert.Contains(t, err.Error(), "ADZUNA_APP_KEY")
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "Production")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("LLM_TIMEOUT_SECONDS", "12")
	t.Setenv("LLM_TEMPERATURE", "9")
	t.Setenv("ADZUNA_RESULTS_PER_PAGE", "-3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.App.IsProduction())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.App.CORSOrigins)
	assert.Equal(t, 12*time.Second, cfg.LLM.Timeout)
	assert.InDelta(t, 0.7, cfg.LLM.Temperature, 0.0001)
	assert.Equal(t, 5, cfg.JobSearch.ResultsPerPage)
}
