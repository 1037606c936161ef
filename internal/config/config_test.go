package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "gemini-2.5-flash", cfg.GoogleModel)
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.GoogleFallbackModel)
	assert.Equal(t, 1024, cfg.GoogleMaxTokens)
	assert.Equal(t, "https://api.attio.com/v2", cfg.AttioBaseURL)
	assert.Equal(t, 3, cfg.RetryMaxAttempts)
	assert.Equal(t, time.Second, cfg.RetryBaseDelay)
	assert.Equal(t, 15*time.Second, cfg.AttioTimeout)
	assert.True(t, cfg.DomainLookupEnabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GOOGLE_MODEL", "gemini-2.5-pro")
	t.Setenv("GOOGLE_MAX_TOKENS", "2048")
	t.Setenv("ATTIO_TIMEOUT", "5s")
	t.Setenv("GEMINI_REQUESTS_PER_SEC", "0.5")
	t.Setenv("DOMAIN_LOOKUP_ENABLED", "false")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "gemini-2.5-pro", cfg.GoogleModel)
	assert.Equal(t, 2048, cfg.GoogleMaxTokens)
	assert.Equal(t, 5*time.Second, cfg.AttioTimeout)
	assert.Equal(t, 0.5, cfg.GeminiRequestsPerSec)
	assert.False(t, cfg.DomainLookupEnabled)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("GOOGLE_MAX_TOKENS", "not-a-number")
	t.Setenv("RETRY_BASE_DELAY", "soon")

	cfg := Load()

	assert.Equal(t, 1024, cfg.GoogleMaxTokens)
	assert.Equal(t, time.Second, cfg.RetryBaseDelay)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_API_KEY")
	assert.Contains(t, err.Error(), "ATTIO_API_KEY")

	cfg.GoogleAPIKey = "g-key"
	err = cfg.Validate()
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "GOOGLE_API_KEY")

	cfg.AttioAPIKey = "a-key"
	assert.NoError(t, cfg.Validate())
}
