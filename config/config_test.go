package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "LLM_PROVIDER", "LLM_ENDPOINT", "LLM_API_KEY", "LLM_MODEL",
		"LLM_TEMPERATURE", "LLM_MAX_TOKENS", "LLM_TIMEOUT", "STRICT_SCHEMA",
		"CACHE_TTL", "CACHE_SIZE", "CACHE_DIR", "DATABASE_URL", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ProviderOpenAI, cfg.LLMProvider)
	assert.Equal(t, "google/gemini-2.5-flash", cfg.LLMModel)
	assert.InDelta(t, 0.7, cfg.LLMTemperature, 0.0001)
	assert.Equal(t, 2000, cfg.LLMMaxTokens)
	assert.Zero(t, cfg.LLMTimeout)
	assert.False(t, cfg.StrictSchema)
	assert.False(t, cfg.CacheEnabled())
	assert.Equal(t, 256, cfg.CacheSize)
	assert.False(t, cfg.LLMConfigured())
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "Gemini")
	t.Setenv("LLM_ENDPOINT", "https://example.test")
	t.Setenv("LLM_API_KEY", "secret")
	t.Setenv("LLM_TIMEOUT", "45")
	t.Setenv("CACHE_TTL", "1h")
	t.Setenv("STRICT_SCHEMA", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ProviderGemini, cfg.LLMProvider)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLMModel)
	assert.Equal(t, 45*time.Second, cfg.LLMTimeout)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.True(t, cfg.CacheEnabled())
	assert.True(t, cfg.StrictSchema)
	assert.True(t, cfg.LLMConfigured())
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"LLM_PROVIDER", "anthropic"},
		{"LLM_TEMPERATURE", "warm"},
		{"LLM_MAX_TOKENS", "lots"},
		{"STRICT_SCHEMA", "maybe"},
		{"CACHE_TTL", "forever"},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
