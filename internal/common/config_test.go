package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"ADDR", "UPLOAD_DIR", "MAX_UPLOAD_MB", "DB_URL",
		"GROQ_API_KEY", "MODEL_NAME", "LLM_TEMPERATURE", "LLM_MAX_TOKENS", "LLM_TIMEOUT",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, int64(16*1024*1024), cfg.Server.MaxUploadBytes)
	assert.Empty(t, cfg.Database.DSN)
	assert.Empty(t, cfg.LLM.APIKey)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.LLM.Model)
	assert.InDelta(t, 0.1, float64(cfg.LLM.Temperature), 0.001)
	assert.Equal(t, 500, cfg.LLM.MaxTokens)
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)

	require.NoError(t, cfg.Validate())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("MAX_UPLOAD_MB", "8")
	t.Setenv("DB_URL", "postgres://localhost/docfields")
	t.Setenv("LLM_TIMEOUT", "20s")
	t.Setenv("LLM_TEMPERATURE", "0.3")

	cfg := LoadConfig()
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, int64(8*1024*1024), cfg.Server.MaxUploadBytes)
	assert.Equal(t, "postgres://localhost/docfields", cfg.Database.DSN)
	assert.Equal(t, 20*time.Second, cfg.LLM.Timeout)
	assert.InDelta(t, 0.3, float64(cfg.LLM.Temperature), 0.001)
}

func TestLoadConfigIgnoresGarbageValues(t *testing.T) {
	t.Setenv("MAX_UPLOAD_MB", "lots")
	t.Setenv("LLM_TIMEOUT", "soon")

	cfg := LoadConfig()
	assert.Equal(t, int64(16*1024*1024), cfg.Server.MaxUploadBytes)
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)
}

func TestValidate(t *testing.T) {
	cfg := LoadConfig()
	cfg.Server.Addr = ""
	assert.Error(t, cfg.Validate())

	cfg = LoadConfig()
	cfg.LLM.Timeout = 0
	assert.Error(t, cfg.Validate())
}
