package config

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvRequiresAPIBaseURL(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	_, err := FromEnv()
	require.Error(t, err)
}

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.lenzoo.test/")
	t.Setenv("FILE_BASE_URL", "")
	t.Setenv("PAGE_SIZE", "")
	t.Setenv("REQUEST_TIMEOUT", "")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("CSRF_KEY", "")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "https://api.lenzoo.test", cfg.APIBaseURL)
	assert.Equal(t, cfg.APIBaseURL, cfg.FileBaseURL)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Len(t, cfg.SessionSecret, 32)
	assert.Len(t, cfg.CSRFKey, 32)
	assert.False(t, cfg.AuditEnabled())
}

func TestFromEnvInvalidNumbersFallBack(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.lenzoo.test")
	t.Setenv("PAGE_SIZE", "-4")
	t.Setenv("REQUEST_TIMEOUT", "soon")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}

func TestFromEnvDecodesCSRFKey(t *testing.T) {
	key := []byte("0123456789abcdef0123456789abcdef")
	t.Setenv("API_BASE_URL", "https://api.lenzoo.test")
	t.Setenv("CSRF_KEY", base64.StdEncoding.EncodeToString(key))
	t.Setenv("SESSION_SECRET", "plain-secret")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, key, cfg.CSRFKey)
	assert.Equal(t, []byte("plain-secret"), cfg.SessionSecret)
	assert.True(t, cfg.AuditEnabled())
}
