package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("UPSTREAM_BASE_URL", "http://backend.local/api")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "memory", cfg.Draft.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Draft.TTL)
	assert.Equal(t, 30*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, 2*time.Hour, cfg.Wizard.SessionTTL)
	assert.Equal(t, 5, cfg.Wizard.MaxAttachmentMB)
	assert.Equal(t, 5<<20, cfg.MaxAttachmentBytes())
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, ":8080", cfg.GetServerAddr())
}

func TestLoad_MissingUpstreamBaseURL(t *testing.T) {
	// present-but-empty must fail the same way as absent
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("UPSTREAM_BASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UPSTREAM_BASE_URL")
}

func TestMustLoad(t *testing.T) {
	setRequired(t)
	cfg := MustLoad()
	assert.Equal(t, 8080, cfg.Port)

	t.Setenv("JWT_SECRET", "too-short")
	assert.Panics(t, func() { MustLoad() })
}

func TestValidate_ShortJWTSecret(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_SECRET", "too-short")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidate_DraftBackends(t *testing.T) {
	setRequired(t)

	t.Setenv("DRAFT_STORE", "postgres")
	_, err := Load()
	require.Error(t, err, "postgres backend needs DATABASE_URL")

	t.Setenv("DATABASE_URL", "postgres://localhost:5432/admin")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Draft.Backend)

	t.Setenv("DRAFT_STORE", "carrier-pigeon")
	_, err = Load()
	assert.Error(t, err)
}

func TestGetCORSOrigins_TrimsBlanks(t *testing.T) {
	setRequired(t)
	t.Setenv("CORS_TRUSTED_ORIGINS", " http://a.local ,,http://b.local")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.GetCORSOrigins())
}
