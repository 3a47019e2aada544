package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret-key-that-is-long-enough-000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 30*time.Second, cfg.ServerTimeout)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenExpiry)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenExpiry)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.Contains(t, cfg.DBSource, "dbname=seltronik_db")
	assert.False(t, cfg.FirebaseEnabled())
	assert.Empty(t, cfg.ElasticsearchURL)
	assert.Empty(t, cfg.TrustedProxies)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret-key-that-is-long-enough-000")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_ACCESS_TOKEN_EXPIRY_MINUTES", "5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://seltronik.co.id, https://admin.seltronik.co.id")
	t.Setenv("MEDIA_PUBLIC_BASE_URL", "https://cdn.seltronik.co.id/")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8,172.16.0.1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, 5*time.Minute, cfg.AccessTokenExpiry)
	assert.Equal(t, []string{"https://seltronik.co.id", "https://admin.seltronik.co.id"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "https://cdn.seltronik.co.id", cfg.MediaPublicBaseURL)
	assert.Equal(t, []string{"10.0.0.0/8", "172.16.0.1"}, cfg.TrustedProxies)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_ShortSecretInRelease(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "short")
	t.Setenv("GIN_MODE", "release")

	_, err := Load()
	assert.ErrorContains(t, err, "at least 32 characters")
}

func TestLoad_MissingFirebaseKeyFile(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret-key-that-is-long-enough-000")
	t.Setenv("FIREBASE_SERVICE_ACCOUNT_KEY_PATH", "/nonexistent/firebase.json")

	_, err := Load()
	assert.ErrorContains(t, err, "not found")
}
