package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "token", cfg.CookieName)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, []string{"/dashboard", "/control-products", "/profile"}, cfg.ProtectedPrefixes)
	assert.True(t, cfg.RegisterIssuesSession)
	assert.Empty(t, cfg.CORSAllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("PROTECTED_PREFIXES", " /admin , ,/reports ")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, []string{"/admin", "/reports"}, cfg.ProtectedPrefixes)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "memory", cfg.StoreDriver)
}

func TestLoad_Rejects(t *testing.T) {
	cases := map[string][2]string{
		"unknown store":     {"STORE_DRIVER", "sqlite"},
		"unknown mail":      {"MAIL_DRIVER", "pigeon"},
		"shared secret":     {"JWT_CONFIRM_SECRET", "devsessionsecret"},
		"bad duration":      {"SESSION_TTL", "soon"},
		"non-positive call": {"CALL_TIMEOUT", "0s"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_DevSecretsOnlyInDevelopment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SESSION_SECRET")

	t.Setenv("JWT_SESSION_SECRET", "prod-session-secret")
	_, err = Load()
	assert.Error(t, err, "confirm secret still the dev default")

	t.Setenv("JWT_CONFIRM_SECRET", "prod-confirm-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Env)
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "5432", DBName: "d", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/d?sslmode=disable", cfg.PostgresDSN())
}
