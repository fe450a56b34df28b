package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvFile(t *testing.T) {
	dir := t.TempDir()
	content := "DATABASE_URL=sqlite://forum.db\nJWT_SECRET=file-secret\nJWT_TTL=2h\nAUTH_REGISTER_ISSUES_TOKEN=false\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "sqlite://forum.db", cfg.DatabaseURL)
	assert.Equal(t, "file-secret", cfg.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.False(t, cfg.RegisterIssuesToken)
	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.Equal(t, "forum", cfg.JWTIssuer)
	assert.Equal(t, 10, cfg.AuthRateBurst)
	assert.True(t, cfg.SeedOnStart)
	assert.Empty(t, cfg.TrustedProxies)
}

func TestLoadTrustedProxies(t *testing.T) {
	t.Setenv("DATABASE_URL", "sqlite://forum.db")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8,127.0.0.1")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.TrustedProxies)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DATABASE_URL=sqlite://a.db\nJWT_SECRET=file\n"), 0o600))
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("SERVER_ADDR", ":9999")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.JWTSecret)
	assert.Equal(t, ":9999", cfg.ServerAddr)
}

func TestLoadWithoutFileUsesEnvironment(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://forum@localhost/forum")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "postgres://forum@localhost/forum", cfg.DatabaseURL)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
}

func TestValidate(t *testing.T) {
	valid := Config{DatabaseURL: "sqlite://x", JWTSecret: "s", JWTTTL: time.Hour, AuthRateLimit: 1, AuthRateBurst: 1}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing database", func(c *Config) { c.DatabaseURL = " " }, "DATABASE_URL is required"},
		{"missing secret", func(c *Config) { c.JWTSecret = "" }, "JWT_SECRET is required"},
		{"zero ttl", func(c *Config) { c.JWTTTL = 0 }, "JWT_TTL must be positive"},
		{"negative rate", func(c *Config) { c.AuthRateLimit = -1 }, "AUTH_RATE_LIMIT must be positive"},
		{"zero burst", func(c *Config) { c.AuthRateBurst = 0 }, "AUTH_RATE_BURST must be positive"},
		{"proxy cidr", func(c *Config) { c.TrustedProxies = []string{"192.168.0.0/16", "::1"} }, ""},
		{"bad proxy", func(c *Config) { c.TrustedProxies = []string{"proxy.local"} }, "TRUSTED_PROXIES entry"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
