package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_TYPE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "./corpoleve.db", cfg.DatabasePath)
	assert.Equal(t, 720*time.Hour, cfg.SessionDuration)
	assert.Equal(t, 10, cfg.RateLimitPerMinute)
	assert.True(t, cfg.DemoLoginEnabled)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_TYPE", "pgx")
	t.Setenv("DATABASE_URL", "postgres://localhost/corpoleve")
	t.Setenv("SESSION_DURATION", "2h")
	t.Setenv("DEMO_LOGIN_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "pgx", cfg.DatabaseType)
	assert.Equal(t, "postgres://localhost/corpoleve", cfg.DatabaseURL)
	assert.Equal(t, 2*time.Hour, cfg.SessionDuration)
	assert.False(t, cfg.DemoLoginEnabled)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			DatabaseType:       "sqlite",
			DatabasePath:       "test.db",
			SessionDuration:    time.Hour,
			SessionSecret:      "secret",
			RateLimitPerMinute: 5,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid sqlite", mutate: func(c *Config) {}},
		{
			name:    "postgres without url",
			mutate:  func(c *Config) { c.DatabaseType = "postgres" },
			wantErr: "DATABASE_URL is required",
		},
		{
			name:    "unknown database",
			mutate:  func(c *Config) { c.DatabaseType = "oracle" },
			wantErr: "unsupported DATABASE_TYPE",
		},
		{
			name:    "zero session duration",
			mutate:  func(c *Config) { c.SessionDuration = 0 },
			wantErr: "SESSION_DURATION",
		},
		{
			name: "production with default secret",
			mutate: func(c *Config) {
				c.Env = "production"
				c.SessionSecret = "dev-only-session-secret"
			},
			wantErr: "SESSION_SECRET",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
