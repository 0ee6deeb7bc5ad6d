package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingSessionSecret = errors.New("SESSION_SECRET must be set in production")

// Config holds application configuration
type Config struct {
	Env        string `mapstructure:"app_env"`
	ServerPort string `mapstructure:"port"`

	DatabaseType   string `mapstructure:"database_type"` // sqlite, postgres, pgx or mysql
	DatabasePath   string `mapstructure:"db_path"`
	DatabaseURL    string `mapstructure:"database_url"`
	MigrationsPath string `mapstructure:"migrations_path"`

	SessionDuration    time.Duration `mapstructure:"session_duration"`
	SessionSecret      string        `mapstructure:"session_secret"`
	RedisURL           string        `mapstructure:"redis_url"`
	RateLimitPerMinute int           `mapstructure:"rate_limit_per_minute"`
	DemoLoginEnabled   bool          `mapstructure:"demo_login_enabled"`

	AWSRegion  string `mapstructure:"aws_region"`
	SESFrom    string `mapstructure:"ses_from_email"`
	SESName    string `mapstructure:"ses_from_name"`
	AppBaseURL string `mapstructure:"app_base_url"`
	EmailDebug bool   `mapstructure:"email_debug"`

	GoogleClientID       string `mapstructure:"google_client_id"`
	GoogleClientSecret   string `mapstructure:"google_client_secret"`
	FacebookClientID     string `mapstructure:"facebook_client_id"`
	FacebookClientSecret string `mapstructure:"facebook_client_secret"`
	AppleClientID        string `mapstructure:"apple_client_id"`
	AppleClientSecret    string `mapstructure:"apple_client_secret"`
	OAuthRedirectBaseURL string `mapstructure:"oauth_redirect_base_url"`
}

var keys = []string{
	"app_env", "port",
	"database_type", "db_path", "database_url", "migrations_path",
	"session_duration", "session_secret", "redis_url", "rate_limit_per_minute", "demo_login_enabled",
	"aws_region", "ses_from_email", "ses_from_name", "app_base_url", "email_debug",
	"google_client_id", "google_client_secret",
	"facebook_client_id", "facebook_client_secret",
	"apple_client_id", "apple_client_secret",
	"oauth_redirect_base_url",
}

// Load reads configuration from .env, an optional config/config.yaml and
// environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	// .env is optional, real environment variables still win
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	v.SetDefault("app_env", "development")
	v.SetDefault("port", "8080")
	v.SetDefault("database_type", "sqlite")
	v.SetDefault("db_path", "./corpoleve.db")
	v.SetDefault("migrations_path", "./migrations")
	v.SetDefault("session_duration", "720h")
	v.SetDefault("session_secret", "dev-only-session-secret")
	v.SetDefault("rate_limit_per_minute", 10)
	v.SetDefault("demo_login_enabled", true)
	v.SetDefault("aws_region", "us-east-1")
	v.SetDefault("ses_from_name", "Corpo Leve")
	v.SetDefault("app_base_url", "http://localhost:8080")

	// Every key maps to its upper-cased env var, e.g. db_path -> DB_PATH.
	for _, key := range keys {
		_ = v.BindEnv(key, strings.ToUpper(key))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate performs validation on the loaded configuration
func (c *Config) Validate() error {
	var problems []string

	switch strings.ToLower(c.DatabaseType) {
	case "sqlite", "sqlite3", "":
		if c.DatabasePath == "" {
			problems = append(problems, "DB_PATH is required for sqlite")
		}
	case "postgres", "postgresql", "pgx", "mysql":
		if c.DatabaseURL == "" {
			problems = append(problems, fmt.Sprintf("DATABASE_URL is required for %s", c.DatabaseType))
		}
	default:
		problems = append(problems, fmt.Sprintf("unsupported DATABASE_TYPE %q", c.DatabaseType))
	}

	if c.SessionDuration <= 0 {
		problems = append(problems, "SESSION_DURATION must be positive")
	}
	if c.RateLimitPerMinute <= 0 {
		problems = append(problems, "RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.IsProduction() && (c.SessionSecret == "" || c.SessionSecret == "dev-only-session-secret") {
		problems = append(problems, ErrMissingSessionSecret.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}

// IsProduction reports whether the application runs in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
