package config

import (
	"errors"
	"time"
)

// APIConfig holds runtime configuration for the API service.
type APIConfig struct {
	Environment        string
	Addr               string
	DatabaseURL        string
	MigrationsDir      string
	JWTSecret          string
	JWTIssuer          string
	JWTAudience        string
	AccessTokenTTL     time.Duration
	RateLimitRedisAddr string
	RateLimitRedisPass string
	RateLimitRedisDB   int
}

// LoadAPIConfig constructs an APIConfig from environment variables. The
// signing secret has no fallback on purpose: Validate rejects an empty one.
func LoadAPIConfig() APIConfig {
	return APIConfig{
		Environment:        GetString("APP_ENV", "development"),
		Addr:               GetString("API_ADDR", ":4000"),
		DatabaseURL:        GetString("DATABASE_URL", "postgres://taskvault:taskvault@db:5432/taskvault?sslmode=disable"),
		MigrationsDir:      GetString("DB_MIGRATIONS_DIR", "db/migrations"),
		JWTSecret:          GetString("JWT_SECRET", ""),
		JWTIssuer:          GetString("JWT_ISSUER", "taskvault"),
		JWTAudience:        GetString("JWT_AUDIENCE", "taskvault-api"),
		AccessTokenTTL:     time.Duration(GetInt("ACCESS_TOKEN_TTL_MIN", 15)) * time.Minute,
		RateLimitRedisAddr: GetString("RATE_LIMIT_REDIS_ADDR", ""),
		RateLimitRedisPass: GetString("RATE_LIMIT_REDIS_PASSWORD", ""),
		RateLimitRedisDB:   GetInt("RATE_LIMIT_REDIS_DB", 0),
	}
}

// Validate checks the configuration the process cannot serve without.
func (c APIConfig) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET is required")
	}
	if c.JWTIssuer == "" {
		return errors.New("config: JWT_ISSUER must not be empty")
	}
	if c.JWTAudience == "" {
		return errors.New("config: JWT_AUDIENCE must not be empty")
	}
	if c.DatabaseURL == "" {
		return errors.New("config: DATABASE_URL must not be empty")
	}
	if c.AccessTokenTTL <= 0 {
		return errors.New("config: access token TTL must be positive")
	}
	return nil
}
