package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const prodString = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction      bool
	ProdOrigins       string
	HTTPAddr          string
	DBDSN             string
	JWTSecret         string
	JWTAccessTokenTTL time.Duration
	BcryptCost        int

	// TxTimeout bounds every booking transaction; on expiry the whole
	// operation aborts and surfaces as a retryable conflict.
	TxTimeout time.Duration

	// UploadDir is where court images are stored.
	UploadDir string

	// MetricsEnabled toggles the prometheus middleware and /metrics endpoint.
	MetricsEnabled bool

	// Redis settings for the rate limiter. Empty RedisAddr disables it.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RateLimit     RateLimit
}

// RateLimit configures the token-bucket limiter backed by Redis.
type RateLimit struct {
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := &Config{}
	var err error

	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")
	cfg.IsProduction = getEnv("APP_ENV", "dev") == prodString
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	cfg.JWTAccessTokenTTL, err = getEnvAsDuration("JWT_ACCESS_TOKEN_TTL", 15*time.Minute)
	if err != nil {
		return nil, err
	}

	cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, err
	}

	cfg.TxTimeout, err = getEnvAsDuration("TX_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	cfg.UploadDir = getEnv("UPLOAD_DIR", "./uploads")
	cfg.MetricsEnabled = getEnv("METRICS_ENABLED", "true") == "true"

	cfg.RedisAddr = getEnv("REDIS_ADDR", "")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	cfg.RedisDB, err = getEnvAsInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	cfg.RateLimit.Capacity, err = getEnvAsInt("RATE_LIMIT_CAPACITY", 60)
	if err != nil {
		return nil, err
	}
	cfg.RateLimit.RefillTokens, err = getEnvAsInt("RATE_LIMIT_REFILL_TOKENS", 1)
	if err != nil {
		return nil, err
	}
	cfg.RateLimit.RefillInterval, err = getEnvAsDuration("RATE_LIMIT_REFILL_INTERVAL", time.Second)
	if err != nil {
		return nil, err
	}
	cfg.RateLimit.TTL, err = getEnvAsDuration("RATE_LIMIT_TTL", 10*time.Minute)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise the provided default.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}
	return val, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}
	val, err := time.ParseDuration(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid duration: %w", key, valStr, err)
	}
	return val, nil
}
