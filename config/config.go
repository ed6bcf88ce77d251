package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var (
	DB        *gorm.DB
	Redis     *redis.Client
	AppConfig *Config
)

// Config holds all configuration for the application
type Config struct {
	Port          string
	Env           string
	FrontendURL   string
	ActivationURL string

	Database     DatabaseConfig
	JWT          JWTConfig
	Verification VerificationConfig
	SMTP         SMTPConfig
	S3           S3Config
	Redis        RedisConfig
	Google       GoogleConfig
	RateLimit    RateLimitConfig
}

type DatabaseConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

type VerificationConfig struct {
	TTL time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type S3Config struct {
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	// Endpoint is set for S3-compatible stores (R2, MinIO)
	Endpoint  string
	PublicURL string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// RateLimitConfig holds per-scope request budgets
type RateLimitConfig struct {
	AuthLimit      int
	AuthWindow     time.Duration
	ReferralLimit  int
	ReferralWindow time.Duration
	RedeemLimit    int
	RedeemWindow   time.Duration
}

// LoadConfig loads configuration from the environment, reading .env when present
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "2000"),
		Env:           getEnv("ENV", "development"),
		FrontendURL:   getEnv("FRONTEND_URL", ""),
		ActivationURL: getEnv("ACTIVATION_ACCOUNT_URL", "http://localhost:3000/auth/verify-email"),
		Database: DatabaseConfig{
			URL:      getEnv("DATABASE_URL", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "eventhub"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret: os.Getenv("JWT_SECRET"),
			Expiry: getEnvDuration("JWT_EXPIRY", 24*time.Hour),
		},
		Verification: VerificationConfig{
			TTL: getEnvDuration("VERIFICATION_TTL", 2*time.Hour),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:     getEnvInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", os.Getenv("GMAIL_USER")),
			Password: getEnv("SMTP_PASSWORD", os.Getenv("GMAIL_APP_PASSWORD")),
			From:     getEnv("SMTP_FROM", os.Getenv("GMAIL_USER")),
		},
		S3: S3Config{
			Region:    getEnv("S3_REGION", "ap-southeast-1"),
			Bucket:    getEnv("S3_BUCKET", ""),
			AccessKey: getEnv("S3_ACCESS_KEY", ""),
			SecretKey: getEnv("S3_SECRET_KEY", ""),
			Endpoint:  getEnv("S3_ENDPOINT", ""),
			PublicURL: getEnv("S3_PUBLIC_URL", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Google: GoogleConfig{
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			RedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:2000/auth/google/callback"),
		},
		RateLimit: RateLimitConfig{
			AuthLimit:      getEnvInt("RATE_LIMIT_AUTH", 5),
			AuthWindow:     getEnvDuration("RATE_LIMIT_AUTH_WINDOW", time.Minute),
			ReferralLimit:  getEnvInt("RATE_LIMIT_REFERRAL", 10),
			ReferralWindow: getEnvDuration("RATE_LIMIT_REFERRAL_WINDOW", 30*time.Second),
			RedeemLimit:    getEnvInt("RATE_LIMIT_REDEEM", 5),
			RedeemWindow:   getEnvDuration("RATE_LIMIT_REDEEM_WINDOW", time.Minute),
		},
	}

	AppConfig = cfg
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
