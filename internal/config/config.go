package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Payroll  PayrollConfig
	Storage  StorageConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
	Timezone string
	Seed     bool
}

// PayrollConfig holds the defaults and policy knobs of payroll runs
type PayrollConfig struct {
	Currency              string
	Locale                string
	IncentiveBonusPool    decimal.Decimal
	LatenessPolicy        string
	LatenessBucketMinutes int
	LatenessRatePerMinute decimal.Decimal
	ProductivityTarget    int
}

type StorageConfig struct {
	BasePath string
	BaseURL  string
}

var latenessPolicies = []string{"prorated_daily", "per_minute", "none"}

func Load() (*Config, error) {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "studio-payroll"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Timezone: getEnv("APP_TIMEZONE", "Asia/Jakarta"),
		Seed:     getEnv("APP_SEED_DEFAULTS", "false") == "true",
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Payroll configuration
	bonusPool, err := decimal.NewFromString(getEnv("PAYROLL_INCENTIVE_BONUS_POOL", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_INCENTIVE_BONUS_POOL: %w", err)
	}
	bucket, err := strconv.Atoi(getEnv("PAYROLL_LATENESS_BUCKET_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_LATENESS_BUCKET_MINUTES: %w", err)
	}
	perMinute, err := decimal.NewFromString(getEnv("PAYROLL_LATENESS_RATE_PER_MINUTE", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_LATENESS_RATE_PER_MINUTE: %w", err)
	}
	target, err := strconv.Atoi(getEnv("PAYROLL_PRODUCTIVITY_TARGET", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_PRODUCTIVITY_TARGET: %w", err)
	}

	config.Payroll = PayrollConfig{
		Currency:              getEnv("PAYROLL_CURRENCY", "IDR"),
		Locale:                getEnv("PAYROLL_LOCALE", "id"),
		IncentiveBonusPool:    bonusPool,
		LatenessPolicy:        getEnv("PAYROLL_LATENESS_POLICY", "prorated_daily"),
		LatenessBucketMinutes: bucket,
		LatenessRatePerMinute: perMinute,
		ProductivityTarget:    target,
	}

	// Storage configuration
	config.Storage = StorageConfig{
		BasePath: getEnv("STORAGE_BASE_PATH", "./storage"),
		BaseURL:  getEnv("STORAGE_BASE_URL", fmt.Sprintf("http://localhost:%d/files", appPort)),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	valid := false
	for _, p := range latenessPolicies {
		if c.Payroll.LatenessPolicy == p {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("PAYROLL_LATENESS_POLICY must be one of %v", latenessPolicies)
	}
	if c.Payroll.LatenessBucketMinutes <= 0 {
		return fmt.Errorf("PAYROLL_LATENESS_BUCKET_MINUTES must be positive")
	}
	if c.Payroll.IncentiveBonusPool.IsNegative() {
		return fmt.Errorf("PAYROLL_INCENTIVE_BONUS_POOL must not be negative")
	}
	return nil
}

// Location returns the time zone month boundaries are computed in.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
