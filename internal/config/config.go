package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Payroll  PayrollConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds token verification configuration. This service never
// issues tokens; it only verifies the ones the identity service signs.
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// PayrollConfig carries the policy overrides for the calculation engine.
// Anything left at zero falls back to the engine's stock policy.
type PayrollConfig struct {
	DefaultBasicSalary  decimal.Decimal
	StandardWorkingDays int
	DefaultPFPercent    decimal.Decimal
	DefaultESIPercent   decimal.Decimal
	ESIWageCeiling      decimal.Decimal
	BatchWorkers        int
	SynthesizeMissing   bool
}

func Load() (*Config, error) {
	// Missing .env is fine in containerized deployments; the environment is
	// already populated there.
	_ = godotenv.Load()

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
		Name:     getEnv("DB_NAME", "hrpulse-payroll"),
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
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	// Payroll policy overrides
	payrollCfg := PayrollConfig{}
	if payrollCfg.DefaultBasicSalary, err = getEnvDecimal("PAYROLL_DEFAULT_BASIC_SALARY"); err != nil {
		return nil, err
	}
	if payrollCfg.StandardWorkingDays, err = getEnvInt("PAYROLL_STANDARD_WORKING_DAYS"); err != nil {
		return nil, err
	}
	if payrollCfg.DefaultPFPercent, err = getEnvDecimal("PAYROLL_PF_PERCENT_DEFAULT"); err != nil {
		return nil, err
	}
	if payrollCfg.DefaultESIPercent, err = getEnvDecimal("PAYROLL_ESI_PERCENT_DEFAULT"); err != nil {
		return nil, err
	}
	if payrollCfg.ESIWageCeiling, err = getEnvDecimal("PAYROLL_ESI_WAGE_CEILING"); err != nil {
		return nil, err
	}
	if payrollCfg.BatchWorkers, err = getEnvInt("PAYROLL_BATCH_WORKERS"); err != nil {
		return nil, err
	}
	payrollCfg.SynthesizeMissing = getEnv("PAYROLL_SYNTH_ATTENDANCE", "false") == "true"
	config.Payroll = payrollCfg

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
	return nil
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

func getEnvInt(key string) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDecimal(key string) (decimal.Decimal, error) {
	value := os.Getenv(key)
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
