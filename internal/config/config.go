package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port        string `yaml:"port" env:"SERVER_PORT"`
		Mode        string `yaml:"mode" env:"SERVER_MODE"`
		BaseURL     string `yaml:"base_url" env:"SERVER_BASE_URL"`
		FrontendURL string `yaml:"frontend_url" env:"FRONTEND_URL"`
		StoragePath string `yaml:"storage_path" env:"STORAGE_PATH"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	JWT struct {
		Secret                 string `yaml:"secret" env:"JWT_SECRET"`
		SessionExpiration      string `yaml:"session_expiration" env:"JWT_SESSION_EXPIRATION"`
		VerificationExpiration string `yaml:"verification_expiration" env:"JWT_VERIFICATION_EXPIRATION"`
		ResetExpiration        string `yaml:"reset_expiration" env:"JWT_RESET_EXPIRATION"`
		Issuer                 string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	SMTP struct {
		Host      string `yaml:"host" env:"SMTP_HOST"`
		Port      int    `yaml:"port" env:"SMTP_PORT"`
		Username  string `yaml:"username" env:"SMTP_USERNAME"`
		Password  string `yaml:"password" env:"SMTP_PASSWORD"`
		FromName  string `yaml:"from_name" env:"SMTP_FROM_NAME"`
		FromEmail string `yaml:"from_email" env:"SMTP_FROM_EMAIL"`
		UseTLS    bool   `yaml:"use_tls" env:"SMTP_USE_TLS"`
	} `yaml:"smtp"`

	Redis struct {
		Enabled  bool   `yaml:"enabled" env:"REDIS_ENABLED"`
		Addr     string `yaml:"addr" env:"REDIS_ADDR"`
		Password string `yaml:"password" env:"REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"REDIS_DB"`
		CacheTTL string `yaml:"cache_ttl" env:"REDIS_CACHE_TTL"`
	} `yaml:"redis"`

	Seed struct {
		AdminEmail    string `yaml:"admin_email" env:"SEED_ADMIN_EMAIL"`
		AdminPassword string `yaml:"admin_password" env:"SEED_ADMIN_PASSWORD"`
	} `yaml:"seed"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// Config file is optional; env vars can carry everything
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "5000"
	config.Server.Mode = "development"
	config.Server.BaseURL = "http://localhost:5000"
	config.Server.FrontendURL = "http://localhost:5173"
	config.Server.StoragePath = "public"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "estatecore"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	config.JWT.SessionExpiration = "24h"
	config.JWT.VerificationExpiration = "24h"
	config.JWT.ResetExpiration = "1h"
	config.JWT.Issuer = "estatecore.app"

	config.SMTP.Port = 587
	config.SMTP.FromName = "Real Estate Team"

	config.Redis.Addr = "localhost:6379"
	config.Redis.CacheTTL = "5m"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	for name, value := range map[string]string{
		"session":      config.JWT.SessionExpiration,
		"verification": config.JWT.VerificationExpiration,
		"reset":        config.JWT.ResetExpiration,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid JWT %s expiration format: %w", name, err)
		}
	}

	return nil
}

// GetPostgresConnectionString returns the postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// ParseDuration parses a duration string, returning a default on error
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		return defaultDuration
	}
	return duration
}
