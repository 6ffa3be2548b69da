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
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
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
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Vault struct {
		TrashRetentionDays   int `yaml:"trash_retention_days" env:"VAULT_TRASH_RETENTION_DAYS"`
		RevisionHistoryLimit int `yaml:"revision_history_limit" env:"VAULT_REVISION_HISTORY_LIMIT"`
		InsightFetchCap      int `yaml:"insight_fetch_cap" env:"VAULT_INSIGHT_FETCH_CAP"`
	} `yaml:"vault"`

	Academic struct {
		DefaultYearStartMonth int `yaml:"default_year_start_month" env:"ACADEMIC_DEFAULT_YEAR_START_MONTH"`
	} `yaml:"academic"`

	Maintenance struct {
		Secret string `yaml:"secret" env:"MAINTENANCE_SECRET"`
	} `yaml:"maintenance"`

	Partnership struct {
		UserA string `yaml:"user_a" env:"PARTNERSHIP_USER_A"`
		UserB string `yaml:"user_b" env:"PARTNERSHIP_USER_B"`
	} `yaml:"partnership"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "catatankita"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	config.JWT.AccessTokenExpiration = "1h"
	config.JWT.Issuer = "catatankita.app"

	config.Vault.TrashRetentionDays = 30
	config.Vault.RevisionHistoryLimit = 120
	config.Vault.InsightFetchCap = 200

	config.Academic.DefaultYearStartMonth = 8

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if config.Maintenance.Secret == "" {
		return fmt.Errorf("maintenance secret is required")
	}

	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}

	if config.Vault.TrashRetentionDays < 1 {
		return fmt.Errorf("trash retention must be at least one day")
	}
	if m := config.Academic.DefaultYearStartMonth; m < 1 || m > 12 {
		return fmt.Errorf("academic year start month must be within 1..12")
	}

	return nil
}

// TrashRetention returns the trash retention window as a duration.
func (c *Config) TrashRetention() time.Duration {
	return time.Duration(c.Vault.TrashRetentionDays) * 24 * time.Hour
}

// GetPostgresConnectionString returns postgres connection string
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
