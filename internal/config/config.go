package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/Lumos-Labs-HQ/tabledesk/internal/database/oracle"
	"github.com/spf13/viper"
)

const FileName = "tabledesk.config"

var supportedProviders = []string{"postgresql", "postgres", "mysql", "sqlite", "sqlite3", "oracle", "sqlserver", "mssql"}

type Config struct {
	Version  string   `json:"version" mapstructure:"version"`
	Database Database `json:"database" mapstructure:"database"`
	Studio   Studio   `json:"studio" mapstructure:"studio"`
	Log      Log      `json:"log" mapstructure:"log"`
	Reports  Reports  `json:"reports" mapstructure:"reports"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
}

type Studio struct {
	Port    int  `json:"port" mapstructure:"port"`
	Browser bool `json:"browser" mapstructure:"browser"`
}

type Log struct {
	Level  string `json:"level" mapstructure:"level"`
	SeqURL string `json:"seq_url,omitempty" mapstructure:"seq_url"`
}

// Reports holds the thresholds bound into the fixed analytical queries.
type Reports struct {
	Brand         string  `json:"brand" mapstructure:"brand"`
	MinCost       float64 `json:"min_cost" mapstructure:"min_cost"`
	MinPassengers int     `json:"min_passengers" mapstructure:"min_passengers"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Version == "" {
		cfg.Version = "1"
	}
	if cfg.Database.Provider == "" {
		cfg.Database.Provider = "postgresql"
	}
	if cfg.Database.URLEnv == "" {
		cfg.Database.URLEnv = "DATABASE_URL"
	}
	if cfg.Studio.Port == 0 {
		cfg.Studio.Port = 5556
	}
	if !viper.IsSet("studio.browser") {
		cfg.Studio.Browser = true
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Reports.Brand == "" {
		cfg.Reports.Brand = "Mercedes"
	}
	if !viper.IsSet("reports.min_cost") {
		cfg.Reports.MinCost = 300
	}
	if !viper.IsSet("reports.min_passengers") {
		cfg.Reports.MinPassengers = 10
	}

	return &cfg, nil
}

// GetDatabaseURL reads the URL from the configured environment variable. For
// Oracle it falls back to DB_USER, DB_PASSWORD and DB_DSN.
func (c *Config) GetDatabaseURL() (string, error) {
	if dbURL := os.Getenv(c.Database.URLEnv); dbURL != "" {
		return dbURL, nil
	}

	if c.Database.Provider == "oracle" {
		user, password, dsn := os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_DSN")
		if user == "" || password == "" {
			return "", fmt.Errorf("database URL not found in %s and DB_USER/DB_PASSWORD are not set", c.Database.URLEnv)
		}
		return oracle.BuildURL(user, password, dsn)
	}

	return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
}

func (c *Config) Validate() error {
	if !slices.Contains(supportedProviders, c.Database.Provider) {
		return fmt.Errorf("unsupported database provider: %s. Supported providers: %v", c.Database.Provider, supportedProviders)
	}

	if c.Studio.Port < 0 || c.Studio.Port > 65535 {
		return fmt.Errorf("invalid studio port: %d", c.Studio.Port)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	if c.Reports.MinPassengers < 0 || c.Reports.MinCost < 0 {
		return fmt.Errorf("report thresholds cannot be negative")
	}

	return nil
}
