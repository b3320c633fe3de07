package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgresql", cfg.Database.Provider)
	assert.Equal(t, "DATABASE_URL", cfg.Database.URLEnv)
	assert.Equal(t, 5556, cfg.Studio.Port)
	assert.True(t, cfg.Studio.Browser)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "Mercedes", cfg.Reports.Brand)
	assert.Equal(t, 300.0, cfg.Reports.MinCost)
	assert.Equal(t, 10, cfg.Reports.MinPassengers)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("database.provider", "sqlite")
	viper.Set("studio.browser", false)
	viper.Set("reports.min_cost", 0)
	viper.Set("reports.brand", "Volvo")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Provider)
	assert.False(t, cfg.Studio.Browser)
	assert.Equal(t, 0.0, cfg.Reports.MinCost)
	assert.Equal(t, "Volvo", cfg.Reports.Brand)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"oracle", func(c *Config) { c.Database.Provider = "oracle" }, false},
		{"unknown provider", func(c *Config) { c.Database.Provider = "db2" }, true},
		{"bad port", func(c *Config) { c.Studio.Port = 70000 }, true},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"negative threshold", func(c *Config) { c.Reports.MinPassengers = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Database: Database{Provider: "postgresql", URLEnv: "DATABASE_URL"},
				Studio:   Studio{Port: 5556},
				Log:      Log{Level: "info"},
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetDatabaseURL(t *testing.T) {
	cfg := &Config{Database: Database{Provider: "postgresql", URLEnv: "TABLEDESK_TEST_URL"}}

	t.Setenv("TABLEDESK_TEST_URL", "")
	_, err := cfg.GetDatabaseURL()
	assert.Error(t, err)

	t.Setenv("TABLEDESK_TEST_URL", "postgres://localhost/fleet")
	url, err := cfg.GetDatabaseURL()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/fleet", url)
}

func TestGetDatabaseURL_OracleFallback(t *testing.T) {
	cfg := &Config{Database: Database{Provider: "oracle", URLEnv: "TABLEDESK_TEST_URL"}}
	t.Setenv("TABLEDESK_TEST_URL", "")
	t.Setenv("DB_USER", "transport")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_DSN", "localhost:1521/XEPDB1")

	url, err := cfg.GetDatabaseURL()
	require.NoError(t, err)
	assert.Contains(t, url, "oracle://")
	assert.Contains(t, url, "localhost:1521")
	assert.Contains(t, url, "XEPDB1")

	t.Setenv("DB_DSN", "localhost")
	_, err = cfg.GetDatabaseURL()
	assert.Error(t, err)
}
