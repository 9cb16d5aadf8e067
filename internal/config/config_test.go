package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8060, cfg.Server.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, "GoLeads-Bot/1.0 (Business Intelligence)", cfg.Scraper.UserAgent)
	assert.Equal(t, 10*time.Second, cfg.Scraper.FetchTimeout)
	assert.Equal(t, "0 2 * * *", cfg.Scheduler.DailySpec)
	assert.Equal(t, "0 * * * *", cfg.Scheduler.HourlySpec)
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
database:
  host: db.internal
  user: svc
  dbname: goleads
scheduler:
  enabled: true
  daily_spec: "30 1 * * *"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.True(t, cfg.Scheduler.Enabled)
	assert.Equal(t, "30 1 * * *", cfg.Scheduler.DailySpec)
	// untouched fields still get defaults
	assert.Equal(t, "0 * * * *", cfg.Scheduler.HourlySpec)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
database:
  host: db.internal
`)
	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("DB_HOST", "db.override")
	t.Setenv("SCHEDULER_ENABLED", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "db.override", cfg.Database.Host)
	assert.True(t, cfg.Scheduler.Enabled)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeConfig(t, "server: [not a map")

	_, err := Load(path)
	assert.ErrorContains(t, err, "parse config")
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		setDefaults(cfg)
		cfg.Database.Host = "localhost"
		cfg.Database.User = "svc"
		cfg.Database.DBName = "goleads"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing database host", mutate: func(c *Config) { c.Database.Host = "" }, wantErr: "database.host"},
		{name: "missing database user", mutate: func(c *Config) { c.Database.User = "" }, wantErr: "database.user"},
		{name: "missing database name", mutate: func(c *Config) { c.Database.DBName = "" }, wantErr: "database.dbname"},
		{name: "bad server port", mutate: func(c *Config) { c.Server.Port = -1 }, wantErr: "server.port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
