// Package config loads service configuration from a YAML file with
// environment variable overrides. A .env file is loaded first if present.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultServerPort      = 8060
	defaultServerTimeout   = 30 * time.Second
	defaultDatabasePort    = 5432
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 5
	defaultConnMaxLifetime = 5 * time.Minute
	defaultRedisAddress    = "localhost:6379"
	defaultFetchTimeout    = 10 * time.Second
	defaultUserAgent       = "GoLeads-Bot/1.0 (Business Intelligence)"
	defaultDailySpec       = "0 2 * * *"
	defaultHourlySpec      = "0 * * * *"
)

type Config struct {
	Debug         bool                `env:"APP_DEBUG" yaml:"debug"`
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Redis         RedisConfig         `yaml:"redis"`
	Scraper       ScraperConfig       `yaml:"scraper"`
	Scheduler     SchedulerConfig     `yaml:"scheduler"`
	Notifications NotificationsConfig `yaml:"notifications"`
}

type ServerConfig struct {
	Host         string        `env:"SERVER_HOST" yaml:"host"`
	Port         int           `env:"SERVER_PORT" yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	CORSOrigins  []string      `yaml:"cors_origins"`
}

type DatabaseConfig struct {
	Host            string        `env:"DB_HOST"     yaml:"host"`
	Port            int           `env:"DB_PORT"     yaml:"port"`
	User            string        `env:"DB_USER"     yaml:"user"`
	Password        string        `env:"DB_PASSWORD" yaml:"password"`
	DBName          string        `env:"DB_NAME"     yaml:"dbname"`
	SSLMode         string        `env:"DB_SSLMODE"  yaml:"sslmode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// RedisConfig holds Redis connection configuration for event publishing.
type RedisConfig struct {
	Address  string `env:"REDIS_ADDRESS"        yaml:"address"`
	Password string `env:"REDIS_PASSWORD"       yaml:"password"`
	DB       int    `env:"REDIS_DB"             yaml:"db"`
	Enabled  bool   `env:"REDIS_EVENTS_ENABLED" yaml:"enabled"`
}

type ScraperConfig struct {
	UserAgent    string        `yaml:"user_agent"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
}

// SchedulerConfig holds cron specs for the crawl triggers.
type SchedulerConfig struct {
	Enabled    bool   `env:"SCHEDULER_ENABLED" yaml:"enabled"`
	DailySpec  string `yaml:"daily_spec"`
	HourlySpec string `yaml:"hourly_spec"`
}

type NotificationsConfig struct {
	Email EmailConfig `yaml:"email"`
	SMS   SMSConfig   `yaml:"sms"`
	Chat  ChatConfig  `yaml:"chat"`
}

type EmailConfig struct {
	Host     string `env:"SMTP_HOST"     yaml:"host"`
	Port     int    `env:"SMTP_PORT"     yaml:"port"`
	User     string `env:"SMTP_USER"     yaml:"user"`
	Password string `env:"SMTP_PASSWORD" yaml:"password"`
	From     string `env:"SMTP_FROM"     yaml:"from"`
}

// SMSConfig points at an HTTP SMS gateway.
type SMSConfig struct {
	GatewayURL string `env:"SMS_GATEWAY_URL" yaml:"gateway_url"`
	APIKey     string `env:"SMS_API_KEY"     yaml:"api_key"`
	From       string `env:"SMS_FROM"        yaml:"from"`
}

// ChatConfig points at an incoming webhook for the chat channel.
type ChatConfig struct {
	WebhookURL string `env:"CHAT_WEBHOOK_URL" yaml:"webhook_url"`
}

// Load reads the YAML config at path, applies defaults, then environment
// variable overrides. Environment always wins over the file.
func Load(path string) (*Config, error) {
	// .env is optional; missing file is not an error
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err == nil {
		if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
			return nil, fmt.Errorf("parse config: %w", unmarshalErr)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	setDefaults(cfg)
	applyEnvOverrides(cfg)

	return cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultServerPort
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = defaultServerTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = defaultServerTimeout
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = []string{"http://localhost:3000"}
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = defaultDatabasePort
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = defaultMaxOpenConns
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = defaultMaxIdleConns
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = defaultConnMaxLifetime
	}
	if cfg.Redis.Address == "" {
		cfg.Redis.Address = defaultRedisAddress
	}
	if cfg.Scraper.UserAgent == "" {
		cfg.Scraper.UserAgent = defaultUserAgent
	}
	if cfg.Scraper.FetchTimeout == 0 {
		cfg.Scraper.FetchTimeout = defaultFetchTimeout
	}
	if cfg.Scheduler.DailySpec == "" {
		cfg.Scheduler.DailySpec = defaultDailySpec
	}
	if cfg.Scheduler.HourlySpec == "" {
		cfg.Scheduler.HourlySpec = defaultHourlySpec
	}
}

func (c *Config) Validate() error {
	if c.Server.Host == "" {
		return errors.New("server.host is required")
	}
	if c.Server.Port <= 0 {
		return errors.New("server.port must be positive")
	}
	if c.Database.Host == "" {
		return errors.New("database.host is required")
	}
	if c.Database.Port <= 0 {
		return errors.New("database.port must be positive")
	}
	if c.Database.User == "" {
		return errors.New("database.user is required")
	}
	if c.Database.DBName == "" {
		return errors.New("database.dbname is required")
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	overrideBool("APP_DEBUG", &cfg.Debug)
	overrideString("SERVER_HOST", &cfg.Server.Host)
	overrideInt("SERVER_PORT", &cfg.Server.Port)
	overrideString("DB_HOST", &cfg.Database.Host)
	overrideInt("DB_PORT", &cfg.Database.Port)
	overrideString("DB_USER", &cfg.Database.User)
	overrideString("DB_PASSWORD", &cfg.Database.Password)
	overrideString("DB_NAME", &cfg.Database.DBName)
	overrideString("DB_SSLMODE", &cfg.Database.SSLMode)
	overrideString("REDIS_ADDRESS", &cfg.Redis.Address)
	overrideString("REDIS_PASSWORD", &cfg.Redis.Password)
	overrideInt("REDIS_DB", &cfg.Redis.DB)
	overrideBool("REDIS_EVENTS_ENABLED", &cfg.Redis.Enabled)
	overrideBool("SCHEDULER_ENABLED", &cfg.Scheduler.Enabled)
	overrideString("SMTP_HOST", &cfg.Notifications.Email.Host)
	overrideInt("SMTP_PORT", &cfg.Notifications.Email.Port)
	overrideString("SMTP_USER", &cfg.Notifications.Email.User)
	overrideString("SMTP_PASSWORD", &cfg.Notifications.Email.Password)
	overrideString("SMTP_FROM", &cfg.Notifications.Email.From)
	overrideString("SMS_GATEWAY_URL", &cfg.Notifications.SMS.GatewayURL)
	overrideString("SMS_API_KEY", &cfg.Notifications.SMS.APIKey)
	overrideString("SMS_FROM", &cfg.Notifications.SMS.From)
	overrideString("CHAT_WEBHOOK_URL", &cfg.Notifications.Chat.WebhookURL)
}

func overrideString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func overrideInt(key string, dst *int) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func overrideBool(key string, dst *bool) {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
