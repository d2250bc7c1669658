// Package config loads club-fixtures settings from a YAML file.
//
// ${VAR} references in the file are expanded from the environment after an
// optional .env file is loaded. Missing keys, and a missing file, fall back to
// defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverFile     = "file"
	DriverPostgres = "postgres"

	DefaultDataDir = "~/.local/share/club-fixtures"
)

type Config struct {
	Source   SourceConfig   `yaml:"source"`
	Fixtures FixturesConfig `yaml:"fixtures"`
	Search   SearchConfig   `yaml:"search"`
	Storage  StorageConfig  `yaml:"storage"`
	Calendar CalendarConfig `yaml:"calendar"`
	LogLevel string         `yaml:"log_level"`
}

type SourceConfig struct {
	BaseURL  string        `yaml:"base_url"`
	Timezone string        `yaml:"timezone"`
	Timeout  time.Duration `yaml:"timeout"`
	Delay    time.Duration `yaml:"delay"`
	Retry    RetryConfig   `yaml:"retry"`
}

type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	Backoff     time.Duration `yaml:"backoff"`
}

type FixturesConfig struct {
	DaysAhead int `yaml:"days_ahead"`
}

type SearchConfig struct {
	MaxResults int `yaml:"max_results"`
}

type StorageConfig struct {
	Driver      string `yaml:"driver"`
	DataDir     string `yaml:"data_dir"`
	DatabaseURL string `yaml:"database_url"`
}

type CalendarConfig struct {
	ID              string        `yaml:"id"`
	CredentialsFile string        `yaml:"credentials_file"`
	RedirectURL     string        `yaml:"redirect_url"`
	EncryptionKey   string        `yaml:"encryption_key"`
	EventDuration   time.Duration `yaml:"event_duration"`
	ICSFile         string        `yaml:"ics_file"`
}

// Load reads path. An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err == nil {
			expanded := os.ExpandEnv(string(data))
			if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	cfg.setDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Source.BaseURL == "" {
		c.Source.BaseURL = "https://www.transfermarkt.com"
	}
	if c.Source.Timezone == "" {
		c.Source.Timezone = "Europe/Warsaw"
	}
	if c.Source.Timeout == 0 {
		c.Source.Timeout = 10 * time.Second
	}
	if c.Source.Delay == 0 {
		c.Source.Delay = 500 * time.Millisecond
	}
	if c.Source.Retry.MaxAttempts == 0 {
		c.Source.Retry.MaxAttempts = 1
	}
	if c.Source.Retry.Backoff == 0 {
		c.Source.Retry.Backoff = 2 * time.Second
	}
	if c.Fixtures.DaysAhead == 0 {
		c.Fixtures.DaysAhead = 30
	}
	if c.Search.MaxResults == 0 {
		c.Search.MaxResults = 10
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverFile
	}
	if c.Storage.DataDir == "" {
		c.Storage.DataDir = DefaultDataDir
	}
	if c.Storage.DatabaseURL == "" {
		c.Storage.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.Calendar.ID == "" {
		c.Calendar.ID = "primary"
	}
	if c.Calendar.RedirectURL == "" {
		c.Calendar.RedirectURL = "http://localhost:8080/oauth2callback"
	}
	if c.Calendar.EncryptionKey == "" {
		c.Calendar.EncryptionKey = os.Getenv("CLUB_FIXTURES_ENCRYPTION_KEY")
	}
	if c.Calendar.EventDuration == 0 {
		c.Calendar.EventDuration = 2 * time.Hour
	}
	if c.Calendar.ICSFile == "" {
		c.Calendar.ICSFile = "fixtures.ics"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case DriverFile, DriverPostgres:
	default:
		return fmt.Errorf("storage.driver must be %q or %q, got %q", DriverFile, DriverPostgres, c.Storage.Driver)
	}
	if c.Fixtures.DaysAhead < 0 {
		return fmt.Errorf("fixtures.days_ahead must be >= 0")
	}
	if c.Source.Retry.MaxAttempts < 0 {
		return fmt.Errorf("source.retry.max_attempts must be >= 0")
	}
	if _, err := time.LoadLocation(c.Source.Timezone); err != nil {
		return fmt.Errorf("source.timezone: %w", err)
	}
	return nil
}

// Location returns the source's time zone. Load has already validated it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Source.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
