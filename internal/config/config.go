package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	DataSource DataSourceConfig `yaml:"data_source"`
	Chart      ChartConfig      `yaml:"chart"`
	Database   DatabaseConfig   `yaml:"database"`
	SMTP       SMTPConfig       `yaml:"smtp"`
}

// DataSourceConfig selects the market data provider.
type DataSourceConfig struct {
	// BaseURL overrides the Yahoo Finance host; empty selects the public API.
	BaseURL string `yaml:"base_url" envconfig:"DATA_SOURCE_BASE_URL"`
	// Mock switches to the synthetic fetcher for offline development.
	Mock bool `yaml:"mock" envconfig:"DATA_SOURCE_MOCK"`
}

// ChartConfig controls chart output.
type ChartConfig struct {
	OutputPath string `yaml:"output_path" envconfig:"CHART_OUTPUT_PATH"`
}

// DatabaseConfig controls the optional audit recorder.
type DatabaseConfig struct {
	// SQLitePath enables the audit log; empty keeps the noop recorder.
	SQLitePath string `yaml:"sqlite_path" envconfig:"SQLITE_PATH"`
}

// SMTPConfig holds the alert email account. Credentials are never read
// from the YAML file; they are injected through the environment only.
type SMTPConfig struct {
	Host     string `yaml:"host" envconfig:"SMTP_HOST"`
	Port     int    `yaml:"port" envconfig:"SMTP_PORT"`
	From     string `yaml:"from" envconfig:"SMTP_FROM" validate:"omitempty,email"`
	Username string `yaml:"-" envconfig:"SMTP_USERNAME"`
	Password string `yaml:"-" envconfig:"SMTP_PASSWORD"`
}

// Configured reports whether enough is set to send email alerts.
func (s *SMTPConfig) Configured() bool {
	return s.Host != "" && s.From != "" && s.Username != "" && s.Password != ""
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A missing file is fine: everything has a default or comes
// from the environment.
func Load(path string) (*Config, error) {
	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}

	// Defaults
	if cfg.Chart.OutputPath == "" {
		cfg.Chart.OutputPath = "chart.html"
	}
	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = 587
	}

	return cfg, nil
}

// Validate checks field formats. Alerting being unconfigured is allowed;
// the dashboard degrades to evaluation without delivery.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	if c.SMTP.Port < 0 || c.SMTP.Port > 65535 {
		return fmt.Errorf("smtp.port %d out of range", c.SMTP.Port)
	}
	return nil
}
