package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Fetch   FetchConfig   `yaml:"fetch" envconfig:"FETCH"`
	Store   StoreConfig   `yaml:"store" envconfig:"STORE"`
	Report  ReportConfig  `yaml:"report" envconfig:"REPORT"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// FetchConfig contains source data fetching configuration
type FetchConfig struct {
	SourceURL   string        `yaml:"source_url" envconfig:"SOURCE_URL"`
	Timeout     time.Duration `yaml:"timeout" envconfig:"TIMEOUT"`
	MaxBodySize int64         `yaml:"max_body_size" envconfig:"MAX_BODY_SIZE"`
	MaxRetries  int           `yaml:"max_retries" envconfig:"MAX_RETRIES"`
	RetryDelay  time.Duration `yaml:"retry_delay" envconfig:"RETRY_DELAY"`
	RateLimit   float64       `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
	RateBurst   int           `yaml:"rate_burst" envconfig:"RATE_BURST"`
}

// StoreConfig contains report run persistence configuration
type StoreConfig struct {
	Path string `yaml:"path" envconfig:"PATH"`
}

// ReportConfig contains report generation defaults
type ReportConfig struct {
	OutputDir      string   `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	ExcludeColumns []string `yaml:"exclude_columns" envconfig:"EXCLUDE_COLUMNS"`
}

// Default returns the configuration defaults applied before the YAML file and
// environment overlays.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/predstats.log",
		},
		Fetch: FetchConfig{
			Timeout:     30 * time.Second,
			MaxBodySize: 32 << 20,
			MaxRetries:  3,
			RetryDelay:  2 * time.Second,
			RateLimit:   1,
			RateBurst:   2,
		},
		Store: StoreConfig{
			Path: "data/predstats.db",
		},
		Report: ReportConfig{
			OutputDir:      "data/reports",
			ExcludeColumns: []string{"season"},
		},
	}
}

// Load loads configuration in three layers: defaults, then an optional YAML
// file, then PREDSTATS_* environment variables. Later layers win.
func Load() (*Config, error) {
	return LoadWithFile(configFilePath())
}

// LoadWithFile loads configuration using the given YAML file path. A missing
// file is not an error; defaults and env vars still apply.
func LoadWithFile(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			if err := overlayFromFile(configFile, &cfg); err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
		}
	}

	if err := envconfig.Process("PREDSTATS", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// overlayFromFile unmarshals the YAML file over the current values, so fields
// absent from the file keep their defaults.
func overlayFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// configFilePath returns the config file location, overridable via env
func configFilePath() string {
	if path := os.Getenv("PREDSTATS_CONFIG_FILE"); path != "" {
		return path
	}
	return "predstats.yaml"
}

// validate checks configuration values for consistency
func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive, got %v", c.Fetch.Timeout)
	}
	if c.Fetch.MaxBodySize <= 0 {
		return fmt.Errorf("fetch max body size must be positive, got %d", c.Fetch.MaxBodySize)
	}
	if c.Fetch.MaxRetries < 0 {
		return fmt.Errorf("fetch max retries must not be negative, got %d", c.Fetch.MaxRetries)
	}
	if c.Fetch.RateLimit <= 0 {
		return fmt.Errorf("fetch rate limit must be positive, got %f", c.Fetch.RateLimit)
	}
	// a zero-burst limiter rejects every Wait
	if c.Fetch.RateBurst < 1 {
		return fmt.Errorf("fetch rate burst must be at least 1, got %d", c.Fetch.RateBurst)
	}
	if c.Store.Path == "" {
		return fmt.Errorf("store path must not be empty")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	return nil
}
