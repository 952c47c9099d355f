package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/kelseyhightower/envconfig"

	"github.com/tagnology/embed-go/internal/embedurl"
	"github.com/tagnology/embed-go/internal/manifest"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Embed     EmbedConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000" yaml:"port"`
	Host string `envconfig:"HOST" default:"0.0.0.0" yaml:"host"`
}

// EmbedConfig holds embedding service configuration.
type EmbedConfig struct {
	Endpoint string        `envconfig:"EMBED_ENDPOINT" default:"https://embed.tagnology.co/api/product/getPageInfo" yaml:"endpoint"`
	Origin   string        `envconfig:"EMBED_ORIGIN" default:"https://embed.tagnology.co" yaml:"origin"`
	Platform string        `envconfig:"EMBED_PLATFORM" default:"91APP" yaml:"platform"`
	Timeout  time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s" yaml:"timeout"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info" yaml:"level"`
	Development bool   `envconfig:"LOG_DEV" default:"false" yaml:"development"`
}

// RateLimitConfig holds outbound request rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"10" yaml:"requests_per_second"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"20" yaml:"burst"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true" yaml:"enabled"`
}

// configFileEnv names an optional YAML file applied on top of the
// environment-derived configuration.
const configFileEnv = "EMBED_CONFIG_FILE"

// Load loads configuration from environment variables, then overlays the
// YAML file named by EMBED_CONFIG_FILE when set.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if path := os.Getenv(configFileEnv); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Embed: EmbedConfig{
			Endpoint: manifest.DefaultEndpoint,
			Origin:   embedurl.Origin,
			Platform: embedurl.DefaultPlatform,
			Timeout:  30 * time.Second,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 10,
			Burst:             20,
			Enabled:           true,
		},
	}
}
