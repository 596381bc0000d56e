package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Catalog   CatalogConfig
	Matching  MatchingConfig
	Insight   InsightConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds catalog ingestion configuration
type CatalogConfig struct {
	DataDir      string `mapstructure:"data_dir"`
	BaselineFile string `mapstructure:"baseline_file"`
}

// MatchingConfig holds the matcher's normalization policy
type MatchingConfig struct {
	FoldCase  bool `mapstructure:"fold_case"`
	TrimSpace bool `mapstructure:"trim_space"`
}

// InsightConfig holds generative backend configuration
type InsightConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CacheConfig holds insight cache configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/saleslens/")

	// Environment variable settings
	v.SetEnvPrefix("SALESLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Catalog defaults
	v.SetDefault("catalog.data_dir", "data")
	v.SetDefault("catalog.baseline_file", "baseline.csv")

	// Matching defaults: exact comparison, no folding or trimming
	v.SetDefault("matching.fold_case", false)
	v.SetDefault("matching.trim_space", false)

	// Insight defaults. api_key and base_url default to empty so the env
	// bindings are registered; validate enforces the key when enabled.
	v.SetDefault("insight.enabled", true)
	v.SetDefault("insight.api_key", "")
	v.SetDefault("insight.base_url", "")
	v.SetDefault("insight.model", "gpt-4o-mini")
	v.SetDefault("insight.timeout", "20s")

	// Cache defaults
	v.SetDefault("cache.ttl", "24h")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Catalog.DataDir == "" {
		return fmt.Errorf("catalog data directory is required (set SALESLENS_CATALOG_DATA_DIR)")
	}

	if config.Catalog.BaselineFile == "" {
		return fmt.Errorf("catalog baseline file name is required")
	}

	if config.Insight.Enabled && config.Insight.APIKey == "" {
		return fmt.Errorf("insight API key is required when insight is enabled (set SALESLENS_INSIGHT_API_KEY)")
	}

	if config.Insight.Enabled && config.Insight.Model == "" {
		return fmt.Errorf("insight model name is required when insight is enabled")
	}

	return nil
}
