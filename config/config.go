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
	Database  DatabaseConfig
	Parser    ParserConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig holds SQLite configuration
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// ParserConfig holds utterance parser configuration
type ParserConfig struct {
	// UnmatchedPolicy is "drop" (discard candidates that resolve to
	// nothing) or "flag" (keep them as zero-value lines).
	UnmatchedPolicy     string `mapstructure:"unmatched_policy"`
	EnableFuzzyMatching bool   `mapstructure:"enable_fuzzy_matching"`
	FuzzyEditDistance   int    `mapstructure:"fuzzy_edit_distance"`
}

// CacheConfig holds catalog snapshot cache configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute, 0 disables
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/tiendafacil/")

	// Environment variable settings
	v.SetEnvPrefix("TIENDAFACIL")
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
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})

	// Database defaults
	v.SetDefault("database.path", "data/tienda.db")

	// Parser defaults
	v.SetDefault("parser.unmatched_policy", "drop")
	v.SetDefault("parser.enable_fuzzy_matching", false)
	v.SetDefault("parser.fuzzy_edit_distance", 1)

	// Cache defaults
	v.SetDefault("cache.ttl", "30s")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 120)

	// Log defaults
	v.SetDefault("log.level", "info")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if config.Database.Path == "" {
		return fmt.Errorf("database path is required (set TIENDAFACIL_DATABASE_PATH)")
	}

	if config.Parser.UnmatchedPolicy != "drop" && config.Parser.UnmatchedPolicy != "flag" {
		return fmt.Errorf("parser unmatched_policy must be 'drop' or 'flag', got: %s", config.Parser.UnmatchedPolicy)
	}

	if config.Parser.FuzzyEditDistance < 1 || config.Parser.FuzzyEditDistance > 3 {
		return fmt.Errorf("parser fuzzy_edit_distance must be between 1 and 3, got: %d", config.Parser.FuzzyEditDistance)
	}

	switch config.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level must be debug, info, warn or error, got: %s", config.Log.Level)
	}

	return nil
}
