// Package config loads and validates the lightbox configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the lightbox configuration.
//
// Configuration sources (in order of precedence):
//  1. CLI flags (highest priority)
//  2. Environment variables (LIGHTBOX_*)
//  3. Configuration file (YAML)
//  4. Default values (lowest priority)
type Config struct {
	// Logging controls log output behavior
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Catalog configures where the photo manifest is fetched from
	Catalog CatalogConfig `mapstructure:"catalog" yaml:"catalog"`

	// Cache configures the persistent snapshot store
	Cache CacheConfig `mapstructure:"cache" yaml:"cache"`

	// Prefetch configures the resource prefetch windows
	Prefetch PrefetchConfig `mapstructure:"prefetch" yaml:"prefetch"`

	// Navigation configures position tracking behavior
	Navigation NavigationConfig `mapstructure:"navigation" yaml:"navigation"`

	// API contains HTTP API server configuration
	API APIConfig `mapstructure:"api" yaml:"api"`

	// Metrics contains Prometheus metrics configuration
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level to output
	// Valid values: DEBUG, INFO, WARN, ERROR (case-insensitive)
	Level string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error" yaml:"level"`

	// Format specifies the log output format
	// Valid values: text, json
	Format string `mapstructure:"format" validate:"required,oneof=text json" yaml:"format"`

	// Output specifies where logs are written
	// Valid values: stdout, stderr, or a file path
	Output string `mapstructure:"output" validate:"required" yaml:"output"`
}

// CatalogConfig configures the manifest source and revalidation policy.
type CatalogConfig struct {
	// Source selects the manifest backend
	// Valid values: http, s3
	Source string `mapstructure:"source" validate:"required,oneof=http s3" yaml:"source"`

	// URL is the manifest URL when Source is http
	URL string `mapstructure:"url" yaml:"url,omitempty"`

	// S3 holds the object store settings when Source is s3
	S3 S3Config `mapstructure:"s3" yaml:"s3,omitempty"`

	// TTL is how long a persisted snapshot is fresh enough to revalidate
	// with a token probe instead of a full fetch
	// Default: 24h
	TTL time.Duration `mapstructure:"ttl" validate:"omitempty,gt=0" yaml:"ttl"`

	// MediaBaseURL is the base URL resources are fetched from when
	// Source is http. Resource references are resolved against it.
	MediaBaseURL string `mapstructure:"media_base_url" yaml:"media_base_url,omitempty"`
}

// S3Config holds S3-compatible object store settings.
type S3Config struct {
	// Endpoint is the object store endpoint, e.g. "http://localhost:9000"
	// for a local MinIO. Empty uses the AWS default resolver.
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint,omitempty"`

	// Region is the bucket region
	// Default: us-east-1
	Region string `mapstructure:"region" yaml:"region"`

	// Bucket is the bucket holding media objects and the manifest
	Bucket string `mapstructure:"bucket" yaml:"bucket"`

	// ManifestKey is the object key of the manifest
	// Default: manifest.json
	ManifestKey string `mapstructure:"manifest_key" yaml:"manifest_key"`

	// AccessKey and SecretKey are static credentials. Empty falls back
	// to the SDK's default credential chain.
	AccessKey string `mapstructure:"access_key" yaml:"access_key,omitempty"`
	SecretKey string `mapstructure:"secret_key" yaml:"secret_key,omitempty"`

	// UsePathStyle forces path-style addressing, required by MinIO
	UsePathStyle bool `mapstructure:"use_path_style" yaml:"use_path_style"`
}

// CacheConfig specifies the persistent snapshot store.
type CacheConfig struct {
	// Path is the directory for the snapshot database. Empty disables
	// persistence; the session then always starts with a full fetch.
	Path string `mapstructure:"path" yaml:"path,omitempty"`
}

// PrefetchConfig configures the per-tier prefetch windows.
type PrefetchConfig struct {
	// MediaWindow is the look-ahead size for full media resources
	// Default: 3
	MediaWindow int `mapstructure:"media_window" validate:"omitempty,min=1" yaml:"media_window"`

	// ThumbWindow is the look-ahead size for thumbnails
	// Default: 9
	ThumbWindow int `mapstructure:"thumb_window" validate:"omitempty,min=1" yaml:"thumb_window"`
}

// NavigationConfig configures position tracking.
type NavigationConfig struct {
	// Cooldown is how long an explicit position change from one control
	// suppresses reactive updates from the others
	// Default: 400ms
	Cooldown time.Duration `mapstructure:"cooldown" validate:"omitempty,gt=0" yaml:"cooldown"`

	// StartIndex is the session start position
	// Default: 0
	StartIndex int `mapstructure:"start_index" validate:"omitempty,min=0" yaml:"start_index"`
}

// APIConfig configures the HTTP API server.
type APIConfig struct {
	// Listen is the address to bind
	// Default: ":8480"
	Listen string `mapstructure:"listen" yaml:"listen"`

	// ShutdownTimeout is the maximum time to wait for graceful shutdown
	// Default: 10s
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"omitempty,gt=0" yaml:"shutdown_timeout"`
}

// MetricsConfig configures Prometheus metrics.
// When Enabled is false, no metrics are collected (zero overhead).
type MetricsConfig struct {
	// Enabled controls whether metrics collection is enabled
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// Load loads configuration from file, environment, and defaults.
//
// Parameters:
//   - configPath: Path to config file (empty string uses default location)
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: Configuration loading or validation error
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setupViper(v, configPath)

	configFileFound, err := readConfigFile(v)
	if err != nil {
		return nil, err
	}

	if !configFileFound {
		cfg := GetDefaultConfig()
		if err := Validate(cfg); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
		return cfg, nil
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(configDecodeHooks())); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// SaveConfig saves the configuration to the specified file path in YAML
// format.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Restricted permissions: the config may contain object store
	// credentials.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

var validate = validator.New()

// Validate checks the configuration for structural and cross-field
// problems.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return err
	}

	switch cfg.Catalog.Source {
	case "http":
		if cfg.Catalog.URL == "" {
			return fmt.Errorf("catalog.url is required when catalog.source is http")
		}
	case "s3":
		if cfg.Catalog.S3.Bucket == "" {
			return fmt.Errorf("catalog.s3.bucket is required when catalog.source is s3")
		}
	}

	return nil
}

// setupViper configures viper with environment variables and config file
// settings.
func setupViper(v *viper.Viper, configPath string) {
	// Environment variables use the LIGHTBOX_ prefix and underscores.
	// Example: LIGHTBOX_LOGGING_LEVEL=DEBUG
	v.SetEnvPrefix("LIGHTBOX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(getConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
}

// readConfigFile reads the configuration file if it exists.
// Returns (fileFound, error).
func readConfigFile(v *viper.Viper) (bool, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return false, nil
		}
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read config file: %w", err)
	}

	return true, nil
}

// configDecodeHooks returns the decode hooks for custom types.
func configDecodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		durationDecodeHook(),
	)
}

// durationDecodeHook converts strings like "30s" or "5m" and raw
// numbers to time.Duration.
func durationDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			return time.ParseDuration(v)
		case int:
			return time.Duration(v), nil
		case int64:
			return time.Duration(v), nil
		case float64:
			// YAML often deserializes numbers as float64
			return time.Duration(v), nil
		default:
			return data, nil
		}
	}
}

// getConfigDir returns the configuration directory path.
//
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config, or falls back to
// the current directory if the home directory cannot be determined.
func getConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "lightbox")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(home, ".config", "lightbox")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}

// DefaultConfigExists checks if a config file exists at the default
// location.
func DefaultConfigExists() bool {
	_, err := os.Stat(GetDefaultConfigPath())
	return err == nil
}
