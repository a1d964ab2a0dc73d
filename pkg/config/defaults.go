package config

import (
	"strings"
	"time"
)

// ApplyDefaults sets default values for any unspecified configuration
// fields.
//
// Zero values (0, "", false) are replaced with defaults; explicit
// values are preserved.
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyCatalogDefaults(&cfg.Catalog)
	applyPrefetchDefaults(&cfg.Prefetch)
	applyNavigationDefaults(&cfg.Navigation)
	applyAPIDefaults(&cfg.API)
}

// applyLoggingDefaults sets logging defaults and normalizes values.
func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "stdout"
	}
}

// applyCatalogDefaults sets manifest source defaults.
func applyCatalogDefaults(cfg *CatalogConfig) {
	if cfg.Source == "" {
		cfg.Source = "http"
	}
	if cfg.TTL == 0 {
		cfg.TTL = 24 * time.Hour
	}
	if cfg.S3.Region == "" {
		cfg.S3.Region = "us-east-1"
	}
	if cfg.S3.ManifestKey == "" {
		cfg.S3.ManifestKey = "manifest.json"
	}
}

// applyPrefetchDefaults sets prefetch window defaults.
func applyPrefetchDefaults(cfg *PrefetchConfig) {
	if cfg.MediaWindow == 0 {
		cfg.MediaWindow = 3
	}
	if cfg.ThumbWindow == 0 {
		cfg.ThumbWindow = 9
	}
}

// applyNavigationDefaults sets navigation defaults.
func applyNavigationDefaults(cfg *NavigationConfig) {
	if cfg.Cooldown == 0 {
		cfg.Cooldown = 400 * time.Millisecond
	}
}

// applyAPIDefaults sets API server defaults.
func applyAPIDefaults(cfg *APIConfig) {
	if cfg.Listen == "" {
		cfg.Listen = ":8480"
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
}

// GetDefaultConfig returns a Config struct with all default values
// applied.
//
// This is useful for:
//   - Generating sample configuration files
//   - Testing
func GetDefaultConfig() *Config {
	cfg := &Config{
		Catalog: CatalogConfig{
			Source: "http",
			URL:    "http://localhost:9000/photos/manifest.json",
		},
	}

	ApplyDefaults(cfg)
	return cfg
}
