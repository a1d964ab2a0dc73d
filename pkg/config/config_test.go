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

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "http", cfg.Catalog.Source)
	assert.Equal(t, 24*time.Hour, cfg.Catalog.TTL)
	assert.Equal(t, 3, cfg.Prefetch.MediaWindow)
	assert.Equal(t, 9, cfg.Prefetch.ThumbWindow)
	assert.Equal(t, 400*time.Millisecond, cfg.Navigation.Cooldown)
	assert.Equal(t, ":8480", cfg.API.Listen)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
  format: json
catalog:
  source: http
  url: http://example.com/manifest.json
  ttl: 1h
prefetch:
  media_window: 5
  thumb_window: 20
navigation:
  cooldown: 250ms
  start_index: 7
api:
  listen: ":9999"
metrics:
  enabled: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "http://example.com/manifest.json", cfg.Catalog.URL)
	assert.Equal(t, time.Hour, cfg.Catalog.TTL)
	assert.Equal(t, 5, cfg.Prefetch.MediaWindow)
	assert.Equal(t, 20, cfg.Prefetch.ThumbWindow)
	assert.Equal(t, 250*time.Millisecond, cfg.Navigation.Cooldown)
	assert.Equal(t, 7, cfg.Navigation.StartIndex)
	assert.Equal(t, ":9999", cfg.API.Listen)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadAppliesDefaultsToPartialFile(t *testing.T) {
	path := writeConfig(t, `
catalog:
  source: http
  url: http://example.com/manifest.json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Equal(t, "stdout", cfg.Logging.Output)
	assert.Equal(t, 3, cfg.Prefetch.MediaWindow)
	assert.Equal(t, "us-east-1", cfg.Catalog.S3.Region)
}

func TestValidateRejectsBadLogLevel(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: verbose
catalog:
  source: http
  url: http://example.com/manifest.json
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidateRejectsHTTPWithoutURL(t *testing.T) {
	path := writeConfig(t, `
catalog:
  source: http
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog.url is required")
}

func TestValidateRejectsS3WithoutBucket(t *testing.T) {
	path := writeConfig(t, `
catalog:
  source: s3
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog.s3.bucket is required")
}

func TestSaveAndReloadRoundTrip(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Catalog.URL = "http://example.com/manifest.json"
	cfg.Prefetch.MediaWindow = 4

	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Catalog.URL, loaded.Catalog.URL)
	assert.Equal(t, 4, loaded.Prefetch.MediaWindow)
}
