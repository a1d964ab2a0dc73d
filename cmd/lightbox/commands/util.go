package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/mstefano/lightbox/internal/logger"
	"github.com/mstefano/lightbox/pkg/catalog"
	"github.com/mstefano/lightbox/pkg/config"
	"github.com/mstefano/lightbox/pkg/fetch"
	"github.com/mstefano/lightbox/pkg/metrics"
	"github.com/mstefano/lightbox/pkg/navigation"
	"github.com/mstefano/lightbox/pkg/prefetch"
	"github.com/mstefano/lightbox/pkg/session"
	"github.com/mstefano/lightbox/pkg/store"
)

// InitLogger initializes the structured logger from configuration.
func InitLogger(cfg *config.Config) error {
	loggerCfg := logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}
	if err := logger.Init(loggerCfg); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// buildSession wires the catalog source, snapshot store, resource
// loader, navigation controller, and prefetch cache into a session.
//
// The returned cleanup function closes the snapshot store and releases
// the prefetch cache; it is safe to call even after a partial failure.
func buildSession(ctx context.Context, cfg *config.Config) (*session.Session, func(), error) {
	source, loader, err := buildBackend(ctx, &cfg.Catalog)
	if err != nil {
		return nil, nil, err
	}

	var st store.Store
	if cfg.Cache.Path != "" {
		bs, err := store.OpenBadger(cfg.Cache.Path)
		if err != nil {
			return nil, nil, err
		}
		st = bs
	}

	cat := catalog.NewCache(source, st,
		catalog.WithTTL(cfg.Catalog.TTL),
		catalog.WithMetrics(metrics.NewCatalogMetrics()),
	)

	nav := navigation.New(nil,
		navigation.WithStartIndex(cfg.Navigation.StartIndex),
		navigation.WithCooldown(cfg.Navigation.Cooldown),
	)

	pf := prefetch.New(loader, prefetch.Config{
		MediaWindow: cfg.Prefetch.MediaWindow,
		ThumbWindow: cfg.Prefetch.ThumbWindow,
	}, metrics.NewPrefetchMetrics())

	cleanup := func() {
		pf.Release()
		if st != nil {
			if err := st.Close(); err != nil {
				logger.Warn("failed to close snapshot store", "error", err)
			}
		}
	}

	return session.New(cat, nav, pf), cleanup, nil
}

// buildBackend creates the manifest source and resource loader for the
// configured backend. With S3 both share one client; with HTTP the
// loader resolves refs against the media base URL, defaulting to the
// manifest's own directory.
func buildBackend(ctx context.Context, cfg *config.CatalogConfig) (catalog.Source, fetch.Loader, error) {
	switch cfg.Source {
	case "s3":
		src, err := catalog.NewS3Source(ctx, catalog.S3Config{
			Endpoint:     cfg.S3.Endpoint,
			Region:       cfg.S3.Region,
			Bucket:       cfg.S3.Bucket,
			ManifestKey:  cfg.S3.ManifestKey,
			AccessKey:    cfg.S3.AccessKey,
			SecretKey:    cfg.S3.SecretKey,
			UsePathStyle: cfg.S3.UsePathStyle,
		})
		if err != nil {
			return nil, nil, err
		}
		return src, fetch.NewS3Loader(src.Client(), src.Bucket()), nil

	case "http":
		base := cfg.MediaBaseURL
		if base == "" {
			if i := strings.LastIndex(cfg.URL, "/"); i > 0 {
				base = cfg.URL[:i]
			} else {
				base = cfg.URL
			}
		}
		return catalog.NewHTTPSource(cfg.URL), fetch.NewHTTPLoader(base), nil

	default:
		return nil, nil, fmt.Errorf("unknown catalog source %q", cfg.Source)
	}
}
