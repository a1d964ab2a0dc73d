package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mstefano/lightbox/internal/logger"
	"github.com/mstefano/lightbox/pkg/api"
	"github.com/mstefano/lightbox/pkg/config"
	"github.com/mstefano/lightbox/pkg/metrics"

	// Import prometheus metrics to register init() functions
	_ "github.com/mstefano/lightbox/pkg/metrics/prometheus"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the lightbox server",
	Long: `Start the lightbox server with the specified configuration.

The server loads the photo catalog, starts a browsing session, and
serves the HTTP API until interrupted.

Examples:
  # Start with the default config location
  lightbox serve

  # Start with a custom config file
  lightbox serve --config /etc/lightbox/config.yaml

  # Start with environment variable overrides
  LIGHTBOX_LOGGING_LEVEL=DEBUG lightbox serve`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return err
	}

	if err := InitLogger(cfg); err != nil {
		return err
	}

	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess, cleanup, err := buildSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := sess.Start(ctx); err != nil {
		return err
	}

	srv := api.NewServer(api.Config{
		Listen:          cfg.API.Listen,
		ShutdownTimeout: cfg.API.ShutdownTimeout,
	}, sess)

	logger.Info("lightbox started",
		"version", Version,
		"listen", cfg.API.Listen,
		"source", cfg.Catalog.Source)

	return srv.Start(ctx)
}
