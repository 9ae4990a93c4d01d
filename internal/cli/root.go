// Package cli defines the imageplatform command tree.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/imageplatform/api/internal/config"
	"github.com/imageplatform/api/internal/image"
	"github.com/imageplatform/api/internal/metrics"
	"github.com/imageplatform/api/internal/storage"
)

// Injected at build time using ldflags.
var (
	version = ""
	commit  = ""
)

// NewRootCommand creates the `imageplatform` command and its children.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "imageplatform [command]",
		Short:         "Image upload backend for S3-compatible object storage",
		Version:       versionInfo(),
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.AddCommand(NewServeCommand(NewServeOptions()))
	cmd.AddCommand(NewUploadCommand(NewUploadOptions()))

	return cmd
}

func versionInfo() string {
	if version == "" {
		return "dev"
	}
	return fmt.Sprintf("%s (commit: %s)", version, commit)
}

// app bundles what every command needs after configuration is loaded.
type app struct {
	cfg      *config.Config
	logger   zerolog.Logger
	registry *prometheus.Registry
	store    storage.Storage
	images   *image.Service
}

// bucketEnsurer is implemented by stores that can create their bucket.
type bucketEnsurer interface {
	EnsureBucket(ctx context.Context, bucket string) error
}

func newApp(ctx context.Context, ensureBucket bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	logger := newLogger(cfg)

	store, err := storage.New(ctx, storage.Options{
		Driver:     cfg.StorageDriver,
		Endpoint:   cfg.StorageEndpoint,
		Region:     cfg.StorageRegion,
		AccessKey:  cfg.StorageAccessKey,
		SecretKey:  cfg.StorageSecretKey,
		UseSSL:     cfg.StorageUseSSL,
		PublicBase: cfg.StoragePublicBase,
	})
	if err != nil {
		return nil, fmt.Errorf("object storage init: %w", err)
	}
	if e, ok := store.(bucketEnsurer); ok && ensureBucket {
		if err := e.EnsureBucket(ctx, cfg.StorageBucket); err != nil {
			return nil, fmt.Errorf("object storage init: %w", err)
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	observer, err := metrics.NewPrometheusObserver("imageplatform", registry)
	if err != nil {
		return nil, err
	}

	images := image.NewService(store, image.Config{
		Bucket:             cfg.StorageBucket,
		BaseFolder:         cfg.StorageBaseFolder,
		OptimizerDomain:    cfg.OptimizerDomain,
		OptimizerProjectID: cfg.OptimizerProjectID,
		OptimizerQuery:     cfg.OptimizerQuery,
		UploadTimeout:      cfg.UploadTimeout,
	},
		image.WithLogger(logger.With().Str("component", "image").Logger()),
		image.WithObserver(observer),
	)

	logger.Info().
		Str("driver", cfg.StorageDriver).
		Str("bucket", cfg.StorageBucket).
		Str("base_folder", cfg.StorageBaseFolder).
		Msg("object storage ready")

	return &app{cfg: cfg, logger: logger, registry: registry, store: store, images: images}, nil
}

// newLogger writes JSON in production and human-readable output otherwise.
func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.IsProduction() {
		logger = zerolog.New(os.Stderr)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	return logger.Level(level).With().Timestamp().Logger()
}
