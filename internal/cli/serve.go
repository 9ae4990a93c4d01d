package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/imageplatform/api/internal/image"
	"github.com/imageplatform/api/internal/server"
)

// ServeOptions defines the options for the `serve` command.
type ServeOptions struct {
	EnsureBucket bool
}

// NewServeOptions provides an initialised ServeOptions instance.
func NewServeOptions() *ServeOptions {
	return &ServeOptions{}
}

// NewServeCommand creates the `serve` command.
func NewServeCommand(o *ServeOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server. Configuration is read from the environment
and an optional .env file in the working directory.`,
		Example: `  # Start with settings from .env
  imageplatform serve

  # Skip the bucket existence check at startup
  imageplatform serve --ensure-bucket=false`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&o.EnsureBucket, "ensure-bucket", true, "Create the bucket at startup when it does not exist")

	return cmd
}

// Run serves the API until SIGINT or SIGTERM.
func (o *ServeOptions) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, o.EnsureBucket)
	if err != nil {
		return err
	}

	router := server.NewRouter(image.NewHandler(a.images, a.cfg.MaxUploadBytes), server.RouterOptions{
		AllowedOrigins: a.cfg.AllowedOrigins,
		RateLimitRPS:   a.cfg.RateLimitRPS,
		RateLimitBurst: a.cfg.RateLimitBurst,
		Gatherer:       a.registry,
		Logger:         a.logger,
	})

	a.logger.Info().Str("port", a.cfg.Port).Str("env", a.cfg.AppEnv).Msgf("swagger UI at http://localhost:%s/swagger/", a.cfg.Port)
	return server.Run(ctx, ":"+a.cfg.Port, router, a.logger)
}
