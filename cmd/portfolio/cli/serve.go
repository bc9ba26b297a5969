package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"portfolio-api/internal/app"
)

func newServeCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			application, err := app.New(ctx, cfg, version)
			if err != nil {
				return err
			}

			return application.Run(ctx)
		},
	}
}
