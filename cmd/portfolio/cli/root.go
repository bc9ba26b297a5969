package cli

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"portfolio-api/internal/app"
	"portfolio-api/internal/config"
	"portfolio-api/internal/logger"
)

var errDatabaseRequired = errors.New("DATABASE_URL is required for this command")

// Execute creates the root command tree and runs it.
func Execute(version string) error {
	return newRootCmd(version).Execute()
}

func newRootCmd(version string) *cobra.Command {
	serve := newServeCmd(version)

	cmd := &cobra.Command{
		Use:           "portfolio",
		Short:         "Portfolio content API",
		Long:          "Serves public portfolio content and the authenticated admin API used to manage it.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		// Running the bare binary starts the server.
		RunE: serve.RunE,
	}

	cmd.AddCommand(serve)
	cmd.AddCommand(newAdminCmd())
	cmd.AddCommand(newSeedCmd())

	return cmd
}

// loadConfig reads the environment and installs the process logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	slog.SetDefault(logger.New(os.Stderr, cfg.LogLevel, cfg.LogFormat))
	return cfg, nil
}

// openPersistent opens the configured database and builds the services on it.
// Commands that mutate data refuse to run against the throwaway memory store.
func openPersistent(ctx context.Context, cfg *config.Config) (*app.Stores, *app.Services, error) {
	if cfg.DatabaseURL == "" {
		return nil, nil, errDatabaseRequired
	}

	stores, err := app.OpenStores(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	services, err := app.NewServices(cfg, stores, nil, nil)
	if err != nil {
		stores.Close()
		return nil, nil, err
	}

	return stores, services, nil
}
