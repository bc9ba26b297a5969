package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load sample content into empty collections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			stores, services, err := openPersistent(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer stores.Close()

			result, err := services.Seed.Seed(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d projects, %d skills, %d certificates\n",
				result.Projects, result.Skills, result.Certificates)
			return nil
		},
	}
}
