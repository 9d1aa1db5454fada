package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/services"
)

var withSeed bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := openStores(); err != nil {
			return err
		}
		if withSeed {
			return services.Seed(cmd.Context())
		}
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the sample categories, tags and templates",
	Long: `Insert the sample categories, tags and templates.

Rows that already exist are left untouched, so running it twice is harmless.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := openStores(); err != nil {
			return err
		}
		return services.Seed(cmd.Context())
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&withSeed, "seed", false, "also insert the sample data")

	rootCmd.AddCommand(migrateCmd, seedCmd)
}
