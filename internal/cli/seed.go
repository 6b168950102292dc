package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Migrate the schema and load seed data",
	Long:  "Creates the database schema and loads the default personalities, achievement definitions, and crisis resources. Safe to run repeatedly.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		_, log, store, err := setup(ctx)
		if err != nil {
			exitErr("setup", err)
		}
		defer store.Close()

		if err := store.Migrate(); err != nil {
			exitErr("migrate", err)
		}
		if err := store.Seed(ctx, log); err != nil {
			exitErr("seed", err)
		}
	},
}
