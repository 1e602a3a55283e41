package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create the products, users and orders tables",
	Long: `
Create any missing table and index. Existing tables are left untouched, so
setup is safe to run more than once.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.store.EnsureSchema(ctx); err != nil {
			return err
		}
		fmt.Printf("✅ Tables ready (%s)\n", a.cfg.StoreProvider(dryRun))
		return nil
	},
}
