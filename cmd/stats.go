package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how many products, users and orders exist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		counts, err := a.shop.Stats(ctx)
		if err != nil {
			return err
		}
		color.New(color.FgCyan, color.Bold).Println("📊 Shop statistics")
		fmt.Printf("   products: %d\n", counts.Products)
		fmt.Printf("   users:    %d\n", counts.Users)
		fmt.Printf("   orders:   %d\n", counts.Orders)
		return nil
	},
}
