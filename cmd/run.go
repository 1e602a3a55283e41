package cmd

import (
	"context"
	"fmt"

	"github.com/Rana718/fakeshop/internal/shop"
	"github.com/Rana718/fakeshop/internal/types"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the daily job",
	Long: `
The scheduled job. On the release weekday (or with --create-products) a few
products are added. Then a random number of orders is generated for the day
and the day's reports are exported.

Examples:
  fakeshop run
  fakeshop run --date 2024-05-15 --create-products --no-export`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dateStr, _ := cmd.Flags().GetString("date")
		force, _ := cmd.Flags().GetBool("create-products")
		noExport, _ := cmd.Flags().GetBool("no-export")

		date, err := parseDay(dateStr)
		if err != nil {
			return err
		}

		ctx := context.Background()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.store.EnsureSchema(ctx); err != nil {
			return err
		}

		template, err := a.productParams(date)
		if err != nil {
			return err
		}
		weekday, err := a.cfg.ReleaseWeekday()
		if err != nil {
			return err
		}

		var exporter shop.Exporter
		if !noExport {
			messy := a.cfg.Export.MessyData
			if cmd.Flags().Changed("messy") {
				messy, _ = cmd.Flags().GetBool("messy")
			}
			exp, err := a.exporter(ctx, messy, "")
			if err != nil {
				return err
			}
			exporter = exp
		}

		g := a.cfg.Generator
		result, err := a.shop.DailyRun(ctx, shop.DailyRunParams{
			Date:             date,
			ForceProducts:    force,
			ReleaseWeekday:   weekday,
			Products:         template,
			ItemsMin:         a.cfg.Products.ItemsMin,
			ItemsMax:         a.cfg.Products.ItemsMax,
			OrdersMin:        g.OrdersMin,
			OrdersMax:        g.OrdersMax,
			MaxItemsPerOrder: g.MaxItemsPerOrder,
		}, exporter)
		if err != nil {
			return err
		}

		color.Green("✅ Daily run for %s finished", result.Date.Format(types.DateLayout))
		fmt.Printf("   new products: %d\n", len(result.Products))
		fmt.Printf("   orders:       %d (%d lines)\n", result.NumOrders, len(result.Lines))
		return nil
	},
}

func init() {
	runCmd.Flags().String("date", "", "run date YYYY-MM-DD (default today)")
	runCmd.Flags().Bool("create-products", false, "create products even when it is not the release weekday")
	runCmd.Flags().Bool("messy", true, "corrupt exported order rows (default export.messy_data)")
	runCmd.Flags().Bool("no-export", false, "skip the export step")
}
