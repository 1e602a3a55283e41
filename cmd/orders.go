package cmd

import (
	"context"
	"fmt"

	"github.com/Rana718/fakeshop/internal/shop"
	"github.com/Rana718/fakeshop/internal/types"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Generate orders",
}

var ordersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Generate orders spread over a date range",
	Long: `
Generate orders for the active catalogue. Busy days get more orders than
quiet ones and baskets are mostly small. A share of the orders goes to
returning users, the rest to newly registered ones.

Examples:
  fakeshop orders create --num 100
  fakeshop orders create --num 5000 --start 2024-01-01 --end 2024-03-31`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		num, _ := cmd.Flags().GetInt("num")
		maxItems, _ := cmd.Flags().GetInt("max-items")
		startStr, _ := cmd.Flags().GetString("start")
		endStr, _ := cmd.Flags().GetString("end")

		start, err := parseDay(startStr)
		if err != nil {
			return err
		}
		end := start
		if endStr != "" {
			if end, err = types.ParseDay(endStr); err != nil {
				return err
			}
		}

		ctx := context.Background()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		if maxItems == 0 {
			maxItems = a.cfg.Generator.MaxItemsPerOrder
		}
		if num == 0 {
			num = a.cfg.Generator.OrdersMin + a.rng.Intn(a.cfg.Generator.OrdersMax-a.cfg.Generator.OrdersMin+1)
		}

		lines, err := a.shop.Orders.Create(ctx, shop.CreateOrdersParams{
			NumOrders: num,
			MaxItems:  maxItems,
			Dates:     types.DateRange{Start: start, End: end},
		})
		if err != nil {
			return err
		}
		color.Green("✅ Created %d orders (%d lines) between %s and %s",
			num, len(lines), start.Format(types.DateLayout), end.Format(types.DateLayout))
		if len(lines) > 0 {
			fmt.Printf("   order ids %d..%d\n", lines[0].OrderID, lines[len(lines)-1].OrderID)
		}
		return nil
	},
}

func init() {
	ordersCreateCmd.Flags().Int("num", 0, "number of orders (default random within generator.orders_min..orders_max)")
	ordersCreateCmd.Flags().Int("max-items", 0, "largest basket size (default generator.max_items_per_order)")
	ordersCreateCmd.Flags().String("start", "", "first day YYYY-MM-DD (default today)")
	ordersCreateCmd.Flags().String("end", "", "last day YYYY-MM-DD (default start)")

	ordersCmd.AddCommand(ordersCreateCmd)
}
