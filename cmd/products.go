package cmd

import (
	"context"
	"fmt"

	"github.com/Rana718/fakeshop/internal/types"
	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Create or update products",
}

var productsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add new products to the catalogue",
	Long: `
Create products with SKUs <prefix><nnn> continuing from the highest existing
number for the prefix. When several prefixes are configured one is drawn.

Examples:
  fakeshop products create --num 5
  fakeshop products create --num 3 --prefix SUMO --weeks 4 --date 2024-06-05`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		num, _ := cmd.Flags().GetInt("num")
		prefixes, _ := cmd.Flags().GetStringSlice("prefix")
		dateStr, _ := cmd.Flags().GetString("date")

		createdAt, err := parseDay(dateStr)
		if err != nil {
			return err
		}

		ctx := context.Background()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		params, err := a.productParams(createdAt)
		if err != nil {
			return err
		}
		params.NumItems = num
		if len(prefixes) > 0 {
			params.Prefixes = prefixes
		}
		if cmd.Flags().Changed("weeks") {
			params.PreorderWeeks, _ = cmd.Flags().GetInt("weeks")
		}

		products, err := a.shop.Products.Create(ctx, params)
		if err != nil {
			return err
		}
		if len(products) == 0 {
			fmt.Println("No products created")
			return nil
		}
		color.Green("✅ Created %d products", len(products))
		for _, p := range products {
			fmt.Printf("   %-10s %8s  release %s\n", p.SKU, p.Price.StringFixed(2), p.ReleaseDate.Format(types.DateLayout))
		}
		return nil
	},
}

var productsUpdateCmd = &cobra.Command{
	Use:   "update <sku>...",
	Short: "Change the price or active flag of products",
	Long: `
Examples:
  fakeshop products update SUMO001 --price 24.50
  fakeshop products update SUMO001 SUMO002 --active=false`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var price *decimal.Decimal
		if cmd.Flags().Changed("price") {
			raw, _ := cmd.Flags().GetString("price")
			d, err := decimal.NewFromString(raw)
			if err != nil {
				return fmt.Errorf("invalid price %q: %w", raw, err)
			}
			price = &d
		}
		var active *bool
		if cmd.Flags().Changed("active") {
			v, _ := cmd.Flags().GetBool("active")
			active = &v
		}
		if price == nil && active == nil {
			return fmt.Errorf("nothing to update, pass --price and/or --active")
		}

		ctx := context.Background()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		updates := make([]types.ProductUpdate, 0, len(args))
		for _, sku := range args {
			updates = append(updates, types.ProductUpdate{SKU: sku, Price: price, Active: active})
		}
		n, err := a.shop.Products.Update(ctx, updates)
		if err != nil {
			return err
		}
		color.Green("✅ Updated %d products", n)
		return nil
	},
}

func init() {
	productsCreateCmd.Flags().Int("num", 1, "number of products to create")
	productsCreateCmd.Flags().StringSlice("prefix", nil, "SKU prefix, repeatable (default from config)")
	productsCreateCmd.Flags().Int("weeks", 0, "pre-order weeks before release (default from config)")
	productsCreateCmd.Flags().String("date", "", "creation date YYYY-MM-DD (default today)")

	productsUpdateCmd.Flags().String("price", "", "new price")
	productsUpdateCmd.Flags().Bool("active", true, "whether the product can be ordered")

	productsCmd.AddCommand(productsCreateCmd)
	productsCmd.AddCommand(productsUpdateCmd)
}
