package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Rana718/fakeshop/internal/types"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Create or update users",
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register fake users without orders",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		num, _ := cmd.Flags().GetInt("num")
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

		refs, err := a.shop.Users.Create(ctx, num, createdAt)
		if err != nil {
			return err
		}
		color.Green("✅ Created %d users", len(refs))
		return nil
	},
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update <user_id>",
	Short: "Change the contact details of a user",
	Long: `
Examples:
  fakeshop users update 42 --email new@example.com
  fakeshop users update 42 --address "1 High St" --country "United Kingdom"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid user id %q", args[0])
		}

		update := types.UserUpdate{ID: id}
		for flag, dst := range map[string]**string{
			"name":    &update.Name,
			"address": &update.Address,
			"country": &update.Country,
			"email":   &update.Email,
		} {
			if cmd.Flags().Changed(flag) {
				v, _ := cmd.Flags().GetString(flag)
				*dst = &v
			}
		}
		if update.Name == nil && update.Address == nil && update.Country == nil && update.Email == nil {
			return fmt.Errorf("nothing to update, pass --name, --address, --country or --email")
		}

		ctx := context.Background()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		if _, err := a.shop.Users.Update(ctx, []types.UserUpdate{update}); err != nil {
			return err
		}
		color.Green("✅ Updated user %d", id)
		return nil
	},
}

func init() {
	usersCreateCmd.Flags().Int("num", 10, "number of users to create")
	usersCreateCmd.Flags().String("date", "", "registration date YYYY-MM-DD (default today)")

	usersUpdateCmd.Flags().String("name", "", "new name")
	usersUpdateCmd.Flags().String("address", "", "new address")
	usersUpdateCmd.Flags().String("country", "", "new country")
	usersUpdateCmd.Flags().String("email", "", "new email")

	usersCmd.AddCommand(usersCreateCmd)
	usersCmd.AddCommand(usersUpdateCmd)
}
