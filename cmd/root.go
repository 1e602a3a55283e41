package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile     string
	profileFile string
	dryRun      bool
	Version     = "0.4.0"
)

func showBanner() {
	greenColor := color.New(color.FgGreen, color.Bold)

	banner := []string{
		"╔════════════════════════════════════════════════╗",
		"║    ___      _          _                       ║",
		"║   | __|_ _ | |__ ___  | |_  ___ _ __           ║",
		"║   | _/ _` || / // -_) (_-< ' \\/ _ \\ '_ \\         ║",
		"║   |_|\\__,_||_\\_\\\\___| /__/_||_\\___/ .__/         ║",
		"║                                   |_|          ║",
		"║        🛒 Synthetic e-commerce data 🛒          ║",
		"╚════════════════════════════════════════════════╝",
	}

	for _, line := range banner {
		greenColor.Println(line)
	}

	fmt.Print("                 ")
	color.New(color.FgCyan, color.Bold).Print("Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "fakeshop",
	Short: "Generate realistic synthetic e-commerce data",
	Long: `
fakeshop fills a database with products, users and orders that look like a
real online shop: popular items sell more, baskets are mostly small, and
returning customers mix with new ones. Reports can be exported as CSV to
disk, Cloud Storage or Kafka, with optional messy data for cleaning drills.

Database Support:
- PostgreSQL (pgx or lib/pq)
- MySQL
- SQLite
- In-memory (--dry-run)`,
	SilenceUsage:  true,
	SilenceErrors: true,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("fakeshop version %s\n", Version)
			os.Exit(0)
		}

		if len(args) == 0 {
			showBanner()
			fmt.Println()
			cmd.Help()
		}
	},
}

// Execute runs the CLI and prints any error in red.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		color.Red("❌ %v", err)
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./fakeshop.config.json)")
	rootCmd.PersistentFlags().StringVar(&profileFile, "profile", "", "YAML run profile overriding locales and product settings")
	rootCmd.PersistentFlags().Int64("seed", 0, "random seed, 0 seeds from the clock")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "use an in-memory store instead of the database")
	viper.BindPFlag("generator.seed", rootCmd.PersistentFlags().Lookup("seed"))

	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(ordersCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("fakeshop.config")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
		color.Yellow("⚠️  Could not read %s: %v", cfgFile, err)
	}
}
