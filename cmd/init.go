package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Rana718/fakeshop/internal/config"
	"github.com/Rana718/fakeshop/template"
	"github.com/spf13/cobra"
)

var (
	sqliteFlag     bool
	postgresqlFlag bool
	mysqlFlag      bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new fakeshop project",
	Long:  `Write fakeshop.config.json, an example run profile and the DATABASE_URL entry in .env.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbType := template.PostgreSQL
		flagCount := 0

		if sqliteFlag {
			dbType = template.SQLite
			flagCount++
		}
		if postgresqlFlag {
			dbType = template.PostgreSQL
			flagCount++
		}
		if mysqlFlag {
			dbType = template.MySQL
			flagCount++
		}

		if flagCount > 1 {
			return fmt.Errorf("please specify only one database type (--sqlite, --postgresql, or --mysql)")
		}

		return initializeProject(dbType)
	},
}

func init() {
	initCmd.Flags().BoolVar(&sqliteFlag, "sqlite", false, "Initialize project for SQLite database")
	initCmd.Flags().BoolVar(&postgresqlFlag, "postgresql", false, "Initialize project for PostgreSQL database")
	initCmd.Flags().BoolVar(&mysqlFlag, "mysql", false, "Initialize project for MySQL database")
}

func initializeProject(dbType template.DatabaseType) error {
	tmpl := template.NewProjectTemplate(dbType)

	directories := tmpl.GetDirectoryStructure()
	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	cfgJSON, err := tmpl.GetConfig()
	if err != nil {
		return err
	}
	files := map[string]string{
		config.FileName:                           cfgJSON,
		filepath.Join("profiles", "example.yaml"): tmpl.GetProfileExample(),
		".env.example":                            tmpl.GetEnvTemplate(),
	}

	var skipped []string
	for filePath, content := range files {
		if _, err := os.Stat(filePath); err == nil && filePath != ".env.example" {
			skipped = append(skipped, filePath)
			continue
		}
		if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to create file %s: %w", filePath, err)
		}
	}

	if err := handleEnvFile(tmpl.GetEnvTemplate()); err != nil {
		return fmt.Errorf("failed to handle .env file: %w", err)
	}

	fmt.Printf("✅ Successfully initialized fakeshop project with %s database support\n", dbType)
	fmt.Println()
	fmt.Println("📁 Project structure created:")
	for _, dir := range directories {
		fmt.Printf("   %s/\n", dir)
	}
	fmt.Println()
	fmt.Println("📝 Configuration file created:")
	fmt.Printf("   %s\n", config.FileName)

	for _, f := range skipped {
		fmt.Printf("ℹ️  Skipped %s (already exists)\n", f)
	}
	if os.Getenv("DATABASE_URL") != "" {
		fmt.Println()
		fmt.Println("ℹ️  Using existing DATABASE_URL from environment")
	}

	fmt.Println()
	fmt.Printf("🚀 Next steps:\n")
	fmt.Printf("   fakeshop setup                       # Create tables\n")
	fmt.Printf("   fakeshop products create --num 20    # Stock the catalogue\n")
	fmt.Printf("   fakeshop orders create --start 2024-01-01 --end 2024-01-31\n")
	fmt.Printf("   fakeshop run                         # Daily job\n")

	return nil
}

func handleEnvFile(defaultEnvContent string) error {
	envPath := ".env"

	existingContent, err := os.ReadFile(envPath)
	if err != nil {
		if os.IsNotExist(err) {
			return os.WriteFile(envPath, []byte(defaultEnvContent), 0644)
		}
		return err
	}

	existingStr := string(existingContent)
	if strings.Contains(existingStr, "DATABASE_URL") {
		return nil
	}

	if len(existingStr) > 0 && !strings.HasSuffix(existingStr, "\n") {
		existingStr += "\n"
	}

	existingStr += "\n# Added by fakeshop\n" + defaultEnvContent

	return os.WriteFile(envPath, []byte(existingStr), 0644)
}
