package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/Lumos-Labs-HQ/tabledesk/internal/config"
	"github.com/Lumos-Labs-HQ/tabledesk/template"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a TableDesk project in the current directory",
	Long: `
Write ` + config.FileName + `.json and a .env with an example connection for the
chosen database. An existing config file is left alone unless --force is given.

Examples:
  tabledesk init --db-type sqlite
  tabledesk init --db-type oracle`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbType, _ := cmd.Flags().GetString("db-type")
		force, _ := cmd.Flags().GetBool("force")
		return initializeProject(template.ValidateDatabaseType(strings.ToLower(dbType)), force)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().String("db-type", "postgresql", "Database type: postgresql, mysql, sqlite, oracle, sqlserver")
}

func initializeProject(dbType template.DatabaseType, force bool) error {
	tmpl := template.NewProjectTemplate(dbType)
	configPath := config.FileName + ".json"

	if _, err := os.Stat(configPath); err == nil && !force {
		color.Yellow("⚠️  %s already exists, use --force to overwrite", configPath)
	} else {
		if err := os.WriteFile(configPath, []byte(tmpl.GetConfig()), 0644); err != nil {
			return fmt.Errorf("failed to create file %s: %w", configPath, err)
		}
		color.Green("✅ Created %s for %s", configPath, dbType)
	}

	if err := handleEnvFile(tmpl.GetEnvTemplate()); err != nil {
		return fmt.Errorf("failed to handle .env file: %w", err)
	}

	fmt.Println()
	fmt.Println("📝 Next steps:")
	fmt.Println("   1. Point the connection settings in .env at your database")
	if tmpl.HasDemoSchema() {
		fmt.Println("   2. Run 'tabledesk seed' to create the transport demo schema")
		fmt.Println("   3. Run 'tabledesk studio' or 'tabledesk tables'")
	} else {
		fmt.Println("   2. Run 'tabledesk studio' or 'tabledesk tables'")
	}
	return nil
}

// handleEnvFile creates .env, or appends the connection settings when the
// existing file does not define them yet.
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
	firstKey, _, _ := strings.Cut(defaultEnvContent, "=")
	if strings.Contains(existingStr, firstKey+"=") {
		return nil
	}

	if len(existingStr) > 0 && !strings.HasSuffix(existingStr, "\n") {
		existingStr += "\n"
	}
	existingStr += "\n# Added by TableDesk\n" + defaultEnvContent

	return os.WriteFile(envPath, []byte(existingStr), 0644)
}
