package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/Lumos-Labs-HQ/tabledesk/internal/config"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	Version = "0.4.0"
)

func showBanner() {
	greenColor := color.New(color.FgGreen, color.Bold)

	banner := []string{
		"╔══════════════════════════════════════════════════════════════╗",
		"║   ████████╗ █████╗ ██████╗ ██╗     ███████╗                  ║",
		"║   ╚══██╔══╝██╔══██╗██╔══██╗██║     ██╔════╝                  ║",
		"║      ██║   ███████║██████╔╝██║     █████╗   desk             ║",
		"║      ██║   ██╔══██║██╔══██╗██║     ██╔══╝                    ║",
		"║      ██║   ██║  ██║██████╔╝███████╗███████╗                  ║",
		"║      ╚═╝   ╚═╝  ╚═╝╚═════╝ ╚══════╝╚══════╝                  ║",
		"║                                                              ║",
		"║     Browse • Edit • Report on any relational database        ║",
		"╚══════════════════════════════════════════════════════════════╝",
	}

	for _, line := range banner {
		greenColor.Println(line)
	}

	fmt.Print("                        ")
	color.New(color.FgCyan, color.Bold).Print("Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "tabledesk",
	Short: "A schema-driven table browser and row editor for relational databases",
	Long: `
TableDesk discovers tables, primary keys and column types at runtime and
generates typed edit forms for any row, so one console works against any
schema without per-table code.

Database Support:
- PostgreSQL
- MySQL
- SQLite
- Oracle
- SQL Server`,
	SilenceUsage:  true,
	SilenceErrors: true,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("TableDesk CLI version %s\n", Version)
			os.Exit(0)
		}

		if len(args) == 0 {
			showBanner()
			fmt.Println()
			cmd.Help()
		}
	},
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./"+config.FileName+".json)")
	rootCmd.PersistentFlags().BoolP("force", "f", false, "Skip confirmations")
	rootCmd.PersistentFlags().String("db", "", "Database URL (overrides config/env)")
	rootCmd.PersistentFlags().String("provider", "", "Database provider (postgresql, mysql, sqlite, oracle, sqlserver)")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "Output format: table, json or yaml")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")

	viper.BindPFlag("database.provider", rootCmd.PersistentFlags().Lookup("provider"))
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
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
		viper.SetConfigName(config.FileName)
	}

	viper.SetEnvPrefix("TABLEDESK")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		// fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
