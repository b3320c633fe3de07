package cmd

import (
	"github.com/Lumos-Labs-HQ/tabledesk/internal/export"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [table...]",
	Short: "Export tables to JSON, CSV or a SQLite snapshot",
	Long: `
Export the given tables, or every table when none are named.

Examples:
  tabledesk export
  tabledesk export VEHICUL MENTENANTA --format csv --dir backups`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		dir, _ := cmd.Flags().GetString("dir")

		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		path, err := export.PerformExport(cmd.Context(), s.console, dir, format, args, s.log)
		if noData(err) {
			return nil
		}
		if err != nil {
			return err
		}
		color.Green("✅ Exported to %s", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().String("format", "json", "Export format: json, csv or sqlite")
	exportCmd.Flags().String("dir", "export", "Directory to write the export into")
}
