package cmd

import (
	"io"

	"github.com/Lumos-Labs-HQ/tabledesk/internal/console"
	"github.com/Lumos-Labs-HQ/tabledesk/internal/database/common"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the tables visible to the connected user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		tables, err := s.console.ListTables(cmd.Context())
		if err != nil {
			return err
		}

		return render(cmd, tables, func(w io.Writer) {
			t := newTable(w)
			t.AppendHeader(table.Row{"#", "Table"})
			for i, name := range tables {
				t.AppendRow(table.Row{i + 1, name})
			}
			t.Render()
		})
	},
}

var browseCmd = &cobra.Command{
	Use:   "browse <table>",
	Short: "Show every row of a table",
	Long: `
Show every row of a table together with its detected primary key.

Examples:
  tabledesk browse VEHICUL
  tabledesk browse mentenanta -o json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		page, err := s.console.BrowseTable(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		return render(cmd, page, func(w io.Writer) {
			color.Cyan("📋 %s", page.Table)
			if page.PrimaryKey != "" {
				color.White("   primary key: %s", page.PrimaryKey)
			}
			if page.Notice != "" {
				color.Yellow("⚠️  %s", page.Notice)
			}
			writeResult(w, pageResult(page))
		})
	},
}

func pageResult(page *console.TablePage) *common.QueryResult {
	cols := make([]string, len(page.Columns))
	for i, c := range page.Columns {
		cols[i] = c.Name
	}
	return &common.QueryResult{Columns: cols, Rows: page.Rows}
}

func init() {
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(browseCmd)
}
