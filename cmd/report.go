package cmd

import (
	"errors"
	"io"

	"github.com/Lumos-Labs-HQ/tabledesk/internal/console"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var reportCmd = &cobra.Command{
	Use:   "report [name]",
	Short: "Run one of the fixed transport reports",
	Long: `
Run a fixed analytical report. Without a name the available reports are listed.

  maintenance  maintenance jobs on one brand costing at least --min-cost
  traffic      passengers and cost per departure city above --min-passengers

Examples:
  tabledesk report
  tabledesk report maintenance --brand Volvo --min-cost 500`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			reports := console.Reports()
			return render(cmd, reports, func(w io.Writer) {
				t := newTable(w)
				t.AppendHeader(table.Row{"Name", "Title"})
				for _, r := range reports {
					t.AppendRow(table.Row{r.Name, r.Title})
				}
				t.Render()
			})
		}

		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		out, err := s.console.RunReport(cmd.Context(), args[0])
		if errors.Is(err, console.ErrNoData) && outputFormat(cmd) == "table" {
			noData(err)
			return nil
		}
		if err != nil && !errors.Is(err, console.ErrNoData) {
			return err
		}

		return render(cmd, out, func(w io.Writer) {
			color.Cyan("📊 %s %v", out.Report.Title, out.Params)
			writeResult(w, out.Result)
		})
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().String("brand", "", "Vehicle brand for the maintenance report")
	reportCmd.Flags().Float64("min-cost", 0, "Minimum maintenance cost")
	reportCmd.Flags().Int("min-passengers", 0, "Passenger total a departure city must exceed")

	viper.BindPFlag("reports.brand", reportCmd.Flags().Lookup("brand"))
	viper.BindPFlag("reports.min_cost", reportCmd.Flags().Lookup("min-cost"))
	viper.BindPFlag("reports.min_passengers", reportCmd.Flags().Lookup("min-passengers"))
}
