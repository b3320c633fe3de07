package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var cascadeCmd = &cobra.Command{
	Use:   "cascade [vehicle-id]",
	Short: "Demonstrate ON DELETE CASCADE from VEHICUL to MENTENANTA",
	Long: `
Without an id, show the vehicles and their maintenance rows. With an id, delete
that vehicle and verify that no maintenance row referencing it survived.

Examples:
  tabledesk cascade
  tabledesk cascade 2 --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if len(args) == 0 {
			vehicles, maintenance, err := s.console.CascadeOverview(cmd.Context())
			if err != nil {
				return err
			}
			overview := map[string]any{"vehicles": vehicles, "maintenance": maintenance}
			return render(cmd, overview, func(w io.Writer) {
				color.Cyan("🚌 VEHICUL")
				writeResult(w, vehicles)
				color.Cyan("🔧 MENTENANTA")
				writeResult(w, maintenance)
			})
		}

		force, _ := cmd.Flags().GetBool("force")
		if !force && !confirm(cmd, fmt.Sprintf("Delete vehicle %s and its maintenance history?", args[0])) {
			color.Yellow("Cancelled")
			return nil
		}

		out, err := s.console.CascadeDelete(cmd.Context(), args[0])
		if noData(err) {
			return nil
		}
		if err != nil {
			return err
		}

		return render(cmd, out, func(w io.Writer) {
			t := newTable(w)
			t.AppendHeader(table.Row{"Vehicle", "Maintenance before", "Deleted", "Maintenance after"})
			t.AppendRow(table.Row{out.VehicleID, out.ChildrenBefore, out.Deleted, out.ChildrenAfter})
			t.Render()
			if out.Confirmed() {
				color.Green("✅ Cascade confirmed: no maintenance rows remain for vehicle %d", out.VehicleID)
			} else {
				color.Red("❌ %d maintenance row(s) survived the delete", out.ChildrenAfter)
			}
		})
	},
}

func init() {
	rootCmd.AddCommand(cascadeCmd)
}
