package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/Lumos-Labs-HQ/tabledesk/internal/console"
	"github.com/Lumos-Labs-HQ/tabledesk/internal/database/common"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var viewsCmd = &cobra.Command{
	Use:   "views",
	Short: "Work with the fleet and cost views",
}

var fleetCmd = &cobra.Command{
	Use:   "fleet",
	Short: "Show the updatable truck fleet view",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showView(cmd, console.FleetView, (*console.Service).Fleet)
	},
}

var costsCmd = &cobra.Command{
	Use:   "costs",
	Short: "Show maintenance totals per vehicle",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showView(cmd, console.CostReportView, (*console.Service).VehicleCosts)
	},
}

var setWeightCmd = &cobra.Command{
	Use:   "set-weight <vehicle-id> <weight>",
	Short: "Update a truck's maximum weight through the fleet view",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		weight, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid weight %q: %w", args[1], err)
		}

		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		err = s.console.UpdateFleetWeight(cmd.Context(), args[0], weight)
		if noData(err) {
			return nil
		}
		if err != nil {
			return err
		}
		color.Green("✅ %s updated: vehicle %s now carries up to %s", console.FleetView, args[0], args[1])
		return nil
	},
}

func showView(cmd *cobra.Command, name string, read func(*console.Service, context.Context) (*common.QueryResult, error)) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	result, err := read(s.console, cmd.Context())
	if err != nil {
		return err
	}
	return render(cmd, result, func(w io.Writer) {
		color.Cyan("👁  %s", name)
		writeResult(w, result)
	})
}

func init() {
	rootCmd.AddCommand(viewsCmd)
	viewsCmd.AddCommand(fleetCmd, costsCmd, setWeightCmd)
}
