package cmd

import (
	"errors"

	"github.com/Lumos-Labs-HQ/tabledesk/internal/console"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create and seed the transport demo schema",
	Long: `
Create the VEHICUL, AUTOCAR, TIR, MENTENANTA, CURSA and TRANSPORT_PERSOANE
tables with cascading foreign keys, the V_FLOTA_TIRURI and
V_RAPORT_COSTURI_VEHICUL views, and a small data set. Available for SQLite
and PostgreSQL.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		err = s.console.Bootstrap(cmd.Context())
		if errors.Is(err, console.ErrAlreadyInitialized) {
			color.Yellow("⚠️  %s", err)
			return nil
		}
		if err != nil {
			return err
		}
		color.Green("✅ Demo schema created on %s", s.adapter.Provider())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
