package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/Lumos-Labs-HQ/tabledesk/internal/form"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <table> <id>",
	Short: "Show the edit form for a row, or update it with --set",
	Long: `
Edit one row selected by its primary key. Without --set the generated form is
printed with the current value of every field. With --set the given columns are
changed and every other field keeps its current value.

Date fields take YYYY-MM-DD, numeric fields take any decimal number.

Examples:
  tabledesk edit VEHICUL 3
  tabledesk edit VEHICUL 3 --set MARCA=Scania --set NR_KILOMETRI=381500`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		assignments, _ := cmd.Flags().GetStringArray("set")
		values, err := parseAssignments(assignments)
		if err != nil {
			return err
		}

		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		tableName, id := args[0], args[1]
		if len(values) == 0 {
			f, err := s.console.EditForm(cmd.Context(), tableName, id)
			if noData(err) {
				return nil
			}
			if err != nil {
				return err
			}
			return render(cmd, f, func(w io.Writer) { writeForm(w, f) })
		}

		n, err := s.console.SubmitEdit(cmd.Context(), tableName, id, values)
		if noData(err) {
			return nil
		}
		if err != nil {
			return err
		}
		color.Green("✅ Updated %d row(s) in %s", n, tableName)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <table> <id>",
	Short: "Delete a row by primary key",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if !force && !confirm(cmd, fmt.Sprintf("Delete %s #%s?", args[0], args[1])) {
			color.Yellow("Cancelled")
			return nil
		}

		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		_, err = s.console.DeleteRow(cmd.Context(), args[0], args[1])
		if noData(err) {
			return nil
		}
		if err != nil {
			return err
		}
		color.Green("✅ Row deleted successfully")
		return nil
	},
}

func writeForm(w io.Writer, f *form.Form) {
	t := newTable(w)
	t.SetTitle(fmt.Sprintf("%s  %s = %v", f.Table, f.PrimaryKey, formatCell(f.KeyValue)))
	t.AppendHeader(table.Row{"Field", "Kind", "Value"})
	for _, field := range f.Fields {
		t.AppendRow(table.Row{field.Column(), field.Kind(), formatCell(field.Default())})
	}
	t.Render()
}

// parseAssignments turns repeated COL=VALUE flags into a value map.
func parseAssignments(assignments []string) (map[string]string, error) {
	values := make(map[string]string, len(assignments))
	for _, a := range assignments {
		col, val, ok := strings.Cut(a, "=")
		col = strings.TrimSpace(col)
		if !ok || col == "" {
			return nil, fmt.Errorf("invalid --set %q: expected COLUMN=VALUE", a)
		}
		values[col] = val
	}
	return values, nil
}

func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", prompt)
	answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func init() {
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	editCmd.Flags().StringArray("set", nil, "Column assignment COLUMN=VALUE (repeatable)")
}
