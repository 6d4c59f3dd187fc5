package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"plotsort/internal/application/commands"
	"plotsort/internal/domain"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent runs",
	Long: `List recent runs recorded in the history database, newest first.

Examples:
  plotsort-cli history
  plotsort-cli history --limit 5
  plotsort-cli history show 3f2c9a4e-...`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit := historyLimit
		if limit <= 0 {
			limit = GetEnv().Config.History.Limit
		}
		runs, err := commands.NewListRunsCommand(GetEnv().History, limit).Execute(cmd.Context())
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), renderRuns(runs))
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one run and the moves it made",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewShowRunCommand(GetEnv().History, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprint(out, renderRuns([]domain.RunRecord{*result.Run}))
		if result.Run.Error != "" {
			fmt.Fprintf(out, "Error: %s\n", result.Run.Error)
		}

		rows := make([][]string, 0, len(result.Moves))
		for _, m := range result.Moves {
			rows = append(rows, []string{string(m.Phase), m.Name, m.Destination})
		}
		fmt.Fprint(out, renderTable([]string{"Phase", "Entry", "Moved into"}, rows, nil))
		return nil
	},
}

func renderRuns(runs []domain.RunRecord) string {
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.ID,
			r.StartedAt.Local().Format(time.DateTime),
			string(r.Status),
			r.SourceDir,
			r.Spreadsheet,
			fmt.Sprint(r.FilesMoved),
			fmt.Sprint(r.FoldersMoved),
			fmt.Sprint(r.Remaining),
		})
	}
	return renderTable(
		[]string{"Run", "Started", "Status", "Folder", "Spreadsheet", "Files", "Grouped", "Left"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight},
	)
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "number of runs to list (default from config)")
}
