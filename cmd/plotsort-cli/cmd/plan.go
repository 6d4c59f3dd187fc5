package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"plotsort/internal/application"
	"plotsort/internal/application/commands"
)

var planCmd = &cobra.Command{
	Use:   "plan [spreadsheet]",
	Short: "Show what a run would do without moving anything",
	Long: `Project both passes on the source folder and print the result.
Without a spreadsheet only the prefix pass is shown.

Examples:
  plotsort-cli plan -s ~/plots
  plotsort-cli plan -s ~/plots sites.xlsx`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := application.ValidateSourceDir(resolveSource())
		if err != nil {
			return err
		}

		path := ""
		if len(args) == 1 {
			var cleanup func()
			path, cleanup, err = openSpreadsheet(cmd, args[0])
			if err != nil {
				return err
			}
			defer cleanup()
		}

		plan := commands.NewPlanCommand(GetEnv().NewWorkspace(root), GetEnv().Reader, path)
		result, err := plan.Execute(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprint(out, renderPlanFiles(result))
		if result.Grouped {
			fmt.Fprint(out, renderPlanRows(result))
			if len(result.Remaining) > 0 {
				fmt.Fprintf(out, "Left over: %s\n", strings.Join(result.Remaining, ", "))
			}
		}
		fmt.Fprintln(out, result.Message)
		return nil
	},
}

func renderPlanFiles(result *commands.PlanResult) string {
	rows := make([][]string, 0, len(result.Files))
	for _, f := range result.Files {
		dest := f.Prefix
		if dest == "" {
			dest = "(skipped)"
		}
		rows = append(rows, []string{f.Name, dest})
	}
	return renderTable([]string{"File", "Folder"}, rows, []columnAlignment{alignLeft, alignLeft})
}

func renderPlanRows(result *commands.PlanResult) string {
	var rows [][]string
	for _, r := range result.Rows {
		if r.Skipped {
			rows = append(rows, []string{fmt.Sprint(r.Number), r.Comment, "(skipped)"})
			continue
		}
		targets := make([]string, 0, len(r.Targets))
		for _, t := range r.Targets {
			switch {
			case t.Found:
				targets = append(targets, t.Name)
			case t.ClaimedBy > 0:
				targets = append(targets, fmt.Sprintf("%s (row %d)", t.Name, t.ClaimedBy))
			default:
				targets = append(targets, t.Name+" (not found)")
			}
		}
		rows = append(rows, []string{fmt.Sprint(r.Number), r.Comment, strings.Join(targets, ", ")})
	}
	return renderTable([]string{"Row", "Comment", "Folders"}, rows, []columnAlignment{alignRight, alignLeft, alignLeft})
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().StringVar(&sheetName, "sheet-name", "sheet.xlsx", "file name used to detect the format when reading from stdin")
}
