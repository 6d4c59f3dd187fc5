package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"plotsort/internal/application/commands"
)

var sheetName string

var runCmd = &cobra.Command{
	Use:   "run <spreadsheet>",
	Short: "Organize by prefix, then group by spreadsheet comment",
	Long: `Run both passes on the source folder: files are first moved into
prefix folders, then the prefix folders are grouped by the comments of the
spreadsheet. Pass "-" to read the spreadsheet from stdin.

Examples:
  plotsort-cli run -s ~/plots sites.xlsx
  plotsort-cli run -s ~/plots --sheet-name sites.csv - < sites.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, cleanup, err := openSpreadsheet(cmd, args[0])
		if err != nil {
			return err
		}
		defer cleanup()

		e := GetEnv()
		run := commands.NewRunCommand(e.NewWorkspace, e.Reader, consoleSink(cmd), resolveSource(), path, e.RunOptions()...)
		result, err := run.Execute(cmd.Context())
		if result != nil {
			printStats(cmd, result)
		}
		return err
	},
}

// openSpreadsheet returns a readable spreadsheet path, staging stdin when arg is "-"
func openSpreadsheet(cmd *cobra.Command, arg string) (string, func(), error) {
	if arg != "-" {
		return arg, func() {}, nil
	}
	return commands.StageSpreadsheet(cmd.InOrStdin(), sheetName)
}

func printStats(cmd *cobra.Command, result *commands.RunResult) {
	s := result.Stats
	rows := [][]string{
		{"Files moved", fmt.Sprint(s.FilesMoved)},
		{"Files skipped", fmt.Sprint(s.FilesSkipped)},
		{"Folders grouped", fmt.Sprint(s.FoldersMoved)},
		{"Folders not found", fmt.Sprint(s.FoldersNotFound)},
		{"Folders left over", fmt.Sprint(s.Remaining)},
		{"Failures", fmt.Sprint(s.Failures)},
		{"Duration", s.Duration.Round(msRound).String()},
	}
	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprintf(cmd.OutOrStdout(), "Run %s\n", result.RunID)
	fmt.Fprint(cmd.OutOrStdout(), renderTable(nil, rows, []columnAlignment{alignLeft, alignRight}))
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&sheetName, "sheet-name", "sheet.xlsx", "file name used to detect the format when reading from stdin")
}
