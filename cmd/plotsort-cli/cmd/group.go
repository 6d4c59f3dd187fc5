package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"plotsort/internal/application"
	"plotsort/internal/application/commands"
)

var groupCmd = &cobra.Command{
	Use:   "group <spreadsheet>",
	Short: "Group prefix folders by spreadsheet comment",
	Long: `Move the folders listed in each spreadsheet row into a folder named
after the row's comment. Run "organize" first, or use "run" for both passes.
Pass "-" to read the spreadsheet from stdin.

Examples:
  plotsort-cli group -s ~/plots sites.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := application.ValidateSourceDir(resolveSource())
		if err != nil {
			return err
		}

		path, cleanup, err := openSpreadsheet(cmd, args[0])
		if err != nil {
			return err
		}
		defer cleanup()

		return withRunLock(root, func() error {
			group := commands.NewGroupCommand(GetEnv().NewWorkspace(root), GetEnv().Reader, consoleSink(cmd), path)
			result, err := group.Execute(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(groupCmd)
	groupCmd.Flags().StringVar(&sheetName, "sheet-name", "sheet.xlsx", "file name used to detect the format when reading from stdin")
}
