package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"plotsort/internal/application"
	"plotsort/internal/application/commands"
)

var organizeCmd = &cobra.Command{
	Use:   "organize",
	Short: "Move files into folders named after their prefix",
	Long: `Move every file at the top of the source folder into a folder named
after its prefix. "A1_plot.png" and "A1-plot.pdf" both land in "A1".

Examples:
  plotsort-cli organize -s ~/plots`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := application.ValidateSourceDir(resolveSource())
		if err != nil {
			return err
		}

		return withRunLock(root, func() error {
			organize := commands.NewOrganizeCommand(GetEnv().NewWorkspace(root), consoleSink(cmd))
			result, err := organize.Execute(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		})
	},
}

// withRunLock holds the source folder's run lock while fn runs
func withRunLock(root string, fn func() error) error {
	locker := GetEnv().Locker
	ok, err := locker.TryLock(root)
	if err != nil {
		return fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%s: %w", root, application.ErrRunInProgress)
	}
	defer func() {
		if err := locker.Unlock(root); err != nil {
			GetEnv().Logger.Warn().Err(err).Str("dir", root).Msg("failed to release run lock")
		}
	}()
	return fn()
}

func init() {
	rootCmd.AddCommand(organizeCmd)
}
