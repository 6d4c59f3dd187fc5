package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"plotsort/internal/adapters/notice"
	"plotsort/internal/bootstrap"
	"plotsort/internal/ports"
)

var (
	sourceDir  string
	configPath string
	logLevel   string
	noHistory  bool
	quiet      bool

	env *bootstrap.Env
)

var rootCmd = &cobra.Command{
	Use:   "plotsort-cli",
	Short: "Organize plot files into folders by prefix and spreadsheet comment",
	Long: `plotsort-cli sorts a flat folder of plot files.

The first pass moves every file into a folder named after its prefix, the
part of the name before the first "_" or "-". The second pass reads a
spreadsheet with the "4G Nomenclature B28", "4G Nomenclature B01",
"4G Nomenclature B41" and "Comments" columns and moves the listed folders
into a folder named after each row's comment.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help and config commands
		if cmd.Name() == "help" || cmd.Name() == "completion" || isConfigCommand(cmd) {
			return nil
		}
		var err error
		env, err = bootstrap.Setup(bootstrap.Options{
			ConfigPath: configPath,
			LogLevel:   logLevel,
			NoHistory:  noHistory,
		})
		return err
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if env != nil {
		if closeErr := env.Close(); closeErr != nil {
			env.Logger.Warn().Err(closeErr).Msg("failed to close run history")
		}
	}
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		stop()
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&sourceDir, "source", "s", "", "folder to organize (default from config or $PLOTSORT_SOURCE)")
	flags.StringVar(&configPath, "config", "", "path to the config file")
	flags.StringVar(&logLevel, "log-level", "", "diagnostic log level (debug, info, warn, error)")
	flags.BoolVar(&noHistory, "no-history", false, "do not record this run in the history database")
	flags.BoolVarP(&quiet, "quiet", "q", false, "only print warnings and errors")
}

// GetEnv returns the initialized environment
func GetEnv() *bootstrap.Env {
	return env
}

// resolveSource picks the --source flag over the configured folder
func resolveSource() string {
	if sourceDir != "" {
		return sourceDir
	}
	return env.Config.SourceDir
}

// consoleSink prints notices to stdout and mirrors them to the log
func consoleSink(cmd *cobra.Command) ports.NoticeSink {
	return notice.Multi(
		notice.NewConsole(cmd.OutOrStdout(), notice.Quiet(quiet || env.Config.Quiet)),
		notice.NewLogger(env.Logger),
	)
}

func isConfigCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c == configCmd {
			return true
		}
	}
	return false
}
