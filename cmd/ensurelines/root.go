package main

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/ensurelines/cmd/ensurelines/commands"
	"github.com/walteh/ensurelines/cmd/ensurelines/opts"
	"github.com/walteh/ensurelines/pkg/log"
)

// newRootOpts creates the shared options for all commands
func newRootOpts(console io.Writer, zlog zerolog.Logger) *opts.RootOpts {
	return &opts.RootOpts{
		Console:    console,
		UserLogger: log.New(console, zlog),
	}
}

// newRootCmd creates the root command. Without a subcommand it runs apply.
func newRootCmd(o *opts.RootOpts) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ensurelines",
		Short: "Make sure lines exist right after an anchor line",
		Long: `ensurelines inserts lines directly after the first line matching an anchor,
skipping any line that is already present below it. Running it twice changes nothing.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(o.Debug)
			cmd.SetContext(log.NewContext(cmd.Context(), o.UserLogger))
		},
	}

	addRootFlags(rootCmd, o)
	commands.AttachApply(rootCmd)

	rootCmd.AddCommand(
		commands.NewApplyCmd(),
		commands.NewCheckCmd(),
		newVersionCmd(o),
	)

	return rootCmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags
func setupLogging(debug bool) {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// newLogger creates the structured logger for stderr
func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}
