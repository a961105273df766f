package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/notekeeper/internal/cmd/output"
	"github.com/agentstation/notekeeper/pkg/errors"
	"github.com/agentstation/notekeeper/pkg/logging"
)

// Execute runs the notekeeper CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "notekeeper",
		Short:   "Named text notes over HTTP",
		Version: a.version,
		Long: `Notekeeper stores named text notes in a single JSON file.

Run "notekeeper serve" to expose the notes over HTTP, or use the
"notekeeper notes" commands to work with the same file directly.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})

	// Add global flags. Defaults come from the loaded config so that env
	// and config file values survive when a flag is not given.
	cfg := a.config
	rootCmd.PersistentFlags().StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "config file (default is $HOME/.notekeeper.yaml)")
	rootCmd.PersistentFlags().StringVar(&cfg.NotesFile, "notes-file", cfg.NotesFile, "path of the JSON notes file")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Quiet, "quiet", "q", cfg.Quiet, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable colored output")
	rootCmd.PersistentFlags().StringVarP(&cfg.Format, "format", "o", cfg.Format, "output format: table, json, yaml, wide")
	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("notekeeper {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if cmd.Flags().Changed("config") {
		if err := a.reloadConfig(cmd); err != nil {
			return err
		}
	}

	// These flags are defined as persistent flags in createRootCommand, so errors indicate programming errors
	verbose := mustGetBool(cmd, "verbose")
	quiet := mustGetBool(cmd, "quiet")
	noColor := mustGetBool(cmd, "no-color")
	format := mustGetString(cmd, "format")
	logLevel := mustGetString(cmd, "log-level")

	if _, err := output.ParseFormat(format); err != nil {
		return err
	}

	a.config.UpdateFromFlags(verbose, quiet, noColor, format, logLevel)

	// Reinitialize logger with updated config
	logger := NewLogger(a.config)
	a.logger = &logger
	logging.SetDefault(logger)

	return nil
}

// reloadConfig replaces the startup config with the one read from --config.
// Flags given on the command line keep their values. The persistent flags
// are bound to a.config fields, so the config is updated in place.
func (a *App) reloadConfig(cmd *cobra.Command) error {
	path := mustGetString(cmd, "config")
	reloaded, err := LoadConfigFile(path)
	if err != nil {
		return errors.WrapResource("load", "config", path, err)
	}

	flags := cmd.Flags()
	if flags.Changed("notes-file") {
		reloaded.NotesFile = a.config.NotesFile
	}
	if flags.Changed("verbose") {
		reloaded.Verbose = a.config.Verbose
	}
	if flags.Changed("quiet") {
		reloaded.Quiet = a.config.Quiet
	}
	if flags.Changed("no-color") {
		reloaded.NoColor = a.config.NoColor
	}
	if flags.Changed("format") {
		reloaded.Format = a.config.Format
	}
	if flags.Changed("log-level") {
		reloaded.LogLevel = a.config.LogLevel
	}
	reloaded.ConfigFile = path

	*a.config = *reloaded
	return nil
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
