package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/formsync/cmd/formsync/cmd/importer"
	"github.com/agentstation/formsync/cmd/formsync/cmd/list"
	"github.com/agentstation/formsync/cmd/formsync/cmd/remove"
	"github.com/agentstation/formsync/cmd/formsync/cmd/serve"
	"github.com/agentstation/formsync/cmd/formsync/cmd/version"
	"github.com/agentstation/formsync/internal/cmd/alerts"
	"github.com/agentstation/formsync/pkg/actions"
	"github.com/agentstation/formsync/pkg/logging"
)

// Execute runs the CLI with args, which exclude the program name.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "formsync",
		Short:   "FormBuilder template sync",
		Version: a.build.version,
		Long: `formsync imports form templates and their answer aggregates from a
FormBuilder API into a local database, matching questions by text so that
repeated imports update records instead of duplicating them.

Imported templates can be browsed from the command line or served over
a small JSON API that also drives the import wizard.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})

	// setupCommand copies the flags the user changed into config
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.formsync.yaml)")
	flags.BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.StringP("format", "o", "", "output format: table, json, yaml")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	flags.String("db", "", "database path (default is "+a.config.DBPath+")")

	rootCmd.SetVersionTemplate("formsync {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if configFile := mustGetString(cmd, "config"); configFile != "" {
		config, err := LoadConfig(configFile)
		if err != nil {
			return err
		}
		a.config = config
	}

	a.config.UpdateFromFlags(cmd.Flags())

	logger := NewLogger(a.config)
	a.logger = &logger

	cmd.SetContext(logging.WithLogger(cmd.Context(), a.logger))
	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	for _, cmd := range []*cobra.Command{
		importer.NewCommand(a),
		list.NewCommand(a),
		remove.NewCommand(a),
		serve.NewCommand(a),
	} {
		cmd.GroupID = "core"
		rootCmd.AddCommand(cmd)
	}

	rootCmd.AddCommand(version.NewCommand(a))
}

// ExitOnError prints an error the way the import wizard would show it
// and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(alerts.FromDirective(actions.Dialog(err)).String() + "\n")
		os.Exit(1)
	}
}

// mustGetString reads a string flag defined on the root command.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
