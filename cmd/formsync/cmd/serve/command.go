// Package serve provides the HTTP API server command.
package serve

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/formsync/internal/cmd/application"
	"github.com/agentstation/formsync/internal/server"
	"github.com/agentstation/formsync/pkg/constants"
)

// NewCommand creates the serve command using app context.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server"},
		Short:   "Start the JSON API server",
		Long: `Start the formsync API server.

Endpoints (under /api/v1):
  GET  /health, /ready
  GET  /templates, /templates/{id}, /templates/{id}/questions
  POST /wizard                        start an import wizard
  GET  /wizard/{id}
  POST /wizard/{id}/test-connection
  POST /wizard/{id}/import

The server shuts down gracefully on SIGINT or SIGTERM.`,
		Example: `  formsync serve
  formsync serve --addr 127.0.0.1:9000
  formsync serve --db /var/lib/formsync.sqlite`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app)
		},
	}

	cmd.Flags().String("addr", "", "listen address (default from config)")
	cmd.Flags().String("prefix", constants.APIPathPrefix, "API path prefix")
	cmd.Flags().Duration("read-timeout", constants.ServerReadTimeout, "HTTP read timeout")
	cmd.Flags().Duration("write-timeout", constants.ServerWriteTimeout, "HTTP write timeout")
	cmd.Flags().Duration("idle-timeout", constants.ServerIdleTimeout, "HTTP idle timeout")
	cmd.Flags().Duration("session-ttl", constants.WizardSessionTTL, "Expire idle wizard sessions after this long")

	return cmd
}

// configFromFlags builds the server configuration from command flags.
func configFromFlags(cmd *cobra.Command, app application.Application) server.Config {
	cfg := server.DefaultConfig()

	cfg.Addr, _ = cmd.Flags().GetString("addr")
	if cfg.Addr == "" {
		cfg.Addr = app.ServerAddr()
	}
	cfg.PathPrefix, _ = cmd.Flags().GetString("prefix")
	cfg.ReadTimeout, _ = cmd.Flags().GetDuration("read-timeout")
	cfg.WriteTimeout, _ = cmd.Flags().GetDuration("write-timeout")
	cfg.IdleTimeout, _ = cmd.Flags().GetDuration("idle-timeout")
	cfg.SessionTTL, _ = cmd.Flags().GetDuration("session-ttl")

	return cfg
}

func run(cmd *cobra.Command, app application.Application) error {
	ctx := cmd.Context()

	store, err := app.Store(ctx)
	if err != nil {
		return err
	}

	cfg := configFromFlags(cmd, app)
	srv := server.New(store, app.Fetcher(), app.Logger(), cfg)

	app.Logger().Info().
		Str("addr", cfg.Addr).
		Str("prefix", cfg.PathPrefix).
		Str("version", app.Version()).
		Msg("Starting API server")

	return srv.ListenAndServe(ctx)
}
