// Package remove provides the command that deletes an imported template.
package remove

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agentstation/formsync/internal/cmd/alerts"
	"github.com/agentstation/formsync/internal/cmd/application"
	"github.com/agentstation/formsync/internal/cmd/output"
	"github.com/agentstation/formsync/pkg/errors"
)

// NewCommand creates the remove command using app context.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <template-id>",
		Aliases: []string{"rm"},
		Short:   "Delete an imported template and its questions",
		Long: `Remove deletes a template from the local database together with all of
its questions. The next import recreates it if the API still serves it.`,
		Example: `  formsync remove 3`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return errors.NewValidationError("template_id", args[0], "must be a positive integer")
			}

			store, err := app.Store(cmd.Context())
			if err != nil {
				return err
			}

			if err := store.DeleteTemplate(cmd.Context(), id); err != nil {
				return err
			}

			app.Logger().Info().Int64("template_id", id).Msg("Template removed")

			out := alerts.NewFormatWriter(cmd.OutOrStdout(), output.DetectFormat(app.OutputFormat()))
			return out.WriteAlert(alerts.NewSuccess(fmt.Sprintf("Removed template %d", id)))
		},
	}
}
