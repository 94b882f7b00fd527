package list

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/formsync/internal/cmd/application"
	"github.com/agentstation/formsync/internal/cmd/output"
	"github.com/agentstation/formsync/pkg/records"
)

// NewTemplatesCommand creates the list templates subcommand.
func NewTemplatesCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "templates [template-id]",
		Short:   "List imported templates",
		Aliases: []string{"template"},
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.Store(cmd.Context())
			if err != nil {
				return err
			}

			var templates []records.Template
			if len(args) == 1 {
				id, err := parseTemplateID(args[0])
				if err != nil {
					return err
				}
				tpl, err := store.Template(cmd.Context(), id)
				if err != nil {
					return err
				}
				templates = []records.Template{*tpl}
			} else {
				templates, err = store.Templates(cmd.Context())
				if err != nil {
					return err
				}
			}

			app.Logger().Debug().Int("templates", len(templates)).Msg("Listing templates")

			format := output.DetectFormat(app.OutputFormat())
			return write(cmd.OutOrStdout(), format,
				output.TemplatesToData(templates),
				output.TemplateSummaries(templates))
		},
	}
}
