package list

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/formsync/internal/cmd/application"
	"github.com/agentstation/formsync/internal/cmd/output"
)

// NewQuestionsCommand creates the list questions subcommand.
func NewQuestionsCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "questions <template-id>",
		Short:   "List the questions of a template",
		Aliases: []string{"question"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTemplateID(args[0])
			if err != nil {
				return err
			}

			store, err := app.Store(cmd.Context())
			if err != nil {
				return err
			}

			questions, err := store.Questions(cmd.Context(), id)
			if err != nil {
				return err
			}

			format := output.DetectFormat(app.OutputFormat())
			return write(cmd.OutOrStdout(), format,
				output.QuestionsToData(questions),
				output.QuestionViews(questions))
		},
	}
}
