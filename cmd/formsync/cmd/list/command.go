// Package list provides commands that show imported templates and questions.
package list

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agentstation/formsync/internal/cmd/application"
	"github.com/agentstation/formsync/internal/cmd/output"
	"github.com/agentstation/formsync/pkg/errors"
)

// NewCommand creates the list command with app dependencies.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [resource]",
		Short: "List imported records from the local database",
		Long: `List displays records imported from the FormBuilder API.

Available subcommands:
  templates   - Imported templates with question and response counts
  questions   - Questions of one template with their aggregated answers`,
		Example: `  formsync list templates            # List all templates
  formsync list templates 3          # Show one template
  formsync list questions 3          # List the questions of template 3
  formsync list templates -o json    # Machine readable output`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return fmt.Errorf("unknown resource: %s", args[0])
		},
	}

	cmd.AddCommand(NewTemplatesCommand(app))
	cmd.AddCommand(NewQuestionsCommand(app))

	return cmd
}

// parseTemplateID parses a local template id argument.
func parseTemplateID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewValidationError("template_id", raw, "must be a positive integer")
	}
	return id, nil
}

// write renders data for table output, or structured for json and yaml.
func write(w io.Writer, format output.Format, data output.Data, structured any) error {
	switch format {
	case output.FormatJSON, output.FormatYAML:
		return output.NewFormatter(format).Format(w, structured)
	default:
		return output.NewFormatter(output.FormatTable).Format(w, data)
	}
}
