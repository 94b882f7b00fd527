// Package importer provides the import command, the terminal rendition of
// the import wizard.
package importer

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/formsync/internal/cmd/alerts"
	"github.com/agentstation/formsync/internal/cmd/application"
	"github.com/agentstation/formsync/internal/cmd/output"
	"github.com/agentstation/formsync/pkg/logging"
	"github.com/agentstation/formsync/pkg/wizard"
)

// Flags holds the import command flags.
type Flags struct {
	URL    string
	APIKey string
	DryRun bool
}

// NewCommand creates the import command using app context.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import templates from the FormBuilder API",
		Long: `Import fetches every template aggregate from the FormBuilder API and
writes it to the local database in a single transaction.

Templates are matched by their remote id and API URL, questions by their
text, so importing again updates records in place. If any template fails
nothing is saved.

The API key must start with "FB_". It can also be set with
FORMSYNC_API_KEY or in the config file.`,
		Example: `  formsync import --api-key FB_xxx
  formsync import --url https://fb.example.com/api/v1/templates/aggregates
  formsync import --dry-run          # Test the connection only`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app, flags)
		},
	}

	cmd.Flags().StringVar(&flags.URL, "url", "", "aggregates endpoint (default from config)")
	cmd.Flags().StringVar(&flags.APIKey, "api-key", "", "FormBuilder API key (default from config)")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "test the connection without importing")

	return cmd
}

func run(cmd *cobra.Command, app application.Application, flags *Flags) error {
	ctx := cmd.Context()

	store, err := app.Store(ctx)
	if err != nil {
		return err
	}

	url := flags.URL
	if url == "" {
		url = app.APIURL()
	}
	key := flags.APIKey
	if key == "" {
		key = app.APIKey()
	}

	w := wizard.New(store, app.Fetcher(), wizard.WithAPIURL(url), wizard.WithAPIKey(key))
	ctx = logging.WithField(ctx, "wizard_id", w.ID())

	out := alerts.NewFormatWriter(cmd.OutOrStdout(), output.DetectFormat(app.OutputFormat()))

	if _, err := w.TestConnection(ctx); err != nil {
		return err
	}

	snap := w.Snapshot()
	if err := out.WriteAlert(alerts.NewSuccess(
		fmt.Sprintf("Connection successful, found %d template(s)", snap.TemplateCount),
	).WithDetails(snap.APIURL)); err != nil {
		return err
	}

	if flags.DryRun {
		return out.WriteAlert(alerts.NewInfo("Dry run, nothing was imported"))
	}

	directive, err := w.Import(ctx)
	if err != nil {
		return err
	}

	snap = w.Snapshot()
	alert := alerts.FromDirective(directive).WithDetails(snap.Imported.Summary())
	if snap.Imported.Collisions > 0 {
		alert.WithDetails("questions with duplicate text were merged, later entries win")
	}
	return out.WriteAlert(alert)
}
