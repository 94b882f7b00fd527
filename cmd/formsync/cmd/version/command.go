// Package version provides the version command.
package version

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agentstation/formsync/internal/cmd/application"
	"github.com/agentstation/formsync/internal/cmd/output"
)

// Info is the build information of the binary.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	Date      string `json:"date" yaml:"date"`
	BuiltBy   string `json:"built_by" yaml:"built_by"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// NewInfo collects the build information from app.
func NewInfo(app application.Application) Info {
	return Info{
		Version:   app.Version(),
		Commit:    app.Commit(),
		Date:      app.Date(),
		BuiltBy:   app.BuiltBy(),
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// NewCommand creates the version command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show version information for the formsync CLI.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := NewInfo(app)
			w := cmd.OutOrStdout()

			// Plain text unless structured output was asked for
			switch format := output.Format(app.OutputFormat()); format {
			case output.FormatJSON, output.FormatYAML:
				return output.NewFormatter(format).Format(w, info)
			}

			_, err := fmt.Fprintf(w, "formsync version %s\ncommit: %s\nbuilt: %s\nbuilt by: %s\ngo version: %s\nplatform: %s\n",
				info.Version, info.Commit, info.Date, info.BuiltBy, info.GoVersion, info.Platform)
			return err
		},
	}
}
