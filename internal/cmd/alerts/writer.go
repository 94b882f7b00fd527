package alerts

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/agentstation/formsync/internal/cmd/output"
)

// FormatWriter writes alerts as colored lines, JSON or YAML.
type FormatWriter struct {
	out    io.Writer
	format output.Format
	color  bool
}

// NewFormatWriter returns a FormatWriter for format. Colors are used only
// when w is a terminal.
func NewFormatWriter(w io.Writer, format output.Format) *FormatWriter {
	fw := &FormatWriter{out: w, format: format}
	if f, ok := w.(*os.File); ok {
		fw.color = isatty.IsTerminal(f.Fd())
	}
	return fw
}

// WithColor forces colors on or off.
func (fw *FormatWriter) WithColor(color bool) *FormatWriter {
	fw.color = color
	return fw
}

// WriteAlert implements Writer.
func (fw *FormatWriter) WriteAlert(alert *Alert) error {
	if fw.format == output.FormatJSON || fw.format == output.FormatYAML {
		return output.NewFormatter(fw.format).Format(fw.out, record(alert))
	}

	line := alert.String()
	if fw.color {
		line = alert.Level.colorize(line)
	}
	if _, err := fmt.Fprintln(fw.out, line); err != nil {
		return err
	}
	for _, detail := range alert.Details {
		if _, err := fmt.Fprintf(fw.out, "   %s\n", detail); err != nil {
			return err
		}
	}
	return nil
}

// alertRecord is the structured form of an alert.
type alertRecord struct {
	Level   string   `json:"level" yaml:"level"`
	Title   string   `json:"title,omitempty" yaml:"title,omitempty"`
	Message string   `json:"message" yaml:"message"`
	Details []string `json:"details,omitempty" yaml:"details,omitempty"`
	Error   string   `json:"error,omitempty" yaml:"error,omitempty"`
}

func record(alert *Alert) alertRecord {
	r := alertRecord{
		Level:   alert.Level.String(),
		Title:   alert.Title,
		Message: alert.Message,
		Details: alert.Details,
	}
	if alert.Err != nil {
		r.Error = alert.Err.Error()
	}
	return r
}
