// Package alerts presents the outcome of CLI actions as status lines.
package alerts

import (
	"fmt"
	"io"
	"strings"

	"github.com/agentstation/formsync/internal/cmd/emoji"
	"github.com/agentstation/formsync/pkg/actions"
)

// Alert is one status line with optional detail lines below it.
type Alert struct {
	Level   Level
	Title   string
	Message string
	Details []string
	Err     error
}

// New returns an alert at level.
func New(level Level, message string) *Alert {
	return &Alert{Level: level, Message: message}
}

// NewError returns an error alert.
func NewError(message string) *Alert { return New(LevelError, message) }

// NewWarning returns a warning alert.
func NewWarning(message string) *Alert { return New(LevelWarning, message) }

// NewInfo returns an info alert.
func NewInfo(message string) *Alert { return New(LevelInfo, message) }

// NewSuccess returns a success alert.
func NewSuccess(message string) *Alert { return New(LevelSuccess, message) }

// FromDirective shows a UI directive on a terminal. Notifications keep
// their level, dialogs become errors and windows become a hint of what
// would have opened.
func FromDirective(d actions.Directive) *Alert {
	var a *Alert
	switch d.Type {
	case actions.TypeNotification:
		a = New(levelOf(d.Level), d.Message)
	case actions.TypeDialog:
		a = NewError(d.Message)
	default:
		a = NewInfo(describeWindow(d))
	}
	a.Title = d.Title
	return a
}

func describeWindow(d actions.Directive) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s open %s", emoji.Arrow, d.Model)
	if d.ResourceID != "" {
		b.WriteString(" " + d.ResourceID)
	}
	for field, value := range d.Domain {
		fmt.Fprintf(&b, " where %s = %v", field, value)
	}
	return b.String()
}

// WithError attaches the underlying error.
func (a *Alert) WithError(err error) *Alert {
	a.Err = err
	return a
}

// WithDetails appends detail lines.
func (a *Alert) WithDetails(details ...string) *Alert {
	a.Details = append(a.Details, details...)
	return a
}

// String renders the status line: icon, optional title, message, error.
func (a *Alert) String() string {
	var b strings.Builder
	b.WriteString(a.Level.Icon() + " ")
	if a.Title != "" {
		b.WriteString(a.Title + ": ")
	}
	b.WriteString(a.Message)
	if a.Err != nil {
		b.WriteString(": " + a.Err.Error())
	}
	return b.String()
}

// Writer outputs alerts.
type Writer interface {
	WriteAlert(alert *Alert) error
}

// WriterFunc adapts a function to Writer.
type WriterFunc func(*Alert) error

// WriteAlert calls f.
func (f WriterFunc) WriteAlert(alert *Alert) error { return f(alert) }

// DiscardWriter drops every alert.
var DiscardWriter Writer = WriterFunc(func(*Alert) error { return nil })

// NewWriterTo writes uncolored status lines to w, without details.
func NewWriterTo(w io.Writer) Writer {
	return WriterFunc(func(alert *Alert) error {
		_, err := fmt.Fprintln(w, alert.String())
		return err
	})
}
