// Package actions describes what the host UI should do after a user action:
// open a window, show a notification or block with an error dialog.
// Directives carry navigation and messages, never record data.
package actions

import (
	"github.com/agentstation/formsync/pkg/errors"
)

// Type is the kind of directive.
type Type string

// Directive types.
const (
	TypeWindow       Type = "window"
	TypeNotification Type = "notification"
	TypeDialog       Type = "dialog"
)

// Models a window directive can point at.
const (
	ModelTemplate = "formbuilder.template"
	ModelQuestion = "formbuilder.question"
	ModelWizard   = "formbuilder.import.wizard"
)

// View modes.
const (
	ViewList = "list,form"
	ViewForm = "form"
)

// Window targets.
const (
	TargetNew     = "new"     // modal on top of the current view
	TargetCurrent = "current" // replaces the current view
)

// Notification levels.
const (
	LevelSuccess = "success"
	LevelWarning = "warning"
	LevelDanger  = "danger"
)

// Directive is an instruction for the host UI.
type Directive struct {
	Type       Type           `json:"type" yaml:"type"`
	Model      string         `json:"model,omitempty" yaml:"model,omitempty"`
	ViewMode   string         `json:"view_mode,omitempty" yaml:"view_mode,omitempty"`
	Target     string         `json:"target,omitempty" yaml:"target,omitempty"`
	ResourceID string         `json:"resource_id,omitempty" yaml:"resource_id,omitempty"`
	Domain     map[string]any `json:"domain,omitempty" yaml:"domain,omitempty"`
	Title      string         `json:"title,omitempty" yaml:"title,omitempty"`
	Message    string         `json:"message,omitempty" yaml:"message,omitempty"`
	Level      string         `json:"level,omitempty" yaml:"level,omitempty"`
	Sticky     bool           `json:"sticky,omitempty" yaml:"sticky,omitempty"`

	// Kind is set on dialogs built from errors
	Kind errors.Kind `json:"kind,omitempty" yaml:"kind,omitempty"`
}

// Window opens a view of model.
func Window(model, viewMode, target string) Directive {
	return Directive{
		Type:     TypeWindow,
		Model:    model,
		ViewMode: viewMode,
		Target:   target,
	}
}

// Reopen shows a record of model again in a modal, the way a multi-step
// form advances to its next step.
func Reopen(model, resourceID string) Directive {
	d := Window(model, ViewForm, TargetNew)
	d.ResourceID = resourceID
	return d
}

// Filtered returns a copy of d restricted to records where field equals value.
func (d Directive) Filtered(field string, value any) Directive {
	domain := make(map[string]any, len(d.Domain)+1)
	for k, v := range d.Domain {
		domain[k] = v
	}
	domain[field] = value
	d.Domain = domain
	return d
}

// Notification shows a transient message.
func Notification(title, message, level string) Directive {
	return Directive{
		Type:    TypeNotification,
		Title:   title,
		Message: message,
		Level:   level,
	}
}

// Dialog turns an error into a blocking error dialog with a message
// the user can act on.
func Dialog(err error) Directive {
	c := errors.Classify(err)
	return Directive{
		Type:    TypeDialog,
		Title:   "Error",
		Message: c.Message,
		Level:   LevelDanger,
		Sticky:  true,
		Kind:    c.Kind,
	}
}
