// Package wizard implements the three-step import flow: enter credentials,
// test the connection to preview what would be imported, then import.
//
// The flow is linear. A wizard that has imported is done; start a new one
// to import again.
package wizard

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/agentstation/formsync/pkg/constants"
	"github.com/agentstation/formsync/pkg/formbuilder"
	"github.com/agentstation/formsync/pkg/records"
	"github.com/agentstation/formsync/pkg/reconcile"
)

// State is a step of the wizard.
type State string

// Wizard states in order.
const (
	StateCredentials State = "credentials"
	StatePreview     State = "preview"
	StateDone        State = "done"
)

// Label returns the human label of the state.
func (s State) Label() string {
	switch s {
	case StateCredentials:
		return "API Credentials"
	case StatePreview:
		return "Preview Data"
	case StateDone:
		return "Import Complete"
	default:
		return string(s)
	}
}

// Fetcher retrieves template aggregates from the remote API.
type Fetcher interface {
	FetchTemplates(ctx context.Context, url, apiKey string) ([]formbuilder.Template, error)
}

// Wizard is one import session. It is safe for concurrent use; operations
// are serialized.
type Wizard struct {
	mu sync.Mutex

	id     string
	apiURL string
	apiKey string

	state         State
	previewData   string
	templateCount int
	totals        reconcile.Totals

	fetcher    Fetcher
	store      records.Store
	reconciler *reconcile.Reconciler
}

// Option configures a Wizard.
type Option func(*Wizard)

// WithID sets the session id. By default a random UUID is used.
func WithID(id string) Option {
	return func(w *Wizard) {
		if id != "" {
			w.id = id
		}
	}
}

// WithAPIURL sets the aggregates endpoint.
func WithAPIURL(url string) Option {
	return func(w *Wizard) {
		if url != "" {
			w.apiURL = url
		}
	}
}

// WithAPIKey sets the API key.
func WithAPIKey(key string) Option {
	return func(w *Wizard) {
		w.apiKey = key
	}
}

// WithReconciler replaces the default reconciler.
func WithReconciler(r *reconcile.Reconciler) Option {
	return func(w *Wizard) {
		if r != nil {
			w.reconciler = r
		}
	}
}

// New creates a wizard in the credentials state.
func New(store records.Store, fetcher Fetcher, opts ...Option) *Wizard {
	w := &Wizard{
		id:         uuid.NewString(),
		apiURL:     constants.DefaultAPIURL,
		state:      StateCredentials,
		fetcher:    fetcher,
		store:      store,
		reconciler: reconcile.New(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// ID returns the session id.
func (w *Wizard) ID() string {
	return w.id
}

// Snapshot is the externally visible state of a wizard. The API key is masked.
type Snapshot struct {
	ID            string           `json:"id" yaml:"id"`
	State         State            `json:"state" yaml:"state"`
	StateLabel    string           `json:"state_label" yaml:"state_label"`
	APIURL        string           `json:"api_url" yaml:"api_url"`
	APIKey        string           `json:"api_key" yaml:"api_key"`
	TemplateCount int              `json:"template_count" yaml:"template_count"`
	PreviewData   string           `json:"preview_data,omitempty" yaml:"preview_data,omitempty"`
	Imported      reconcile.Totals `json:"imported" yaml:"imported"`
}

// Snapshot returns the current state.
func (w *Wizard) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	return Snapshot{
		ID:            w.id,
		State:         w.state,
		StateLabel:    w.state.Label(),
		APIURL:        w.apiURL,
		APIKey:        formbuilder.MaskAPIKey(w.apiKey),
		TemplateCount: w.templateCount,
		PreviewData:   w.previewData,
		Imported:      w.totals,
	}
}

// State returns the current step.
func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}
