package reconcile

import "fmt"

// Result is the outcome of syncing one template.
type Result struct {
	// TemplateID is the local id of the synced template
	TemplateID int64 `json:"template_id" yaml:"template_id"`

	// Created counts questions that did not exist yet
	Created int `json:"created" yaml:"created"`

	// Updated counts matched questions whose fields changed
	Updated int `json:"updated" yaml:"updated"`

	// Unchanged counts matched questions that were not written
	Unchanged int `json:"unchanged" yaml:"unchanged"`

	// Collisions lists question texts that appear more than once in the payload
	Collisions []string `json:"collisions,omitempty" yaml:"collisions,omitempty"`
}

// HasChanges reports whether any question was written.
func (r *Result) HasChanges() bool {
	return r.Created > 0 || r.Updated > 0
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	s := fmt.Sprintf("%d created, %d updated, %d unchanged", r.Created, r.Updated, r.Unchanged)
	if len(r.Collisions) > 0 {
		s += fmt.Sprintf(", %d duplicate text(s)", len(r.Collisions))
	}
	return s
}

// Totals accumulates results over a batch of templates.
type Totals struct {
	Templates  int `json:"templates" yaml:"templates"`
	Created    int `json:"created" yaml:"created"`
	Updated    int `json:"updated" yaml:"updated"`
	Unchanged  int `json:"unchanged" yaml:"unchanged"`
	Collisions int `json:"collisions" yaml:"collisions"`
}

// Add folds r into the totals.
func (t *Totals) Add(r *Result) {
	if r == nil {
		return
	}
	t.Templates++
	t.Created += r.Created
	t.Updated += r.Updated
	t.Unchanged += r.Unchanged
	t.Collisions += len(r.Collisions)
}

// Summary returns a human-readable summary of the totals.
func (t Totals) Summary() string {
	s := fmt.Sprintf("%d template(s): %d created, %d updated, %d unchanged", t.Templates, t.Created, t.Updated, t.Unchanged)
	if t.Collisions > 0 {
		s += fmt.Sprintf(", %d duplicate text(s)", t.Collisions)
	}
	return s
}
