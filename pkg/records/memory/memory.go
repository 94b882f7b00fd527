// Package memory provides an in-memory records.Store.
//
// Transactions work on a private copy of the data. Commit swaps the copy in,
// Rollback drops it. Only one transaction is open at a time; Begin waits for
// the current one to finish or for its context to end.
package memory

import (
	"context"
	"maps"
	"slices"
	"strconv"
	"sync"

	"github.com/agentstation/formsync/pkg/errors"
	"github.com/agentstation/formsync/pkg/records"
)

// Store is an in-memory record store.
type Store struct {
	mu    sync.RWMutex
	state *state

	// sem holds a token while a transaction is open
	sem chan struct{}
}

// New creates an empty store.
func New() *Store {
	return &Store{
		state: newState(),
		sem:   make(chan struct{}, 1),
	}
}

// Ensure Store implements records.Store
var _ records.Store = (*Store)(nil)

type state struct {
	nextTemplateID int64
	nextQuestionID int64
	templates      map[int64]records.Template // stored without questions
	questions      map[int64]records.Question
}

func newState() *state {
	return &state{
		templates: make(map[int64]records.Template),
		questions: make(map[int64]records.Question),
	}
}

func (s *state) clone() *state {
	return &state{
		nextTemplateID: s.nextTemplateID,
		nextQuestionID: s.nextQuestionID,
		templates:      maps.Clone(s.templates),
		questions:      maps.Clone(s.questions),
	}
}

// questionsOf returns the questions of a template ordered by id.
func (s *state) questionsOf(templateID int64) []records.Question {
	var out []records.Question
	for _, q := range s.questions {
		if q.TemplateID == templateID {
			out = append(out, q)
		}
	}
	slices.SortFunc(out, func(a, b records.Question) int {
		return compareID(a.ID, b.ID)
	})
	return out
}

func (s *state) withQuestions(id int64) (*records.Template, bool) {
	t, ok := s.templates[id]
	if !ok {
		return nil, false
	}
	t.Questions = s.questionsOf(id)
	return &t, true
}

func compareID(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Templates lists all templates, newest first.
func (s *Store) Templates(ctx context.Context) ([]records.Template, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := slices.Sorted(maps.Keys(s.state.templates))
	slices.Reverse(ids)
	out := make([]records.Template, 0, len(ids))
	for _, id := range ids {
		t, _ := s.state.withQuestions(id)
		out = append(out, *t)
	}
	return out, nil
}

// Template returns one template with its questions.
func (s *Store) Template(ctx context.Context, id int64) (*records.Template, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.state.withQuestions(id)
	if !ok {
		return nil, errors.NewNotFoundError("template", strconv.FormatInt(id, 10))
	}
	return t, nil
}

// Questions lists the questions of a template.
func (s *Store) Questions(ctx context.Context, templateID int64) ([]records.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.state.templates[templateID]; !ok {
		return nil, errors.NewNotFoundError("template", strconv.FormatInt(templateID, 10))
	}
	return s.state.questionsOf(templateID), nil
}

// DeleteTemplate removes a template and its questions.
func (s *Store) DeleteTemplate(ctx context.Context, id int64) error {
	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	if _, ok := tx.state.templates[id]; !ok {
		return errors.NewNotFoundError("template", strconv.FormatInt(id, 10))
	}
	delete(tx.state.templates, id)
	for qid, q := range tx.state.questions {
		if q.TemplateID == id {
			delete(tx.state.questions, qid)
		}
	}
	return tx.Commit()
}

// Begin starts a transaction on a copy of the committed data.
func (s *Store) Begin(ctx context.Context) (records.Tx, error) {
	return s.begin(ctx)
}

func (s *Store) begin(ctx context.Context) (*tx, error) {
	select {
	case s.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	s.mu.RLock()
	snapshot := s.state.clone()
	s.mu.RUnlock()

	return &tx{store: s, state: snapshot}, nil
}
