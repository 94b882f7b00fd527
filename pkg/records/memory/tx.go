package memory

import (
	"context"
	"strconv"

	"github.com/agentstation/formsync/pkg/errors"
	"github.com/agentstation/formsync/pkg/records"
)

type tx struct {
	store *Store
	state *state
	done  bool
}

// Ensure tx implements records.Tx
var _ records.Tx = (*tx)(nil)

func (t *tx) check(ctx context.Context) error {
	if t.done {
		return records.ErrTxDone
	}
	return ctx.Err()
}

func (t *tx) FindTemplate(ctx context.Context, key records.Key) (*records.Template, error) {
	if err := t.check(ctx); err != nil {
		return nil, err
	}
	for _, tpl := range t.state.templates {
		if tpl.Key() == key {
			found := tpl
			return &found, nil
		}
	}
	return nil, errors.NewNotFoundError("template", key.String())
}

func (t *tx) CreateTemplate(ctx context.Context, tpl *records.Template) error {
	if err := t.check(ctx); err != nil {
		return err
	}
	key := tpl.Key()
	for _, existing := range t.state.templates {
		if existing.Key() == key {
			return errors.NewAlreadyExistsError("template", key.String(), nil)
		}
	}

	t.state.nextTemplateID++
	tpl.ID = t.state.nextTemplateID

	stored := *tpl
	stored.Questions = nil
	t.state.templates[tpl.ID] = stored
	return nil
}

func (t *tx) UpdateTemplate(ctx context.Context, tpl *records.Template) error {
	if err := t.check(ctx); err != nil {
		return err
	}
	stored, ok := t.state.templates[tpl.ID]
	if !ok {
		return errors.NewNotFoundError("template", tpl.IDString())
	}
	stored.Name = tpl.Name
	stored.Author = tpl.Author
	stored.LastSync = tpl.LastSync
	t.state.templates[tpl.ID] = stored
	return nil
}

func (t *tx) Questions(ctx context.Context, templateID int64) ([]records.Question, error) {
	if err := t.check(ctx); err != nil {
		return nil, err
	}
	return t.state.questionsOf(templateID), nil
}

func (t *tx) CreateQuestion(ctx context.Context, q *records.Question) error {
	if err := t.check(ctx); err != nil {
		return err
	}
	if _, ok := t.state.templates[q.TemplateID]; !ok {
		return errors.NewNotFoundError("template", strconv.FormatInt(q.TemplateID, 10))
	}
	t.state.nextQuestionID++
	q.ID = t.state.nextQuestionID
	t.state.questions[q.ID] = *q
	return nil
}

func (t *tx) UpdateQuestion(ctx context.Context, q *records.Question) error {
	if err := t.check(ctx); err != nil {
		return err
	}
	stored, ok := t.state.questions[q.ID]
	if !ok {
		return errors.NewNotFoundError("question", strconv.FormatInt(q.ID, 10))
	}
	stored.Type = q.Type
	stored.AnswerCount = q.AnswerCount
	stored.AggregationData = q.AggregationData
	t.state.questions[q.ID] = stored
	return nil
}

func (t *tx) Commit() error {
	if t.done {
		return records.ErrTxDone
	}
	t.store.mu.Lock()
	t.store.state = t.state
	t.store.mu.Unlock()
	t.finish()
	return nil
}

func (t *tx) Rollback() error {
	if t.done {
		return nil
	}
	t.finish()
	return nil
}

func (t *tx) finish() {
	t.done = true
	<-t.store.sem
}
