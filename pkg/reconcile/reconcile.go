// Package reconcile syncs a FormBuilder template payload into local records.
//
// A sync overwrites the template header, then walks the incoming questions
// and matches each one to an existing question of the template by exact
// text. Matches are updated in place, everything else is created. Nothing
// is ever deleted: questions missing from the payload stay as they are.
//
// Text is the only merge key. Two incoming questions with the same text
// land on the same record (the later one wins) and a reworded question is
// a new record. Collisions are logged and reported in the Result.
package reconcile

import (
	"context"
	"strconv"

	"github.com/agentstation/utc"

	"github.com/agentstation/formsync/pkg/errors"
	"github.com/agentstation/formsync/pkg/formbuilder"
	"github.com/agentstation/formsync/pkg/logging"
	"github.com/agentstation/formsync/pkg/records"
)

// Reconciler applies template payloads through a transaction.
type Reconciler struct {
	now func() utc.Time
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithClock sets the clock used for last sync timestamps.
func WithClock(now func() utc.Time) Option {
	return func(r *Reconciler) {
		if now != nil {
			r.now = now
		}
	}
}

// New creates a Reconciler.
func New(opts ...Option) *Reconciler {
	r := &Reconciler{now: utc.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Sync writes payload into tpl and its questions. tpl must already exist
// in tx. The API key is only used for the debug log, masked.
func (r *Reconciler) Sync(ctx context.Context, tx records.Tx, tpl *records.Template, apiKey string, payload *formbuilder.Template) (*Result, error) {
	logger := logging.FromContext(logging.WithTemplate(ctx, tpl.ExternalID))
	logger.Debug().
		Int64("local_id", tpl.ID).
		Str("api_key", formbuilder.MaskAPIKey(apiKey)).
		Int("questions", len(payload.Questions)).
		Msg("Syncing template")

	tpl.Name = payload.TitleOr(tpl.Name)
	tpl.Author = payload.AuthorOr(tpl.Author)
	tpl.LastSync = r.now()
	if err := tx.UpdateTemplate(ctx, tpl); err != nil {
		return nil, errors.WrapResource("update", "template", tpl.IDString(), err)
	}

	existing, err := tx.Questions(ctx, tpl.ID)
	if err != nil {
		return nil, errors.WrapResource("list", "question", tpl.IDString(), err)
	}

	byText := make(map[string]*records.Question, len(existing))
	for i := range existing {
		byText[existing[i].Text] = &existing[i]
	}

	result := &Result{TemplateID: tpl.ID}
	seen := make(map[string]int, len(payload.Questions))

	for _, incoming := range payload.Questions {
		seen[incoming.Text]++
		if seen[incoming.Text] == 2 {
			result.Collisions = append(result.Collisions, incoming.Text)
			logger.Warn().
				Str("text", incoming.Text).
				Msg("Payload repeats question text, later entry overwrites earlier one")
		}

		candidate := records.Question{
			TemplateID:      tpl.ID,
			Text:            incoming.Text,
			Type:            incoming.Type,
			AnswerCount:     incoming.AnswerCount,
			AggregationData: incoming.AggregationString(),
		}
		if candidate.Type == "" {
			candidate.Type = formbuilder.QuestionTypeString
		}

		match, ok := byText[incoming.Text]
		switch {
		case !ok:
			if err := tx.CreateQuestion(ctx, &candidate); err != nil {
				return nil, errors.WrapResource("create", "question", incoming.Text, err)
			}
			byText[candidate.Text] = &candidate
			result.Created++
		case match.SameContent(&candidate):
			result.Unchanged++
		default:
			match.Type = candidate.Type
			match.AnswerCount = candidate.AnswerCount
			match.AggregationData = candidate.AggregationData
			if err := tx.UpdateQuestion(ctx, match); err != nil {
				return nil, errors.WrapResource("update", "question", strconv.FormatInt(match.ID, 10), err)
			}
			result.Updated++
		}
	}

	logger.Debug().
		Int("created", result.Created).
		Int("updated", result.Updated).
		Int("unchanged", result.Unchanged).
		Msg("Template synced")

	return result, nil
}
