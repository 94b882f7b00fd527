package wizard

import (
	"context"
	"fmt"

	"github.com/agentstation/formsync/pkg/actions"
	"github.com/agentstation/formsync/pkg/constants"
	"github.com/agentstation/formsync/pkg/errors"
	"github.com/agentstation/formsync/pkg/formbuilder"
	"github.com/agentstation/formsync/pkg/logging"
	"github.com/agentstation/formsync/pkg/records"
	"github.com/agentstation/formsync/pkg/reconcile"
)

const msgAlreadyDone = "Import already completed. Start a new import to sync again."

// TestConnection checks the key format, fetches the templates and keeps
// them as preview. On success the wizard moves to the preview step and the
// returned directive reopens it. The lock is not held during the fetch, so
// Snapshot stays responsive while the API is slow.
func (w *Wizard) TestConnection(ctx context.Context) (actions.Directive, error) {
	w.mu.Lock()
	if w.state == StateDone {
		w.mu.Unlock()
		return actions.Directive{}, errors.NewValidationError("state", StateDone, msgAlreadyDone)
	}
	if err := w.validateCredentials(); err != nil {
		w.mu.Unlock()
		return actions.Directive{}, err
	}
	url, key := w.apiURL, w.apiKey
	w.mu.Unlock()

	ctx = logging.WithOperation(logging.WithAPIURL(ctx, url), "test_connection")

	templates, err := w.fetcher.FetchTemplates(ctx, url, key)
	if err != nil {
		return actions.Directive{}, err
	}

	preview, err := formbuilder.EncodeTemplates(templates)
	if err != nil {
		return actions.Directive{}, errors.WrapParse("json", "preview", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	// An import may have finished while the fetch was in flight.
	if w.state == StateDone {
		return actions.Directive{}, errors.NewValidationError("state", StateDone, msgAlreadyDone)
	}

	w.previewData = string(preview)
	w.templateCount = len(templates)
	w.state = StatePreview

	logging.FromContext(ctx).Info().
		Int("templates", w.templateCount).
		Msg("Connection test succeeded")

	return actions.Reopen(actions.ModelWizard, w.id), nil
}

func (w *Wizard) validateCredentials() error {
	if w.apiURL == "" {
		return errors.NewValidationError("api_url", "", "API URL is required")
	}
	return formbuilder.ValidateAPIKey(w.apiKey)
}

// Import writes the previewed templates in a single transaction. Any
// failure rolls back the whole batch and is reported as an import error.
func (w *Wizard) Import(ctx context.Context) (actions.Directive, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state == StateDone {
		return actions.Directive{}, errors.NewValidationError("state", w.state, msgAlreadyDone)
	}
	if w.previewData == "" {
		return actions.Directive{}, errors.NewValidationError("preview_data", nil, errors.MsgNoPreview)
	}

	ctx = logging.WithOperation(logging.WithAPIURL(ctx, w.apiURL), "import")
	logger := logging.FromContext(ctx)

	totals, err := w.importPreview(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Import failed, nothing was saved")
		return actions.Directive{}, err
	}

	w.totals = totals
	w.state = StateDone

	logger.Info().
		Int("templates", totals.Templates).
		Int("created", totals.Created).
		Int("updated", totals.Updated).
		Int("unchanged", totals.Unchanged).
		Msg("Import complete")

	message := fmt.Sprintf("Successfully imported %d template(s)", totals.Templates)
	return actions.Notification("Import Complete", message, actions.LevelSuccess), nil
}

func (w *Wizard) importPreview(ctx context.Context) (reconcile.Totals, error) {
	var totals reconcile.Totals

	templates, err := formbuilder.DecodeTemplates([]byte(w.previewData))
	if err != nil {
		return totals, errors.NewSyncError(0, err)
	}

	tx, err := w.store.Begin(ctx)
	if err != nil {
		return totals, errors.NewSyncError(0, err)
	}
	defer tx.Rollback() //nolint:errcheck

	for i := range templates {
		payload := &templates[i]
		result, err := w.importOne(ctx, tx, payload)
		if err != nil {
			return reconcile.Totals{}, errors.NewSyncError(payload.ID, err)
		}
		totals.Add(result)
	}

	if err := tx.Commit(); err != nil {
		return reconcile.Totals{}, errors.NewSyncError(0, err)
	}
	return totals, nil
}

// importOne finds or creates the local template for payload, then syncs it.
func (w *Wizard) importOne(ctx context.Context, tx records.Tx, payload *formbuilder.Template) (*reconcile.Result, error) {
	key := records.Key{ExternalID: payload.ID, APIURL: w.apiURL}

	tpl, err := tx.FindTemplate(ctx, key)
	switch {
	case errors.IsNotFound(err):
		tpl = &records.Template{
			Name:       payload.TitleOr(constants.DefaultTemplateTitle),
			Author:     payload.AuthorOr(constants.DefaultTemplateAuthor),
			ExternalID: key.ExternalID,
			APIURL:     key.APIURL,
		}
		if err := tx.CreateTemplate(ctx, tpl); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	}

	return w.reconciler.Sync(ctx, tx, tpl, w.apiKey, payload)
}

// ViewTemplates opens the template list.
func (w *Wizard) ViewTemplates() actions.Directive {
	return ViewTemplates()
}

// ViewTemplates opens the template list.
func ViewTemplates() actions.Directive {
	return actions.Window(actions.ModelTemplate, actions.ViewList, actions.TargetCurrent)
}

// ViewQuestions opens the question list of one template.
func ViewQuestions(templateID int64) actions.Directive {
	d := actions.Window(actions.ModelQuestion, actions.ViewList, actions.TargetCurrent)
	d.Title = "Questions"
	return d.Filtered("template_id", templateID)
}
