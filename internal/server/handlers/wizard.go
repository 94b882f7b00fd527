package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/agentstation/formsync/internal/server/response"
	"github.com/agentstation/formsync/pkg/actions"
	"github.com/agentstation/formsync/pkg/errors"
	"github.com/agentstation/formsync/pkg/logging"
	"github.com/agentstation/formsync/pkg/wizard"
)

// StartWizardRequest is the body of POST /api/v1/wizard.
type StartWizardRequest struct {
	APIURL string `json:"api_url"`
	APIKey string `json:"api_key"`
}

// ActionResult is the answer to a wizard step: what the UI should do next
// and the wizard as it is after the step.
type ActionResult struct {
	Action actions.Directive `json:"action"`
	Wizard wizard.Snapshot   `json:"wizard"`
}

// HandleStartWizard handles POST /api/v1/wizard.
func (h *Handlers) HandleStartWizard(w http.ResponseWriter, r *http.Request) {
	var req StartWizardRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, r, "Invalid request body", err.Error())
		return
	}

	wz := wizard.New(h.store, h.fetcher,
		wizard.WithAPIURL(req.APIURL),
		wizard.WithAPIKey(req.APIKey),
	)
	h.sessions.Add(wz)

	logging.FromContext(r.Context()).Info().
		Str("wizard_id", wz.ID()).
		Msg("Import wizard started")

	response.Created(w, r, wz.Snapshot())
}

// HandleGetWizard handles GET /api/v1/wizard/{id}.
func (h *Handlers) HandleGetWizard(w http.ResponseWriter, r *http.Request) {
	wz, ok := h.session(w, r)
	if !ok {
		return
	}
	response.OK(w, r, wz.Snapshot())
}

// HandleTestConnection handles POST /api/v1/wizard/{id}/test-connection.
func (h *Handlers) HandleTestConnection(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, (*wizard.Wizard).TestConnection)
}

// HandleImport handles POST /api/v1/wizard/{id}/import.
func (h *Handlers) HandleImport(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, (*wizard.Wizard).Import)
}

// step runs one wizard action. Failures answer with an error dialog and the
// status of the error kind.
func (h *Handlers) step(w http.ResponseWriter, r *http.Request, run func(*wizard.Wizard, context.Context) (actions.Directive, error)) {
	wz, ok := h.session(w, r)
	if !ok {
		return
	}

	ctx := logging.WithField(r.Context(), "wizard_id", wz.ID())
	directive, err := run(wz, ctx)
	if err != nil {
		logging.FromContext(ctx).Error().Err(err).Msg("Wizard step failed")
		response.Dialog(w, r, err)
		return
	}

	response.OK(w, r, ActionResult{Action: directive, Wizard: wz.Snapshot()})
}

func (h *Handlers) session(w http.ResponseWriter, r *http.Request) (*wizard.Wizard, bool) {
	id := chi.URLParam(r, "id")
	wz, ok := h.sessions.Get(id)
	if !ok {
		response.FromError(w, r, errors.NewNotFoundError("wizard", id))
		return nil, false
	}
	return wz, true
}
