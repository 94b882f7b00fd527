package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agentstation/formsync/internal/server/response"
	"github.com/agentstation/formsync/pkg/logging"
	"github.com/agentstation/formsync/pkg/records"
)

// TemplateDetail is a template with the display form of its questions.
type TemplateDetail struct {
	records.Summary
	Questions []records.View `json:"questions"`
}

// HandleListTemplates handles GET /api/v1/templates.
func (h *Handlers) HandleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.store.Templates(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	summaries := make([]records.Summary, len(templates))
	for i := range templates {
		summaries[i] = templates[i].Summarize()
	}

	response.OK(w, r, map[string]any{
		"templates": summaries,
		"count":     len(summaries),
	})
}

// HandleGetTemplate handles GET /api/v1/templates/{id}.
func (h *Handlers) HandleGetTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID("id", chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	tpl, err := h.store.Template(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.OK(w, r, TemplateDetail{
		Summary:   tpl.Summarize(),
		Questions: views(tpl.Questions),
	})
}

// HandleListQuestions handles GET /api/v1/templates/{id}/questions.
func (h *Handlers) HandleListQuestions(w http.ResponseWriter, r *http.Request) {
	id, err := parseID("id", chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	questions, err := h.store.Questions(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.OK(w, r, map[string]any{
		"questions": views(questions),
		"count":     len(questions),
	})
}

func views(questions []records.Question) []records.View {
	out := make([]records.View, len(questions))
	for i, q := range questions {
		out[i] = records.NewView(q)
	}
	return out
}

// fail logs err with the request logger and writes the mapped error response.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	logging.FromContext(r.Context()).Warn().Err(err).Msg("Request failed")
	response.FromError(w, r, err)
}
