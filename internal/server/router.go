package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/agentstation/formsync/internal/server/middleware"
	"github.com/agentstation/formsync/internal/server/response"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	h := s.handlers

	r := chi.NewRouter()
	r.Use(chimw.RequestID, middleware.Logger(s.logger), chimw.Recoverer)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, r, "Not found", "No route for "+r.URL.Path)
	})
	r.MethodNotAllowed(response.MethodNotAllowed)

	// Favicon handler (return 204 No Content to avoid 404 logs)
	r.Get("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.Get("/health", h.HandleHealth)

	r.Route(s.config.PathPrefix, func(r chi.Router) {
		r.Get("/health", h.HandleHealth)
		r.Get("/ready", h.HandleReady)

		r.Route("/templates", func(r chi.Router) {
			r.Get("/", h.HandleListTemplates)
			r.Get("/{id}", h.HandleGetTemplate)
			r.Get("/{id}/questions", h.HandleListQuestions)
		})

		r.Route("/wizard", func(r chi.Router) {
			r.Post("/", h.HandleStartWizard)
			r.Get("/{id}", h.HandleGetWizard)
			r.Post("/{id}/test-connection", h.HandleTestConnection)
			r.Post("/{id}/import", h.HandleImport)
		})
	})

	return r
}
