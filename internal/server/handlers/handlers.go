// Package handlers provides HTTP request handlers for the formsync API.
package handlers

import (
	"strconv"

	"github.com/rs/zerolog"

	"github.com/agentstation/formsync/pkg/errors"
	"github.com/agentstation/formsync/pkg/records"
	"github.com/agentstation/formsync/pkg/wizard"
)

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	store    records.Store
	fetcher  wizard.Fetcher
	sessions *Sessions
	logger   *zerolog.Logger
}

// New creates a new Handlers instance.
func New(store records.Store, fetcher wizard.Fetcher, sessions *Sessions, logger *zerolog.Logger) *Handlers {
	if sessions == nil {
		sessions = NewSessions()
	}
	return &Handlers{
		store:    store,
		fetcher:  fetcher,
		sessions: sessions,
		logger:   logger,
	}
}

// Sessions returns the wizard session registry.
func (h *Handlers) Sessions() *Sessions {
	return h.sessions
}

// parseID parses a positive record id from a path parameter.
func parseID(field, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewValidationError(field, raw, "must be a positive integer")
	}
	return id, nil
}
