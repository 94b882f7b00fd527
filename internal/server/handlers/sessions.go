package handlers

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/agentstation/formsync/pkg/constants"
	"github.com/agentstation/formsync/pkg/wizard"
)

// Sessions holds the wizard sessions started through the API, keyed by id.
// A session expires once it has gone unused for the configured TTL.
type Sessions struct {
	store *gocache.Cache
	ttl   time.Duration
}

// NewSessions creates an empty registry with the default session TTL.
func NewSessions() *Sessions {
	return NewSessionsWithTTL(constants.WizardSessionTTL, constants.WizardSessionCleanup)
}

// NewSessionsWithTTL creates an empty registry. cleanupInterval is how often
// expired sessions are removed from memory.
func NewSessionsWithTTL(ttl, cleanupInterval time.Duration) *Sessions {
	return &Sessions{
		store: gocache.New(ttl, cleanupInterval),
		ttl:   ttl,
	}
}

// Add registers w under its id.
func (s *Sessions) Add(w *wizard.Wizard) {
	s.store.Set(w.ID(), w, gocache.DefaultExpiration)
}

// Get returns the session with the given id and extends its lifetime.
func (s *Sessions) Get(id string) (*wizard.Wizard, bool) {
	v, ok := s.store.Get(id)
	if !ok {
		return nil, false
	}
	w, ok := v.(*wizard.Wizard)
	if !ok {
		return nil, false
	}
	s.store.Set(id, w, s.ttl)
	return w, true
}

// Len returns the number of sessions, including expired ones not yet
// cleaned up.
func (s *Sessions) Len() int {
	return s.store.ItemCount()
}
