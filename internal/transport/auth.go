package transport

import (
	"net/http"

	"github.com/agentstation/formsync/pkg/constants"
)

// Authenticator puts an API key on an outgoing request.
type Authenticator interface {
	Apply(req *http.Request, apiKey string)
}

// AuthFunc adapts a function to Authenticator.
type AuthFunc func(req *http.Request, apiKey string)

// Apply calls f.
func (f AuthFunc) Apply(req *http.Request, apiKey string) { f(req, apiKey) }

// NoAuth leaves requests untouched.
var NoAuth Authenticator = AuthFunc(func(*http.Request, string) {})

// HeaderAuth sends the key verbatim in the named header.
func HeaderAuth(header string) Authenticator {
	return AuthFunc(func(req *http.Request, apiKey string) {
		req.Header.Set(header, apiKey)
	})
}

// NewAPIKeyAuth returns the header authentication FormBuilder expects.
func NewAPIKeyAuth() Authenticator {
	return HeaderAuth(constants.APIKeyHeader)
}
