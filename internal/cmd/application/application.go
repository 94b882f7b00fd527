// Package application provides the application interface for formsync commands.
//
// Commands accept this interface rather than the concrete App type, which
// keeps them testable with Mock:
//
//	mock := &application.Mock{
//	    StoreFunc: func(context.Context) (records.Store, error) {
//	        return memory.New(), nil
//	    },
//	}
//	cmd := list.NewTemplatesCommand(mock)
package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/formsync/pkg/records"
	"github.com/agentstation/formsync/pkg/wizard"
)

// Application provides what commands need from the app.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Store returns the local record store, opening it on first use.
	Store(ctx context.Context) (records.Store, error)

	// Fetcher returns the FormBuilder API client.
	Fetcher() wizard.Fetcher

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml).
	OutputFormat() string

	// APIURL returns the configured aggregates endpoint.
	APIURL() string

	// APIKey returns the configured FormBuilder API key.
	APIKey() string

	// ServerAddr returns the configured listen address of the HTTP server.
	ServerAddr() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
