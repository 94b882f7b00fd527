package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/formsync/pkg/constants"
	"github.com/agentstation/formsync/pkg/records"
	"github.com/agentstation/formsync/pkg/wizard"
)

// Mock is an Application for tests. Each method calls the matching func
// field when it is set and returns a fixed default otherwise.
type Mock struct {
	StoreFunc        func(ctx context.Context) (records.Store, error)
	FetcherFunc      func() wizard.Fetcher
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	APIURLFunc       func() string
	APIKeyFunc       func() string
	ServerAddrFunc   func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

func (m *Mock) Store(ctx context.Context) (records.Store, error) {
	if m.StoreFunc == nil {
		return nil, nil
	}
	return m.StoreFunc(ctx)
}

func (m *Mock) Fetcher() wizard.Fetcher {
	if m.FetcherFunc == nil {
		return nil
	}
	return m.FetcherFunc()
}

// Logger defaults to a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return m.LoggerFunc()
}

// OutputFormat defaults to "table".
func (m *Mock) OutputFormat() string { return call(m.OutputFormatFunc, "table") }

func (m *Mock) APIURL() string { return call(m.APIURLFunc, constants.DefaultAPIURL) }

func (m *Mock) APIKey() string { return call(m.APIKeyFunc, "") }

func (m *Mock) ServerAddr() string { return call(m.ServerAddrFunc, constants.DefaultServerAddr) }

// Version defaults to "dev", the build fields to "unknown".
func (m *Mock) Version() string { return call(m.VersionFunc, "dev") }

func (m *Mock) Commit() string { return call(m.CommitFunc, "unknown") }

func (m *Mock) Date() string { return call(m.DateFunc, "unknown") }

func (m *Mock) BuiltBy() string { return call(m.BuiltByFunc, "unknown") }

// call returns fn() when fn is set, otherwise fallback.
func call(fn func() string, fallback string) string {
	if fn == nil {
		return fallback
	}
	return fn()
}

var _ Application = (*Mock)(nil)
