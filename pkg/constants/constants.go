// Package constants provides shared constants used throughout the formsync codebase.
// This includes timeouts, API conventions, file permissions, and other values
// that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the timeout for requests to the FormBuilder API.
	// Requests are never retried.
	DefaultHTTPTimeout = 10 * time.Second

	// ShutdownTimeout bounds graceful shutdown of the HTTP server
	ShutdownTimeout = 5 * time.Second

	// ServerReadTimeout is the read timeout of the local HTTP server
	ServerReadTimeout = 10 * time.Second

	// ServerWriteTimeout is the write timeout of the local HTTP server
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the idle timeout of the local HTTP server
	ServerIdleTimeout = time.Minute
)

// FormBuilder API conventions
const (
	// APIKeyPrefix is the prefix every FormBuilder API key starts with
	APIKeyPrefix = "FB_"

	// APIKeyHeader is the request header carrying the API key
	APIKeyHeader = "X-API-Key"

	// DefaultAPIURL is the aggregates endpoint used when none is configured
	DefaultAPIURL = "http://localhost:5175/api/v1/templates/aggregates"

	// DefaultTemplateTitle is used for new templates whose payload has no title
	DefaultTemplateTitle = "Untitled"

	// DefaultTemplateAuthor is used for new templates whose payload has no author
	DefaultTemplateAuthor = "Unknown"

	// MaxTopAnswers is the number of top answers shown for text questions
	MaxTopAnswers = 5
)

// Database defaults
const (
	// DefaultDBPath is the SQLite database file used when none is configured
	DefaultDBPath = "formsync.sqlite"

	// MaxOpenConns caps open SQLite connections
	MaxOpenConns = 20

	// MaxIdleConns caps idle SQLite connections
	MaxIdleConns = 10

	// ConnMaxIdleTime closes idle connections after this duration
	ConnMaxIdleTime = 5 * time.Minute

	// ConnMaxLifetime recycles connections after this duration
	ConnMaxLifetime = 2 * time.Hour
)

// Server defaults
const (
	// DefaultServerAddr is the listen address of the read-only HTTP server
	DefaultServerAddr = ":8080"

	// APIPathPrefix is the prefix for all versioned API routes
	APIPathPrefix = "/api/v1"

	// WizardSessionTTL expires wizard sessions left idle this long
	WizardSessionTTL = 30 * time.Minute

	// WizardSessionCleanup is how often expired wizard sessions are dropped
	WizardSessionCleanup = 5 * time.Minute
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)
