package logging

import (
	"context"

	"github.com/rs/zerolog"
)

type (
	loggerKey    struct{}
	requestIDKey struct{}
)

// WithLogger stores logger in ctx. A nil logger stores the default.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger in ctx, falling back to the default.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if logger, _ := ctx.Value(loggerKey{}).(*zerolog.Logger); logger != nil {
			return logger
		}
	}
	return Default()
}

// WithRequestID records the request id in ctx and tags its logger.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	ctx = context.WithValue(ctx, requestIDKey{}, requestID)
	return WithField(ctx, "request_id", requestID)
}

// RequestID returns the request id of ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// WithField returns ctx with its logger tagged with key.
func WithField(ctx context.Context, key string, value any) context.Context {
	logger := FromContext(ctx).With().Fields(map[string]any{key: value}).Logger()
	return WithLogger(ctx, &logger)
}

// WithTemplate tags the logger with a remote template id.
func WithTemplate(ctx context.Context, externalID int) context.Context {
	return WithField(ctx, "template_id", externalID)
}

// WithAPIURL tags the logger with the FormBuilder endpoint.
func WithAPIURL(ctx context.Context, apiURL string) context.Context {
	return WithField(ctx, "api_url", apiURL)
}

// WithOperation tags the logger with the running operation.
func WithOperation(ctx context.Context, operation string) context.Context {
	return WithField(ctx, "operation", operation)
}
