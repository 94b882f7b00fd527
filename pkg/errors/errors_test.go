package errors_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/formsync/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestSentinels(t *testing.T) {
	sentinels := []error{
		pkgerrors.ErrNotFound,
		pkgerrors.ErrAlreadyExists,
		pkgerrors.ErrInvalidInput,
		pkgerrors.ErrAPIKeyInvalid,
		pkgerrors.ErrRateLimited,
		pkgerrors.ErrUnavailable,
		pkgerrors.ErrTimeout,
		pkgerrors.ErrConnection,
		pkgerrors.ErrCanceled,
	}
	seen := make(map[string]bool)
	for _, s := range sentinels {
		require.NotNil(t, s)
		assert.False(t, seen[s.Error()], "duplicate sentinel %q", s)
		seen[s.Error()] = true
		for _, other := range sentinels {
			if other != s {
				assert.False(t, errors.Is(s, other), "%q matches %q", s, other)
			}
		}
	}
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "template",
			ID:       "42",
		}
		assert.Equal(t, "template with ID 42 not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("question", "7")
		wrapped := fmt.Errorf("lookup: %w", base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestAlreadyExistsError(t *testing.T) {
	base := errors.New("UNIQUE constraint failed")
	err := pkgerrors.NewAlreadyExistsError("template", "3@http://example.com", base)
	assert.Contains(t, err.Error(), "3@http://example.com")
	assert.True(t, pkgerrors.IsAlreadyExists(err))
	assert.Equal(t, base, err.Unwrap())
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "api_key",
			Message: "cannot be empty",
		}
		assert.Equal(t, "validation failed for field api_key: cannot be empty", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := pkgerrors.NewValidationError("", nil, "invalid configuration")
		assert.Equal(t, "validation failed: invalid configuration", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})
}

func TestAPIError(t *testing.T) {
	t.Run("rate limited", func(t *testing.T) {
		err := pkgerrors.NewAPIError("http://fb/api", 429, "slow down")
		assert.Contains(t, err.Error(), "429")
		assert.True(t, pkgerrors.IsRateLimited(err))
	})

	t.Run("server error", func(t *testing.T) {
		err := pkgerrors.NewAPIError("http://fb/api", 503, "maintenance")
		assert.True(t, errors.Is(err, pkgerrors.ErrUnavailable))
		assert.False(t, pkgerrors.IsRateLimited(err))
	})

	t.Run("without status", func(t *testing.T) {
		base := errors.New("boom")
		err := &pkgerrors.APIError{Endpoint: "http://fb/api", Message: "request failed", Err: base}
		assert.NotContains(t, err.Error(), "status")
		assert.Equal(t, base, err.Unwrap())
	})
}

func TestNetworkErrors(t *testing.T) {
	timeout := &pkgerrors.TimeoutError{Operation: "fetch templates", Duration: "10s", Message: "no answer"}
	assert.Contains(t, timeout.Error(), "after 10s")
	assert.True(t, pkgerrors.IsTimeout(timeout))

	conn := pkgerrors.NewConnectionError("http://fb/api", errors.New("connection refused"))
	assert.Contains(t, conn.Error(), "connection refused")
	assert.True(t, pkgerrors.IsConnection(conn))
	assert.False(t, pkgerrors.IsTimeout(conn))
}

func TestSyncError(t *testing.T) {
	base := errors.New("disk full")
	err := pkgerrors.NewSyncError(12, base)
	assert.Contains(t, err.Error(), "template 12")
	assert.Equal(t, base, err.Unwrap())

	assert.Equal(t, "sync error: disk full", pkgerrors.NewSyncError(0, base).Error())
}

func TestWrapHelpers(t *testing.T) {
	assert.Nil(t, pkgerrors.WrapValidation("field", nil))
	assert.Nil(t, pkgerrors.WrapResource("create", "template", "1", nil))
	assert.Nil(t, pkgerrors.WrapParse("json", "response", nil))

	err := pkgerrors.WrapResource("update", "question", "9", errors.New("locked"))
	var resErr *pkgerrors.ResourceError
	require.True(t, errors.As(err, &resErr))
	assert.Equal(t, "update", resErr.Operation)
	assert.Equal(t, "question", resErr.Resource)

	err = pkgerrors.WrapParse("json", "response", errors.New("unexpected EOF"))
	var parseErr *pkgerrors.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "parse error in json response: unexpected EOF", parseErr.Error())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		kind    pkgerrors.Kind
		message string
	}{
		{
			name:    "key format",
			err:     pkgerrors.NewValidationError("api_key", "xx", pkgerrors.MsgInvalidKeyFormat),
			kind:    pkgerrors.KindValidation,
			message: `Invalid API key format. API key should start with "FB_"`,
		},
		{
			name:    "unauthorized",
			err:     pkgerrors.NewAuthenticationError("http://fb", "api_key", "rejected", nil),
			kind:    pkgerrors.KindAuthorization,
			message: "Invalid API key. Please check your credentials.",
		},
		{
			name:    "rate limited",
			err:     pkgerrors.NewAPIError("http://fb", http.StatusTooManyRequests, "later"),
			kind:    pkgerrors.KindThrottling,
			message: "Rate limit exceeded. Please try again later.",
		},
		{
			name:    "generic api",
			err:     pkgerrors.NewAPIError("http://fb", http.StatusInternalServerError, "oops"),
			kind:    pkgerrors.KindAPI,
			message: "API error: 500 - oops",
		},
		{
			name:    "timeout",
			err:     pkgerrors.NewTimeoutError("fetch", "10s", "deadline exceeded"),
			kind:    pkgerrors.KindTimeout,
			message: "Connection timeout. Please check the API URL.",
		},
		{
			name:    "connection",
			err:     pkgerrors.NewConnectionError("http://fb", errors.New("refused")),
			kind:    pkgerrors.KindConnection,
			message: "Cannot connect to API. Please check the URL and your network.",
		},
		{
			name:    "data",
			err:     pkgerrors.NewParseError("json", "response", "unexpected EOF", nil),
			kind:    pkgerrors.KindData,
			message: "Error parsing data: unexpected EOF",
		},
		{
			name:    "conflict",
			err:     pkgerrors.NewAlreadyExistsError("template", "1@x", nil),
			kind:    pkgerrors.KindConflict,
			message: "A template with this ID already exists for this API URL!",
		},
		{
			name:    "not found",
			err:     pkgerrors.NewNotFoundError("template", "5"),
			kind:    pkgerrors.KindNotFound,
			message: "template 5 not found",
		},
		{
			name:    "import failure",
			err:     pkgerrors.NewSyncError(3, pkgerrors.NewParseError("json", "preview", "bad", nil)),
			kind:    pkgerrors.KindData,
			message: "Import error: Error parsing data: bad",
		},
		{
			name:    "import failure without detail",
			err:     pkgerrors.NewSyncError(3, errors.New("disk full")),
			kind:    pkgerrors.KindInternal,
			message: "Import error: disk full",
		},
		{
			name:    "canceled",
			err:     fmt.Errorf("fetch: %w", context.Canceled),
			kind:    pkgerrors.KindCanceled,
			message: "Operation canceled",
		},
		{
			name:    "unknown",
			err:     errors.New("something odd"),
			kind:    pkgerrors.KindInternal,
			message: "Error: something odd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := pkgerrors.Classify(tt.err)
			assert.Equal(t, tt.kind, c.Kind)
			assert.Equal(t, tt.message, c.Message)
		})
	}

	t.Run("nil", func(t *testing.T) {
		assert.Equal(t, pkgerrors.Classification{}, pkgerrors.Classify(nil))
	})
}

func TestKindHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, pkgerrors.KindValidation.HTTPStatus())
	assert.Equal(t, http.StatusUnauthorized, pkgerrors.KindAuthorization.HTTPStatus())
	assert.Equal(t, http.StatusTooManyRequests, pkgerrors.KindThrottling.HTTPStatus())
	assert.Equal(t, http.StatusConflict, pkgerrors.KindConflict.HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, pkgerrors.KindInternal.HTTPStatus())
}
