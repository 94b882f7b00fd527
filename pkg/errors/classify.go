package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Kind is the user-facing category of an error.
type Kind string

// Error kinds, one per row of the error taxonomy.
const (
	KindValidation    Kind = "validation"
	KindAuthorization Kind = "authorization"
	KindThrottling    Kind = "throttling"
	KindAPI           Kind = "api"
	KindTimeout       Kind = "timeout"
	KindConnection    Kind = "connection"
	KindData          Kind = "data"
	KindNotFound      Kind = "not_found"
	KindConflict      Kind = "conflict"
	KindCanceled      Kind = "canceled"
	KindInternal      Kind = "internal"
)

// User-facing messages for the remote API failures.
const (
	MsgInvalidKeyFormat = `Invalid API key format. API key should start with "FB_"`
	MsgInvalidKey       = "Invalid API key. Please check your credentials."
	MsgRateLimited      = "Rate limit exceeded. Please try again later."
	MsgTimeout          = "Connection timeout. Please check the API URL."
	MsgConnection       = "Cannot connect to API. Please check the URL and your network."
	MsgDuplicate        = "A template with this ID already exists for this API URL!"
	MsgNoPreview        = "No data to import. Please test connection first."
)

// Classification is the result of classifying an error.
type Classification struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Classify maps an error to its kind and a human-readable message.
// It has no side effects; presentation is left to the caller.
func Classify(err error) Classification {
	if err == nil {
		return Classification{}
	}

	var syncErr *SyncError
	if errors.As(err, &syncErr) {
		inner := Classify(syncErr.Err)
		if inner.Kind == KindInternal {
			inner.Message = syncErr.Err.Error()
		}
		inner.Message = "Import error: " + inner.Message
		return inner
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return Classification{Kind: KindValidation, Message: validationErr.Message}
	}

	var authErr *AuthenticationError
	if errors.As(err, &authErr) {
		return Classification{Kind: KindAuthorization, Message: MsgInvalidKey}
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized:
			return Classification{Kind: KindAuthorization, Message: MsgInvalidKey}
		case http.StatusTooManyRequests:
			return Classification{Kind: KindThrottling, Message: MsgRateLimited}
		}
		return Classification{
			Kind:    KindAPI,
			Message: fmt.Sprintf("API error: %d - %s", apiErr.StatusCode, apiErr.Message),
		}
	}

	if errors.Is(err, ErrTimeout) {
		return Classification{Kind: KindTimeout, Message: MsgTimeout}
	}
	if errors.Is(err, ErrConnection) {
		return Classification{Kind: KindConnection, Message: MsgConnection}
	}

	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return Classification{Kind: KindData, Message: "Error parsing data: " + parseErr.Message}
	}

	var existsErr *AlreadyExistsError
	if errors.As(err, &existsErr) {
		return Classification{Kind: KindConflict, Message: MsgDuplicate}
	}

	var notFoundErr *NotFoundError
	if errors.As(err, &notFoundErr) {
		return Classification{
			Kind:    KindNotFound,
			Message: fmt.Sprintf("%s %s not found", notFoundErr.Resource, notFoundErr.ID),
		}
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, ErrCanceled) {
		return Classification{Kind: KindCanceled, Message: "Operation canceled"}
	}

	return Classification{Kind: KindInternal, Message: "Error: " + err.Error()}
}

// HTTPStatus returns the status code a server should answer with for a kind.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthorization:
		return http.StatusUnauthorized
	case KindThrottling:
		return http.StatusTooManyRequests
	case KindAPI, KindConnection, KindData:
		return http.StatusBadGateway
	case KindTimeout:
		return http.StatusGatewayTimeout
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindCanceled:
		return 499
	default:
		return http.StatusInternalServerError
	}
}
