// Package response provides standardized HTTP response structures and helpers
// for the formsync API server. All API responses follow a consistent format
// with a data field for successful responses and an error field for failures.
package response

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/agentstation/formsync/pkg/actions"
	"github.com/agentstation/formsync/pkg/errors"
)

// Response represents the standardized API response structure.
// All endpoints return this format for consistency.
type Response struct {
	Data  any    `json:"data"`
	Error *Error `json:"error"`
}

// Error represents an API error with code, message, and optional details.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Success creates a successful response with data.
func Success(data any) Response {
	return Response{Data: data}
}

// Fail creates an error response.
func Fail(code, message, details string) Response {
	return Response{
		Error: &Error{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, r *http.Request, status int, resp Response) {
	render.Status(r, status)
	render.JSON(w, r, resp)
}

// OK writes a successful response with 200 status.
func OK(w http.ResponseWriter, r *http.Request, data any) {
	JSON(w, r, http.StatusOK, Success(data))
}

// Created writes a successful response with 201 status.
func Created(w http.ResponseWriter, r *http.Request, data any) {
	JSON(w, r, http.StatusCreated, Success(data))
}

// BadRequest writes a 400 error response.
func BadRequest(w http.ResponseWriter, r *http.Request, message, details string) {
	JSON(w, r, http.StatusBadRequest, Fail("BAD_REQUEST", message, details))
}

// NotFound writes a 404 error response.
func NotFound(w http.ResponseWriter, r *http.Request, message, details string) {
	JSON(w, r, http.StatusNotFound, Fail("NOT_FOUND", message, details))
}

// MethodNotAllowed writes a 405 error response.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	JSON(w, r, http.StatusMethodNotAllowed, Fail(
		"METHOD_NOT_ALLOWED",
		"Method not allowed",
		"Method "+r.Method+" is not supported for this endpoint",
	))
}

// InternalError writes a 500 error response. The error itself is not
// exposed to the client.
func InternalError(w http.ResponseWriter, r *http.Request) {
	JSON(w, r, http.StatusInternalServerError, Fail(
		"INTERNAL_ERROR",
		"Internal server error",
		"An unexpected error occurred",
	))
}

// ServiceUnavailable writes a 503 error response.
func ServiceUnavailable(w http.ResponseWriter, r *http.Request, message string) {
	JSON(w, r, http.StatusServiceUnavailable, Fail(
		"SERVICE_UNAVAILABLE",
		"Service unavailable",
		message,
	))
}

// code turns an error kind into the upper-case code of the envelope.
func code(kind errors.Kind) string {
	switch kind {
	case errors.KindValidation:
		return "BAD_REQUEST"
	case errors.KindAuthorization:
		return "UNAUTHORIZED"
	case errors.KindThrottling:
		return "RATE_LIMITED"
	case errors.KindAPI:
		return "API_ERROR"
	case errors.KindTimeout:
		return "TIMEOUT"
	case errors.KindConnection:
		return "CONNECTION_ERROR"
	case errors.KindData:
		return "DATA_ERROR"
	case errors.KindNotFound:
		return "NOT_FOUND"
	case errors.KindConflict:
		return "CONFLICT"
	case errors.KindCanceled:
		return "CANCELED"
	default:
		return "INTERNAL_ERROR"
	}
}

// FromError maps a typed error to its status and user message.
// Internal errors are answered with a generic message.
func FromError(w http.ResponseWriter, r *http.Request, err error) {
	c := errors.Classify(err)
	if c.Kind == errors.KindInternal {
		InternalError(w, r)
		return
	}
	JSON(w, r, c.Kind.HTTPStatus(), Fail(code(c.Kind), c.Message, ""))
}

// Dialog answers a failed wizard action. The error dialog directive is
// returned as data next to the error so the client can show it as is.
func Dialog(w http.ResponseWriter, r *http.Request, err error) {
	d := actions.Dialog(err)
	JSON(w, r, d.Kind.HTTPStatus(), Response{
		Data:  d,
		Error: &Error{Code: code(d.Kind), Message: d.Message},
	})
}
