// Package errors provides custom error types for the formsync system.
// These errors enable programmatic error checking at the boundaries where
// remote API failures, payload problems and storage conflicts are turned
// into messages for the user.
package errors

import (
	"errors"
	"fmt"
)

// New is errors.New.
var New = errors.New

// Sentinels matched by the typed errors below.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrAPIKeyInvalid = errors.New("API key invalid")
	ErrRateLimited   = errors.New("rate limited")
	ErrUnavailable   = errors.New("service unavailable") // 5xx from the API
	ErrTimeout       = errors.New("operation timed out")
	ErrConnection    = errors.New("connection failed")
	ErrCanceled      = errors.New("operation canceled")
)

// NotFoundError is a missing template, question or wizard.
type NotFoundError struct {
	Resource string
	ID       string
}

// Error formats the NotFoundError for logs.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is matches the sentinel of the NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError returns a NotFoundError.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// AlreadyExistsError is a uniqueness violation in the store.
type AlreadyExistsError struct {
	Resource string
	Key      string
	Err      error
}

// Error formats the AlreadyExistsError for logs.
func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s with key %s already exists", e.Resource, e.Key)
}

// Unwrap returns the cause of the AlreadyExistsError.
func (e *AlreadyExistsError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the AlreadyExistsError.
func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// NewAlreadyExistsError returns an AlreadyExistsError.
func NewAlreadyExistsError(resource, key string, err error) *AlreadyExistsError {
	return &AlreadyExistsError{Resource: resource, Key: key, Err: err}
}

// ValidationError represents a validation failure.
// Message is written for the user; Field names the offending input.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error formats the ValidationError for logs.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is matches the sentinel of the ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError returns a ValidationError.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// APIError represents a non-200 answer from the FormBuilder API
type APIError struct {
	Endpoint   string
	StatusCode int
	Message    string
	Err        error
}

// Error formats the APIError for logs.
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API error from %s (status %d): %s", e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error from %s: %s", e.Endpoint, e.Message)
}

// Unwrap returns the cause of the APIError.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the APIError.
func (e *APIError) Is(target error) bool {
	if e.StatusCode == 429 {
		return target == ErrRateLimited
	}
	if e.StatusCode >= 500 {
		return target == ErrUnavailable
	}
	return false
}

// NewAPIError returns an APIError.
func NewAPIError(endpoint string, statusCode int, message string) *APIError {
	return &APIError{
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Message:    message,
	}
}

// AuthenticationError represents a rejected API key
type AuthenticationError struct {
	Endpoint string
	Method   string // "api_key"
	Message  string
	Err      error
}

// Error formats the AuthenticationError for logs.
func (e *AuthenticationError) Error() string {
	if e.Endpoint != "" {
		return fmt.Sprintf("authentication error for %s (%s): %s", e.Endpoint, e.Method, e.Message)
	}
	return fmt.Sprintf("authentication error (%s): %s", e.Method, e.Message)
}

// Unwrap returns the cause of the AuthenticationError.
func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the AuthenticationError.
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrAPIKeyInvalid
}

// NewAuthenticationError returns an AuthenticationError.
func NewAuthenticationError(endpoint, method, message string, err error) *AuthenticationError {
	return &AuthenticationError{
		Endpoint: endpoint,
		Method:   method,
		Message:  message,
		Err:      err,
	}
}

// TimeoutError is an operation that ran out of time.
type TimeoutError struct {
	Operation string
	Duration  string
	Message   string
	Err       error
}

// Error formats the TimeoutError for logs.
func (e *TimeoutError) Error() string {
	if e.Duration != "" {
		return fmt.Sprintf("operation %s timed out after %s: %s", e.Operation, e.Duration, e.Message)
	}
	return fmt.Sprintf("operation %s timed out: %s", e.Operation, e.Message)
}

// Unwrap returns the cause of the TimeoutError.
func (e *TimeoutError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the TimeoutError.
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

// NewTimeoutError returns a TimeoutError.
func NewTimeoutError(operation, duration, message string) *TimeoutError {
	return &TimeoutError{
		Operation: operation,
		Duration:  duration,
		Message:   message,
	}
}

// ConnectionError represents a failure to reach the remote API
type ConnectionError struct {
	Endpoint string
	Err      error
}

// Error formats the ConnectionError for logs.
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("cannot connect to %s: %v", e.Endpoint, e.Err)
}

// Unwrap returns the cause of the ConnectionError.
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the ConnectionError.
func (e *ConnectionError) Is(target error) bool {
	return target == ErrConnection
}

// NewConnectionError returns a ConnectionError.
func NewConnectionError(endpoint string, err error) *ConnectionError {
	return &ConnectionError{Endpoint: endpoint, Err: err}
}

// ParseError is a payload that could not be decoded.
type ParseError struct {
	Format  string // "json", "yaml"
	Source  string // what was being parsed, e.g. "response", "aggregation"
	Message string
	Err     error
}

// Error formats the ParseError for logs.
func (e *ParseError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("parse error in %s %s: %s", e.Format, e.Source, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap returns the cause of the ParseError.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError returns a ParseError.
func NewParseError(format, source, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		Source:  source,
		Message: message,
		Err:     err,
	}
}

// ConfigError is an invalid setting.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error formats the ConfigError for logs.
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap returns the cause of the ConfigError.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError returns a ConfigError.
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ResourceError is a failed storage operation.
type ResourceError struct {
	Operation string // "create", "update", "delete", "find", "list"
	Resource  string // "template", "question"
	ID        string
	Message   string
	Err       error
}

// Error formats the ResourceError for logs.
func (e *ResourceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
	}
	return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
}

// Unwrap returns the cause of the ResourceError.
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// NewResourceError returns a ResourceError.
func NewResourceError(operation, resource, id string, err error) *ResourceError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ResourceError{
		Operation: operation,
		Resource:  resource,
		ID:        id,
		Message:   message,
		Err:       err,
	}
}

// SyncError represents a failed import of one or more templates
type SyncError struct {
	TemplateID int // external id of the template being synced, 0 if unknown
	Err        error
}

// Error formats the SyncError for logs.
func (e *SyncError) Error() string {
	if e.TemplateID != 0 {
		return fmt.Sprintf("sync error for template %d: %v", e.TemplateID, e.Err)
	}
	return fmt.Sprintf("sync error: %v", e.Err)
}

// Unwrap returns the cause of the SyncError.
func (e *SyncError) Unwrap() error {
	return e.Err
}

// NewSyncError returns a SyncError.
func NewSyncError(templateID int, err error) *SyncError {
	return &SyncError{TemplateID: templateID, Err: err}
}

// IsNotFound reports whether err is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists reports whether err is an already exists error.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError reports whether err is a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsAPIKeyError reports whether err is a rejected API key.
func IsAPIKeyError(err error) bool {
	return errors.Is(err, ErrAPIKeyInvalid)
}

// IsRateLimited reports whether err is a rate limit error.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsTimeout reports whether err is a timeout error.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsConnection reports whether err is a connection failure.
func IsConnection(err error) bool {
	return errors.Is(err, ErrConnection)
}

// IsCanceled reports whether err is a cancellation error.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// WrapValidation wraps err in a ValidationError. A nil err stays nil.
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapResource wraps err in a ResourceError. A nil err stays nil.
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return NewResourceError(operation, resource, id, err)
}

// WrapParse wraps err in a ParseError. A nil err stays nil.
func WrapParse(format, source string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, source, err.Error(), err)
}

// As is errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Is is errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
