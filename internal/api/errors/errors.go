// Package errors defines the wire format for API error responses and the
// mapping from domain errors onto it.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/anashammo/whisper-ui/internal/app/repository"
	"github.com/anashammo/whisper-ui/internal/app/usecase"
	"github.com/anashammo/whisper-ui/internal/domain/entity"
)

// ErrorKind classifies an API error for status code selection.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindBadRequest ErrorKind = "bad_request"
	KindNotFound   ErrorKind = "not_found"
	KindConflict   ErrorKind = "conflict"
	KindTooLarge   ErrorKind = "payload_too_large"
	KindInternal   ErrorKind = "internal"
)

// APIError is the JSON error body every failed request returns.
type APIError struct {
	Kind      ErrorKind         `json:"kind"`
	Message   string            `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// HTTPStatus returns the status code for the error kind.
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// NewBadRequestError creates a bad request error.
func NewBadRequestError(message string) *APIError {
	return &APIError{Kind: KindBadRequest, Message: message}
}

// NewNotFoundError creates a not found error for a resource.
func NewNotFoundError(resource string) *APIError {
	return &APIError{Kind: KindNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

// NewValidationError creates a validation error with field details.
func NewValidationError(message string, fields map[string]string) *APIError {
	return &APIError{Kind: KindValidation, Message: message, Details: fields}
}

// NewInternalError creates an internal server error.
func NewInternalError(message string) *APIError {
	return &APIError{Kind: KindInternal, Message: message}
}

// FromError maps a domain error onto the API error taxonomy. Unknown errors
// become internal errors with a generic message; the original stays in the
// server log, never in the response.
func FromError(err error) *APIError {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr
	}

	if stderrors.Is(err, repository.ErrNotFound) {
		return &APIError{Kind: KindNotFound, Message: "resource not found"}
	}
	if stderrors.Is(err, usecase.ErrTranscriptionInProgress) {
		return &APIError{Kind: KindConflict, Message: err.Error()}
	}

	var validationErr *entity.ValidationError
	if stderrors.As(err, &validationErr) {
		kind := KindBadRequest
		if validationErr.Kind == entity.KindSizeExceeded {
			kind = KindTooLarge
		}
		return &APIError{
			Kind:    kind,
			Message: validationErr.Message,
			Details: map[string]string{"rule": string(validationErr.Kind)},
		}
	}

	var notAllowed *usecase.EnhancementNotAllowedError
	if stderrors.As(err, &notAllowed) {
		return &APIError{Kind: KindBadRequest, Message: notAllowed.Error()}
	}

	var transitionErr *entity.InvalidTransitionError
	if stderrors.As(err, &transitionErr) {
		return &APIError{Kind: KindConflict, Message: transitionErr.Error()}
	}

	return &APIError{Kind: KindInternal, Message: "internal server error"}
}
