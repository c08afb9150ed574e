package util

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes for the client-side taxonomy.
const (
	CodeTransport  = "TRANSPORT"
	CodeNotFound   = "NOT_FOUND"
	CodeValidation = "VALIDATION"
)

// ClientError standardizes failures surfaced by the resource client.
type ClientError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *ClientError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Err
}

// NewTransportError wraps a network failure or an unclassified
// non-success response.
func NewTransportError(message string, status int, err error) error {
	return &ClientError{Code: CodeTransport, Message: message, HTTPStatus: status, Err: err}
}

// NewNotFound reports a resource the backend says does not exist.
func NewNotFound(resource string) error {
	return &ClientError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

// NewValidationError reports a payload rejected by the backend or by a
// local non-empty check.
func NewValidationError(message string) error {
	return &ClientError{Code: CodeValidation, Message: message, HTTPStatus: http.StatusBadRequest}
}

// FromStatus classifies a non-2xx response. The error body is carried
// opaquely in the message; it is not schematized by the contract.
func FromStatus(status int, resource, body string) error {
	switch status {
	case http.StatusNotFound:
		return NewNotFound(resource)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		msg := fmt.Sprintf("%s rejected", resource)
		if body != "" {
			msg = fmt.Sprintf("%s: %s", msg, body)
		}
		return &ClientError{Code: CodeValidation, Message: msg, HTTPStatus: status}
	default:
		msg := fmt.Sprintf("%s request failed with status %d", resource, status)
		if body != "" {
			msg = fmt.Sprintf("%s: %s", msg, body)
		}
		return &ClientError{Code: CodeTransport, Message: msg, HTTPStatus: status}
	}
}

// ToClientError converts generic errors to ClientError, defaulting to
// the transport code.
func ToClientError(err error) *ClientError {
	if err == nil {
		return nil
	}
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr
	}
	return &ClientError{
		Code:       CodeTransport,
		Message:    "request failed",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// IsNotFound reports whether err carries the NOT_FOUND code.
func IsNotFound(err error) bool {
	return hasCode(err, CodeNotFound)
}

// IsValidation reports whether err carries the VALIDATION code.
func IsValidation(err error) bool {
	return hasCode(err, CodeValidation)
}

// IsTransport reports whether err carries the TRANSPORT code.
func IsTransport(err error) bool {
	return hasCode(err, CodeTransport)
}

func hasCode(err error, code string) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Code == code
	}
	return false
}
