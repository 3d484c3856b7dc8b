package handlers

import (
	"fmt"
	"net/http"
)

// RequestError carries the status and client-facing message for a failed
// request. Err, when set, is the underlying cause and is only logged.
type RequestError struct {
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// ValidationError reports a missing or malformed input. The operation is
// never invoked when one is returned.
func ValidationError(message string) *RequestError {
	return &RequestError{Status: http.StatusBadRequest, Message: message}
}

// NotFoundError reports a missing static resource.
func NotFoundError(message string, err error) *RequestError {
	return &RequestError{Status: http.StatusNotFound, Message: message, Err: err}
}

// InternalError hides err behind a fixed message.
func InternalError(message string, err error) *RequestError {
	return &RequestError{Status: http.StatusInternalServerError, Message: message, Err: err}
}
