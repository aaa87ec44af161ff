package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNoResponse       = errors.New("no response from server")
	ErrRequestSetup     = errors.New("request setup failed")
	ErrMalformedPayload = errors.New("malformed response payload")
)

const (
	MsgNoResponse   = "No response from server"
	MsgRequestSetup = "Request setup failed"
	MsgMalformed    = "Malformed response payload"
)

// APIError is the single error shape returned by the remote API client.
// Status 0 means no HTTP response was received.
type APIError struct {
	Message string
	Status  int
	Errors  map[string][]string

	cause error
}

func NewAPIError(message string, status int, fieldErrors map[string][]string, cause error) *APIError {
	return &APIError{Message: message, Status: status, Errors: fieldErrors, cause: cause}
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

func (e *APIError) Unwrap() error {
	return e.cause
}

func (e *APIError) IsConnectivity() bool {
	return errors.Is(e.cause, ErrNoResponse)
}

func (e *APIError) IsValidation() bool {
	return len(e.Errors) > 0
}

func (e *APIError) IsNotFound() bool {
	return e.Status == http.StatusNotFound
}

func (e *APIError) IsServer() bool {
	return e.Status >= http.StatusInternalServerError || errors.Is(e.cause, ErrMalformedPayload)
}

// AsAPIError unwraps err into an *APIError when it carries one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
