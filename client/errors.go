package client

import (
	"errors"
	"fmt"
	"net"
	"net/url"
)

// ValidationError rejects an operation before any network call is made.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}

// NetworkError marks timeouts and connection failures so callers can show a
// connectivity-specific message.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "network: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }

// BackendError carries a non-2xx response. Message is the backend's
// structured message when one was present, preferred verbatim for display.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

func IsBackend(err error) bool {
	var be *BackendError
	return errors.As(err, &be)
}

// classifyTransportError folds the stdlib transport error zoo into the
// network class.
func classifyTransportError(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return &NetworkError{Err: uerr}
	}
	var nerr net.Error
	if errors.As(err, &nerr) {
		return &NetworkError{Err: nerr}
	}
	return err
}
