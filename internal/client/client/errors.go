package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrValidation marks input rejected locally, before any network call.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound means the backend could not locate the requested entity.
	ErrNotFound = errors.New("not found")

	// ErrEndpointUnavailable means an endpoint is absent or refuses the
	// method. Only the search resolver produces it, to trigger its fallback.
	ErrEndpointUnavailable = errors.New("endpoint unavailable")

	// ErrTransport covers network failures and unexpected HTTP statuses.
	ErrTransport = errors.New("transport failure")

	// ErrCancelled means the caller cancelled the operation.
	ErrCancelled = errors.New("cancelled")
)

// ValidationError reports which field was rejected and why.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// TransportError is a failed exchange with the backend. StatusCode is 0 when
// no HTTP response was received.
type TransportError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("status %d", e.StatusCode)
	case e.Err != nil:
		return "transport: " + e.Err.Error()
	default:
		return ErrTransport.Error()
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// FriendlyMessage is the short text shown to end users: the message supplied
// by the backend when there is one, otherwise a generic status or network text.
func (e *TransportError) FriendlyMessage() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.StatusCode != 0:
		return fmt.Sprintf("Errore %d", e.StatusCode)
	default:
		return "Errore di rete"
	}
}

// StatusCode extracts the HTTP status from err, or 0.
func StatusCode(err error) int {
	var te *TransportError
	if errors.As(err, &te) {
		return te.StatusCode
	}
	return 0
}

// IsStatus reports whether err is a TransportError carrying status code.
func IsStatus(err error, code int) bool {
	return code != 0 && StatusCode(err) == code
}

// IsNotFoundStatus reports whether err is a 404 from the backend.
func IsNotFoundStatus(err error) bool {
	return IsStatus(err, http.StatusNotFound)
}
