package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNoData               = errors.New("no data")
	ErrQueryInFlight        = errors.New("tracking query already in flight")
	ErrSessionClosed        = errors.New("tracking session closed")
	ErrDuplicateCarrierCode = errors.New("duplicate carrier code")
	ErrInvalidScope         = errors.New("invalid scope")
	ErrSecretNotFound       = errors.New("secret not found")
)

// RequestError is a request the tracking service rejected. Message is shown
// to the user as is.
type RequestError struct {
	Code    string
	Message string
}

func (e *RequestError) Error() string {
	if e.Code == "" {
		return e.Message
	}

	return fmt.Sprintf("%s (code %s)", e.Message, e.Code)
}

// UnavailableError wraps a transport level failure of an external source.
type UnavailableError struct {
	Op  string
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s: service unavailable: %v", e.Op, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}
