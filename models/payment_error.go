package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure handed to the checkout state machine
type ErrorKind int

const (
	// UnknownError is anything not otherwise classified
	UnknownError ErrorKind = iota

	// ConnectionError is a network or timeout failure without a server payload
	ConnectionError

	// InteractionError carries a server supplied ErrorInfo with its own Interaction
	InteractionError

	// InternalError is a malformed response or a missing required field
	InternalError
)

var errorKinds = [...]string{
	"unknown",
	"connection",
	"interaction",
	"internal",
}

// String representation of `ErrorKind`
func (k ErrorKind) String() string {
	return errorKinds[k]
}

// PaymentError is the typed error raised by the transport and the session builder
type PaymentError struct {
	Source     string
	Kind       ErrorKind
	StatusCode int
	Data       string
	Info       *ErrorInfo
	Err        error
}

func (e *PaymentError) Error() string {
	msg := fmt.Sprintf("%s: %s error", e.Source, e.Kind)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s, status [%d]", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: [%v]", msg, e.Err)
	}
	return msg
}

func (e *PaymentError) Unwrap() error {
	return e.Err
}

// NewConnectionError wraps a transport failure
func NewConnectionError(source string, err error) *PaymentError {
	return &PaymentError{Source: source, Kind: ConnectionError, Err: err}
}

// NewInternalError reports a malformed response or missing required data
func NewInternalError(source, message string, err error) *PaymentError {
	if err == nil {
		err = errors.New(message)
	} else {
		err = fmt.Errorf("%s: [%w]", message, err)
	}
	return &PaymentError{Source: source, Kind: InternalError, Err: err}
}

// ClassifyError returns err as a PaymentError, classifying foreign errors as UnknownError.
// A PaymentError carrying an ErrorInfo is always an InteractionError.
func ClassifyError(err error) *PaymentError {
	if err == nil {
		return nil
	}
	var pe *PaymentError
	if !errors.As(err, &pe) {
		return &PaymentError{Source: "checkout", Kind: UnknownError, Err: err}
	}
	if pe.Info != nil && pe.Kind != InteractionError {
		classified := *pe
		classified.Kind = InteractionError
		return &classified
	}
	return pe
}
