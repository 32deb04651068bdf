// Package domainerrors defines the coded error taxonomy shared by all
// docseal modules. Services attach a Code at the point of failure; transport
// layers translate codes to HTTP statuses without inspecting messages.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies a class of failure. The set is closed: handlers and callers
// switch on codes, so new codes require a transport mapping below.
type Code string

const (
	// CodeValidation marks malformed input (bad hash, bad identifier)
	// rejected before any lookup is attempted.
	CodeValidation Code = "validation_error"

	// CodeBadRequest marks a structurally invalid request body.
	CodeBadRequest Code = "bad_request"

	// CodeUnauthorized marks a missing or invalid credential.
	CodeUnauthorized Code = "unauthorized"

	// CodeNotFound marks a lookup that completed but matched nothing.
	// Not a failure; a valid outcome.
	CodeNotFound Code = "not_found"

	// CodeConflict marks an operation that is illegal in the current state,
	// such as a workflow transition out of a terminal state.
	CodeConflict Code = "conflict"

	// CodeTimeout marks an external lookup that exceeded its deadline.
	// Never downgraded to CodeNotFound: "don't know" is not "doesn't exist".
	CodeTimeout Code = "timeout"

	// CodeTransport marks an unreachable or failing external collaborator
	// (ledger store, broker). Retryable by the caller.
	CodeTransport Code = "transport_error"

	// CodeProofMismatch marks a commitment proof that failed verification.
	// The message carries the specific sub-reason.
	CodeProofMismatch Code = "proof_mismatch"

	// CodeInternal marks a bug or invariant violation inside docseal.
	CodeInternal Code = "internal_error"
)

// Error is the concrete error type carrying a Code. Construct via New or Wrap.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New constructs a coded error with no cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap constructs a coded error around an underlying cause.
func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf extracts the Code from err, walking the wrap chain.
// Errors without a code are classified as internal.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code Code) bool {
	var de *Error
	return errors.As(err, &de) && de.Code == code
}

// Is lets errors.Is match on code equality so callers can compare against a
// sentinel like New(CodeNotFound, "").
func (e *Error) Is(target error) bool {
	var de *Error
	if errors.As(target, &de) {
		return e.Code == de.Code
	}
	return false
}

// ToHTTPStatus maps a Code to its HTTP response status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeValidation, CodeBadRequest:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeTimeout:
		return http.StatusGatewayTimeout
	case CodeTransport:
		return http.StatusBadGateway
	case CodeProofMismatch:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
