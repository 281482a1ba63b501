package models

import (
	"fmt"

	"github.com/pkg/errors"
)

// TransitionErrorKind classifies why a lifecycle operation was refused, so
// callers can tell "not allowed" from "wrong stage" from "retry after
// re-read".
type TransitionErrorKind string

const (
	ErrKindInvalidTransition    TransitionErrorKind = "INVALID_TRANSITION"
	ErrKindForbidden            TransitionErrorKind = "FORBIDDEN"
	ErrKindPreconditionFailed   TransitionErrorKind = "PRECONDITION_FAILED"
	ErrKindTerminalState        TransitionErrorKind = "TERMINAL_STATE"
	ErrKindConflict             TransitionErrorKind = "CONFLICT"
	ErrKindNoEligibleTechnician TransitionErrorKind = "NO_ELIGIBLE_TECHNICIAN"
	ErrKindReferentialIntegrity TransitionErrorKind = "REFERENTIAL_INTEGRITY"
)

type TransitionError struct {
	Kind    TransitionErrorKind
	Message string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func NewTransitionError(kind TransitionErrorKind, format string, args ...interface{}) error {
	return &TransitionError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

func NewInvalidTransition(from RequestStatus, event TransitionEvent) error {
	return NewTransitionError(ErrKindInvalidTransition, "event %v is not legal from state %v", event, from)
}

func NewForbidden(format string, args ...interface{}) error {
	return NewTransitionError(ErrKindForbidden, format, args...)
}

func NewPreconditionFailed(format string, args ...interface{}) error {
	return NewTransitionError(ErrKindPreconditionFailed, format, args...)
}

func NewTerminalState(status RequestStatus) error {
	return NewTransitionError(ErrKindTerminalState, "request is already closed in state %v", status)
}

func NewConflict(format string, args ...interface{}) error {
	return NewTransitionError(ErrKindConflict, format, args...)
}

func NewNoEligibleTechnician(requestID string) error {
	return NewTransitionError(ErrKindNoEligibleTechnician, "no eligible technician for request %v", requestID)
}

func NewReferentialIntegrity(format string, args ...interface{}) error {
	return NewTransitionError(ErrKindReferentialIntegrity, format, args...)
}

// KindOf extracts the taxonomy kind from an error chain; ok is false for
// errors outside the taxonomy (infrastructure failures).
func KindOf(err error) (kind TransitionErrorKind, ok bool) {
	var tErr *TransitionError
	if errors.As(err, &tErr) {
		return tErr.Kind, true
	}
	return "", false
}

func IsKind(err error, kind TransitionErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
