package domain

import (
	"errors"
	"fmt"
)

// ValidationError signals a missing or malformed field at the engine boundary.
// It is always recoverable by the caller and carries no side effects.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError signals that a referenced local entity does not exist.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// RemoteUnavailableError wraps a transport failure, timeout, or non-success
// status from the remote commerce platform or the text generation provider.
type RemoteUnavailableError struct {
	Op  string
	Err error
}

func (e *RemoteUnavailableError) Error() string {
	return fmt.Sprintf("remote platform unavailable during %s: %v", e.Op, e.Err)
}

func (e *RemoteUnavailableError) Unwrap() error { return e.Err }

// StateConflictError signals an operation that is invalid for the entity's
// current sync state, such as publishing an already synced article.
type StateConflictError struct {
	Op     string
	Reason string
}

func (e *StateConflictError) Error() string {
	return fmt.Sprintf("%s conflicts with current state: %s", e.Op, e.Reason)
}

// PersistenceFailure signals that a local commit failed after a remote side
// effect already succeeded. It represents a durable inconsistency that needs
// manual reconciliation and must never be silently swallowed.
type PersistenceFailure struct {
	Op  string
	Err error
}

func (e *PersistenceFailure) Error() string {
	return fmt.Sprintf("local commit failed after remote %s succeeded: %v", e.Op, e.Err)
}

func (e *PersistenceFailure) Unwrap() error { return e.Err }

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsStateConflict reports whether err is a state conflict.
func IsStateConflict(err error) bool {
	var sc *StateConflictError
	return errors.As(err, &sc)
}

// IsRemoteUnavailable reports whether err wraps a remote platform failure.
func IsRemoteUnavailable(err error) bool {
	var ru *RemoteUnavailableError
	return errors.As(err, &ru)
}

// IsPersistenceFailure reports whether err is a post-remote commit failure.
func IsPersistenceFailure(err error) bool {
	var pf *PersistenceFailure
	return errors.As(err, &pf)
}
