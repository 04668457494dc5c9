// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package catcher

import (
	"fmt"
	"sync"

	"github.com/juju/collections/set"
	"github.com/juju/errors"
)

// ErrorKind identifies a category of task failure. Kinds are the keys
// of a status map; only registered kinds are accepted there.
type ErrorKind string

// String returns a string representation of the ErrorKind.
func (k ErrorKind) String() string {
	return string(k)
}

const (
	// BlockedErrorKind marks failures that need manual intervention
	// before the unit can make progress.
	BlockedErrorKind ErrorKind = "blocked-error"

	// WaitingErrorKind marks failures caused by something the unit does
	// not control, such as a relation that is not ready yet.
	WaitingErrorKind ErrorKind = "waiting-error"

	// MaintenanceErrorKind marks failures during preparatory work the
	// unit is expected to retry on a later pass.
	MaintenanceErrorKind ErrorKind = "maintenance-error"
)

var (
	kindsMu    sync.Mutex
	knownKinds = set.NewStrings(
		BlockedErrorKind.String(),
		WaitingErrorKind.String(),
		MaintenanceErrorKind.String(),
	)
)

// RegisterErrorKind adds kind to the set of error kinds accepted as a
// status map key. Registering the same kind twice is a no-op.
func RegisterErrorKind(kind ErrorKind) error {
	if kind == "" {
		return errors.NotValidf("empty error kind")
	}
	kindsMu.Lock()
	defer kindsMu.Unlock()
	knownKinds.Add(kind.String())
	return nil
}

// KnownErrorKind reports whether kind may be used as a status map key.
func KnownErrorKind(kind ErrorKind) bool {
	kindsMu.Lock()
	defer kindsMu.Unlock()
	return knownKinds.Contains(kind.String())
}

// StatusError is a task failure that a StatusCatcher knows how to
// translate into a workload status.
type StatusError struct {
	kind    ErrorKind
	message string
}

// Error is part of the error interface.
func (e *StatusError) Error() string {
	return e.message
}

// Kind returns the category of the failure.
func (e *StatusError) Kind() ErrorKind {
	return e.kind
}

// NewStatusError returns an error of the given kind with a formatted
// message.
func NewStatusError(kind ErrorKind, format string, args ...interface{}) error {
	return &StatusError{kind: kind, message: fmt.Sprintf(format, args...)}
}

// NewBlockedError returns an error reporting that the unit needs manual
// intervention before it can continue.
func NewBlockedError(format string, args ...interface{}) error {
	return NewStatusError(BlockedErrorKind, format, args...)
}

// NewWaitingError returns an error reporting that the unit is waiting
// on something it does not control.
func NewWaitingError(format string, args ...interface{}) error {
	return NewStatusError(WaitingErrorKind, format, args...)
}

// NewMaintenanceError returns an error reporting a failure during
// preparatory work.
func NewMaintenanceError(format string, args ...interface{}) error {
	return NewStatusError(MaintenanceErrorKind, format, args...)
}

// ErrorKindOf returns the kind carried by err's cause, if it is a
// StatusError.
func ErrorKindOf(err error) (ErrorKind, bool) {
	if serr, ok := errors.Cause(err).(*StatusError); ok {
		return serr.Kind(), true
	}
	return "", false
}
