// Package errors provides error handling for the navigator.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - PII-safe error formatting
//
// Usage:
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrSignerUnavailable) {
//	    // queue instead of submitting
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection and marking
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
	Mark      = crdb.Mark
)

// Sentinel errors for the path-tracking and ledger-submission subsystem.
// Use these with errors.Is() for type-safe error checking and wrap them
// with errors.Wrap() to add context while preserving the type.
var (
	// ErrSignerUnavailable indicates no wallet session is active when a
	// ledger submission was attempted. Callers should queue the
	// submission for later replay rather than treating this as fatal.
	ErrSignerUnavailable = New("signer unavailable")

	// ErrLedgerRejected indicates the signer or the chain returned a
	// failure response (or timed out) for a submitted action.
	ErrLedgerRejected = New("ledger rejected submission")

	// ErrReplayInProgress indicates a pending-queue replay is already
	// running. Replays are strictly sequential to avoid double-submitting
	// queued items.
	ErrReplayInProgress = New("pending replay already in progress")

	// ErrNotFound indicates the requested record does not exist
	ErrNotFound = New("not found")
)

// IsSignerUnavailable checks if an error is or wraps ErrSignerUnavailable
func IsSignerUnavailable(err error) bool {
	return err != nil && Is(err, ErrSignerUnavailable)
}

// IsLedgerRejected checks if an error is or wraps ErrLedgerRejected
func IsLedgerRejected(err error) bool {
	return err != nil && Is(err, ErrLedgerRejected)
}

// IsNotFoundError checks if an error is or wraps ErrNotFound
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return Wrap(ErrNotFound, Newf(format, args...).Error())
}
