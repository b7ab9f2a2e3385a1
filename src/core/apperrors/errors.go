package apperrors

import "errors"

// Sentinel errors raised at the data-access boundary. The pure policy and
// scoring packages never return these; handlers translate them to HTTP codes.
var (
	// ErrNotAuthenticated is returned when an attempt-mutating operation is
	// invoked without a current user.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNotFound is returned when a quiz, profile or other record is missing.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState is returned when an operation is not valid for the
	// record's current state, e.g. finalizing an attempt on a quiz with no
	// questions, or saving answers to a completed attempt.
	ErrInvalidState = errors.New("invalid state")
)
