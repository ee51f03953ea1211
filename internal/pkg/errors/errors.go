package errors

import "errors"

var (
	// ErrNotFound covers both absent entities and entities owned by another
	// user; callers must not be able to tell the two apart.
	ErrNotFound = errors.New("not found")
	// ErrValidation is a generic sentinel for invalid input.
	ErrValidation = errors.New("invalid argument")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotEligible rejects an assessment request for a chunk that is not
	// CURRENT or whose conversation is too short.
	ErrNotEligible = errors.New("not eligible for assessment")
	// ErrConflict signals a lost optimistic-concurrency race during the
	// assessment commit; a retry resolves to ErrNotEligible.
	ErrConflict = errors.New("conflict")
)
