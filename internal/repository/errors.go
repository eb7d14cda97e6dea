package repository

import "errors"

var (
	ErrNotFound = errors.New("record not found")

	// ErrActivationConflict is returned when a compare-and-swap activation
	// observed a different active version than the caller expected. The
	// caller re-reads and retries.
	ErrActivationConflict = errors.New("model activation conflict")

	// ErrOpenAppealExists guards the one-open-appeal-per-result invariant.
	ErrOpenAppealExists = errors.New("an open appeal already exists for this match result")

	ErrDuplicate = errors.New("record already exists")
)
