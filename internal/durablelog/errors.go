package durablelog

import "errors"

var (
	// ErrNotPrimary is returned when the log was superseded by another writer. Errors wrapping ErrNotPrimary also
	// match fencing.ErrNotOwner.
	ErrNotPrimary = errors.New("data log writer is not primary")

	ErrAlreadyClosed   = errors.New("data log is already closed")
	ErrNotInitialized  = errors.New("data log is not initialized")
	ErrPayloadTooLarge = errors.New("payload exceeds maximum append length")
)
