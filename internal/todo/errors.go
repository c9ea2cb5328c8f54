package todo

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no item with the requested id exists.
//
// Callers treat it as definitive: the id is stale, the item was deleted by
// someone else, and the operation must not be retried. The client store reacts
// by dropping its local entry rather than restoring the pre-operation state.
var ErrNotFound = errors.New("item not found")

// ValidationError reports an input value the system rejects outright.
// It is definitive in the same sense as ErrNotFound: no retry will make the
// input acceptable, so the client rolls back immediately.
type ValidationError struct {
	Field  string // which input was rejected, e.g. "title"
	Reason string // human-readable constraint that was violated
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsDefinitive reports whether err is a rejection that retrying cannot fix:
// a validation failure or a missing item. Transport-level failures are not
// definitive and remain eligible for retry.
func IsDefinitive(err error) bool {
	var ve *ValidationError
	return errors.Is(err, ErrNotFound) || errors.As(err, &ve)
}
