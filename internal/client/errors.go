package client

import (
	"errors"
	"fmt"
)

// ErrClosed is returned by operations started after Close
var ErrClosed = errors.New("store closed")

// TransientError wraps a failure that retrying may resolve: a network
// error or a 5xx response. Definitive rejections (validation failures,
// unknown ids) are never wrapped in it.
type TransientError struct {
	Op    string // Operation that failed, e.g. "toggle"
	Cause error  // Underlying error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient %s failure: %v", e.Op, e.Cause)
}

// Unwrap exposes the cause to errors.Is and errors.As
func (e *TransientError) Unwrap() error {
	return e.Cause
}

// IsTransient reports whether err is worth retrying
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
