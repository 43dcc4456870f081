package types

import "fmt"

// Error wraps a user-status string (one of the Status* constants) together
// with the operation that produced it and, optionally, an underlying
// error. The CLI layer prints Status verbatim; Log sinks print the full
// Error via its Error() method, matching the wrapped-error idiom used
// elsewhere (fmt.Errorf("...: %w", err)) while giving callers a
// structured way to recover the bit-exact status string without
// re-parsing error text.
type Error struct {
	Op     string
	Status string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds an *Error for a user-facing status with no underlying
// cause.
func NewError(op, status string) *Error {
	return &Error{Op: op, Status: status}
}

// WrapError builds an *Error for a user-facing status caused by err.
func WrapError(op, status string, err error) *Error {
	return &Error{Op: op, Status: status, Err: err}
}

// StatusOf extracts the bit-exact status string from err if it (or
// something it wraps) is an *Error, or returns "" otherwise.
func StatusOf(err error) string {
	var e *Error
	for err != nil {
		if ae, ok := err.(*Error); ok {
			e = ae
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	if e == nil {
		return ""
	}
	return e.Status
}
