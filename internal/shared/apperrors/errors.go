// Package apperrors defines the error kinds shared by every bounded context.
// Services wrap domain failures with one of these kinds so callers can branch
// with errors.Is without knowing the originating package.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation signals the input failed a field-level check.
	ErrValidation = errors.New("validation failed")
	// ErrAuthorization signals the actor may not perform the mutation.
	ErrAuthorization = errors.New("not authorized")
	// ErrUnauthenticated signals there is no signed-in identity. It is also an ErrAuthorization.
	ErrUnauthenticated = fmt.Errorf("%w: no authenticated identity", ErrAuthorization)
	// ErrInvalidTransition signals an order status change outside the allowed graph.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrNotFound signals the referenced record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUpload signals a blob upload did not complete.
	ErrUpload = errors.New("upload failed")
	// ErrNetwork signals the backing store could not be reached.
	ErrNetwork = errors.New("backend unavailable")
)

// Validation wraps err as a validation failure.
func Validation(err error) error {
	return wrap(ErrValidation, err)
}

// NotFound wraps err as a missing record.
func NotFound(err error) error {
	return wrap(ErrNotFound, err)
}

// Upload wraps err as an upload failure.
func Upload(err error) error {
	return wrap(ErrUpload, err)
}

// Network wraps err as a transport failure.
func Network(err error) error {
	return wrap(ErrNetwork, err)
}

// InvalidTransition wraps err as a rejected status change.
func InvalidTransition(err error) error {
	return wrap(ErrInvalidTransition, err)
}

func wrap(kind, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, kind) {
		return err
	}
	return fmt.Errorf("%w: %w", kind, err)
}

// Kind reports which shared kind err carries, or nil when it carries none.
func Kind(err error) error {
	for _, kind := range []error{
		ErrUnauthenticated,
		ErrAuthorization,
		ErrValidation,
		ErrInvalidTransition,
		ErrNotFound,
		ErrUpload,
		ErrNetwork,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
