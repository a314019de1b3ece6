// Package errdef defines the error kinds the store surfaces to callers.
// Storage faults are deliberately not represented here: they are masked
// behind defaults at the point of use and only logged.
package errdef

import (
	"errors"
	"fmt"
)

// NewBadRequest creates an error representing invalid caller input.
func NewBadRequest(format string, a ...any) error {
	return badRequest{fmt.Errorf(format, a...)}
}

type badRequest struct{ error }

// IsBadRequest returns true if err represents invalid caller input.
func IsBadRequest(err error) bool {
	var e badRequest
	return errors.As(err, &e)
}

// NewNotFound creates an error representing a resource that could not be found.
func NewNotFound(format string, a ...any) error {
	return notFound{fmt.Errorf(format, a...)}
}

type notFound struct{ error }

// IsNotFound returns true if err represents a resource that could not be found.
func IsNotFound(err error) bool {
	var e notFound
	return errors.As(err, &e)
}

// NewForbidden creates an error representing an operation the caller may not
// perform, such as editing a catalog event.
func NewForbidden(format string, a ...any) error {
	return forbidden{fmt.Errorf(format, a...)}
}

type forbidden struct{ error }

// IsForbidden returns true if err represents a disallowed operation.
func IsForbidden(err error) bool {
	var e forbidden
	return errors.As(err, &e)
}
