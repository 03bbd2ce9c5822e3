package errors

import (
	stderrors "errors"
	"fmt"
)

var (
	ErrNotRegistered       = fmt.Errorf("capability not registered")
	ErrDependencyCycle     = fmt.Errorf("dependency cycle")
	ErrPersistence         = fmt.Errorf("persistence failure")
	ErrNotFound            = fmt.Errorf("not found")
	ErrAuthRequired        = fmt.Errorf("authentication required")
	ErrInvalidArgument     = fmt.Errorf("invalid argument")
	ErrUnsupportedProvider = fmt.Errorf("unsupported sign-in provider")
	ErrInvalidCredential   = fmt.Errorf("invalid credential")
	ErrSubscriptionClosed  = fmt.Errorf("subscription closed")
	ErrWorkerPanic         = fmt.Errorf("worker panic")
)

// PersistenceError is the single kind every storage read or write failure surfaces as.
// It matches both ErrPersistence and the underlying cause with errors.Is.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrPersistence, e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistence, e.Err}
}

// Persistence wraps err for the given operation. A nil err stays nil and an
// error that is already a PersistenceError is returned untouched.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	var pe *PersistenceError
	if stderrors.As(err, &pe) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}
