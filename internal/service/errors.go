package service

import "errors"

// ValidationError marks a client-side precondition failure: surfaced inline,
// nothing touched remotely.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationErr(reason string) error {
	return &ValidationError{Reason: reason}
}

// IsValidation reports whether err is a precondition failure.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
