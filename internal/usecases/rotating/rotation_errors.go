package rotating

import (
	"errors"
	"fmt"
)

var (
	ErrRotationNotFound = errors.New("rotation not found")
	ErrInvalidScreen    = errors.New("screen does not rotate ads")
)

type RotationError struct {
	Err     error
	Code    string
	Details string
}

func (e *RotationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *RotationError) Unwrap() error {
	return e.Err
}

func NewRotationError(baseErr error, code string, details string) *RotationError {
	return &RotationError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}
