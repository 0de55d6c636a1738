package advertising

import (
	"errors"
	"fmt"
)

var (
	ErrAdNotFound = errors.New("ad not found")
	ErrInvalidAd  = errors.New("invalid ad")
)

// AdError carries the api error code and the offending fields.
type AdError struct {
	Err     error
	Code    string
	AdID    string
	Details map[string]string
}

func (e *AdError) Error() string {
	if e.AdID != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.AdID)
	}
	return e.Err.Error()
}

func (e *AdError) Unwrap() error {
	return e.Err
}

func NewAdError(baseErr error, code string, adID string, details map[string]string) *AdError {
	return &AdError{
		Err:     baseErr,
		Code:    code,
		AdID:    adID,
		Details: details,
	}
}
