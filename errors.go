package cityvizor

import (
	"errors"
	"fmt"
)

var (
	ErrStoreFailed      = errors.New("store failed")
	ErrNilRequest       = errors.New("nil city request")
	ErrInvalidStatus    = errors.New("invalid profile status")
	ErrProfileNotFound  = errors.New("profile not found")
	ErrDuplicateProfile = errors.New("duplicate profile id")
)

// StoreError is returned by a Store when writing a request fails
type StoreError struct {
	Store string // backend name, e.g. "googlesheets"
	Err   error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s store: unable to insert city request: %v", e.Store, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is reports ErrStoreFailed as a match so callers can test the failure kind
// without knowing the backend
func (e *StoreError) Is(target error) bool {
	return target == ErrStoreFailed
}
