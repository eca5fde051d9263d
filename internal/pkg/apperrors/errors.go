package apperrors

import (
	"errors"
	"fmt"
)

// ValidationError marks input that must be rejected before any write occurs:
// malformed archives, per-entity JSON that is not an array, records without a
// uuid, or malformed search filters.
type ValidationError struct {
	Subject string // entity type, file name or field the input failed on
	Reason  string
}

func (e *ValidationError) Error() string {
	if e.Subject == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed on %s: %s", e.Subject, e.Reason)
}

func NewValidationError(subject, reason string) *ValidationError {
	return &ValidationError{Subject: subject, Reason: reason}
}

// StorageError wraps connectivity or write failures at the store. Records
// committed before the failure stay committed; callers report partial counts.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
