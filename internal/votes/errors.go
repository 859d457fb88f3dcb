package votes

import (
	"errors"
	"fmt"
)

// StoreError represents a guard violation on a record store operation.
//
// Guard violations are hard failures: the operation did not mutate state
// and the caller must treat the attempt as rejected, never as a no-op.
type StoreError struct {
	// Code identifies the error category.
	Code ErrorCode

	// VoterID identifies the affected record.
	VoterID string
}

// ErrorCode categorizes store errors.
type ErrorCode string

const (
	// ErrCodeAlreadyExists indicates a Register for a present voter ID.
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// ErrCodeNotFound indicates a Read/Update/Delete for an absent voter ID.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// Error implements the error interface.
func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: voter %q", e.Code, e.VoterID)
}

// IsAlreadyExists reports whether err is an ALREADY_EXISTS guard violation.
// Uses errors.As to handle wrapped errors.
func IsAlreadyExists(err error) bool {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Code == ErrCodeAlreadyExists
	}
	return false
}

// IsNotFound reports whether err is a NOT_FOUND guard violation.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Code == ErrCodeNotFound
	}
	return false
}

func newAlreadyExists(voterID string) *StoreError {
	return &StoreError{Code: ErrCodeAlreadyExists, VoterID: voterID}
}

func newNotFound(voterID string) *StoreError {
	return &StoreError{Code: ErrCodeNotFound, VoterID: voterID}
}
