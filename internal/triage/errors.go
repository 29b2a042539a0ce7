package triage

import "errors"

var (
	// ErrInvalidInput marks requests the caller must fix before retrying.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInternal marks unexpected failures while scoring.
	ErrInternal = errors.New("internal error")
)

// MinComplaintLength is the shortest accepted complaint after trimming.
const MinComplaintLength = 3

// ValidationError carries the client-facing reason for ErrInvalidInput.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return ErrInvalidInput.Error() + ": " + e.Reason
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
