package featurize

import (
	"errors"
	"fmt"
)

// Errors returned by featurization entry points.
var (
	// ErrCapabilityMissing indicates a required parsing capability or hook
	// was not configured. It aborts the whole call before any datapoint is
	// processed.
	ErrCapabilityMissing = errors.New("required capability not configured")

	// ErrLengthMismatch indicates the molecule and protein file lists given
	// to Complexes have different lengths.
	ErrLengthMismatch = errors.New("molecule and protein file lists must have equal length")
)

// DomainError marks a recoverable failure caused by the shape or content of
// a single datapoint (unparseable SMILES, malformed structure dictionary,
// descriptor computation rejecting an input). Batch loops recover domain
// errors at the item boundary, substituting an empty vector; every other
// error aborts the batch and propagates to the caller.
type DomainError struct {
	err error
}

// Domainf creates a DomainError with a formatted message. The %w verb is
// supported for wrapping an underlying cause.
func Domainf(format string, args ...any) error {
	return &DomainError{err: fmt.Errorf(format, args...)}
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	return e.err.Error()
}

// Unwrap returns the underlying error.
func (e *DomainError) Unwrap() error {
	return e.err
}

// IsDomainError reports whether any error in err's chain is a DomainError.
func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}
