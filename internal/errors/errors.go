package errors

import (
	"fmt"
)

// IndexerError is the structured error type for the indexer. It provides
// context for error handling and logging across the pipeline.
type IndexerError struct {
	// Code is the unique error code (e.g., "ERR_202_STORE_QUERY").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, Store, Submit, ...).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Retryable indicates if the operation can be retried.
	Retryable bool
}

// Error implements the error interface.
func (e *IndexerError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *IndexerError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code. This enables
// errors.Is() to work with IndexerError.
func (e *IndexerError) Is(target error) bool {
	if t, ok := target.(*IndexerError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error. Returns the error for
// method chaining.
func (e *IndexerError) WithDetail(key, value string) *IndexerError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// New creates a new IndexerError with the given code and message. Category,
// severity, and retryable flag are derived from the code.
func New(code string, message string, cause error) *IndexerError {
	return &IndexerError{
		Code:      code,
		Message:   message,
		Category:  categoryFromCode(code),
		Severity:  severityFromCode(code),
		Cause:     cause,
		Retryable: isRetryableCode(code),
	}
}

// Wrap creates an IndexerError from an existing error. The error's message
// becomes the IndexerError message.
func Wrap(code string, err error) *IndexerError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *IndexerError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// StoreError creates a primary store query error. Store errors are fatal to
// the run and abort it with no partial output.
func StoreError(message string, cause error) *IndexerError {
	return New(ErrCodeStoreQuery, message, cause)
}

// SubmitError creates a search engine submission error. Submission errors
// are typically retryable by the scheduler.
func SubmitError(message string, cause error) *IndexerError {
	return New(ErrCodeSubmitFailed, message, cause)
}

// InternalError creates an internal error.
func InternalError(message string, cause error) *IndexerError {
	return New(ErrCodeInternal, message, cause)
}

// IsRetryable checks if an error is retryable. Returns true if the error is
// an IndexerError with the Retryable flag set.
func IsRetryable(err error) bool {
	if e, ok := err.(*IndexerError); ok {
		return e.Retryable
	}
	return false
}

// IsFatal checks if an error must abort the indexing run.
func IsFatal(err error) bool {
	if e, ok := err.(*IndexerError); ok {
		return e.Severity == SeverityFatal
	}
	// Unclassified errors abort: the run only degrades on anomalies it
	// explicitly recognizes.
	return err != nil
}
