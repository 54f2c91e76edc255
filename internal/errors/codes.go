// Package errors provides structured error handling for the Forgelode
// indexer.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: Primary store errors
//   - 3XX: Search engine submission errors
//   - 4XX: Assembly/serialization errors
//   - 5XX: Internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryStore indicates primary store query and connectivity errors.
	CategoryStore Category = "STORE"
	// CategorySubmit indicates search engine submission errors.
	CategorySubmit Category = "SUBMIT"
	// CategoryAssembly indicates document assembly errors.
	CategoryAssembly Category = "ASSEMBLY"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates unrecoverable error, the run must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates operation failed but the run can continue.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigNotFound = "ERR_101_CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "ERR_102_CONFIG_INVALID"

	// Store errors (200-299)
	ErrCodeStoreConnect = "ERR_201_STORE_CONNECT"
	ErrCodeStoreQuery   = "ERR_202_STORE_QUERY"
	ErrCodeStoreBusy    = "ERR_203_STORE_BUSY"

	// Submission errors (300-399)
	ErrCodeSubmitFailed      = "ERR_301_SUBMIT_FAILED"
	ErrCodeSubmitIndexClosed = "ERR_302_SUBMIT_INDEX_CLOSED"

	// Assembly errors (400-499)
	ErrCodeSerialization = "ERR_401_SERIALIZATION"

	// Internal errors (500-599)
	ErrCodeInternal = "ERR_501_INTERNAL"
)

// categoryFromCode derives the category from the code's number block.
func categoryFromCode(code string) Category {
	if len(code) < 5 {
		return CategoryInternal
	}
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryStore
	case '3':
		return CategorySubmit
	case '4':
		return CategoryAssembly
	default:
		return CategoryInternal
	}
}

// severityFromCode derives the severity from the code. Store and submission
// failures are fatal to a run; serialization failures only degrade it.
func severityFromCode(code string) Severity {
	switch categoryFromCode(code) {
	case CategoryStore, CategorySubmit, CategoryConfig:
		return SeverityFatal
	case CategoryAssembly:
		return SeverityWarning
	default:
		return SeverityError
	}
}

// isRetryableCode reports whether the failed operation may be retried.
func isRetryableCode(code string) bool {
	switch code {
	case ErrCodeStoreBusy, ErrCodeSubmitFailed:
		return true
	default:
		return false
	}
}
