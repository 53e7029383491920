// Package errs provides standardized error types for the application.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the codebase.
//
// Each error type follows the same shape:
//   - a sentinel error variable (e.g. ErrValueIsRequired)
//   - a struct type carrying error details
//   - constructor functions with and without an underlying cause
//   - Error() for message formatting
//   - Unwrap() returning the sentinel, so errors.Is classification works
//
// Callers match on sentinels with errors.Is and reach for the struct fields
// with errors.As when they need the details.
package errs
