// Package errs provides standardized error types for the dispatch application.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the codebase.
//
// Each error type follows the same shape:
//   - a sentinel error variable (e.g. ErrObjectNotFound) for errors.Is checks
//   - a struct type carrying the error details
//   - constructor functions with and without an underlying cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// Domain packages add their own sentinels (for example offer.ErrAlreadyResolved)
// on top of this base taxonomy; transport adapters map both onto status codes.
package errs
