// Package errs provides the typed errors shared by the domain, the use cases
// and the adapters.
//
// Every error type follows the same shape:
//   - a sentinel variable (ErrValueIsRequired, ErrObjectNotFound, ...)
//   - a struct carrying the offending parameter and an optional cause
//   - constructors with and without cause
//   - Unwrap returning the sentinel, so callers branch with errors.Is
//
// Adapters translate these into transport responses: ErrObjectNotFound becomes
// 404, the value errors become 400.
package errs
