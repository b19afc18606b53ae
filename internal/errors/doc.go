// Package apperrors holds the error types shared by the calculator and the
// mapping from errors to process exit codes. Every wrapping type implements
// Unwrap so that callers classify errors with errors.Is and errors.As.
package apperrors
