// Package validation holds the pure, side-effect-free rule sets applied to
// credential, registration, and password-change forms before submission.
//
// Each schema is a callable validator: it returns the normalized value and
// a [FieldErrors] set keyed by field path, or nil when the input is
// acceptable. Schemas perform no I/O and never panic — every outcome is
// represented as data for the caller to display.
//
// # Architecture boundaries
//
// This package translates form input into accept/reject decisions. It does
// NOT touch session state, call collaborators, or decide navigation; those
// belong to the identkit root package.
package validation
