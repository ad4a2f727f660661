// Package common holds the error kinds shared by the service layers.
// Callers match them with errors.Is; lower layers wrap the underlying
// cause next to the sentinel so both stay visible in logs.
package common

import "errors"

var (
	// ErrValidation marks bad client input, such as an unknown form field
	// or an upload under an unrecognized field name.
	ErrValidation = errors.New("validation error")

	// ErrNotFound marks a missing submission.
	ErrNotFound = errors.New("not found")

	// ErrGateway marks a failed call to the payment gateway.
	ErrGateway = errors.New("payment gateway error")

	// ErrSignatureMismatch marks a payment signature that does not verify.
	ErrSignatureMismatch = errors.New("payment signature mismatch")

	// ErrPersistence marks a storage layer failure (document store or blob store).
	ErrPersistence = errors.New("persistence error")
)
