package services

import (
	"errors"
	"fmt"
)

// ValidationKind classifies a recoverable, user-facing validation failure.
type ValidationKind string

const (
	InvalidCode     ValidationKind = "invalid_code"
	BelowMinimum    ValidationKind = "below_minimum"
	MissingField    ValidationKind = "missing_field"
	EmptyCart       ValidationKind = "empty_cart"
	InvalidPatient  ValidationKind = "invalid_patient"
	PatientNotFound ValidationKind = "patient_not_found"
)

// ValidationError is returned, never panicked, for input the user can fix.
type ValidationError struct {
	Kind    ValidationKind
	Message string
	// MinOrderValue is set for BelowMinimum.
	MinOrderValue int64
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is a ValidationError of the given kind.
// An empty kind matches any ValidationError.
func IsValidation(err error, kind ValidationKind) bool {
	var ve *ValidationError
	if !errors.As(err, &ve) {
		return false
	}
	return kind == "" || ve.Kind == kind
}

// OrderFailedError reports that the order sink did not create an order.
type OrderFailedError struct {
	Reason string
	Err    error
}

func (e *OrderFailedError) Error() string {
	return fmt.Sprintf("failed to place order: %s", e.Reason)
}

func (e *OrderFailedError) Unwrap() error {
	return e.Err
}

// ErrCheckoutInProgress is returned when an order placement is already running.
var ErrCheckoutInProgress = errors.New("order placement already in progress")
