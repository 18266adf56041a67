package booking

import (
	"errors"
	"fmt"
)

// Error codes for the booking flow.
const (
	CodeSlotUnavailable     = "slotUnavailable"
	CodeDuplicateBooking    = "duplicateBooking"
	CodeProvisioningFailure = "provisioningFailure"
	CodeInvalidInput        = "invalidInput"
)

// BookingError is the typed error surfaced by the orchestrator.
type BookingError struct {
	Code    string
	Message string
	cause   error
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BookingError) Unwrap() error {
	return e.cause
}

func NewSlotUnavailableError() error {
	return &BookingError{
		Code:    CodeSlotUnavailable,
		Message: "the requested slot is no longer available",
	}
}

func NewDuplicateBookingError(purchaseID string) error {
	return &BookingError{
		Code:    CodeDuplicateBooking,
		Message: fmt.Sprintf("purchase %s already has an active reservation", purchaseID),
	}
}

// NewProvisioningError hides the provider-specific cause from callers; the
// detail is logged server-side and preserved for errors.Unwrap.
func NewProvisioningError(cause error) error {
	return &BookingError{
		Code:    CodeProvisioningFailure,
		Message: "could not complete booking",
		cause:   cause,
	}
}

func NewInvalidInputError(msg string) error {
	return &BookingError{
		Code:    CodeInvalidInput,
		Message: msg,
	}
}

// ErrorCode extracts the booking error code, or "" for untyped errors.
func ErrorCode(err error) string {
	var be *BookingError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
