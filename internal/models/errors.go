package models

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors of the client contract.
var (
	ErrItemNotFound     = errors.New("item not found in live results")
	ErrPaymentCancelled = errors.New("payment cancelled by user")
	ErrSearchInFlight   = errors.New("search already in flight for domain")
	ErrUnauthenticated  = errors.New("authentication required or invalid credentials")
)

// ValidationError reports missing or invalid required input. It is resolved
// locally and never reaches the network.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// RequestFailedError is a non-2xx response or transport failure from the
// backend. No automatic retry; callers decide the user-facing message.
type RequestFailedError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *RequestFailedError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: backend returned %d: %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: request failed: %v", e.Op, e.Err)
}

func (e *RequestFailedError) Unwrap() error { return e.Err }

// PaymentFailedError is a provider-side checkout failure, distinct from a
// user cancellation.
type PaymentFailedError struct {
	OrderID string
	Reason  string
}

func (e *PaymentFailedError) Error() string {
	return fmt.Sprintf("payment failed for order %s: %s", e.OrderID, e.Reason)
}

// PartialSuccessError means the payment verified but the booking record
// could not be created. Money has moved; this must surface with elevated
// severity and is never swallowed.
type PartialSuccessError struct {
	PaymentID string
	OrderID   string
	Err       error
}

func (e *PartialSuccessError) Error() string {
	return fmt.Sprintf("payment %s succeeded but booking failed: %v", e.PaymentID, e.Err)
}

func (e *PartialSuccessError) Unwrap() error { return e.Err }
