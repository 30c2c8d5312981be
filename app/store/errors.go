package store

import (
	"errors"
	"fmt"
)

// ErrorKind classifies engine rejections so callers can branch on the kind
// while still having a message they can put on screen unchanged.
type ErrorKind string

const (
	ErrValidation               ErrorKind = "validation"
	ErrDuplicate                ErrorKind = "duplicate"
	ErrInvalidAmount            ErrorKind = "invalid_amount"
	ErrNegativeQuantity         ErrorKind = "negative_quantity"
	ErrEmptyComposition         ErrorKind = "empty_composition"
	ErrInvalidComponent         ErrorKind = "invalid_component"
	ErrEmptyOrder               ErrorKind = "empty_order"
	ErrInvalidQuantity          ErrorKind = "invalid_quantity"
	ErrUnknownProduct           ErrorKind = "unknown_product"
	ErrInsufficientStock        ErrorKind = "insufficient_stock"
	ErrMissingInstallmentConfig ErrorKind = "missing_installment_config"
	ErrDownPaymentExceedsTotal  ErrorKind = "down_payment_exceeds_total"
	ErrMissingDueDate           ErrorKind = "missing_due_date"
	ErrInvalidDate              ErrorKind = "invalid_date"
	ErrInvalidDueDay            ErrorKind = "invalid_due_day"
	ErrNotFound                 ErrorKind = "not_found"
	ErrNoItemsSelected          ErrorKind = "no_items_selected"
)

// Error is a rejection returned as a value. The engine never panics on bad
// input; every rejection carries a message suitable for direct display.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func reject(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the ErrorKind from an engine error. It returns the empty
// kind for nil or foreign errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
