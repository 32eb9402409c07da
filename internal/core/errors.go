package core

// errors.go defines the error taxonomy for inventory operations and maps
// technical errors to user-friendly messages with codes for support reference.
//
// Error codes are grouped by category:
//
//	DB001 - Duplicate name: a product with this name already exists
//	DB002 - Connection trouble: the inventory store is unreachable
//	DB003 - No change: the write affected zero rows
//	VAL001 - Required field missing or malformed
//	INV001 - Product not found
//	EXP001 - Export requested with no products in the store

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for conditions that carry no extra context.
var (
	// ErrNotFound indicates the target product id does not resolve.
	ErrNotFound = errors.New("product not found")

	// ErrNoChange indicates a write affected zero rows, e.g. a racing delete
	// removed the row between read and update.
	ErrNoChange = errors.New("product not updated or no change made")

	// ErrEmptyDataset indicates an export was requested with zero products.
	ErrEmptyDataset = errors.New("no data found")
)

// ValidationError indicates a missing or malformed required field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ConflictError indicates a uniqueness violation on a product name,
// surfaced by the store's unique constraint.
type ConflictError struct {
	Name string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("product name %q already exists", e.Name)
}

// TransientError wraps a store fault that makes continuing meaningless,
// such as a lost connection. During imports it aborts the remaining rows;
// single operations surface it to the caller for boundary-level retry.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return "store unreachable: " + e.Err.Error()
}

func (e *TransientError) Unwrap() error { return e.Err }

// IsTransient reports whether err is (or wraps) a TransientError.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// UserMessage is a sanitized, user-facing rendering of an error.
type UserMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
}

// MapError converts any error into a UserMessage. Technical details stay in
// the server logs; clients get the message, a suggested action, and a code
// to quote to support.
func MapError(err error) UserMessage {
	var ve *ValidationError
	var ce *ConflictError

	switch {
	case errors.As(err, &ce):
		return UserMessage{
			Code:    "DB001",
			Message: fmt.Sprintf("A product named %q already exists", ce.Name),
			Action:  "Use a different name or edit the existing product",
		}
	case IsTransient(err):
		return UserMessage{
			Code:    "DB002",
			Message: "The inventory store is temporarily unreachable",
			Action:  "Please try again in a few moments",
		}
	case errors.Is(err, ErrNoChange):
		return UserMessage{
			Code:    "DB003",
			Message: "Product not updated or no change made",
			Action:  "Reload the product list and retry",
		}
	case errors.As(err, &ve):
		msg := ve.Message
		if ve.Field != "" {
			msg = ve.Field + ": " + msg
		}
		return UserMessage{
			Code:    "VAL001",
			Message: strings.ToUpper(msg[:1]) + msg[1:],
			Action:  "Correct the highlighted field and resubmit",
		}
	case errors.Is(err, ErrNotFound):
		return UserMessage{
			Code:    "INV001",
			Message: "Product not found",
			Action:  "Reload the product list; it may have been deleted",
		}
	case errors.Is(err, ErrEmptyDataset):
		return UserMessage{
			Code:    "EXP001",
			Message: "No data found",
			Action:  "Add products before exporting",
		}
	default:
		return UserMessage{
			Code:    "SYS001",
			Message: "An unexpected error occurred",
			Action:  "Please try again or contact support with this code",
		}
	}
}
