package domain

import (
	"errors"
	"fmt"
)

// AppError is an error carrying the HTTP status class it maps to
type AppError struct {
	Message string
	Code    int
}

func (e *AppError) Error() string {
	return e.Message
}

// Is matches AppErrors by code and message so that wrapped copies created
// with Validation/NotFound/... compare equal to the sentinel values
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// Validation builds a 400 error
func Validation(format string, args ...any) *AppError {
	return &AppError{Message: fmt.Sprintf(format, args...), Code: 400}
}

// NotFound builds a 404 error naming the missing entity role
func NotFound(role string) *AppError {
	return &AppError{Message: role + " not found", Code: 404}
}

// Conflict builds a 409 error
func Conflict(format string, args ...any) *AppError {
	return &AppError{Message: fmt.Sprintf(format, args...), Code: 409}
}

// Custom error types
var (
	ErrForbidden = &AppError{
		Message: "you are not allowed to perform this operation",
		Code:    403, // StatusForbidden
	}
	ErrInvalidID = &AppError{
		Message: "invalid id",
		Code:    400, // StatusBadRequest
	}

	ErrIngredientNotFound      = NotFound("ingredient")
	ErrSupplierNotFound        = NotFound("supplier")
	ErrSupplierAccountNotFound = NotFound("supplier account")
	ErrCatalogEntryNotFound    = NotFound("catalog entry")
	ErrInquiryNotFound         = NotFound("inquiry")
	ErrInquiryItemNotFound     = NotFound("inquiry item")
	ErrQuoteNotFound           = NotFound("quote")
	ErrOrderNotFound           = NotFound("order")
	ErrSupplierProfileNotFound = NotFound("supplier profile")

	ErrIngredientExists       = Conflict("ingredient already exists")
	ErrIngredientInUse        = Conflict("ingredient is still referenced by inquiries")
	ErrCatalogEntryExists     = Conflict("supplier already offers this ingredient")
	ErrQuoteExists            = Conflict("a quote has already been submitted for this inquiry")
	ErrOrderExists            = Conflict("an order has already been placed for this quote")
	ErrInquiryCancelled       = Conflict("inquiry has been cancelled")
	ErrQuoteNotQuoted         = Conflict("quote is no longer awaiting action")
	ErrOperationInProgress    = Conflict("another request is already processing this resource")
	ErrInvalidTransition      = Conflict("status transition is not allowed")
	ErrStatusChanged          = Conflict("status was changed by another request")
	ErrEmptySelection         = Validation("at least one quote item must be selected")
	ErrNoSelectableQuoteItems = Validation("none of the selected quote items can be ordered")
	ErrNotASupplier           = Validation("user is not a supplier")
)

// Standard error types for repositories
var (
	ErrNotFound   = errors.New("not found")
	ErrDuplicate  = errors.New("duplicate key")
	ErrReferenced = errors.New("referenced by other records")
)
