package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrIndexOutOfRange is returned when a quantity override targets a missing row
	ErrIndexOutOfRange = errors.New("match index out of range")

	// ErrEmptyLineItems is returned when no request resolved to a catalog variant
	ErrEmptyLineItems = errors.New("no matched products to add")

	// ErrFetchCatalog is returned when the product catalog request fails
	ErrFetchCatalog = errors.New("product fetch failed")

	// ErrCreateDraftOrder is returned when the draft order request fails
	ErrCreateDraftOrder = errors.New("create draft failed")

	// ErrSendInvoice is returned when the invoice request fails
	ErrSendInvoice = errors.New("send invoice failed")
)

// Error kinds exposed to API callers
const (
	KindInvalidRequest = "invalid_request"
	KindEmptyLineItems = "empty_line_items"
	KindFetch          = "fetch_error"
	KindCreate         = "create_error"
	KindSend           = "send_error"
	KindInternal       = "internal"
)

// InvoiceError is returned when the draft order was created but the invoice
// could not be sent. The draft order exists and its ID must reach the caller.
type InvoiceError struct {
	DraftOrderID int64
	Err          error
}

func (e *InvoiceError) Error() string {
	return fmt.Sprintf("draft order %d created but invoice was not sent: %v", e.DraftOrderID, e.Err)
}

func (e *InvoiceError) Unwrap() error {
	return e.Err
}

// KindOf maps an error to its machine-checkable kind
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, ErrIndexOutOfRange):
		return KindInvalidRequest
	case errors.Is(err, ErrEmptyLineItems):
		return KindEmptyLineItems
	case errors.Is(err, ErrFetchCatalog):
		return KindFetch
	case errors.Is(err, ErrCreateDraftOrder):
		return KindCreate
	case errors.Is(err, ErrSendInvoice):
		return KindSend
	default:
		return KindInternal
	}
}
