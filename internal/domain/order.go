package domain

import "github.com/shopspring/decimal"

// Credentials identify the merchant store for a single call. They are passed
// explicitly to every gateway operation and never stored.
type Credentials struct {
	StoreDomain string `json:"storeDomain" binding:"required"`
	AdminToken  string `json:"adminToken" binding:"required"`
}

// Valid reports whether both credential fields are present
func (c Credentials) Valid() bool {
	return c.StoreDomain != "" && c.AdminToken != ""
}

// LineItem is one resolved (variant, quantity) pair sent to draft order creation.
// Price is left nil so the store falls back to the catalog price.
type LineItem struct {
	VariantID int64            `json:"variantId"`
	Quantity  int              `json:"quantity"`
	Price     *decimal.Decimal `json:"price,omitempty"`
}

// DraftOrderRequest is the payload for draft order creation
type DraftOrderRequest struct {
	Email                     string     `json:"email"`
	Note                      string     `json:"note"`
	UseCustomerDefaultAddress bool       `json:"useCustomerDefaultAddress"`
	LineItems                 []LineItem `json:"lineItems"`
}

// DraftOrder is the subset of the created draft order the service relies on
type DraftOrder struct {
	ID         int64  `json:"id"`
	Name       string `json:"name,omitempty"`
	Status     string `json:"status,omitempty"`
	InvoiceURL string `json:"invoiceUrl,omitempty"`
}

// InvoiceRequest holds the optional invoice email overrides
type InvoiceRequest struct {
	Subject       string `json:"subject,omitempty"`
	CustomMessage string `json:"customMessage,omitempty"`
}

// CheckoutRequest turns reconciled match results into a draft order with an emailed invoice
type CheckoutRequest struct {
	CustomerName  string        `json:"customerName" binding:"required"`
	CustomerEmail string        `json:"customerEmail" binding:"required,email"`
	Matches       []MatchResult `json:"matches" binding:"required"`
	EmailSubject  string        `json:"emailSubject,omitempty"`
	EmailBody     string        `json:"emailBody,omitempty"`
}

// CheckoutResult reports what was created. DraftOrderID is set whenever the
// draft order exists, even if the invoice could not be sent.
type CheckoutResult struct {
	DraftOrderID   int64      `json:"draftOrderId"`
	InvoiceSent    bool       `json:"invoiceSent"`
	LineItems      []LineItem `json:"lineItems"`
	UnmatchedCount int        `json:"unmatchedCount"`
}
