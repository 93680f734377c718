package domain

import "context"

// OrderGateway defines the operations consumed from the store's admin API.
// Each call is fire-once and receives the merchant credentials explicitly.
type OrderGateway interface {
	FetchCatalog(ctx context.Context, creds Credentials) ([]CatalogProduct, error)
	CreateDraftOrder(ctx context.Context, creds Credentials, order DraftOrderRequest) (*DraftOrder, error)
	SendInvoice(ctx context.Context, creds Credentials, draftOrderID int64, invoice InvoiceRequest) error
}
