package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ordersnap/backend/internal/domain"
)

const (
	defaultInvoiceSubject = "Your invoice"
	defaultNotePrefix     = "OrderSnap for"
)

// OrderServiceConfig holds configuration for the order service
type OrderServiceConfig struct {
	MinConfidenceThreshold float64
	EnableDebugLogging     bool
	DefaultInvoiceSubject  string
	NotePrefix             string
}

// OrderService runs the reconciliation pipeline against the store gateway
type OrderService struct {
	gateway         domain.OrderGateway
	matchingService *MatchingService
	invoiceSubject  string
	notePrefix      string
	logger          *zap.Logger
}

// NewOrderService creates a new order service with dependencies
func NewOrderService(
	gateway domain.OrderGateway,
	logger *zap.Logger,
	config OrderServiceConfig,
) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}

	matchingService := NewMatchingService(MatchConfig{
		MinConfidenceThreshold: config.MinConfidenceThreshold,
		EnableDebugLogging:     config.EnableDebugLogging,
		Logger:                 logger.Named("matcher"),
	})

	subject := config.DefaultInvoiceSubject
	if subject == "" {
		subject = defaultInvoiceSubject
	}

	notePrefix := config.NotePrefix
	if notePrefix == "" {
		notePrefix = defaultNotePrefix
	}

	return &OrderService{
		gateway:         gateway,
		matchingService: matchingService,
		invoiceSubject:  subject,
		notePrefix:      notePrefix,
		logger:          logger,
	}
}

// MatchProducts parses free text and matches it against a freshly fetched catalog.
// Flow: parse -> fetch catalog -> match
func (s *OrderService) MatchProducts(
	ctx context.Context,
	creds domain.Credentials,
	text string,
) ([]domain.MatchResult, error) {
	return s.MatchRequests(ctx, creds, ParseProductLines(text))
}

// MatchRequests matches already structured requests. Missing or non-positive
// quantities default to 1.
func (s *OrderService) MatchRequests(
	ctx context.Context,
	creds domain.Credentials,
	requests []domain.ProductRequest,
) ([]domain.MatchResult, error) {
	if !creds.Valid() {
		return nil, fmt.Errorf("%w: store domain and admin token are required", domain.ErrInvalidRequest)
	}
	if len(requests) == 0 {
		return nil, fmt.Errorf("%w: no product lines to match", domain.ErrInvalidRequest)
	}

	normalized := make([]domain.ProductRequest, len(requests))
	for i, req := range requests {
		normalized[i] = domain.ProductRequest{
			Name:     strings.TrimSpace(req.Name),
			Quantity: ClampQuantity(float64(req.Quantity)),
		}
	}

	// Always fetched per call; catalog data is never reused across requests
	catalog, err := s.gateway.FetchCatalog(ctx, creds)
	if err != nil {
		s.logger.Error("catalog fetch failed", zap.String("store", creds.StoreDomain), zap.Error(err))
		return nil, err
	}

	results := s.matchingService.Match(normalized, catalog)

	_, unmatched := ToLineItems(results)
	s.logger.Info("products matched",
		zap.String("store", creds.StoreDomain),
		zap.Int("requests", len(results)),
		zap.Int("catalog_size", len(catalog)),
		zap.Int("unmatched", unmatched),
	)

	return results, nil
}

// Checkout creates a draft order from the matched rows and emails its invoice.
// The invoice is only sent once the draft order ID is known. If sending fails
// the returned result still carries the draft order ID alongside an *domain.InvoiceError.
func (s *OrderService) Checkout(
	ctx context.Context,
	creds domain.Credentials,
	req domain.CheckoutRequest,
) (*domain.CheckoutResult, error) {
	if !creds.Valid() {
		return nil, fmt.Errorf("%w: store domain and admin token are required", domain.ErrInvalidRequest)
	}
	if strings.TrimSpace(req.CustomerEmail) == "" {
		return nil, fmt.Errorf("%w: customer email is required", domain.ErrInvalidRequest)
	}

	for i, m := range req.Matches {
		if m.Matched != nil && m.Matched.Quantity < 1 {
			return nil, fmt.Errorf("%w: row %d has quantity %d", domain.ErrInvalidRequest, i, m.Matched.Quantity)
		}
	}

	lineItems, unmatched := ToLineItems(req.Matches)
	if len(lineItems) == 0 {
		return nil, fmt.Errorf("%w (%d unmatched)", domain.ErrEmptyLineItems, unmatched)
	}

	result := &domain.CheckoutResult{
		LineItems:      lineItems,
		UnmatchedCount: unmatched,
	}

	draft, err := s.gateway.CreateDraftOrder(ctx, creds, domain.DraftOrderRequest{
		Email:                     req.CustomerEmail,
		Note:                      s.buildNote(req.CustomerName),
		UseCustomerDefaultAddress: true,
		LineItems:                 lineItems,
	})
	if err != nil {
		s.logger.Error("draft order creation failed", zap.String("store", creds.StoreDomain), zap.Error(err))
		return nil, err
	}
	result.DraftOrderID = draft.ID

	s.logger.Info("draft order created",
		zap.String("store", creds.StoreDomain),
		zap.Int64("draft_order_id", draft.ID),
		zap.Int("line_items", len(lineItems)),
		zap.Int("unmatched", unmatched),
	)

	invoice := s.buildInvoice(req)
	if err := s.gateway.SendInvoice(ctx, creds, draft.ID, invoice); err != nil {
		s.logger.Error("invoice send failed",
			zap.String("store", creds.StoreDomain),
			zap.Int64("draft_order_id", draft.ID),
			zap.Error(err),
		)
		return result, &domain.InvoiceError{DraftOrderID: draft.ID, Err: err}
	}
	result.InvoiceSent = true

	return result, nil
}

// buildNote formats the draft order note for the customer
func (s *OrderService) buildNote(customerName string) string {
	name := strings.TrimSpace(customerName)
	if name == "" {
		return s.notePrefix
	}
	return fmt.Sprintf("%s %s", s.notePrefix, name)
}

// buildInvoice applies the default subject and greeting when none were supplied
func (s *OrderService) buildInvoice(req domain.CheckoutRequest) domain.InvoiceRequest {
	subject := strings.TrimSpace(req.EmailSubject)
	if subject == "" {
		subject = s.invoiceSubject
	}

	message := strings.TrimSpace(req.EmailBody)
	if message == "" {
		name := strings.TrimSpace(req.CustomerName)
		if name == "" {
			message = "Hi, here is your invoice."
		} else {
			message = fmt.Sprintf("Hi %s, here is your invoice.", name)
		}
	}

	return domain.InvoiceRequest{Subject: subject, CustomMessage: message}
}
