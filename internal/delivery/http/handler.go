package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ordersnap/backend/internal/domain"
	"github.com/ordersnap/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	orderService *usecase.OrderService
	logger       *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(orderService *usecase.OrderService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		orderService: orderService,
		logger:       logger,
	}
}

// MatchRequest is the body of POST /api/v1/products/match. Either Text or
// Queries must be supplied; Queries wins when both are present.
type MatchRequest struct {
	domain.Credentials
	Text    string                  `json:"text"`
	Queries []domain.ProductRequest `json:"queries"`
}

// MatchResponse lists one result per requested line, in input order
type MatchResponse struct {
	Matches        []domain.MatchResult `json:"matches"`
	MatchedCount   int                  `json:"matchedCount"`
	UnmatchedCount int                  `json:"unmatchedCount"`
}

// QuantityOverrideRequest is the body of POST /api/v1/matches/quantity
type QuantityOverrideRequest struct {
	Matches  []domain.MatchResult `json:"matches" binding:"required"`
	Index    *int                 `json:"index" binding:"required"`
	Quantity float64              `json:"quantity"`
}

// DraftOrderHTTPRequest is the body of POST /api/v1/draft-orders
type DraftOrderHTTPRequest struct {
	domain.Credentials
	domain.CheckoutRequest
}

// DraftOrderResponse reports the created draft order
type DraftOrderResponse struct {
	OK             bool  `json:"ok"`
	DraftOrderID   int64 `json:"draftOrderId"`
	InvoiceSent    bool  `json:"invoiceSent"`
	LineItemCount  int   `json:"lineItemCount"`
	UnmatchedCount int   `json:"unmatchedCount"`
}

// ErrorResponse is the error body for every endpoint
type ErrorResponse struct {
	Error        string `json:"error"`
	Kind         string `json:"kind"`
	DraftOrderID int64  `json:"draftOrderId,omitempty"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "ordersnap-backend",
		"version": "1.0.0",
	})
}

// MatchProducts parses the submitted product list and matches every line
// against the store's current catalog
func (h *Handler) MatchProducts(c *gin.Context) {
	if h.orderService == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error: "Order service not configured",
			Kind:  domain.KindInternal,
		})
		return
	}

	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.renderBindError(c, err)
		return
	}

	var (
		results []domain.MatchResult
		err     error
	)
	if len(req.Queries) > 0 {
		results, err = h.orderService.MatchRequests(c.Request.Context(), req.Credentials, req.Queries)
	} else {
		results, err = h.orderService.MatchProducts(c.Request.Context(), req.Credentials, req.Text)
	}
	if err != nil {
		h.renderError(c, err)
		return
	}

	resp := MatchResponse{Matches: results}
	for _, r := range results {
		if r.IsMatched() {
			resp.MatchedCount++
		} else {
			resp.UnmatchedCount++
		}
	}

	c.JSON(http.StatusOK, resp)
}

// OverrideQuantity replaces the quantity of one row and returns the updated list
func (h *Handler) OverrideQuantity(c *gin.Context) {
	var req QuantityOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.renderBindError(c, err)
		return
	}

	updated, err := usecase.ApplyQuantityOverride(req.Matches, *req.Index, req.Quantity)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"matches": updated})
}

// CreateDraftOrder creates a draft order from the matched rows and emails the invoice
func (h *Handler) CreateDraftOrder(c *gin.Context) {
	if h.orderService == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error: "Order service not configured",
			Kind:  domain.KindInternal,
		})
		return
	}

	var req DraftOrderHTTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.renderBindError(c, err)
		return
	}

	result, err := h.orderService.Checkout(c.Request.Context(), req.Credentials, req.CheckoutRequest)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, DraftOrderResponse{
		OK:             true,
		DraftOrderID:   result.DraftOrderID,
		InvoiceSent:    result.InvoiceSent,
		LineItemCount:  len(result.LineItems),
		UnmatchedCount: result.UnmatchedCount,
	})
}

func (h *Handler) renderBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error: "Invalid request: " + err.Error(),
		Kind:  domain.KindInvalidRequest,
	})
}

// renderError maps domain errors to HTTP status codes
func (h *Handler) renderError(c *gin.Context, err error) {
	kind := domain.KindOf(err)
	resp := ErrorResponse{Error: err.Error(), Kind: kind}

	var invoiceErr *domain.InvoiceError
	if errors.As(err, &invoiceErr) {
		resp.DraftOrderID = invoiceErr.DraftOrderID
	}

	status := http.StatusInternalServerError
	switch kind {
	case domain.KindInvalidRequest, domain.KindEmptyLineItems:
		status = http.StatusBadRequest
	case domain.KindFetch, domain.KindCreate, domain.KindSend:
		status = http.StatusBadGateway
	default:
		h.logger.Error("unexpected error", zap.String("path", c.Request.URL.Path), zap.Error(err))
		resp.Error = "Internal server error"
	}

	c.JSON(status, resp)
}
