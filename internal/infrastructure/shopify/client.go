package shopify

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	goshopify "github.com/bold-commerce/go-shopify/v3"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ordersnap/backend/internal/domain"
)

const (
	DefaultAPIVersion        = "2024-10"
	DefaultPageLimit         = 250
	DefaultRequestsPerSecond = 2.0
	DefaultBurst             = 4
	DefaultTimeout           = 30 * time.Second
)

// Config holds the admin API client settings. Credentials are not part of it;
// they arrive with every call.
type Config struct {
	APIVersion        string
	PageLimit         int
	RequestsPerSecond float64
	Burst             int
	Timeout           time.Duration

	// HTTPClient overrides the transport, mainly for tests
	HTTPClient *http.Client
}

// Client implements domain.OrderGateway on top of the store's REST admin API
type Client struct {
	apiVersion  string
	pageLimit   int
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *zap.Logger
}

// NewClient creates a new admin API client
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if cfg.PageLimit <= 0 || cfg.PageLimit > DefaultPageLimit {
		cfg.PageLimit = DefaultPageLimit
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultBurst
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		apiVersion:  cfg.APIVersion,
		pageLimit:   cfg.PageLimit,
		httpClient:  httpClient,
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		logger:      logger,
	}
}

// NormalizeStoreDomain strips scheme, path and surrounding whitespace from a store domain
func NormalizeStoreDomain(domain string) string {
	domain = strings.TrimSpace(domain)
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "http://")
	if idx := strings.Index(domain, "/"); idx >= 0 {
		domain = domain[:idx]
	}
	return strings.ToLower(domain)
}

// newAPI builds a go-shopify client for one call's credentials
func (c *Client) newAPI(creds domain.Credentials) (*goshopify.Client, error) {
	store := NormalizeStoreDomain(creds.StoreDomain)
	if store == "" || creds.AdminToken == "" {
		return nil, fmt.Errorf("%w: store domain and admin token are required", domain.ErrInvalidRequest)
	}

	return goshopify.NewClient(
		goshopify.App{},
		store,
		creds.AdminToken,
		goshopify.WithVersion(c.apiVersion),
		goshopify.WithHTTPClient(c.httpClient),
	), nil
}

// wait applies client-side pacing before a call
func (c *Client) wait(ctx context.Context) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}
	return nil
}

// FetchCatalog returns the first page of the store's products
func (c *Client) FetchCatalog(ctx context.Context, creds domain.Credentials) ([]domain.CatalogProduct, error) {
	api, err := c.newAPI(creds)
	if err != nil {
		return nil, err
	}
	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchCatalog, err)
	}

	products, err := api.Product.List(goshopify.ListOptions{Limit: c.pageLimit})
	if err != nil {
		c.logger.Warn("product list failed", zap.String("store", creds.StoreDomain), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchCatalog, err)
	}

	c.logger.Debug("products fetched",
		zap.String("store", creds.StoreDomain),
		zap.Int("count", len(products)),
	)

	return MapProducts(products), nil
}

// CreateDraftOrder creates a draft order for the given line items
func (c *Client) CreateDraftOrder(ctx context.Context, creds domain.Credentials, order domain.DraftOrderRequest) (*domain.DraftOrder, error) {
	api, err := c.newAPI(creds)
	if err != nil {
		return nil, err
	}
	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCreateDraftOrder, err)
	}

	created, err := api.DraftOrder.Create(MapDraftOrder(order))
	if err != nil {
		c.logger.Warn("draft order create failed", zap.String("store", creds.StoreDomain), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrCreateDraftOrder, err)
	}
	if created == nil || created.ID == 0 {
		return nil, fmt.Errorf("%w: response did not include a draft order id", domain.ErrCreateDraftOrder)
	}

	return &domain.DraftOrder{
		ID:         created.ID,
		Name:       created.Name,
		Status:     created.Status,
		InvoiceURL: created.InvoiceURL,
	}, nil
}

// SendInvoice emails the draft order invoice to the draft's customer email
func (c *Client) SendInvoice(ctx context.Context, creds domain.Credentials, draftOrderID int64, invoice domain.InvoiceRequest) error {
	api, err := c.newAPI(creds)
	if err != nil {
		return err
	}
	if err := c.wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSendInvoice, err)
	}

	_, err = api.DraftOrder.Invoice(draftOrderID, goshopify.DraftOrderInvoice{
		Subject:       invoice.Subject,
		CustomMessage: invoice.CustomMessage,
	})
	if err != nil {
		c.logger.Warn("invoice send failed",
			zap.String("store", creds.StoreDomain),
			zap.Int64("draft_order_id", draftOrderID),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", domain.ErrSendInvoice, err)
	}

	return nil
}
