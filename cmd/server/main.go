package main

import (
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/ordersnap/backend/config"
	httpDelivery "github.com/ordersnap/backend/internal/delivery/http"
	"github.com/ordersnap/backend/internal/infrastructure/shopify"
	"github.com/ordersnap/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting OrderSnap Backend v1.0.0",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
	)

	// Initialize infrastructure dependencies
	shopifyClient := shopify.NewClient(shopify.Config{
		APIVersion:        cfg.Shopify.APIVersion,
		PageLimit:         cfg.Shopify.PageLimit,
		RequestsPerSecond: cfg.Shopify.RequestsPerSecond,
		Burst:             cfg.Shopify.Burst,
		Timeout:           cfg.Shopify.Timeout,
	}, logger.Named("shopify"))

	logger.Info("Shopify admin API configured",
		zap.String("api_version", cfg.Shopify.APIVersion),
		zap.Int("page_limit", cfg.Shopify.PageLimit),
		zap.Float64("requests_per_second", cfg.Shopify.RequestsPerSecond),
	)

	// Initialize usecase layer
	orderService := usecase.NewOrderService(
		shopifyClient,
		logger.Named("orders"),
		usecase.OrderServiceConfig{
			MinConfidenceThreshold: cfg.Matching.MinConfidence,
			EnableDebugLogging:     cfg.Matching.Debug,
			DefaultInvoiceSubject:  cfg.Invoice.DefaultSubject,
			NotePrefix:             cfg.Invoice.NotePrefix,
		},
	)

	logger.Info("Matching configured",
		zap.Float64("min_confidence", cfg.Matching.MinConfidence),
		zap.Bool("debug", cfg.Matching.Debug),
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(orderService, logger.Named("http"))

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler, logger.Named("http"))

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info("Server listening", zap.String("addr", addr))

	if err := router.Run(addr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

// newLogger builds a production logger in production and a development logger otherwise
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	zapCfg := zap.NewDevelopmentConfig()
	if cfg.Server.Environment == "production" {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = level

	return zapCfg.Build()
}
