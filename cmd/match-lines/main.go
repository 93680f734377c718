package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ordersnap/backend/internal/domain"
	"github.com/ordersnap/backend/internal/infrastructure/shopify"
	"github.com/ordersnap/backend/internal/usecase"
)

func main() {
	minConfidence := flag.Float64("min-confidence", usecase.DefaultMinConfidence, "minimum match score (0-100)")
	apiVersion := flag.String("api-version", shopify.DefaultAPIVersion, "admin API version")
	verbose := flag.Bool("v", false, "log matcher debug output")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: match-lines [flags] [file]")
		fmt.Fprintln(os.Stderr, "Reads product lines from file (or stdin) and matches them against the store catalog.")
		fmt.Fprintln(os.Stderr, "Credentials come from SHOPIFY_SHOP_DOMAIN and SHOPIFY_ACCESS_TOKEN.")
		flag.PrintDefaults()
	}
	flag.Parse()

	_ = godotenv.Load(".env")

	creds := domain.Credentials{
		StoreDomain: os.Getenv("SHOPIFY_SHOP_DOMAIN"),
		AdminToken:  os.Getenv("SHOPIFY_ACCESS_TOKEN"),
	}
	if !creds.Valid() {
		fmt.Fprintln(os.Stderr, "SHOPIFY_SHOP_DOMAIN and SHOPIFY_ACCESS_TOKEN must be set")
		os.Exit(1)
	}

	text, err := readInput(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read input: %v\n", err)
		os.Exit(1)
	}

	logger := zap.NewNop()
	if *verbose {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	service := usecase.NewOrderService(
		shopify.NewClient(shopify.Config{APIVersion: *apiVersion}, logger),
		logger,
		usecase.OrderServiceConfig{
			MinConfidenceThreshold: *minConfidence,
			EnableDebugLogging:     *verbose,
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := service.MatchProducts(ctx, creds, text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Match failed: %v\n", err)
		os.Exit(1)
	}

	printResults(os.Stdout, results)
}

func readInput(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

func printResults(w io.Writer, results []domain.MatchResult) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "REQUESTED\tQTY\tMATCH\tVARIANT\tPRICE\tSCORE")

	unmatched := 0
	for _, r := range results {
		if !r.IsMatched() {
			unmatched++
			fmt.Fprintf(tw, "%s\t%d\t-\t-\t-\t-\n", r.Requested.Name, r.Requested.Quantity)
			continue
		}
		m := r.Matched
		fmt.Fprintf(tw, "%s\t%d\t%s\t%d\t%s\t%.1f\n",
			r.Requested.Name, m.Quantity, m.ProductTitle, m.VariantID, m.Price.StringFixed(2), m.Score)
	}
	tw.Flush()

	fmt.Fprintf(w, "\n%d matched, %d unmatched\n", len(results)-unmatched, unmatched)
}
