package domain

import "github.com/shopspring/decimal"

// ProductRequest represents one parsed line of the operator's free-text product list
type ProductRequest struct {
	Name     string `json:"name" binding:"required"`
	Quantity int    `json:"quantity"`
}

// CatalogProduct represents a product from the merchant's catalog
type CatalogProduct struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	Variants []Variant `json:"variants"`
}

// Variant represents a purchasable configuration of a catalog product
type Variant struct {
	ID    int64           `json:"id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
}

// MatchedVariant is the catalog candidate selected for a request.
// Quantity starts out as the requested quantity and may be overridden independently.
type MatchedVariant struct {
	ProductTitle string          `json:"productTitle"`
	VariantID    int64           `json:"variantId"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	Score        float64         `json:"score"` // Match confidence 0-100
}

// MatchResult pairs a request with its catalog match. Matched is nil when
// no product cleared the confidence threshold.
type MatchResult struct {
	Requested ProductRequest  `json:"requested"`
	Matched   *MatchedVariant `json:"matched"`
}

// IsMatched reports whether the request resolved to a catalog variant
func (m MatchResult) IsMatched() bool {
	return m.Matched != nil
}

// Clone returns a copy of the result that shares no memory with the receiver
func (m MatchResult) Clone() MatchResult {
	out := MatchResult{Requested: m.Requested}
	if m.Matched != nil {
		matched := *m.Matched
		out.Matched = &matched
	}
	return out
}
