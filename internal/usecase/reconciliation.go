package usecase

import (
	"fmt"
	"math"

	"github.com/ordersnap/backend/internal/domain"
)

// maxQuantity bounds overrides so they always fit the store API's integer fields
const maxQuantity = math.MaxInt32

// ClampQuantity coerces a user-supplied quantity to a positive integer.
// Non-finite, zero and negative values become 1; fractions are floored.
func ClampQuantity(qty float64) int {
	if math.IsNaN(qty) || math.IsInf(qty, 0) {
		return 1
	}

	qty = math.Floor(qty)
	if qty < 1 {
		return 1
	}
	if qty > maxQuantity {
		return maxQuantity
	}

	return int(qty)
}

// ApplyQuantityOverride returns a new result set with the quantity at index
// replaced. Matched rows take the override on the match; unmatched rows on the
// request. The input slice is never modified or aliased.
func ApplyQuantityOverride(results []domain.MatchResult, index int, newQuantity float64) ([]domain.MatchResult, error) {
	if index < 0 || index >= len(results) {
		return nil, fmt.Errorf("%w: index %d, %d results", domain.ErrIndexOutOfRange, index, len(results))
	}

	next := make([]domain.MatchResult, len(results))
	for i, r := range results {
		next[i] = r.Clone()
	}

	qty := ClampQuantity(newQuantity)
	if next[index].Matched != nil {
		next[index].Matched.Quantity = qty
	} else {
		next[index].Requested.Quantity = qty
	}

	return next, nil
}

// ToLineItems keeps matched rows in their original order and counts the rest.
// Price is omitted so the store uses its catalog price.
func ToLineItems(results []domain.MatchResult) ([]domain.LineItem, int) {
	items := make([]domain.LineItem, 0, len(results))
	unmatched := 0

	for _, r := range results {
		if r.Matched == nil {
			unmatched++
			continue
		}
		items = append(items, domain.LineItem{
			VariantID: r.Matched.VariantID,
			Quantity:  r.Matched.Quantity,
		})
	}

	return items, unmatched
}
