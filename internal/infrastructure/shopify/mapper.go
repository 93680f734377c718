package shopify

import (
	goshopify "github.com/bold-commerce/go-shopify/v3"
	"github.com/shopspring/decimal"

	"github.com/ordersnap/backend/internal/domain"
)

// MapProducts converts admin API products to catalog products, keeping order
func MapProducts(products []goshopify.Product) []domain.CatalogProduct {
	catalog := make([]domain.CatalogProduct, 0, len(products))
	for _, p := range products {
		catalog = append(catalog, MapProduct(p))
	}
	return catalog
}

// MapProduct converts a single product; a missing variant price becomes zero
func MapProduct(p goshopify.Product) domain.CatalogProduct {
	variants := make([]domain.Variant, 0, len(p.Variants))
	for _, v := range p.Variants {
		price := decimal.Zero
		if v.Price != nil {
			price = *v.Price
		}
		variants = append(variants, domain.Variant{
			ID:    v.ID,
			Title: v.Title,
			Price: price,
		})
	}

	return domain.CatalogProduct{
		ID:       p.ID,
		Title:    p.Title,
		Variants: variants,
	}
}

// MapDraftOrder converts the domain payload to the admin API draft order
func MapDraftOrder(order domain.DraftOrderRequest) goshopify.DraftOrder {
	lineItems := make([]goshopify.LineItem, 0, len(order.LineItems))
	for _, item := range order.LineItems {
		lineItems = append(lineItems, goshopify.LineItem{
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	return goshopify.DraftOrder{
		Email:                     order.Email,
		Note:                      order.Note,
		UseCustomerDefaultAddress: order.UseCustomerDefaultAddress,
		LineItems:                 lineItems,
	}
}
