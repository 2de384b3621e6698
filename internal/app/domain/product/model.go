package product

import "github.com/shopspring/decimal"

func init() {
	// Prices and totals serialize as plain JSON numbers, matching the wire
	// format the storefront client expects.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is a catalog entry. Products are seeded once and read-only from
// the API's perspective.
type Product struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}
