package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a cart line captured at checkout. It snapshots the product fields
// as they were when the order was placed, so later catalog edits do not
// rewrite history.
type Item struct {
	ProductID int64           `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
}

// Order is an immutable record of a completed checkout. The id and date are
// server-assigned; userId, items, address and total are stored as supplied
// by the client.
type Order struct {
	ID      int64           `json:"id"`
	UserID  int64           `json:"userId"`
	Items   []Item          `json:"items"`
	Address string          `json:"address"`
	Total   decimal.Decimal `json:"total"`
	Date    time.Time       `json:"date"`
}
