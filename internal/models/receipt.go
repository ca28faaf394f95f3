package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt states. An open receipt accepts items; a closed one is frozen.
const (
	ReceiptStatusOpen   = "open"
	ReceiptStatusClosed = "closed"
)

// ReceiptItem is an immutable snapshot of one sale line. Name and unit price
// are copied from the product at the moment the item is added, so later
// catalog updates or removals do not change past receipts.
type ReceiptItem struct {
	ProductID   int             `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}

// Total returns unit price times quantity for this line.
func (i ReceiptItem) Total() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Receipt records one sale as an append-only sequence of item snapshots.
// IDs are assigned sequentially by the receipt repository, starting at 1001.
// The Reference is an external correlation id carried in published events.
type Receipt struct {
	ID        int           `json:"id"`
	Reference string        `json:"reference"`
	Status    string        `json:"status"`
	Items     []ReceiptItem `json:"items"`
	CreatedAt time.Time     `json:"created_at"`
	ClosedAt  *time.Time    `json:"closed_at,omitempty"`
}

// GrandTotal returns the sum of all line totals.
func (r *Receipt) GrandTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range r.Items {
		total = total.Add(item.Total())
	}
	return total
}
