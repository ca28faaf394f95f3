package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog item available for sale.
// IDs are assigned sequentially by the catalog repository, starting at 1,
// and are never reused after removal.
type Product struct {
	ID        int             `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string          `json:"name" gorm:"type:varchar(100)" validate:"required,max=100"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(12,2)"`
	Stock     int             `json:"stock" validate:"gte=0"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
