package models

import "errors"

// Error kinds signaled by the catalog and sale operations. Callers match
// them with errors.Is; the wrapped message carries the detail.
var (
	// ErrNotFound is returned when a product or receipt does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation is returned for rejected input: blank names,
	// non-positive prices, negative stock or quantities, closed receipts.
	ErrValidation = errors.New("invalid input")

	// ErrInsufficientStock is returned when a sale requests more units
	// than the product currently has in stock.
	ErrInsufficientStock = errors.New("insufficient stock")
)
