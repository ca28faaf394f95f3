package repositories

import (
	"kasir/internal/models"
)

// ReceiptRepository defines the interface for receipt data access.
// Receipts are transient sale records: Create assigns the receipt ID,
// items grow only through AppendItem, and Close freezes the receipt.
// All methods return copies so callers cannot mutate stored state.
type ReceiptRepository interface {
	GetAll() ([]models.Receipt, error)
	GetByID(id int) (*models.Receipt, error)
	Create(receipt *models.Receipt) error
	AppendItem(id int, item models.ReceiptItem) (*models.Receipt, error)
	Close(id int) (*models.Receipt, error)
}
