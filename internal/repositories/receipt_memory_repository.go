package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"kasir/internal/models"
)

// MemoryReceiptRepository is an in-memory implementation of ReceiptRepository.
// Receipt IDs start at 1001 and are never reused.
type MemoryReceiptRepository struct {
	receipts map[int]models.Receipt
	nextID   int
	mu       sync.RWMutex
}

// NewMemoryReceiptRepository creates a new instance of MemoryReceiptRepository.
func NewMemoryReceiptRepository() *MemoryReceiptRepository {
	return &MemoryReceiptRepository{
		receipts: make(map[int]models.Receipt),
		nextID:   1001,
	}
}

// GetAll returns all receipts ordered by ID.
func (r *MemoryReceiptRepository) GetAll() ([]models.Receipt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	receiptList := make([]models.Receipt, 0, len(r.receipts))
	for _, rec := range r.receipts {
		receiptList = append(receiptList, copyReceipt(rec))
	}
	sort.Slice(receiptList, func(i, j int) bool {
		return receiptList[i].ID < receiptList[j].ID
	})
	return receiptList, nil
}

// GetByID returns a receipt by its ID.
func (r *MemoryReceiptRepository) GetByID(id int) (*models.Receipt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	receipt, ok := r.receipts[id]
	if !ok {
		return nil, fmt.Errorf("receipt with ID %d: %w", id, models.ErrNotFound)
	}
	cp := copyReceipt(receipt)
	return &cp, nil
}

// Create adds a new open receipt, assigning the next sequential ID, a
// reference number, and the creation timestamp.
func (r *MemoryReceiptRepository) Create(receipt *models.Receipt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	receipt.ID = r.nextID
	r.nextID++
	if receipt.Reference == "" {
		receipt.Reference = uuid.New().String()
	}
	receipt.Status = models.ReceiptStatusOpen
	receipt.Items = nil
	receipt.CreatedAt = time.Now()
	r.receipts[receipt.ID] = copyReceipt(*receipt)
	return nil
}

// AppendItem adds one item snapshot to an open receipt and returns the
// updated receipt.
func (r *MemoryReceiptRepository) AppendItem(id int, item models.ReceiptItem) (*models.Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	receipt, ok := r.receipts[id]
	if !ok {
		return nil, fmt.Errorf("receipt with ID %d: %w", id, models.ErrNotFound)
	}
	if receipt.Status != models.ReceiptStatusOpen {
		return nil, fmt.Errorf("receipt %d is already closed: %w", id, models.ErrValidation)
	}
	receipt.Items = append(receipt.Items, item)
	r.receipts[id] = receipt
	cp := copyReceipt(receipt)
	return &cp, nil
}

// Close marks a receipt as closed and returns it. Closing twice is an error.
func (r *MemoryReceiptRepository) Close(id int) (*models.Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	receipt, ok := r.receipts[id]
	if !ok {
		return nil, fmt.Errorf("receipt with ID %d: %w", id, models.ErrNotFound)
	}
	if receipt.Status != models.ReceiptStatusOpen {
		return nil, fmt.Errorf("receipt %d is already closed: %w", id, models.ErrValidation)
	}
	now := time.Now()
	receipt.Status = models.ReceiptStatusClosed
	receipt.ClosedAt = &now
	r.receipts[id] = receipt
	cp := copyReceipt(receipt)
	return &cp, nil
}

// copyReceipt returns a deep enough copy that callers cannot reach the
// stored item slice.
func copyReceipt(receipt models.Receipt) models.Receipt {
	items := make([]models.ReceiptItem, len(receipt.Items))
	copy(items, receipt.Items)
	receipt.Items = items
	return receipt
}
