package services

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"kasir/internal/models"
	"kasir/internal/render"
	"kasir/internal/repositories"
)

// ReceiptEventPublisher publishes events about closed receipts. A nil
// publisher disables event publication.
type ReceiptEventPublisher interface {
	PublishReceiptClosed(event map[string]interface{}) error
}

// SaleService drives the receipt lifecycle: open a receipt, add item
// snapshots (decrementing catalog stock atomically with each append),
// and close it, which renders the receipt, writes the text artifact, and
// publishes an event.
type SaleService struct {
	receiptRepo repositories.ReceiptRepository
	catalogRepo repositories.CatalogRepository
	publisher   ReceiptEventPublisher
	receiptDir  string
}

// NewSaleService creates a new SaleService. receiptDir is where closed
// receipts are written as text files; an empty dir disables file output.
func NewSaleService(receiptRepo repositories.ReceiptRepository, catalogRepo repositories.CatalogRepository, publisher ReceiptEventPublisher, receiptDir string) *SaleService {
	return &SaleService{
		receiptRepo: receiptRepo,
		catalogRepo: catalogRepo,
		publisher:   publisher,
		receiptDir:  receiptDir,
	}
}

// CreateSale opens a new empty receipt.
func (s *SaleService) CreateSale() (*models.Receipt, error) {
	receipt := &models.Receipt{}
	if err := s.receiptRepo.Create(receipt); err != nil {
		return nil, fmt.Errorf("failed to create receipt: %w", err)
	}
	return receipt, nil
}

// GetReceipt retrieves a single receipt by its ID.
func (s *SaleService) GetReceipt(id int) (*models.Receipt, error) {
	return s.receiptRepo.GetByID(id)
}

// ListReceipts retrieves all receipts, ordered by ID.
func (s *SaleService) ListReceipts() ([]models.Receipt, error) {
	return s.receiptRepo.GetAll()
}

// AddItem sells quantity units of a product on an open receipt. The stock
// decrement and the item append are one transaction: if the product is
// unknown, the quantity invalid, or the stock insufficient, neither the
// catalog nor the receipt changes. On success the appended item snapshots
// the product's current name and unit price.
func (s *SaleService) AddItem(receiptID, productID, quantity int) (*models.Receipt, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be greater than zero: %w", models.ErrValidation)
	}

	// Reject unknown or closed receipts before touching stock.
	receipt, err := s.receiptRepo.GetByID(receiptID)
	if err != nil {
		return nil, err
	}
	if receipt.Status != models.ReceiptStatusOpen {
		return nil, fmt.Errorf("receipt %d is already closed: %w", receiptID, models.ErrValidation)
	}

	product, err := s.catalogRepo.DecrementStock(productID, quantity)
	if err != nil {
		return nil, err
	}

	item := models.ReceiptItem{
		ProductID:   product.ID,
		ProductName: product.Name,
		UnitPrice:   product.Price,
		Quantity:    quantity,
	}
	return s.receiptRepo.AppendItem(receiptID, item)
}

// RenderReceipt returns the printable text form of a receipt.
func (s *SaleService) RenderReceipt(id int) (string, error) {
	receipt, err := s.receiptRepo.GetByID(id)
	if err != nil {
		return "", err
	}
	return render.Text(receipt), nil
}

// CloseSale finalizes a receipt: no further items can be added. The rendered
// text is written to the configured receipt directory and a receipt.closed
// event is published. File and event failures are logged, not returned; the
// sale itself is already complete.
func (s *SaleService) CloseSale(id int) (*models.Receipt, string, error) {
	receipt, err := s.receiptRepo.Close(id)
	if err != nil {
		return nil, "", err
	}

	text := render.Text(receipt)

	var path string
	if s.receiptDir != "" {
		filename := fmt.Sprintf("Receipt_%d_%s.txt", receipt.ID, receipt.ClosedAt.Format("20060102_150405"))
		path = filepath.Join(s.receiptDir, filename)
		if err := os.MkdirAll(s.receiptDir, 0o755); err != nil {
			log.Printf("Warning: failed to create receipt directory %s: %v", s.receiptDir, err)
			path = ""
		} else if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			log.Printf("Warning: failed to write receipt file %s: %v", path, err)
			path = ""
		}
	}

	if s.publisher != nil {
		event := map[string]interface{}{
			"receiptID":  receipt.ID,
			"reference":  receipt.Reference,
			"itemCount":  len(receipt.Items),
			"grandTotal": receipt.GrandTotal().StringFixed(2),
			"closedAt":   receipt.ClosedAt,
		}
		if err := s.publisher.PublishReceiptClosed(event); err != nil {
			log.Printf("Warning: failed to publish receipt closed event for receipt %d: %v", receipt.ID, err)
		} else {
			log.Printf("Published receipt closed event for receipt %d", receipt.ID)
		}
	} else {
		log.Println("Receipt event publisher is not configured. Skipping event publication.")
	}

	return receipt, path, nil
}
