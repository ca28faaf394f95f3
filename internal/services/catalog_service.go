package services

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"kasir/internal/models"
	"kasir/internal/repositories"
)

// CatalogService is the sole authority over product identity, attributes,
// and stock. All catalog invariants are enforced here and in the repository:
// IDs are sequential and never reused, stock never goes negative.
type CatalogService struct {
	repo repositories.CatalogRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo repositories.CatalogRepository) *CatalogService {
	return &CatalogService{
		repo: repo,
	}
}

// AddProduct validates and stores a new product, returning it with its
// assigned ID.
func (s *CatalogService) AddProduct(name string, price decimal.Decimal, initialStock int) (*models.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("product name must not be blank: %w", models.ErrValidation)
	}
	if price.Sign() <= 0 {
		return nil, fmt.Errorf("product price must be greater than zero: %w", models.ErrValidation)
	}
	if initialStock < 0 {
		return nil, fmt.Errorf("initial stock must not be negative: %w", models.ErrValidation)
	}

	product := &models.Product{
		Name:  name,
		Price: price,
		Stock: initialStock,
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct retrieves a single product by its ID.
func (s *CatalogService) GetProduct(id int) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// ListProducts retrieves all products, ordered by ID.
func (s *CatalogService) ListProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// UpdateProduct updates a product's name and price with sentinel-skip
// semantics: a blank name keeps the current name, a non-positive price
// keeps the current price. Neither sentinel is an error.
func (s *CatalogService) UpdateProduct(id int, name string, price decimal.Decimal) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if trimmed := strings.TrimSpace(name); trimmed != "" {
		product.Name = trimmed
	}
	if price.Sign() > 0 {
		product.Price = price
	}

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateStock overwrites a product's stock level with an absolute value.
func (s *CatalogService) UpdateStock(id int, newStock int) (*models.Product, error) {
	if newStock < 0 {
		return nil, fmt.Errorf("stock must not be negative: %w", models.ErrValidation)
	}

	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	product.Stock = newStock

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// RemoveProduct deletes a product permanently. Receipts that already sold
// the product are unaffected since they hold snapshots, not references.
func (s *CatalogService) RemoveProduct(id int) error {
	return s.repo.Delete(id)
}
