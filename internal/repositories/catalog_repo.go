package repositories

import (
	"kasir/internal/models"
)

// CatalogRepository defines the interface for product data access.
// Create assigns the product's ID; DecrementStock is the atomic
// check-and-decrement used by the sale workflow and returns the product
// as it looks after the decrement.
type CatalogRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id int) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id int) error
	DecrementStock(id int, quantity int) (*models.Product, error)
}
