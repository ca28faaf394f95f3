package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"kasir/internal/models"
)

// GORMCatalogRepository is a GORM implementation of CatalogRepository.
// Sequential IDs come from the primary key's autoincrement.
type GORMCatalogRepository struct {
	db *gorm.DB
}

// NewGORMCatalogRepository creates a new instance of GORMCatalogRepository.
func NewGORMCatalogRepository(db *gorm.DB) *GORMCatalogRepository {
	return &GORMCatalogRepository{
		db: db,
	}
}

// GetAll retrieves all products from the database ordered by ID.
func (r *GORMCatalogRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMCatalogRepository) GetByID(id int) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMCatalogRepository) Create(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update updates an existing product in the database.
func (r *GORMCatalogRepository) Update(product *models.Product) error {
	res := r.db.Save(product) // Save updates all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// GORM's Save does not return ErrRecordNotFound for an update
		// that matched nothing, so check RowsAffected.
		return fmt.Errorf("product with ID %d: %w", product.ID, models.ErrNotFound)
	}
	return nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMCatalogRepository) Delete(id int) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %d: %w", id, models.ErrNotFound)
	}
	return nil
}

// DecrementStock checks and decrements the stock of a product inside one
// database transaction.
func (r *GORMCatalogRepository) DecrementStock(id int, quantity int) (*models.Product, error) {
	var product models.Product
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("product with ID %d: %w", id, models.ErrNotFound)
			}
			return fmt.Errorf("failed to get product by ID %d: %w", id, err)
		}
		if product.Stock < quantity {
			return fmt.Errorf("product %q has %d in stock, requested %d: %w",
				product.Name, product.Stock, quantity, models.ErrInsufficientStock)
		}
		product.Stock -= quantity
		if err := tx.Model(&models.Product{}).Where("id = ?", id).
			Update("stock", product.Stock).Error; err != nil {
			return fmt.Errorf("failed to decrement stock for product %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}
