package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"kasir/internal/models"
)

// MemoryCatalogRepository is an in-memory implementation of CatalogRepository.
// It owns the sequential ID counter: IDs start at 1 and are never reused,
// even after a product is deleted.
type MemoryCatalogRepository struct {
	products map[int]models.Product
	nextID   int
	mu       sync.RWMutex
}

// NewMemoryCatalogRepository creates a new instance of MemoryCatalogRepository.
func NewMemoryCatalogRepository() *MemoryCatalogRepository {
	return &MemoryCatalogRepository{
		products: make(map[int]models.Product),
		nextID:   1,
	}
}

// GetAll returns all products ordered by ID, which is insertion order since
// IDs are allocated sequentially.
func (r *MemoryCatalogRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, p)
	}
	sort.Slice(productList, func(i, j int) bool {
		return productList[i].ID < productList[j].ID
	})
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MemoryCatalogRepository) GetByID(id int) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %d: %w", id, models.ErrNotFound)
	}
	return &product, nil
}

// Create adds a new product, assigning the next sequential ID.
func (r *MemoryCatalogRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.ID = r.nextID
	r.nextID++
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	r.products[product.ID] = *product
	return nil
}

// Update modifies an existing product.
func (r *MemoryCatalogRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.products[product.ID]
	if !ok {
		return fmt.Errorf("product with ID %d: %w", product.ID, models.ErrNotFound)
	}
	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = time.Now()
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its ID. The ID is not reclaimed.
func (r *MemoryCatalogRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[id]
	if !ok {
		return fmt.Errorf("product with ID %d: %w", id, models.ErrNotFound)
	}
	delete(r.products, id)
	return nil
}

// DecrementStock atomically checks and decrements the stock of a product.
// On success it returns a copy of the product after the decrement; on any
// failure the stock is left untouched.
func (r *MemoryCatalogRepository) DecrementStock(id int, quantity int) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %d: %w", id, models.ErrNotFound)
	}
	if product.Stock < quantity {
		return nil, fmt.Errorf("product %q has %d in stock, requested %d: %w",
			product.Name, product.Stock, quantity, models.ErrInsufficientStock)
	}
	product.Stock -= quantity
	product.UpdatedAt = time.Now()
	r.products[id] = product
	return &product, nil
}
