package repositories

import (
	"fmt"
	"sync"

	"loja/internal/errs"
	"loja/internal/models"
)

// MockCatalogRepository is an in-memory implementation of CatalogRepository.
type MockCatalogRepository struct {
	variants map[string]models.ProductVariant
	mu       sync.RWMutex
}

// NewMockCatalogRepository creates a new instance of MockCatalogRepository.
func NewMockCatalogRepository() *MockCatalogRepository {
	return &MockCatalogRepository{
		variants: make(map[string]models.ProductVariant),
	}
}

// Put stores or replaces a variant. Replacing is how tests simulate a later
// catalog price change.
func (r *MockCatalogRepository) Put(variant models.ProductVariant) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.variants[variant.ID] = variant
}

// GetVariantByID returns a variant by its ID.
func (r *MockCatalogRepository) GetVariantByID(id string) (*models.ProductVariant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	variant, ok := r.variants[id]
	if !ok {
		return nil, fmt.Errorf("product variant %s: %w", id, errs.ErrNotFound)
	}
	return &variant, nil
}
