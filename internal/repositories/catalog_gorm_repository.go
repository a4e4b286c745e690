package repositories

import (
	"errors"
	"fmt"

	"loja/internal/errs"
	"loja/internal/models"

	"gorm.io/gorm"
)

// GORMCatalogRepository is a GORM implementation of CatalogRepository.
type GORMCatalogRepository struct {
	db *gorm.DB
}

// NewGORMCatalogRepository creates a new instance of GORMCatalogRepository.
func NewGORMCatalogRepository(db *gorm.DB) *GORMCatalogRepository {
	return &GORMCatalogRepository{
		db: db,
	}
}

// GetVariantByID retrieves a product variant with its parent product.
func (r *GORMCatalogRepository) GetVariantByID(id string) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	err := r.db.Preload("Product").First(&variant, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product variant %s: %w", id, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product variant %s: %w", id, err)
	}
	return &variant, nil
}
