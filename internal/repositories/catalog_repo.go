package repositories

import "loja/internal/models"

// CatalogRepository defines read access to the product catalog. The catalog
// is owned by an external system; this service only resolves variants when
// pricing carts and snapshotting orders.
type CatalogRepository interface {
	GetVariantByID(id string) (*models.ProductVariant, error)
}
