package repositories

import (
	"errors"
	"fmt"

	"loja/internal/errs"
	"loja/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMAddressRepository is a GORM implementation of AddressRepository.
type GORMAddressRepository struct {
	db *gorm.DB
}

// NewGORMAddressRepository creates a new instance of GORMAddressRepository.
func NewGORMAddressRepository(db *gorm.DB) *GORMAddressRepository {
	return &GORMAddressRepository{
		db: db,
	}
}

// Create stores a new shipping address.
func (r *GORMAddressRepository) Create(address *models.ShippingAddress) error {
	if address.ID == "" {
		address.ID = uuid.New().String()
	}
	if err := r.db.Create(address).Error; err != nil {
		return fmt.Errorf("failed to create shipping address: %w", err)
	}
	return nil
}

// GetByIDForUser retrieves an address only if it belongs to the given user.
// A foreign address is indistinguishable from a missing one.
func (r *GORMAddressRepository) GetByIDForUser(id, userID string) (*models.ShippingAddress, error) {
	var address models.ShippingAddress
	err := r.db.First(&address, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("shipping address %s: %w", id, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get shipping address %s: %w", id, err)
	}
	return &address, nil
}
