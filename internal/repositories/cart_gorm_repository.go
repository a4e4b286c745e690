package repositories

import (
	"errors"
	"fmt"

	"loja/internal/errs"
	"loja/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// GetByUserID retrieves the user's cart with items, variants and products.
func (r *GORMCartRepository) GetByUserID(userID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.
		Preload("Items.ProductVariant.Product").
		First(&cart, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart for user %s: %w", userID, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get cart for user %s: %w", userID, err)
	}
	return &cart, nil
}

// AddItem creates the cart on first use and upserts the item row. Both
// writes ride on ON CONFLICT so two concurrent adds for the same variant
// cannot lose a quantity and never abort each other's transaction.
func (r *GORMCartRepository) AddItem(userID, variantID string, quantity int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Concurrent first-time adds race on the user unique index; the
		// loser keeps the existing row.
		cart := models.Cart{ID: uuid.New().String(), UserID: userID}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).Create(&cart).Error
		if err != nil {
			return fmt.Errorf("failed to get or create cart for user %s: %w", userID, err)
		}
		if err := tx.First(&cart, "user_id = ?", userID).Error; err != nil {
			return fmt.Errorf("failed to load cart for user %s: %w", userID, err)
		}

		item := models.CartItem{
			ID:               uuid.New().String(),
			CartID:           cart.ID,
			ProductVariantID: variantID,
			Quantity:         quantity,
		}
		err = tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_variant_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity": gorm.Expr("cart_items.quantity + ?", quantity),
			}),
		}).Create(&item).Error
		if err != nil {
			return fmt.Errorf("failed to add cart item: %w", err)
		}
		return nil
	})
}

// LinkShippingAddress overwrites the cart's address reference.
func (r *GORMCartRepository) LinkShippingAddress(cartID, addressID string) error {
	res := r.db.Model(&models.Cart{}).
		Where("id = ?", cartID).
		Update("shipping_address_id", addressID)
	if res.Error != nil {
		return fmt.Errorf("failed to link shipping address to cart %s: %w", cartID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart %s: %w", cartID, errs.ErrNotFound)
	}
	return nil
}
