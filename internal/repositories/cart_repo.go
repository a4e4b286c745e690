package repositories

import "loja/internal/models"

// CartRepository defines the interface for cart data access.
type CartRepository interface {
	// GetByUserID returns the user's cart with items and variant data
	// preloaded, or errs.ErrNotFound if the user has no cart yet.
	GetByUserID(userID string) (*models.Cart, error)
	// AddItem adds quantity of a variant to the user's cart, creating the
	// cart on first use. If the variant is already in the cart the existing
	// row's quantity is incremented atomically; concurrent adds must not
	// lose increments.
	AddItem(userID, variantID string, quantity int) error
	// LinkShippingAddress points the cart at an address, overwriting any
	// previous link.
	LinkShippingAddress(cartID, addressID string) error
}
