package repositories

import "loja/internal/models"

// AddressRepository defines access to shipping addresses. Address creation
// is handled by the account subsystem; the checkout flow only verifies
// ownership before linking one to a cart.
type AddressRepository interface {
	Create(address *models.ShippingAddress) error
	GetByIDForUser(id, userID string) (*models.ShippingAddress, error)
}
