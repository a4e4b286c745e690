package repositories

import "loja/internal/models"

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	GetByID(id string) (*models.Order, error)
	// ListByUser returns the user's orders, newest first, items included.
	ListByUser(userID string) ([]models.Order, error)
	// CreateWithItems persists the order and all its line items atomically;
	// a partially created order must never become visible.
	CreateWithItems(order *models.Order) error
	// TransitionStatus performs a conditional update: the status moves to
	// `to` only if it currently equals `from`. Reports whether this call
	// performed the transition, which is what makes repeated payment
	// verification at-most-once.
	TransitionStatus(id string, from, to models.OrderStatus) (bool, error)
	// SetCheckoutSession records the processor session most recently created
	// for the order. Last write wins.
	SetCheckoutSession(id, sessionID string) error
}
