package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"loja/internal/cache"
	"loja/internal/errs"
	"loja/internal/models"
	"loja/internal/repositories"
	"loja/pkg/rabbitmq"

	"github.com/google/uuid"
)

// OrderService converts carts into immutable orders. Each order freezes the
// catalog prices of its items at creation time; nothing recomputes them.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	cartRepo    repositories.CartRepository
	catalogRepo repositories.CatalogRepository
	cache       cache.CartCache // optional; nil disables invalidation
	publisher   EventPublisher  // optional; nil skips event publication
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	cartRepo repositories.CartRepository,
	catalogRepo repositories.CatalogRepository,
	cartCache cache.CartCache,
	publisher EventPublisher,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		catalogRepo: catalogRepo,
		cache:       cartCache,
		publisher:   publisher,
	}
}

// CreateFromCart snapshots the user's cart into a new pending order. The
// cart must be non-empty and have a shipping address linked. The order and
// all its items are written in one transaction; the cart itself is left
// untouched so the user can start another checkout cycle.
func (s *OrderService) CreateFromCart(ctx context.Context, userID string) (*models.Order, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, fmt.Errorf("cannot build an order without a cart: %w", errs.ErrInvalidState)
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, fmt.Errorf("cannot build an order from an empty cart: %w", errs.ErrInvalidState)
	}
	if cart.ShippingAddressID == nil {
		return nil, fmt.Errorf("cannot build an order without a shipping address: %w", errs.ErrInvalidState)
	}

	// Resolve current catalog prices once; from here on the order never
	// reads the catalog again.
	var totalInCents int64
	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, cartItem := range cart.Items {
		variant, err := s.catalogRepo.GetVariantByID(cartItem.ProductVariantID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve variant %s: %w", cartItem.ProductVariantID, err)
		}
		items = append(items, models.OrderItem{
			ID:               uuid.New().String(),
			ProductVariantID: variant.ID,
			ProductName:      fmt.Sprintf("%s - %s", variant.Product.Name, variant.Name),
			Description:      variant.Product.Description,
			ImageURL:         variant.ImageURL,
			PriceInCents:     variant.PriceInCents,
			Quantity:         cartItem.Quantity,
		})
		totalInCents += variant.PriceInCents * int64(cartItem.Quantity)
	}

	order := &models.Order{
		ID:                uuid.New().String(),
		UserID:            userID,
		Status:            models.OrderStatusPending,
		TotalInCents:      totalInCents,
		ShippingAddressID: *cart.ShippingAddressID,
		Items:             items,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}

	if err := s.orderRepo.CreateWithItems(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// The cart itself did not change, but any cached summary of it predates
	// the order and must not outlive this point.
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, userID); err != nil {
			log.Printf("cart cache invalidate error for user %s: %v", userID, err)
		}
	}

	s.publishOrderEvent(rabbitmq.RouteOrderCreated, order)

	return order, nil
}

// ListOrders returns the user's orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	return s.orderRepo.ListByUser(userID)
}

// GetOrder returns one of the user's orders. An order owned by someone
// else is reported as forbidden, not leaked.
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("order %s: %w", orderID, errs.ErrForbidden)
	}
	return order, nil
}

// publishOrderEvent notifies downstream consumers. Delivery failures are
// logged, never propagated: the order row is already committed.
func (s *OrderService) publishOrderEvent(routingKey string, order *models.Order) {
	if s.publisher == nil {
		log.Println("Event publisher is not configured. Skipping message publication.")
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"orderID": order.ID,
		"userID":  order.UserID,
		"status":  order.Status,
		"total":   order.TotalInCents,
	})
	if err != nil {
		log.Printf("Failed to marshal %s event for order %s: %v", routingKey, order.ID, err)
		return
	}
	if err := s.publisher.Publish(routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event for order %s: %v", routingKey, order.ID, err)
	}
}
