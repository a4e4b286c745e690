package handlers

import (
	"log"

	"loja/internal/errs"
	"loja/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleListOrders)
	orderRoutes.Get("/:id", h.HandleGetOrder)
	orderRoutes.Post("/", h.HandleCreateOrder)
}

// HandleListOrders returns the authenticated user's orders, newest first.
func (h *OrderHandler) HandleListOrders(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return respondError(c, errs.ErrUnauthenticated)
	}

	orders, err := h.service.ListOrders(c.UserContext(), userID)
	if err != nil {
		log.Printf("Error listing orders for user %s: %v", userID, err)
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// HandleGetOrder returns a single order owned by the authenticated user.
func (h *OrderHandler) HandleGetOrder(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return respondError(c, errs.ErrUnauthenticated)
	}

	order, err := h.service.GetOrder(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		log.Printf("Error getting order %s: %v", c.Params("id"), err)
		return respondError(c, err)
	}
	return c.JSON(order)
}

// HandleCreateOrder snapshots the user's cart into a new pending order.
// The cart must be non-empty with a shipping address linked.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return respondError(c, errs.ErrUnauthenticated)
	}

	order, err := h.service.CreateFromCart(c.UserContext(), userID)
	if err != nil {
		log.Printf("Error creating order for user %s: %v", userID, err)
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}
