package handlers

import (
	"errors"
	"log"

	"loja/internal/errs"
	"loja/internal/models"
	"loja/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the shopping cart.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Post("/shipping-address", h.HandleLinkShippingAddress)
}

// CartResponse is the cart summary returned by every cart endpoint.
type CartResponse struct {
	ID                string            `json:"id,omitempty"`
	ShippingAddressID *string           `json:"shipping_address_id,omitempty"`
	Items             []models.CartItem `json:"items"`
	TotalInCents      int64             `json:"total_in_cents"`
}

func cartResponse(cart *models.Cart) CartResponse {
	if cart == nil {
		// A user who never carted anything sees the same shape as an
		// emptied cart.
		return CartResponse{Items: []models.CartItem{}}
	}
	items := cart.Items
	if items == nil {
		items = []models.CartItem{}
	}
	return CartResponse{
		ID:                cart.ID,
		ShippingAddressID: cart.ShippingAddressID,
		Items:             items,
		TotalInCents:      cart.TotalInCents(),
	}
}

// HandleGetCart returns the user's cart with the computed total.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return respondError(c, errs.ErrUnauthenticated)
	}

	cart, err := h.service.GetCart(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return c.JSON(cartResponse(nil))
		}
		log.Printf("Error getting cart for user %s: %v", userID, err)
		return respondError(c, err)
	}
	return c.JSON(cartResponse(cart))
}

// AddItemRequest represents the request body for adding a cart item.
type AddItemRequest struct {
	ProductVariantID string `json:"productVariantId" validate:"required,uuid"`
	Quantity         int    `json:"quantity" validate:"required,gte=1"`
}

// HandleAddItem adds a product variant to the cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return respondError(c, errs.ErrUnauthenticated)
	}

	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add item request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	cart, err := h.service.AddItem(c.UserContext(), userID, req.ProductVariantID, req.Quantity)
	if err != nil {
		log.Printf("Error adding item to cart for user %s: %v", userID, err)
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cartResponse(cart))
}

// LinkAddressRequest represents the request body for linking an address.
type LinkAddressRequest struct {
	ShippingAddressID string `json:"shippingAddressId" validate:"required,uuid"`
}

// HandleLinkShippingAddress points the cart at one of the user's addresses.
func (h *CartHandler) HandleLinkShippingAddress(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return respondError(c, errs.ErrUnauthenticated)
	}

	var req LinkAddressRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing link address request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	if err := h.service.LinkShippingAddress(c.UserContext(), userID, req.ShippingAddressID); err != nil {
		log.Printf("Error linking address for user %s: %v", userID, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Shipping address linked to cart",
	})
}
