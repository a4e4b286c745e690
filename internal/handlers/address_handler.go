package handlers

import (
	"log"

	"loja/internal/errs"
	"loja/internal/models"
	"loja/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AddressHandler handles HTTP requests for shipping addresses.
type AddressHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewAddressHandler creates a new AddressHandler.
func NewAddressHandler(service *services.CartService) *AddressHandler {
	return &AddressHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the address routes with the Fiber app.
func (h *AddressHandler) RegisterRoutes(router fiber.Router) {
	addressRoutes := router.Group("/addresses")
	addressRoutes.Post("/", h.HandleCreateAddress)
}

// HandleCreateAddress stores a new shipping address for the user.
func (h *AddressHandler) HandleCreateAddress(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return respondError(c, errs.ErrUnauthenticated)
	}

	var address models.ShippingAddress
	if err := c.BodyParser(&address); err != nil {
		log.Printf("Error parsing address request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	// Ownership comes from the token, never from the body.
	address.UserID = userID

	if err := h.validate.Struct(address); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	if err := h.service.CreateShippingAddress(c.UserContext(), userID, &address); err != nil {
		log.Printf("Error creating address for user %s: %v", userID, err)
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(address)
}
