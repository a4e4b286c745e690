package handlers

import (
	"log"

	"loja/internal/errs"
	"loja/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CheckoutHandler handles HTTP requests for the payment leg of checkout.
type CheckoutHandler struct {
	service  *services.CheckoutService
	validate *validator.Validate
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the checkout routes with the Fiber app.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	checkoutRoutes := router.Group("/checkout")
	checkoutRoutes.Post("/session", h.HandleCreateSession)
	checkoutRoutes.Post("/verify", h.HandleVerifyPayment)
}

// CreateSessionRequest represents the request body for session creation.
type CreateSessionRequest struct {
	OrderID string `json:"orderId" validate:"required,uuid"`
}

// HandleCreateSession requests a hosted payment session for an order and
// returns the redirect target.
func (h *CheckoutHandler) HandleCreateSession(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return respondError(c, errs.ErrUnauthenticated)
	}

	var req CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create session request body: %v", err)
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

	session, err := h.service.CreateSession(c.UserContext(), userID, req.OrderID)
	if err != nil {
		log.Printf("Error creating checkout session for order %s: %v", req.OrderID, err)
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"sessionId":   session.ID,
		"redirectUrl": session.URL,
	})
}

// VerifyRequest represents the request body for payment verification.
type VerifyRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
}

// HandleVerifyPayment reconciles a checkout session's payment state into
// the order status. A processor-reported unpaid session is a normal
// {success:false} response, not an error.
func (h *CheckoutHandler) HandleVerifyPayment(c *fiber.Ctx) error {
	if _, ok := currentUserID(c); !ok {
		return respondError(c, errs.ErrUnauthenticated)
	}

	var req VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing verify request body: %v", err)
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

	result, err := h.service.VerifyPayment(c.UserContext(), req.SessionID)
	if err != nil {
		log.Printf("Error verifying payment for session %s: %v", req.SessionID, err)
		return respondError(c, err)
	}
	return c.JSON(result)
}
