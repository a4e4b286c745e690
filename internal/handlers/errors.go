package handlers

import (
	"errors"
	"log"

	"loja/internal/errs"

	"github.com/gofiber/fiber/v2"
)

// respondError maps the service error taxonomy onto HTTP responses. User
// facing messages stay actionable for validation and authorization
// failures and deliberately vague for everything transient or internal.
func respondError(c *fiber.Ctx, err error) error {
	var validationErr *errs.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  map[string]string{validationErr.Field: validationErr.Reason},
		})
	}

	switch {
	case errors.Is(err, errs.ErrUnauthenticated):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "You must sign in to continue",
		})
	case errors.Is(err, errs.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "You do not have access to this resource",
		})
	case errors.Is(err, errs.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Resource not found",
		})
	case errors.Is(err, errs.ErrInvalidState):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": err.Error(),
		})
	case errors.Is(err, errs.ErrTransient):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"message": "Payment could not be confirmed yet, please retry",
		})
	case errors.Is(err, errs.ErrConsistency):
		// Broken contract with the processor; alert-worthy, never shown raw.
		log.Printf("ALERT consistency violation: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Payment verification needs manual review",
		})
	}

	log.Printf("Unhandled error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Internal server error",
	})
}

// currentUserID pulls the authenticated user id stored by the JWT
// middleware.
func currentUserID(c *fiber.Ctx) (string, bool) {
	userID, ok := c.Locals("user_id").(string)
	return userID, ok && userID != ""
}
