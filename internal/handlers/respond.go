package handlers

import (
	"errors"
	"fmt"

	"lablink/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// badBody answers a request whose body could not be parsed.
func badBody(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}

// validationFailed answers with one message per failing field.
func validationFailed(c *fiber.Ctx, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return badBody(c, err)
	}
	errorMessages := make(map[string]string)
	for _, e := range verrs {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

// serviceError maps service errors to status codes.
func serviceError(c *fiber.Ctx, err error, fallback string) error {
	var verr *services.ValidationError
	var failed *services.OrderFailedError
	switch {
	case errors.As(err, &verr):
		status := fiber.StatusBadRequest
		if verr.Kind == services.PatientNotFound {
			status = fiber.StatusNotFound
		}
		body := fiber.Map{"message": verr.Message, "error": string(verr.Kind)}
		if verr.Kind == services.BelowMinimum {
			body["minOrderValue"] = verr.MinOrderValue
		}
		return c.Status(status).JSON(body)
	case errors.As(err, &failed):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "Failed to place order: " + failed.Reason,
			"error":   err.Error(),
		})
	case errors.Is(err, services.ErrCheckoutInProgress):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Processing...",
			"error":   err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": fallback,
			"error":   err.Error(),
		})
	}
}
