package middleware

import (
	"crypto/subtle"
	"strings"

	"lablink/internal/services"

	"github.com/gofiber/fiber/v2"
)

// PartnerRequired admits requests whose bearer token matches the active
// partner session.
func PartnerRequired(store *services.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		session := store.Partner()
		if session == nil || subtle.ConstantTimeCompare([]byte(session.Token), []byte(parts[1])) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		c.Locals("partner_id", session.ID)
		c.Locals("partner_email", session.Email)
		return c.Next()
	}
}
