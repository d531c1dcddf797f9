package middleware

import (
	"log"
	"strings"

	"foot-match-service/services"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth validates the Bearer token and attaches the resolved identity
// to the request context. Routes behind it can read user_id and user_role
// from Locals. Validation fails closed: anything malformed, mis-signed or
// expired is a 401.
func RequireAuth(tokens *services.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    "UNAUTHORIZED",
				"message": "missing Authorization header",
			})
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    "UNAUTHORIZED",
				"message": "invalid or expired token",
			})
		}

		// One parse covers validation and both claims.
		userID, role, err := tokens.Identity(token)
		if err != nil {
			log.Printf("[AUTH] rejected token for %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    "UNAUTHORIZED",
				"message": "invalid or expired token",
			})
		}

		c.Locals("user_id", userID)
		c.Locals("user_role", role)
		return c.Next()
	}
}
