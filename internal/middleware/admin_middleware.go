package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// AdminOnly gates the customer-support routes. It runs after Auth, which
// has already verified the session and stored the role.
func AdminOnly(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"code":  "forbidden",
			"error": "Access denied. Admins only.",
		})
	}
	return c.Next()
}
