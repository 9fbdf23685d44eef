package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// AdminRequired rejects requests from visitors who have not passed the admin login.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !Visitor(c).AdminLoggedIn {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Admin login is required",
			})
		}
		return c.Next()
	}
}

// UserRequired rejects requests from visitors without a logged-in user.
func UserRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !Visitor(c).UserLoggedIn {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "User login is required",
			})
		}
		return c.Next()
	}
}
