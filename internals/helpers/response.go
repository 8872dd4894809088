package helper

import (
	"github.com/gofiber/fiber/v2"
)

// Error writes the standard error body: {"error": "<message>"}.
func Error(c *fiber.Ctx, code int, message string) error {
	if code == 0 {
		code = fiber.StatusInternalServerError
	}
	return c.Status(code).JSON(fiber.Map{
		"error": message,
	})
}
