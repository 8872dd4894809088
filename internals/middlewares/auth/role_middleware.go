package auth

import (
	"github.com/gofiber/fiber/v2"

	helperAuth "reporthub_backend/internals/helpers/auth"
)

// OnlyRolesSlice lets the request through when the caller has one of allowedRoles.
func OnlyRolesSlice(message string, allowedRoles []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := helperAuth.GetRole(c)
		if role == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Role not found")
		}
		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}
		if message == "" {
			message = "Forbidden: you are not authorized to access this resource"
		}
		return fiber.NewError(fiber.StatusForbidden, message)
	}
}
