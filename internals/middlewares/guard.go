package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"reporthub_backend/internals/configs"
	authMiddleware "reporthub_backend/internals/middlewares/auth"
)

// Write puts the CSRF check and the role check in front of a state-changing handler.
//
//	g.Post("/", middlewares.Write(msg, constants.AdminRoles, ctrl.Create)...)
func Write(message string, roles []string, handlers ...fiber.Handler) []fiber.Handler {
	chain := []fiber.Handler{
		CSRFGuard(configs.CSRFTrustedOrigins),
		authMiddleware.OnlyRolesSlice(message, roles),
	}
	return append(chain, handlers...)
}
