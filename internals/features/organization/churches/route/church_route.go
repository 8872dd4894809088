package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"reporthub_backend/internals/constants"
	"reporthub_backend/internals/features/organization/churches/controller"
	"reporthub_backend/internals/middlewares"
)

// ChurchRoutes registers /churches. The bulk upload (/churches/upload) lives with the uploads feature.
func ChurchRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewChurchController(db)
	msg := constants.RoleErrorAdmin("church management")

	churches := api.Group("/churches")
	churches.Get("/", ctrl.GetChurches)
	churches.Get("/:id", ctrl.GetChurchByID)
	churches.Post("/", middlewares.Write(msg, constants.AdminRoles, ctrl.CreateChurch)...)
	churches.Put("/:id", middlewares.Write(msg, constants.AdminRoles, ctrl.UpdateChurch)...)
	churches.Delete("/:id", middlewares.Write(msg, constants.AdminRoles, ctrl.DeleteChurch)...)
}
