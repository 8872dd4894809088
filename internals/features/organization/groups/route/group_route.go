package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"reporthub_backend/internals/constants"
	"reporthub_backend/internals/features/organization/groups/controller"
	"reporthub_backend/internals/middlewares"
)

func GroupRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewGroupController(db)
	msg := constants.RoleErrorAdmin("group management")

	groups := api.Group("/groups")
	groups.Get("/", ctrl.GetGroups)
	groups.Get("/:id", ctrl.GetGroupByID)
	groups.Post("/", middlewares.Write(msg, constants.AdminRoles, ctrl.CreateGroup)...)
	groups.Put("/:id", middlewares.Write(msg, constants.AdminRoles, ctrl.UpdateGroup)...)
	groups.Delete("/:id", middlewares.Write(msg, constants.AdminRoles, ctrl.DeleteGroup)...)
}
