package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"reporthub_backend/internals/constants"
	"reporthub_backend/internals/features/users/user/controller"
	"reporthub_backend/internals/middlewares"
	authMiddleware "reporthub_backend/internals/middlewares/auth"
)

func UserRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewUserController(db)
	readMsg := constants.RoleErrorAdmin("the user list")
	writeMsg := constants.RoleErrorSuperAdmin("user management")
	adminsOnly := authMiddleware.OnlyRolesSlice(readMsg, constants.AdminRoles)

	users := api.Group("/users")
	users.Get("/me", ctrl.GetMe) // 👤 any signed-in user
	users.Get("/", adminsOnly, ctrl.GetUsers)
	users.Get("/:id", adminsOnly, ctrl.GetUserByID)
	users.Post("/", middlewares.Write(writeMsg, constants.SuperAdminOnly, ctrl.CreateUser)...)
	users.Put("/:id", middlewares.Write(writeMsg, constants.SuperAdminOnly, ctrl.UpdateUser)...)
	users.Delete("/:id", middlewares.Write(writeMsg, constants.SuperAdminOnly, ctrl.DeleteUser)...)
}
