package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"reporthub_backend/internals/constants"
	"reporthub_backend/internals/features/catalog/departments/controller"
	"reporthub_backend/internals/middlewares"
)

func DepartmentRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewDepartmentController(db)
	msg := constants.RoleErrorSuperAdmin("department management")

	departments := api.Group("/departments")
	departments.Get("/", ctrl.GetDepartments)
	departments.Get("/:id", ctrl.GetDepartmentByID)
	departments.Post("/", middlewares.Write(msg, constants.SuperAdminOnly, ctrl.CreateDepartment)...)
	departments.Put("/:id", middlewares.Write(msg, constants.SuperAdminOnly, ctrl.UpdateDepartment)...)
	departments.Delete("/:id", middlewares.Write(msg, constants.SuperAdminOnly, ctrl.DeleteDepartment)...)
}
