package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"reporthub_backend/internals/constants"
	"reporthub_backend/internals/features/catalog/product_types/controller"
	"reporthub_backend/internals/middlewares"
)

func ProductTypeRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewProductTypeController(db)
	msg := constants.RoleErrorSuperAdmin("product management")

	products := api.Group("/products")
	products.Get("/", ctrl.GetProductTypes)
	products.Get("/:id", ctrl.GetProductTypeByID)
	products.Post("/", middlewares.Write(msg, constants.SuperAdminOnly, ctrl.CreateProductType)...)
	products.Put("/:id", middlewares.Write(msg, constants.SuperAdminOnly, ctrl.UpdateProductType)...)
	products.Delete("/:id", middlewares.Write(msg, constants.SuperAdminOnly, ctrl.DeleteProductType)...)
}
