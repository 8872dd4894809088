package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	DepartmentRoute "reporthub_backend/internals/features/catalog/departments/route"
	ProductTypeRoute "reporthub_backend/internals/features/catalog/product_types/route"
)

func CatalogRoutes(r fiber.Router, db *gorm.DB) {
	DepartmentRoute.DepartmentRoutes(r, db)
	ProductTypeRoute.ProductTypeRoutes(r, db)
}
