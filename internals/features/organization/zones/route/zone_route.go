package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"reporthub_backend/internals/constants"
	"reporthub_backend/internals/features/organization/zones/controller"
	"reporthub_backend/internals/middlewares"
)

func ZoneRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewZoneController(db)
	msg := constants.RoleErrorSuperAdmin("zone management")

	zones := api.Group("/zones")
	zones.Get("/", ctrl.GetZones)                                                         // 📄 list
	zones.Get("/:id", ctrl.GetZoneByID)                                                   // 🔍 detail
	zones.Post("/", middlewares.Write(msg, constants.SuperAdminOnly, ctrl.CreateZone)...)     // ➕ create
	zones.Put("/:id", middlewares.Write(msg, constants.SuperAdminOnly, ctrl.UpdateZone)...)   // ✏️ update
	zones.Delete("/:id", middlewares.Write(msg, constants.SuperAdminOnly, ctrl.DeleteZone)...) // ❌ delete
}
