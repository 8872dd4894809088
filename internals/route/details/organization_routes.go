package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ChurchRoute "reporthub_backend/internals/features/organization/churches/route"
	GroupRoute "reporthub_backend/internals/features/organization/groups/route"
	ZoneRoute "reporthub_backend/internals/features/organization/zones/route"
)

// Zones → groups → churches
func OrganizationRoutes(r fiber.Router, db *gorm.DB) {
	ZoneRoute.ZoneRoutes(r, db)
	GroupRoute.GroupRoutes(r, db)
	ChurchRoute.ChurchRoutes(r, db)
}
