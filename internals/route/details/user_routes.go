package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	UserRoute "reporthub_backend/internals/features/users/user/route"
)

func UserRoutes(r fiber.Router, db *gorm.DB) {
	UserRoute.UserRoutes(r, db)
}
