package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"reporthub_backend/internals/constants"
	"reporthub_backend/internals/features/finance/price_sync/controller"
	"reporthub_backend/internals/middlewares"
	authMiddleware "reporthub_backend/internals/middlewares/auth"
)

func PriceSyncRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewPriceSyncController(db)
	msg := constants.RoleErrorSuperAdmin("price sync")

	admin := api.Group("/admin/sync-prices")
	admin.Get("/preview",
		authMiddleware.OnlyRolesSlice(msg, constants.SuperAdminOnly),
		ctrl.PreviewPrices,
	)
	admin.Post("/", middlewares.Write(msg, constants.SuperAdminOnly,
		middlewares.PriceSyncRateLimiter(),
		ctrl.SyncPrices,
	)...)
}
