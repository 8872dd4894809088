package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"reporthub_backend/internals/configs"
	"reporthub_backend/internals/constants"
	"reporthub_backend/internals/features/reports/controller"
	"reporthub_backend/internals/helpers/cache"
	"reporthub_backend/internals/middlewares"
)

// ReportRoutes registers /reports. Writes elsewhere invalidate reportCache.
func ReportRoutes(api fiber.Router, db *gorm.DB, reportCache cache.Cache) {
	ctrl := controller.NewReportController(db, reportCache, configs.ReportCacheTTL)

	r := api.Group("/reports")
	r.Get("/payment-summary", ctrl.PaymentSummary)
	r.Get("/dashboard", ctrl.Dashboard)
	r.Delete("/cache", middlewares.Write(constants.RoleErrorSuperAdmin("the report cache"), constants.SuperAdminOnly, ctrl.ClearCache)...)
}
