package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ReportRoute "reporthub_backend/internals/features/reports/route"
	UploadRoute "reporthub_backend/internals/features/uploads/route"
	"reporthub_backend/internals/helpers/cache"
)

// Ingestion (CSV/XLSX uploads) and the reports built from it.
func ReportRoutes(r fiber.Router, db *gorm.DB, reportCache cache.Cache) {
	UploadRoute.UploadRoutes(r, db)
	ReportRoute.ReportRoutes(r, db, reportCache)
}
