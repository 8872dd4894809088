package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	CampaignCategoryRoute "reporthub_backend/internals/features/finance/campaign_categories/route"
	FinancialYearRoute "reporthub_backend/internals/features/finance/financial_years/route"
	PaymentRoute "reporthub_backend/internals/features/finance/payments/route"
	PriceSyncRoute "reporthub_backend/internals/features/finance/price_sync/route"
	TransactionRoute "reporthub_backend/internals/features/finance/transactions/route"
)

func FinanceRoutes(r fiber.Router, db *gorm.DB) {
	FinancialYearRoute.FinancialYearRoutes(r, db)
	CampaignCategoryRoute.CampaignCategoryRoutes(r, db)
	TransactionRoute.TransactionRoutes(r, db)
	PaymentRoute.PaymentRoutes(r, db)
	PriceSyncRoute.PriceSyncRoutes(r, db)
}
