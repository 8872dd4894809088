package database

import (
	"log"

	"gorm.io/gorm"

	departmentModel "reporthub_backend/internals/features/catalog/departments/model"
	productModel "reporthub_backend/internals/features/catalog/product_types/model"
	categoryModel "reporthub_backend/internals/features/finance/campaign_categories/model"
	fyModel "reporthub_backend/internals/features/finance/financial_years/model"
	paymentModel "reporthub_backend/internals/features/finance/payments/model"
	transactionModel "reporthub_backend/internals/features/finance/transactions/model"
	churchModel "reporthub_backend/internals/features/organization/churches/model"
	groupModel "reporthub_backend/internals/features/organization/groups/model"
	zoneModel "reporthub_backend/internals/features/organization/zones/model"
	uploadModel "reporthub_backend/internals/features/uploads/model"
	userModel "reporthub_backend/internals/features/users/user/model"
)

// Models in dependency order.
func Models() []any {
	return []any{
		&zoneModel.ZoneModel{},
		&groupModel.GroupModel{},
		&churchModel.ChurchModel{},
		&departmentModel.DepartmentModel{},
		&productModel.ProductTypeModel{},
		&userModel.UserModel{},
		&categoryModel.CampaignCategoryModel{},
		&uploadModel.UploadHistoryModel{},
		&transactionModel.TransactionModel{},
		&transactionModel.TransactionLineItemModel{},
		&paymentModel.PaymentModel{},
		&fyModel.FinancialYearModel{},
	}
}

// Case-insensitive name uniqueness and the single-current-year rule.
// Expression + partial indexes work on Postgres and SQLite alike.
var indexStatements = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_zones_name_ci ON zones (LOWER(zone_name)) WHERE zone_deleted_at IS NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_groups_zone_name_ci ON "groups" (group_zone_id, LOWER(group_name)) WHERE group_deleted_at IS NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_churches_name_ci ON churches (LOWER(church_name)) WHERE church_deleted_at IS NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_departments_name_ci ON departments (LOWER(department_name)) WHERE department_deleted_at IS NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_product_types_name_ci ON product_types (LOWER(product_type_name)) WHERE product_type_deleted_at IS NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_users_email_ci ON users (LOWER(user_email)) WHERE user_deleted_at IS NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_campaign_categories_name_ci ON campaign_categories (LOWER(campaign_category_name))`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_financial_years_current ON financial_years (financial_year_is_current) WHERE financial_year_is_current`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_church_date ON transactions (transaction_church_id, transaction_date)`,
	`CREATE INDEX IF NOT EXISTS idx_payments_church_date ON payments (payment_church_id, payment_date)`,
}

func AutoMigrate(db *gorm.DB) error {
	log.Println("🛠️  Running migrations...")
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	for _, stmt := range indexStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	log.Println("✅ Migrations done.")
	return nil
}
