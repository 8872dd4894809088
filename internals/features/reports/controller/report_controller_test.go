package controller_test

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"reporthub_backend/internals/constants"
	"reporthub_backend/internals/databases/testdb"
	departmentModel "reporthub_backend/internals/features/catalog/departments/model"
	productModel "reporthub_backend/internals/features/catalog/product_types/model"
	paymentModel "reporthub_backend/internals/features/finance/payments/model"
	transactionModel "reporthub_backend/internals/features/finance/transactions/model"
	churchModel "reporthub_backend/internals/features/organization/churches/model"
	groupModel "reporthub_backend/internals/features/organization/groups/model"
	zoneModel "reporthub_backend/internals/features/organization/zones/model"
	"reporthub_backend/internals/features/reports/route"
	uploadModel "reporthub_backend/internals/features/uploads/model"
)

type fixture struct {
	lagos, accra zoneModel.ZoneModel
	grace, hope  churchModel.ChurchModel
}

func seed(t *testing.T, db *gorm.DB) fixture {
	t.Helper()
	var fx fixture
	fx.lagos = zoneModel.ZoneModel{ZoneName: "Lagos"}
	fx.accra = zoneModel.ZoneModel{ZoneName: "Accra", ZoneCurrency: "GHS"}
	require.NoError(t, db.Create(&fx.lagos).Error)
	require.NoError(t, db.Create(&fx.accra).Error)

	g1 := groupModel.GroupModel{GroupZoneID: fx.lagos.ZoneID, GroupName: "Ikeja"}
	g2 := groupModel.GroupModel{GroupZoneID: fx.accra.ZoneID, GroupName: "Osu"}
	require.NoError(t, db.Create(&g1).Error)
	require.NoError(t, db.Create(&g2).Error)
	fx.grace = churchModel.ChurchModel{ChurchGroupID: g1.GroupID, ChurchName: "Grace Chapel"}
	fx.hope = churchModel.ChurchModel{ChurchGroupID: g2.GroupID, ChurchName: "Hope Chapel"}
	require.NoError(t, db.Create(&fx.grace).Error)
	require.NoError(t, db.Create(&fx.hope).Error)

	dept := departmentModel.DepartmentModel{DepartmentName: "Publishing"}
	require.NoError(t, db.Create(&dept).Error)
	prod := productModel.ProductTypeModel{
		ProductTypeDepartmentID: dept.DepartmentID,
		ProductTypeName:         "Rhapsody",
		ProductTypeUnitPrice:    decimal.NewFromInt(100),
		ProductTypeIsActive:     true,
	}
	require.NoError(t, db.Create(&prod).Error)

	order := func(church churchModel.ChurchModel, date time.Time, qty int, delivery int64) {
		tx := transactionModel.TransactionModel{
			TransactionChurchID:     church.ChurchID,
			TransactionDate:         date,
			TransactionDeliveryCost: decimal.NewFromInt(delivery),
		}
		require.NoError(t, db.Omit("Church", "LineItems").Create(&tx).Error)
		li := transactionModel.NewLineItem(prod.ProductTypeID, qty, prod.ProductTypeUnitPrice)
		li.LineItemTransactionID = tx.TransactionID
		require.NoError(t, db.Omit("ProductType").Create(&li).Error)
	}
	order(fx.grace, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), 10, 50)
	order(fx.hope, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), 3, 0)
	order(fx.grace, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), 99, 0) // FY2024

	pay := func(church churchModel.ChurchModel, date time.Time, amount int64, purpose string) {
		p := paymentModel.PaymentModel{
			PaymentChurchID: church.ChurchID,
			PaymentAmount:   decimal.NewFromInt(amount),
			PaymentDate:     date,
			PaymentMethod:   paymentModel.PaymentMethodCash,
			PaymentPurpose:  purpose,
		}
		require.NoError(t, db.Omit("Church", "CampaignCategory").Create(&p).Error)
	}
	pay(fx.grace, time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC), 600, paymentModel.PaymentPurposePrinting)
	pay(fx.grace, time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC), 200, paymentModel.PaymentPurposeSponsorship)
	pay(fx.hope, time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC), 300, paymentModel.PaymentPurposePrinting)

	require.NoError(t, db.Create(&uploadModel.UploadHistoryModel{
		UploadType:      uploadModel.UploadTypeTransactions,
		UploadFileName:  "jan.csv",
		UploadStatus:    uploadModel.UploadStatusPartial,
		UploadCreatedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	}).Error)
	return fx
}

func amount(t *testing.T, v any) decimal.Decimal {
	t.Helper()
	s, ok := v.(string)
	require.True(t, ok, "expected decimal string, got %T", v)
	return decimal.RequireFromString(s)
}

func TestPaymentSummaryEndpoint(t *testing.T) {
	db := testdb.New(t)
	fx := seed(t, db)

	app := testdb.NewApp(constants.RoleSuperAdmin, nil)
	route.ReportRoutes(app.Group("/api"), db, nil)

	code, body := testdb.Do(t, app, testdb.Request(t, "GET", "/api/reports/payment-summary?fy=fy2025", nil))
	require.Equal(t, fiber.StatusOK, code, body)
	d := testdb.Data(t, body)
	assert.Equal(t, "NGN", d["currency"])
	assert.Len(t, d["months"].([]any), 12)
	totals := d["totals"].(map[string]any)
	assert.True(t, amount(t, totals["total"]).Equal(decimal.NewFromInt(1100)))
	assert.True(t, amount(t, totals["printing"]).Equal(decimal.NewFromInt(900)))

	code, body = testdb.Do(t, app, testdb.Request(t, "GET", "/api/reports/payment-summary?fy=FY2025&zone_id="+fx.accra.ZoneID.String(), nil))
	require.Equal(t, fiber.StatusOK, code)
	d = testdb.Data(t, body)
	assert.Equal(t, "GHS", d["currency"])
	totals = d["totals"].(map[string]any)
	assert.True(t, amount(t, totals["total"]).Equal(decimal.NewFromInt(300)))
	assert.Equal(t, "₵300.00", totals["totalFormatted"])

	code, _ = testdb.Do(t, app, testdb.Request(t, "GET", "/api/reports/payment-summary?fy=2025", nil))
	assert.Equal(t, fiber.StatusBadRequest, code)

	code, _ = testdb.Do(t, app, testdb.Request(t, "GET", "/api/reports/payment-summary?zone_id=nope", nil))
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestDashboardEndpoint(t *testing.T) {
	db := testdb.New(t)
	fx := seed(t, db)

	app := testdb.NewApp(constants.RoleSuperAdmin, nil)
	route.ReportRoutes(app.Group("/api"), db, nil)

	code, body := testdb.Do(t, app, testdb.Request(t, "GET", "/api/reports/dashboard?fy=FY2025", nil))
	require.Equal(t, fiber.StatusOK, code, body)
	d := testdb.Data(t, body)

	orders := d["orders"].(map[string]any)
	assert.EqualValues(t, 2, orders["transactions"])
	assert.EqualValues(t, 13, orders["quantity"])
	assert.True(t, amount(t, orders["total"]).Equal(decimal.NewFromInt(1300)))
	assert.True(t, amount(t, orders["grandTotal"]).Equal(decimal.NewFromInt(1350)))

	// 1350 billed - 900 paid for printing
	assert.True(t, amount(t, d["outstandingBalance"]).Equal(decimal.NewFromInt(450)))

	top := d["topChurches"].([]any)
	require.Len(t, top, 2)
	assert.Equal(t, "Grace Chapel", top[0].(map[string]any)["churchName"])

	uploads := d["uploads"].(map[string]any)
	assert.EqualValues(t, 1, uploads["PARTIAL"])
	assert.EqualValues(t, 0, uploads["FAILED"])

	// zone admins are pinned to their zone
	zoneID := fx.lagos.ZoneID
	scoped := testdb.NewApp(constants.RoleZoneAdmin, &zoneID)
	route.ReportRoutes(scoped.Group("/api"), db, nil)
	code, body = testdb.Do(t, scoped, testdb.Request(t, "GET", "/api/reports/dashboard?fy=FY2025", nil))
	require.Equal(t, fiber.StatusOK, code)
	d = testdb.Data(t, body)
	assert.EqualValues(t, 1, d["orders"].(map[string]any)["transactions"])
	assert.Len(t, d["topChurches"].([]any), 1)
	assert.EqualValues(t, 0, d["uploads"].(map[string]any)["PARTIAL"])

	code, _ = testdb.Do(t, scoped, testdb.Request(t, "GET", "/api/reports/dashboard?zone_id="+fx.accra.ZoneID.String(), nil))
	assert.Equal(t, fiber.StatusForbidden, code)

	code, _ = testdb.Do(t, scoped, testdb.Request(t, "DELETE", "/api/reports/cache", nil))
	assert.Equal(t, fiber.StatusForbidden, code)
}
