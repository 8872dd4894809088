package controller_test

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"reporthub_backend/internals/constants"
	"reporthub_backend/internals/databases/testdb"
	departmentModel "reporthub_backend/internals/features/catalog/departments/model"
	productModel "reporthub_backend/internals/features/catalog/product_types/model"
	"reporthub_backend/internals/features/finance/transactions/model"
	"reporthub_backend/internals/features/finance/transactions/route"
	churchModel "reporthub_backend/internals/features/organization/churches/model"
	groupModel "reporthub_backend/internals/features/organization/groups/model"
	zoneModel "reporthub_backend/internals/features/organization/zones/model"
)

type fixture struct {
	zone    zoneModel.ZoneModel
	church  churchModel.ChurchModel
	other   churchModel.ChurchModel
	product productModel.ProductTypeModel
}

func seed(t *testing.T, db *gorm.DB) fixture {
	t.Helper()
	var f fixture
	f.zone = zoneModel.ZoneModel{ZoneName: "Lagos"}
	require.NoError(t, db.Create(&f.zone).Error)
	otherZone := zoneModel.ZoneModel{ZoneName: "Abuja"}
	require.NoError(t, db.Create(&otherZone).Error)

	g := groupModel.GroupModel{GroupZoneID: f.zone.ZoneID, GroupName: "G1"}
	require.NoError(t, db.Create(&g).Error)
	og := groupModel.GroupModel{GroupZoneID: otherZone.ZoneID, GroupName: "G2"}
	require.NoError(t, db.Create(&og).Error)

	f.church = churchModel.ChurchModel{ChurchGroupID: g.GroupID, ChurchName: "Grace Chapel"}
	require.NoError(t, db.Create(&f.church).Error)
	f.other = churchModel.ChurchModel{ChurchGroupID: og.GroupID, ChurchName: "Hope Chapel"}
	require.NoError(t, db.Create(&f.other).Error)

	dept := departmentModel.DepartmentModel{DepartmentName: "Publishing"}
	require.NoError(t, db.Create(&dept).Error)
	f.product = productModel.ProductTypeModel{
		ProductTypeDepartmentID: dept.DepartmentID,
		ProductTypeName:         "Rhapsody",
		ProductTypeUnitPrice:    decimal.NewFromInt(150),
		ProductTypeIsActive:     true,
	}
	require.NoError(t, db.Create(&f.product).Error)
	return f
}

func TestCreateTransaction_DefaultsToCatalogPrice(t *testing.T) {
	db := testdb.New(t)
	f := seed(t, db)
	app := testdb.NewApp(constants.RoleSuperAdmin, nil)
	route.TransactionRoutes(app.Group("/api"), db)

	code, body := testdb.Do(t, app, testdb.Request(t, "POST", "/api/transactions", map[string]any{
		"church_id":        f.church.ChurchID.String(),
		"transaction_date": "2025-01-15",
		"line_items": []map[string]any{
			{"product_type_id": f.product.ProductTypeID.String(), "quantity": 4},
			{"product_type_id": f.product.ProductTypeID.String(), "quantity": 2, "unit_price": "100"},
		},
	}))
	require.Equal(t, fiber.StatusCreated, code, body)
	d := testdb.Data(t, body)
	assert.Equal(t, "800", d["transaction_total"])
	assert.Equal(t, "MANUAL", d["transaction_source"])
	items := d["line_items"].([]any)
	require.Len(t, items, 2)

	var stored []model.TransactionLineItemModel
	require.NoError(t, db.Order("line_item_quantity DESC").Find(&stored).Error)
	require.Len(t, stored, 2)
	assert.True(t, stored[0].LineItemUnitPrice.Equal(decimal.NewFromInt(150)))
	assert.True(t, stored[0].LineItemTotalAmount.Equal(decimal.NewFromInt(600)))
	assert.True(t, stored[1].LineItemTotalAmount.Equal(decimal.NewFromInt(200)))
}

func TestCreateTransaction_Validation(t *testing.T) {
	db := testdb.New(t)
	f := seed(t, db)
	app := testdb.NewApp(constants.RoleSuperAdmin, nil)
	route.TransactionRoutes(app.Group("/api"), db)

	code, body := testdb.Do(t, app, testdb.Request(t, "POST", "/api/transactions", map[string]any{
		"church_id":        f.church.ChurchID.String(),
		"transaction_date": "2025-01-15",
		"line_items":       []map[string]any{},
	}))
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Contains(t, body["error"], "line_items")

	code, body = testdb.Do(t, app, testdb.Request(t, "POST", "/api/transactions", map[string]any{
		"church_id":        f.church.ChurchID.String(),
		"transaction_date": "2025-01-15",
		"line_items":       []map[string]any{{"product_type_id": uuid.NewString(), "quantity": 1}},
	}))
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "line_items[0]: product type not found", body["error"])

	code, body = testdb.Do(t, app, testdb.Request(t, "POST", "/api/transactions", map[string]any{
		"church_id":        uuid.NewString(),
		"transaction_date": "2025-01-15",
		"line_items":       []map[string]any{{"product_type_id": f.product.ProductTypeID.String(), "quantity": 1}},
	}))
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "Church not found", body["error"])

	var n int64
	require.NoError(t, db.Model(&model.TransactionModel{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestUpdateTransaction_ReplacesLineItems(t *testing.T) {
	db := testdb.New(t)
	f := seed(t, db)
	app := testdb.NewApp(constants.RoleSuperAdmin, nil)
	route.TransactionRoutes(app.Group("/api"), db)

	code, body := testdb.Do(t, app, testdb.Request(t, "POST", "/api/transactions", map[string]any{
		"church_id":        f.church.ChurchID.String(),
		"transaction_date": "2025-01-15",
		"line_items":       []map[string]any{{"product_type_id": f.product.ProductTypeID.String(), "quantity": 1}},
	}))
	require.Equal(t, fiber.StatusCreated, code, body)
	id := testdb.Data(t, body)["transaction_id"].(string)

	code, body = testdb.Do(t, app, testdb.Request(t, "PUT", "/api/transactions/"+id, map[string]any{
		"reference":  "INV-7",
		"line_items": []map[string]any{{"product_type_id": f.product.ProductTypeID.String(), "quantity": 10}},
	}))
	require.Equal(t, fiber.StatusOK, code, body)
	d := testdb.Data(t, body)
	assert.Equal(t, "INV-7", d["transaction_reference"])
	assert.Equal(t, "1500", d["transaction_total"])

	var n int64
	require.NoError(t, db.Model(&model.TransactionLineItemModel{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	code, _ = testdb.Do(t, app, testdb.Request(t, "DELETE", "/api/transactions/"+id, nil))
	require.Equal(t, fiber.StatusOK, code)
	require.NoError(t, db.Model(&model.TransactionLineItemModel{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestTransactions_ZoneAdminScope(t *testing.T) {
	db := testdb.New(t)
	f := seed(t, db)
	zoneID := f.zone.ZoneID
	app := testdb.NewApp(constants.RoleZoneAdmin, &zoneID)
	route.TransactionRoutes(app.Group("/api"), db)

	code, _ := testdb.Do(t, app, testdb.Request(t, "POST", "/api/transactions", map[string]any{
		"church_id":        f.other.ChurchID.String(),
		"transaction_date": "2025-01-15",
		"line_items":       []map[string]any{{"product_type_id": f.product.ProductTypeID.String(), "quantity": 1}},
	}))
	assert.Equal(t, fiber.StatusForbidden, code)

	code, body := testdb.Do(t, app, testdb.Request(t, "POST", "/api/transactions", map[string]any{
		"church_id":        f.church.ChurchID.String(),
		"transaction_date": "2025-03-02",
		"line_items":       []map[string]any{{"product_type_id": f.product.ProductTypeID.String(), "quantity": 1}},
	}))
	require.Equal(t, fiber.StatusCreated, code, body)

	other := model.TransactionModel{TransactionChurchID: f.other.ChurchID, TransactionDate: time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, db.Omit("Church", "LineItems").Create(&other).Error)

	code, body = testdb.Do(t, app, testdb.Request(t, "GET", "/api/transactions?fy=FY2025", nil))
	require.Equal(t, fiber.StatusOK, code)
	assert.Len(t, body["data"].([]any), 1)

	code, _ = testdb.Do(t, app, testdb.Request(t, "GET", "/api/transactions/"+other.TransactionID.String(), nil))
	assert.Equal(t, fiber.StatusForbidden, code)
}
