package controller_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reporthub_backend/internals/constants"
	"reporthub_backend/internals/databases/testdb"
	"reporthub_backend/internals/features/catalog/departments/route"
	productModel "reporthub_backend/internals/features/catalog/product_types/model"
)

func TestDepartmentCRUD(t *testing.T) {
	db := testdb.New(t)
	app := testdb.NewApp(constants.RoleSuperAdmin, nil)
	route.DepartmentRoutes(app.Group("/api"), db)

	code, body := testdb.Do(t, app, testdb.Request(t, "POST", "/api/departments", map[string]any{
		"department_name":        "Publishing",
		"department_description": "Books and magazines",
	}))
	require.Equal(t, fiber.StatusCreated, code, body)
	d := testdb.Data(t, body)
	assert.Equal(t, "Publishing", d["department_name"])
	id := d["department_id"].(string)

	code, body = testdb.Do(t, app, testdb.Request(t, "POST", "/api/departments", map[string]any{
		"department_name": "Publishing",
	}))
	assert.Equal(t, fiber.StatusConflict, code)
	assert.Equal(t, "A department with this name already exists", body["error"])

	pt := productModel.ProductTypeModel{
		ProductTypeDepartmentID: uuid.MustParse(id),
		ProductTypeName:         "Rhapsody",
		ProductTypeUnitPrice:    decimal.NewFromInt(200),
		ProductTypeIsActive:     true,
	}
	require.NoError(t, db.Omit("Department").Create(&pt).Error)

	code, body = testdb.Do(t, app, testdb.Request(t, "GET", "/api/departments/"+id, nil))
	require.Equal(t, fiber.StatusOK, code, body)
	counts := testdb.Data(t, body)["_count"].(map[string]any)
	assert.EqualValues(t, 1, counts["product_types"])

	code, body = testdb.Do(t, app, testdb.Request(t, "DELETE", "/api/departments/"+id, nil))
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "Cannot delete department: it has 1 product type(s)", body["error"])

	require.NoError(t, db.Unscoped().Delete(&productModel.ProductTypeModel{}, "product_type_id = ?", pt.ProductTypeID).Error)
	code, _ = testdb.Do(t, app, testdb.Request(t, "DELETE", "/api/departments/"+id, nil))
	assert.Equal(t, fiber.StatusOK, code)

	code, body = testdb.Do(t, app, testdb.Request(t, "DELETE", "/api/departments/not-a-uuid", nil))
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "Invalid department id", body["error"])

	zoneAdmin := testdb.NewApp(constants.RoleZoneAdmin, nil)
	route.DepartmentRoutes(zoneAdmin.Group("/api"), db)
	code, _ = testdb.Do(t, zoneAdmin, testdb.Request(t, "POST", "/api/departments", map[string]any{
		"department_name": "Media",
	}))
	assert.Equal(t, fiber.StatusForbidden, code)
}
