package controller_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"reporthub_backend/internals/constants"
	"reporthub_backend/internals/databases/testdb"
	departmentModel "reporthub_backend/internals/features/catalog/departments/model"
	productModel "reporthub_backend/internals/features/catalog/product_types/model"
	churchModel "reporthub_backend/internals/features/organization/churches/model"
	groupModel "reporthub_backend/internals/features/organization/groups/model"
	zoneModel "reporthub_backend/internals/features/organization/zones/model"
	"reporthub_backend/internals/features/uploads/model"
	"reporthub_backend/internals/features/uploads/route"
)

func uploadRequest(t *testing.T, path, fileName, content string, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := w.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "http://example.com"+path, &buf)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func seed(t *testing.T, db *gorm.DB) zoneModel.ZoneModel {
	t.Helper()
	z := zoneModel.ZoneModel{ZoneName: "Lagos"}
	require.NoError(t, db.Create(&z).Error)
	g := groupModel.GroupModel{GroupZoneID: z.ZoneID, GroupName: "Ikeja"}
	require.NoError(t, db.Create(&g).Error)
	require.NoError(t, db.Create(&churchModel.ChurchModel{ChurchGroupID: g.GroupID, ChurchName: "Grace Chapel"}).Error)
	return z
}

func TestUploadTransactions(t *testing.T) {
	db := testdb.New(t)
	seed(t, db)
	dept := departmentModel.DepartmentModel{DepartmentName: "Publishing"}
	require.NoError(t, db.Create(&dept).Error)
	require.NoError(t, db.Create(&productModel.ProductTypeModel{
		ProductTypeDepartmentID: dept.DepartmentID,
		ProductTypeName:         "Rhapsody",
		ProductTypeUnitPrice:    decimal.NewFromInt(200),
		ProductTypeIsActive:     true,
	}).Error)

	app := testdb.NewApp(constants.RoleSuperAdmin, nil)
	route.UploadRoutes(app.Group("/api"), db)

	csv := "Church Name,Date,Product Type,Quantity,Unit Price\n" +
		"Grace Chapel,2025-01-10,Rhapsody,5,200\n" +
		",2025-01-10,Rhapsody,1,200\n"
	code, body := testdb.Do(t, app, uploadRequest(t, "/api/uploads", "tx.csv", csv, map[string]string{"uploadType": "Transactions"}))
	require.Equal(t, fiber.StatusOK, code, body)
	assert.Equal(t, model.UploadStatusPartial, body["status"])
	assert.EqualValues(t, 1, body["recordsProcessed"])
	assert.EqualValues(t, 2, body["totalRows"])
	assert.Equal(t, model.UploadTypeTransactions, body["uploadType"])
	id, _ := body["uploadId"].(string)
	require.NotEmpty(t, id)

	code, body = testdb.Do(t, app, testdb.Request(t, "GET", "/api/uploads", nil))
	require.Equal(t, fiber.StatusOK, code)
	assert.Len(t, body["data"].([]any), 1)

	code, body = testdb.Do(t, app, testdb.Request(t, "GET", "/api/uploads?status=success", nil))
	require.Equal(t, fiber.StatusOK, code)
	assert.Len(t, body["data"].([]any), 0)

	code, body = testdb.Do(t, app, testdb.Request(t, "GET", "/api/uploads/"+id, nil))
	require.Equal(t, fiber.StatusOK, code)
	d := testdb.Data(t, body)
	assert.Equal(t, "tx.csv", d["upload_file_name"])
	assert.Contains(t, d["upload_error_log"], "Row 3: Church Name is required")
}

func TestUpload_RequestValidation(t *testing.T) {
	db := testdb.New(t)
	app := testdb.NewApp(constants.RoleSuperAdmin, nil)
	route.UploadRoutes(app.Group("/api"), db)

	code, body := testdb.Do(t, app, uploadRequest(t, "/api/uploads", "tx.csv", "a\n1\n", nil))
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "uploadType is required", body["error"])

	code, body = testdb.Do(t, app, uploadRequest(t, "/api/uploads", "o.csv", "Chapter\nx\n", map[string]string{"uploadType": "orders"}))
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "orderPeriod is required for order uploads", body["error"])

	code, _ = testdb.Do(t, app, uploadRequest(t, "/api/uploads", "o.csv", "Chapter\nx\n", map[string]string{"uploadType": "orders", "orderPeriod": "2025-13"}))
	assert.Equal(t, fiber.StatusBadRequest, code)

	code, body = testdb.Do(t, app, uploadRequest(t, "/api/uploads", "", "", map[string]string{"uploadType": "transactions"}))
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "file is required", body["error"])

	code, _ = testdb.Do(t, app, uploadRequest(t, "/api/uploads", "notes.txt", "hello", map[string]string{"uploadType": "transactions"}))
	assert.Equal(t, fiber.StatusBadRequest, code)

	user := testdb.NewApp(constants.RoleUser, nil)
	route.UploadRoutes(user.Group("/api"), db)
	code, _ = testdb.Do(t, user, uploadRequest(t, "/api/uploads", "tx.csv", "a\n1\n", map[string]string{"uploadType": "transactions"}))
	assert.Equal(t, fiber.StatusForbidden, code)
}

func TestUploadChurches_ZoneAdmin(t *testing.T) {
	db := testdb.New(t)
	zone := seed(t, db)
	zoneID := zone.ZoneID

	app := testdb.NewApp(constants.RoleZoneAdmin, &zoneID)
	route.UploadRoutes(app.Group("/api"), db)

	csv := "Church Name,Group Name\nHope Chapel,Ikeja\nGrace Chapel,Ikeja\n"
	code, body := testdb.Do(t, app, uploadRequest(t, "/api/churches/upload", "churches.csv", csv, nil))
	require.Equal(t, fiber.StatusOK, code, body)
	assert.Equal(t, model.UploadStatusPartial, body["status"])
	assert.EqualValues(t, 1, body["recordsProcessed"])

	var n int64
	require.NoError(t, db.Model(&churchModel.ChurchModel{}).Where("church_name = ?", "Hope Chapel").Count(&n).Error)
	assert.EqualValues(t, 1, n)

	// zone admins only see their own uploads
	other := testdb.NewApp(constants.RoleZoneAdmin, &zoneID)
	route.UploadRoutes(other.Group("/api"), db)
	code, body = testdb.Do(t, other, testdb.Request(t, "GET", "/api/uploads", nil))
	require.Equal(t, fiber.StatusOK, code)
	assert.Len(t, body["data"].([]any), 0)
}
