package controller_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reporthub_backend/internals/constants"
	"reporthub_backend/internals/databases/testdb"
	groupModel "reporthub_backend/internals/features/organization/groups/model"
	"reporthub_backend/internals/features/organization/zones/model"
	"reporthub_backend/internals/features/organization/zones/route"
)

func TestZoneCRUD(t *testing.T) {
	db := testdb.New(t)
	app := testdb.NewApp(constants.RoleSuperAdmin, nil)
	route.ZoneRoutes(app.Group("/api"), db)

	code, body := testdb.Do(t, app, testdb.Request(t, "POST", "/api/zones", map[string]any{"zone_name": "  Lagos   Zone "}))
	require.Equal(t, fiber.StatusCreated, code, body)
	created := testdb.Data(t, body)
	assert.Equal(t, "Lagos Zone", created["zone_name"])
	assert.Equal(t, "NGN", created["zone_currency"])

	code, body = testdb.Do(t, app, testdb.Request(t, "POST", "/api/zones", map[string]any{"zone_name": "lagos zone"}))
	assert.Equal(t, fiber.StatusConflict, code)
	assert.NotEmpty(t, body["error"])

	code, body = testdb.Do(t, app, testdb.Request(t, "POST", "/api/zones", map[string]any{}))
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Contains(t, body["error"], "zone_name is required")

	id := created["zone_id"].(string)
	code, body = testdb.Do(t, app, testdb.Request(t, "PUT", "/api/zones/"+id, map[string]any{"zone_currency": "usd"}))
	require.Equal(t, fiber.StatusOK, code, body)
	assert.Equal(t, "USD", testdb.Data(t, body)["zone_currency"])

	code, _ = testdb.Do(t, app, testdb.Request(t, "GET", "/api/zones/00000000-0000-0000-0000-000000000001", nil))
	assert.Equal(t, fiber.StatusNotFound, code)
}

func TestDeleteZoneBlockedByGroups(t *testing.T) {
	db := testdb.New(t)
	app := testdb.NewApp(constants.RoleSuperAdmin, nil)
	route.ZoneRoutes(app.Group("/api"), db)

	zone := model.ZoneModel{ZoneName: "North"}
	require.NoError(t, db.Create(&zone).Error)
	require.NoError(t, db.Create(&groupModel.GroupModel{GroupZoneID: zone.ZoneID, GroupName: "G1"}).Error)

	code, body := testdb.Do(t, app, testdb.Request(t, "DELETE", "/api/zones/"+zone.ZoneID.String(), nil))
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "Cannot delete zone: it has 1 group(s)", body["error"])

	var n int64
	require.NoError(t, db.Model(&model.ZoneModel{}).Where("zone_id = ?", zone.ZoneID).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	code, body = testdb.Do(t, app, testdb.Request(t, "GET", "/api/zones/"+zone.ZoneID.String(), nil))
	require.Equal(t, fiber.StatusOK, code)
	counts := testdb.Data(t, body)["_count"].(map[string]any)
	assert.EqualValues(t, 1, counts["groups"])
}

func TestZoneWritesRequireSuperAdmin(t *testing.T) {
	db := testdb.New(t)
	app := testdb.NewApp(constants.RoleUser, nil)
	route.ZoneRoutes(app.Group("/api"), db)

	code, _ := testdb.Do(t, app, testdb.Request(t, "POST", "/api/zones", map[string]any{"zone_name": "South"}))
	assert.Equal(t, fiber.StatusForbidden, code)

	code, _ = testdb.Do(t, app, testdb.Request(t, "GET", "/api/zones", nil))
	assert.Equal(t, fiber.StatusOK, code)

	admin := testdb.NewApp(constants.RoleSuperAdmin, nil)
	route.ZoneRoutes(admin.Group("/api"), db)
	req := testdb.Request(t, "POST", "/api/zones", map[string]any{"zone_name": "South"})
	req.Header.Set("Origin", "https://evil.test")
	code, body := testdb.Do(t, admin, req)
	assert.Equal(t, fiber.StatusForbidden, code)
	assert.Equal(t, "CSRF validation failed", body["error"])
}
