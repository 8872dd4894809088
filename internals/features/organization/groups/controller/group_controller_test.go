package controller_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reporthub_backend/internals/constants"
	"reporthub_backend/internals/databases/testdb"
	churchModel "reporthub_backend/internals/features/organization/churches/model"
	"reporthub_backend/internals/features/organization/groups/route"
	zoneModel "reporthub_backend/internals/features/organization/zones/model"
)

func TestZoneAdminGroupScope(t *testing.T) {
	db := testdb.New(t)
	own := zoneModel.ZoneModel{ZoneName: "Own"}
	other := zoneModel.ZoneModel{ZoneName: "Other"}
	require.NoError(t, db.Create(&own).Error)
	require.NoError(t, db.Create(&other).Error)

	app := testdb.NewApp(constants.RoleZoneAdmin, &own.ZoneID)
	route.GroupRoutes(app.Group("/api"), db)

	// defaults to own zone
	code, body := testdb.Do(t, app, testdb.Request(t, "POST", "/api/groups", map[string]any{"group_name": "Ikeja"}))
	require.Equal(t, fiber.StatusCreated, code, body)
	assert.Equal(t, own.ZoneID.String(), testdb.Data(t, body)["group_zone_id"])

	code, _ = testdb.Do(t, app, testdb.Request(t, "POST", "/api/groups", map[string]any{
		"group_name": "Elsewhere", "group_zone_id": other.ZoneID.String(),
	}))
	assert.Equal(t, fiber.StatusForbidden, code)

	code, _ = testdb.Do(t, app, testdb.Request(t, "POST", "/api/groups", map[string]any{"group_name": "IKEJA"}))
	assert.Equal(t, fiber.StatusConflict, code)
}

func TestDeleteGroupBlockedByChurches(t *testing.T) {
	db := testdb.New(t)
	zone := zoneModel.ZoneModel{ZoneName: "Z"}
	require.NoError(t, db.Create(&zone).Error)

	app := testdb.NewApp(constants.RoleSuperAdmin, nil)
	route.GroupRoutes(app.Group("/api"), db)

	code, body := testdb.Do(t, app, testdb.Request(t, "POST", "/api/groups", map[string]any{
		"group_name": "G", "group_zone_id": zone.ZoneID.String(),
	}))
	require.Equal(t, fiber.StatusCreated, code, body)
	gid := testdb.Data(t, body)["group_id"].(string)

	require.NoError(t, db.Create(&churchModel.ChurchModel{ChurchGroupID: uuid.MustParse(gid), ChurchName: "Grace"}).Error)

	code, body = testdb.Do(t, app, testdb.Request(t, "DELETE", "/api/groups/"+gid, nil))
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "Cannot delete group: it has 1 church(es)", body["error"])
}
