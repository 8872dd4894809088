package controller_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reporthub_backend/internals/constants"
	"reporthub_backend/internals/databases/testdb"
	zoneModel "reporthub_backend/internals/features/organization/zones/model"
	"reporthub_backend/internals/features/users/user/model"
	"reporthub_backend/internals/features/users/user/route"
)

func TestCreateUserRules(t *testing.T) {
	db := testdb.New(t)
	zone := zoneModel.ZoneModel{ZoneName: "East"}
	require.NoError(t, db.Create(&zone).Error)

	app := testdb.NewApp(constants.RoleSuperAdmin, nil)
	route.UserRoutes(app.Group("/api"), db)

	code, body := testdb.Do(t, app, testdb.Request(t, "POST", "/api/users", map[string]any{
		"user_name": "Ada", "user_email": "ada@example.org", "user_role": "ZONE_ADMIN",
	}))
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "user_zone_id is required for ZONE_ADMIN", body["error"])

	code, body = testdb.Do(t, app, testdb.Request(t, "POST", "/api/users", map[string]any{
		"user_name": "Ada", "user_email": "Ada@Example.org", "user_role": "ZONE_ADMIN",
		"user_zone_id": zone.ZoneID.String(), "user_password": "correct horse",
	}))
	require.Equal(t, fiber.StatusCreated, code, body)
	data := testdb.Data(t, body)
	assert.Equal(t, "ada@example.org", data["user_email"])
	assert.Equal(t, true, data["user_has_password"])
	assert.NotContains(t, data, "user_password_hash")

	var stored model.UserModel
	require.NoError(t, db.First(&stored, "user_id = ?", uuid.MustParse(data["user_id"].(string))).Error)
	assert.True(t, stored.CheckPassword("correct horse"))
	assert.False(t, stored.CheckPassword("wrong"))
	assert.True(t, stored.UserIsActive)

	code, _ = testdb.Do(t, app, testdb.Request(t, "POST", "/api/users", map[string]any{
		"user_name": "Other", "user_email": "ADA@example.org", "user_role": "USER",
	}))
	assert.Equal(t, fiber.StatusConflict, code)

	code, body = testdb.Do(t, app, testdb.Request(t, "POST", "/api/users", map[string]any{
		"user_name": "Short", "user_email": "s@example.org", "user_role": "USER", "user_password": "123",
	}))
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Contains(t, body["error"], "user_password must be at least 8")
}

func TestUserListIsAdminOnly(t *testing.T) {
	db := testdb.New(t)
	app := testdb.NewApp(constants.RoleUser, nil)
	route.UserRoutes(app.Group("/api"), db)

	code, _ := testdb.Do(t, app, testdb.Request(t, "GET", "/api/users", nil))
	assert.Equal(t, fiber.StatusForbidden, code)
}
