package controller_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reporthub_backend/internals/constants"
	"reporthub_backend/internals/databases/testdb"
	"reporthub_backend/internals/features/finance/financial_years/route"
)

func TestFinancialYearEndpoints(t *testing.T) {
	db := testdb.New(t)
	app := testdb.NewApp(constants.RoleSuperAdmin, nil)
	route.FinancialYearRoutes(app.Group("/api"), db)

	code, body := testdb.Do(t, app, testdb.Request(t, "POST", "/api/financial-years", map[string]any{
		"financial_year_label": "fy2025", "financial_year_is_current": true,
	}))
	require.Equal(t, fiber.StatusCreated, code, body)
	fy25 := testdb.Data(t, body)
	assert.Equal(t, "FY2025", fy25["financial_year_label"])
	assert.Equal(t, "2024-12-01T00:00:00Z", fy25["financial_year_start_date"])

	code, _ = testdb.Do(t, app, testdb.Request(t, "POST", "/api/financial-years", map[string]any{"financial_year_label": "FY2025"}))
	assert.Equal(t, fiber.StatusConflict, code)

	code, body = testdb.Do(t, app, testdb.Request(t, "POST", "/api/financial-years", map[string]any{"financial_year_label": "FYABCD"}))
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Contains(t, body["error"], "FY followed by 4 digits")

	code, body = testdb.Do(t, app, testdb.Request(t, "POST", "/api/financial-years", map[string]any{"financial_year_label": "FY2026"}))
	require.Equal(t, fiber.StatusCreated, code, body)
	fy26ID := testdb.Data(t, body)["financial_year_id"].(string)

	code, body = testdb.Do(t, app, testdb.Request(t, "GET", "/api/financial-years/current", nil))
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "FY2025", testdb.Data(t, body)["label"])

	code, body = testdb.Do(t, app, testdb.Request(t, "POST", "/api/financial-years/"+fy26ID+"/set-current", nil))
	require.Equal(t, fiber.StatusOK, code, body)

	code, body = testdb.Do(t, app, testdb.Request(t, "DELETE", "/api/financial-years/"+fy26ID, nil))
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "Cannot delete the current financial year", body["error"])

	code, _ = testdb.Do(t, app, testdb.Request(t, "DELETE", "/api/financial-years/"+fy25["financial_year_id"].(string), nil))
	assert.Equal(t, fiber.StatusOK, code)
}

func TestResolveEndpoint(t *testing.T) {
	db := testdb.New(t)
	app := testdb.NewApp(constants.RoleUser, nil)
	route.FinancialYearRoutes(app.Group("/api"), db)

	code, body := testdb.Do(t, app, testdb.Request(t, "GET", "/api/financial-years/resolve?fy=FY2024", nil))
	require.Equal(t, fiber.StatusOK, code)
	d := testdb.Data(t, body)
	assert.Equal(t, "2023-12-01T00:00:00Z", d["startDate"])
	assert.Equal(t, "2024-11-30T23:59:59.999Z", d["endDate"])
	assert.Equal(t, false, d["persisted"])

	code, _ = testdb.Do(t, app, testdb.Request(t, "GET", "/api/financial-years/resolve?fy=2024", nil))
	assert.Equal(t, fiber.StatusBadRequest, code)

	code, _ = testdb.Do(t, app, testdb.Request(t, "POST", "/api/financial-years", map[string]any{"financial_year_label": "FY2024"}))
	assert.Equal(t, fiber.StatusForbidden, code)
}
