package controller_test

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reporthub_backend/internals/constants"
	"reporthub_backend/internals/databases/testdb"
	"reporthub_backend/internals/features/finance/campaign_categories/route"
	paymentModel "reporthub_backend/internals/features/finance/payments/model"
)

func TestCampaignCategoryCRUD(t *testing.T) {
	db := testdb.New(t)
	app := testdb.NewApp(constants.RoleSuperAdmin, nil)
	route.CampaignCategoryRoutes(app.Group("/api"), db)

	code, body := testdb.Do(t, app, testdb.Request(t, "POST", "/api/campaign-categories", map[string]any{
		"campaign_category_name": "  Healing   School ",
	}))
	require.Equal(t, fiber.StatusCreated, code, body)
	d := testdb.Data(t, body)
	assert.Equal(t, "Healing School", d["campaign_category_name"])
	assert.Equal(t, false, d["campaign_category_is_auto_created"])
	id := d["campaign_category_id"].(string)

	code, _ = testdb.Do(t, app, testdb.Request(t, "POST", "/api/campaign-categories", map[string]any{
		"campaign_category_name": "healing school",
	}))
	assert.Equal(t, fiber.StatusConflict, code)

	code, body = testdb.Do(t, app, testdb.Request(t, "PUT", "/api/campaign-categories/"+id, map[string]any{
		"campaign_category_name": "Healing School 2025",
	}))
	require.Equal(t, fiber.StatusOK, code, body)
	assert.Equal(t, "Healing School 2025", testdb.Data(t, body)["campaign_category_name"])

	catID := uuid.MustParse(id)
	p := paymentModel.PaymentModel{
		PaymentChurchID:           uuid.New(),
		PaymentAmount:             decimal.NewFromInt(100),
		PaymentDate:               time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		PaymentMethod:             paymentModel.PaymentMethodCash,
		PaymentPurpose:            paymentModel.PaymentPurposeSponsorship,
		PaymentCampaignCategoryID: &catID,
	}
	require.NoError(t, db.Omit("Church", "CampaignCategory").Create(&p).Error)

	code, body = testdb.Do(t, app, testdb.Request(t, "DELETE", "/api/campaign-categories/"+id, nil))
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "Cannot delete campaign category: it has 1 payment(s)", body["error"])

	require.NoError(t, db.Delete(&paymentModel.PaymentModel{}, "payment_id = ?", p.PaymentID).Error)
	code, _ = testdb.Do(t, app, testdb.Request(t, "DELETE", "/api/campaign-categories/"+id, nil))
	assert.Equal(t, fiber.StatusOK, code)

	zoneAdmin := testdb.NewApp(constants.RoleZoneAdmin, nil)
	route.CampaignCategoryRoutes(zoneAdmin.Group("/api"), db)
	code, _ = testdb.Do(t, zoneAdmin, testdb.Request(t, "POST", "/api/campaign-categories", map[string]any{
		"campaign_category_name": "Reachout",
	}))
	assert.Equal(t, fiber.StatusForbidden, code)
}
