package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"reporthub_backend/internals/features/finance/price_sync/service"
	helper "reporthub_backend/internals/helpers"
	"reporthub_backend/internals/helpers/fiscal"
)

type PriceSyncController struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewPriceSyncController(db *gorm.DB) *PriceSyncController {
	return &PriceSyncController{DB: db, Now: time.Now}
}

type syncRequest struct {
	OrderPeriod string `json:"orderPeriod" validate:"required"`
}

// POST /api/admin/sync-prices {orderPeriod}
func (ctrl *PriceSyncController) SyncPrices(c *fiber.Ctx) error {
	var body syncRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	body.OrderPeriod = strings.TrimSpace(body.OrderPeriod)
	if err := helper.Validate(body); err != nil {
		return err
	}
	res, err := service.Sync(c.Context(), ctrl.DB, body.OrderPeriod, ctrl.Now())
	if err != nil {
		return mapSyncError(err)
	}
	return c.JSON(res)
}

// GET /api/admin/sync-prices/preview?orderPeriod=
func (ctrl *PriceSyncController) PreviewPrices(c *fiber.Ctx) error {
	period := strings.TrimSpace(c.Query("orderPeriod"))
	if period == "" {
		return fiber.NewError(fiber.StatusBadRequest, "orderPeriod is required")
	}
	res, err := service.Preview(c.Context(), ctrl.DB, period, ctrl.Now())
	if err != nil {
		return mapSyncError(err)
	}
	return c.JSON(res)
}

func mapSyncError(err error) error {
	switch {
	case errors.Is(err, fiscal.ErrInvalidPeriod):
		return fiber.NewError(fiber.StatusBadRequest, "Invalid orderPeriod, expected YYYY-MM")
	case errors.Is(err, service.ErrPeriodTooOld):
		return fiber.NewError(fiber.StatusBadRequest, "Cannot sync prices for periods older than 2 years")
	}
	return helper.MapDBError(err, "")
}
