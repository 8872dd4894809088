package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	fyService "reporthub_backend/internals/features/finance/financial_years/service"
	"reporthub_backend/internals/features/reports/service"
	helper "reporthub_backend/internals/helpers"
	helperAuth "reporthub_backend/internals/helpers/auth"
	"reporthub_backend/internals/helpers/cache"
	"reporthub_backend/internals/helpers/fiscal"
)

type ReportController struct {
	DB    *gorm.DB
	Cache cache.Cache
	TTL   time.Duration
	Now   func() time.Time
}

func NewReportController(db *gorm.DB, c cache.Cache, ttl time.Duration) *ReportController {
	if c == nil {
		c = cache.Noop{}
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ReportController{DB: db, Cache: c, TTL: ttl, Now: time.Now}
}

// =========================
// GET /api/reports/payment-summary?fy= &zone_id= &group_id= &church_id=
// =========================
func (ctrl *ReportController) PaymentSummary(c *fiber.Ctx) error {
	year, f, err := ctrl.resolve(c)
	if err != nil {
		return err
	}
	var out service.PaymentSummary
	return ctrl.cached(c, f.CacheKey("payment-summary", year.Label), &out, func() error {
		var err error
		out, err = service.GeneratePaymentSummary(c.Context(), ctrl.DB, year, f)
		return err
	})
}

// =========================
// GET /api/reports/dashboard?fy= &zone_id= &group_id= &church_id=
// =========================
func (ctrl *ReportController) Dashboard(c *fiber.Ctx) error {
	year, f, err := ctrl.resolve(c)
	if err != nil {
		return err
	}
	var out service.Dashboard
	return ctrl.cached(c, f.CacheKey("dashboard", year.Label), &out, func() error {
		var err error
		out, err = service.BuildDashboard(c.Context(), ctrl.DB, year, f)
		return err
	})
}

// DELETE /api/reports/cache
func (ctrl *ReportController) ClearCache(c *fiber.Ctx) error {
	if err := ctrl.Cache.DeletePrefix(c.Context(), ""); err != nil {
		log.Printf("[CACHE] clear failed: %v", err)
		return fiber.NewError(fiber.StatusServiceUnavailable, "Report cache unavailable")
	}
	return helper.JsonDeleted(c, "Report cache cleared", nil)
}

// cached serves dst from the cache when present, else fills it via build and stores it.
// Cache failures only cost a rebuild.
func (ctrl *ReportController) cached(c *fiber.Ctx, key string, dst any, build func() error) error {
	hit, err := ctrl.Cache.Get(c.Context(), key, dst)
	if err != nil {
		log.Printf("[CACHE] get %s: %v", key, err)
	}
	if hit {
		c.Set("X-Cache", "HIT")
		return helper.JsonOK(c, "ok", dst)
	}

	if err := build(); err != nil {
		return helper.MapDBError(err, "")
	}
	if err := ctrl.Cache.Set(c.Context(), key, dst, ctrl.TTL); err != nil {
		log.Printf("[CACHE] set %s: %v", key, err)
	}
	c.Set("X-Cache", "MISS")
	return helper.JsonOK(c, "ok", dst)
}

func (ctrl *ReportController) resolve(c *fiber.Ctx) (fiscal.Year, service.Filter, error) {
	scope, err := helperAuth.ResolveZoneScope(c)
	if err != nil {
		return fiscal.Year{}, service.Filter{}, err
	}
	f := service.Filter{Scope: scope}
	if scope.Restricted() {
		f.UploadedBy = helperAuth.OptionalUserID(c)
	}

	for _, p := range []struct {
		param string
		dst   **uuid.UUID
	}{
		{"zone_id", &f.ZoneID},
		{"group_id", &f.GroupID},
		{"church_id", &f.ChurchID},
	} {
		raw := strings.TrimSpace(c.Query(p.param))
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return fiscal.Year{}, f, fiber.NewError(fiber.StatusBadRequest, p.param+" must be a UUID")
		}
		*p.dst = &id
	}
	if f.ZoneID != nil && !scope.Allows(*f.ZoneID) {
		return fiscal.Year{}, f, fiber.NewError(fiber.StatusForbidden, "You can only view reports for your own zone")
	}

	label := strings.ToUpper(strings.TrimSpace(c.Query("fy")))
	res, err := fyService.Resolve(c.Context(), ctrl.DB, label, ctrl.Now())
	if err != nil {
		if errors.Is(err, fiscal.ErrInvalidLabel) {
			return fiscal.Year{}, f, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return fiscal.Year{}, f, helper.MapDBError(err, "")
	}
	return res.Year, f, nil
}
