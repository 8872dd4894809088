package controller

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	categoryModel "reporthub_backend/internals/features/finance/campaign_categories/model"
	"reporthub_backend/internals/features/finance/payments/dto"
	"reporthub_backend/internals/features/finance/payments/model"
	churchService "reporthub_backend/internals/features/organization/churches/service"
	helper "reporthub_backend/internals/helpers"
	helperAuth "reporthub_backend/internals/helpers/auth"
	"reporthub_backend/internals/helpers/dbtime"
	"reporthub_backend/internals/helpers/fiscal"
)

type PaymentController struct {
	DB *gorm.DB
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{DB: db}
}

// =========================
// List
// ?church_id= ?group_id= ?zone_id= ?campaign_category_id= ?purpose= ?method= ?fy= ?date_from= ?date_to= ?q=
// =========================
func (ctrl *PaymentController) GetPayments(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 200)
	scope, err := helperAuth.ResolveZoneScope(c)
	if err != nil {
		return err
	}
	db := ctrl.DB.WithContext(c.Context())
	q := db.Model(&model.PaymentModel{})

	for _, f := range []struct{ param, column string }{
		{"church_id", "payment_church_id"},
		{"campaign_category_id", "payment_campaign_category_id"},
		{"upload_id", "payment_upload_id"},
	} {
		if raw := strings.TrimSpace(c.Query(f.param)); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, f.param+" must be a UUID")
			}
			q = q.Where(f.column+" = ?", id)
		}
	}
	if raw := strings.TrimSpace(c.Query("group_id")); raw != "" {
		gid, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "group_id must be a UUID")
		}
		q = q.Where("payment_church_id IN (?)", churchService.ChurchIDsInGroup(db, gid))
	}
	if raw := strings.TrimSpace(c.Query("zone_id")); raw != "" {
		zid, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "zone_id must be a UUID")
		}
		q = q.Where("payment_church_id IN (?)", churchService.ChurchIDsInZone(db, zid))
	}
	if scope.Restricted() {
		q = q.Where("payment_church_id IN (?)", churchService.ChurchIDsInZone(db, *scope.ZoneID))
	}
	if s := strings.ToUpper(strings.TrimSpace(c.Query("purpose"))); s != "" {
		if s != model.PaymentPurposePrinting && s != model.PaymentPurposeSponsorship {
			return fiber.NewError(fiber.StatusBadRequest, "purpose must be PRINTING or SPONSORSHIP")
		}
		q = q.Where("payment_purpose = ?", s)
	}
	if s := strings.ToUpper(strings.TrimSpace(c.Query("method"))); s != "" {
		q = q.Where("payment_method = ?", s)
	}
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		q = q.Where("LOWER(payment_reference) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if label := strings.ToUpper(strings.TrimSpace(c.Query("fy"))); label != "" {
		y, err := fiscal.BoundsForLabel(label)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		q = q.Where("payment_date BETWEEN ? AND ?", y.Start, y.End)
	}
	from, err := dbtime.ParseDateQuery(c, "date_from")
	if err != nil {
		return err
	}
	if from != nil {
		q = q.Where("payment_date >= ?", *from)
	}
	to, err := dbtime.ParseDateQuery(c, "date_to")
	if err != nil {
		return err
	}
	if to != nil {
		q = q.Where("payment_date <= ?", dbtime.EndOfDay(*to))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.MapDBError(err, "")
	}
	var rows []model.PaymentModel
	if err := q.Preload("Church").Preload("CampaignCategory").
		Order("payment_date DESC, payment_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return helper.MapDBError(err, "")
	}
	out := make([]dto.PaymentResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, dto.ToPaymentResponse(m))
	}
	return helper.JsonList(c, "ok", out, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

func (ctrl *PaymentController) GetPaymentByID(c *fiber.Ctx) error {
	m, err := ctrl.load(c, ctrl.DB.WithContext(c.Context()))
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.ToPaymentResponse(m))
}

// =========================
// Create
// =========================
func (ctrl *PaymentController) CreatePayment(c *fiber.Ctx) error {
	var body dto.CreatePaymentRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	body.Normalize()
	if err := helper.Validate(body); err != nil {
		return err
	}
	if !body.Amount.IsPositive() {
		return fiber.NewError(fiber.StatusBadRequest, "amount must be greater than 0")
	}
	date, err := dbtime.ParseDay(body.Date)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "payment_date must be YYYY-MM-DD")
	}
	churchID := uuid.MustParse(body.ChurchID)

	m := model.PaymentModel{
		PaymentChurchID:  churchID,
		PaymentAmount:    body.Amount,
		PaymentDate:      date,
		PaymentMethod:    body.Method,
		PaymentPurpose:   body.Purpose,
		PaymentReference: body.Reference,
		PaymentNotes:     body.Notes,
	}
	err = ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := ensureChurchInScope(c, tx, churchID); err != nil {
			return err
		}
		if body.CampaignCategoryID != nil {
			cid := uuid.MustParse(*body.CampaignCategoryID)
			if err := ensureCategoryExists(tx, cid); err != nil {
				return err
			}
			m.PaymentCampaignCategoryID = &cid
		}
		return tx.Omit("Church", "CampaignCategory").Create(&m).Error
	})
	if err != nil {
		return helper.MapDBError(err, "")
	}
	out, err := ctrl.reload(c, m.PaymentID)
	if err != nil {
		return err
	}
	log.Printf("[INFO] payment recorded: %s church=%s amount=%s", m.PaymentID, churchID, m.PaymentAmount)
	return helper.JsonCreated(c, "Payment recorded", dto.ToPaymentResponse(out))
}

// =========================
// Update
// =========================
func (ctrl *PaymentController) UpdatePayment(c *fiber.Ctx) error {
	var body dto.UpdatePaymentRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	body.Normalize()
	if err := helper.Validate(body); err != nil {
		return err
	}

	var id uuid.UUID
	err := ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		m, err := ctrl.load(c, tx)
		if err != nil {
			return err
		}
		id = m.PaymentID
		updates := map[string]any{}

		if body.ChurchID != nil {
			cid := uuid.MustParse(*body.ChurchID)
			if cid != m.PaymentChurchID {
				if err := ensureChurchInScope(c, tx, cid); err != nil {
					return err
				}
				updates["payment_church_id"] = cid
			}
		}
		if body.Amount != nil {
			if !body.Amount.IsPositive() {
				return fiber.NewError(fiber.StatusBadRequest, "amount must be greater than 0")
			}
			updates["payment_amount"] = *body.Amount
		}
		if body.Date != nil {
			d, err := dbtime.ParseDay(*body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "payment_date must be YYYY-MM-DD")
			}
			updates["payment_date"] = d
		}
		if body.Method != nil {
			updates["payment_method"] = *body.Method
		}
		if body.Purpose != nil {
			updates["payment_purpose"] = *body.Purpose
		}
		if body.CampaignCategoryID != nil {
			cid := uuid.MustParse(*body.CampaignCategoryID)
			if err := ensureCategoryExists(tx, cid); err != nil {
				return err
			}
			updates["payment_campaign_category_id"] = cid
		}
		if body.Reference != nil {
			updates["payment_reference"] = strings.TrimSpace(*body.Reference)
		}
		if body.Notes != nil {
			updates["payment_notes"] = strings.TrimSpace(*body.Notes)
		}
		if len(updates) == 0 {
			return nil
		}
		updates["payment_updated_at"] = time.Now()
		return tx.Model(&model.PaymentModel{}).Where("payment_id = ?", m.PaymentID).Updates(updates).Error
	})
	if err != nil {
		return helper.MapDBError(err, "")
	}
	out, err := ctrl.reload(c, id)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Payment updated", dto.ToPaymentResponse(out))
}

// =========================
// Delete
// =========================
func (ctrl *PaymentController) DeletePayment(c *fiber.Ctx) error {
	var deleted uuid.UUID
	err := ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		m, err := ctrl.load(c, tx)
		if err != nil {
			return err
		}
		deleted = m.PaymentID
		return tx.Delete(&model.PaymentModel{}, "payment_id = ?", m.PaymentID).Error
	})
	if err != nil {
		return helper.MapDBError(err, "")
	}
	log.Printf("[INFO] payment deleted: %s", deleted)
	return helper.JsonDeleted(c, "Payment deleted", fiber.Map{"payment_id": deleted})
}

func (ctrl *PaymentController) load(c *fiber.Ctx, db *gorm.DB) (model.PaymentModel, error) {
	var m model.PaymentModel
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return m, fiber.NewError(fiber.StatusBadRequest, "Invalid payment id")
	}
	if err := db.Preload("Church").Preload("CampaignCategory").
		First(&m, "payment_id = ?", id).Error; err != nil {
		return m, helper.MapDBError(err, "Payment not found")
	}
	zoneID, err := churchService.ZoneOfChurch(db, m.PaymentChurchID)
	if err != nil {
		return m, err
	}
	if err := helperAuth.EnsureZoneAccess(c, zoneID, "Payment"); err != nil {
		return m, err
	}
	return m, nil
}

func (ctrl *PaymentController) reload(c *fiber.Ctx, id uuid.UUID) (model.PaymentModel, error) {
	var m model.PaymentModel
	if err := ctrl.DB.WithContext(c.Context()).
		Preload("Church").Preload("CampaignCategory").
		First(&m, "payment_id = ?", id).Error; err != nil {
		return m, helper.MapDBError(err, "Payment not found")
	}
	return m, nil
}

func ensureChurchInScope(c *fiber.Ctx, tx *gorm.DB, churchID uuid.UUID) error {
	zoneID, err := churchService.ZoneOfChurch(tx, churchID)
	if err != nil {
		return err
	}
	return helperAuth.EnsureZoneAccess(c, zoneID, "Church")
}

func ensureCategoryExists(tx *gorm.DB, id uuid.UUID) error {
	var n int64
	if err := tx.Model(&categoryModel.CampaignCategoryModel{}).Where("campaign_category_id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Campaign category not found")
	}
	return nil
}
