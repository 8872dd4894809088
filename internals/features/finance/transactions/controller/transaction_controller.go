package controller

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	departmentModel "reporthub_backend/internals/features/catalog/departments/model"
	"reporthub_backend/internals/features/finance/transactions/dto"
	"reporthub_backend/internals/features/finance/transactions/model"
	"reporthub_backend/internals/features/finance/transactions/service"
	churchService "reporthub_backend/internals/features/organization/churches/service"
	helper "reporthub_backend/internals/helpers"
	helperAuth "reporthub_backend/internals/helpers/auth"
	"reporthub_backend/internals/helpers/dbtime"
	"reporthub_backend/internals/helpers/fiscal"
)

type TransactionController struct {
	DB *gorm.DB
}

func NewTransactionController(db *gorm.DB) *TransactionController {
	return &TransactionController{DB: db}
}

// =========================
// List
// ?church_id= ?group_id= ?zone_id= ?department_id= ?source= ?fy= ?order_period= ?date_from= ?date_to= ?q=
// =========================
func (ctrl *TransactionController) GetTransactions(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 200)
	scope, err := helperAuth.ResolveZoneScope(c)
	if err != nil {
		return err
	}
	db := ctrl.DB.WithContext(c.Context())
	q := db.Model(&model.TransactionModel{})

	for _, f := range []struct{ param, column string }{
		{"church_id", "transaction_church_id"},
		{"department_id", "transaction_department_id"},
		{"upload_id", "transaction_upload_id"},
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
		q = q.Where("transaction_church_id IN (?)", churchService.ChurchIDsInGroup(db, gid))
	}
	if raw := strings.TrimSpace(c.Query("zone_id")); raw != "" {
		zid, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "zone_id must be a UUID")
		}
		q = q.Where("transaction_church_id IN (?)", churchService.ChurchIDsInZone(db, zid))
	}
	if scope.Restricted() {
		q = q.Where("transaction_church_id IN (?)", churchService.ChurchIDsInZone(db, *scope.ZoneID))
	}
	if s := strings.ToUpper(strings.TrimSpace(c.Query("source"))); s != "" {
		q = q.Where("transaction_source = ?", s)
	}
	if s := strings.TrimSpace(c.Query("order_period")); s != "" {
		if !fiscal.IsValidPeriod(s) {
			return fiber.NewError(fiber.StatusBadRequest, fiscal.ErrInvalidPeriod.Error())
		}
		q = q.Where("transaction_order_period = ?", s)
	}
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		q = q.Where("LOWER(transaction_reference) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if label := strings.ToUpper(strings.TrimSpace(c.Query("fy"))); label != "" {
		y, err := fiscal.BoundsForLabel(label)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		q = q.Where("transaction_date BETWEEN ? AND ?", y.Start, y.End)
	}
	from, err := dbtime.ParseDateQuery(c, "date_from")
	if err != nil {
		return err
	}
	if from != nil {
		q = q.Where("transaction_date >= ?", *from)
	}
	to, err := dbtime.ParseDateQuery(c, "date_to")
	if err != nil {
		return err
	}
	if to != nil {
		q = q.Where("transaction_date <= ?", dbtime.EndOfDay(*to))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.MapDBError(err, "")
	}
	var rows []model.TransactionModel
	if err := q.Preload("Church").Preload("LineItems.ProductType").
		Order("transaction_date DESC, transaction_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return helper.MapDBError(err, "")
	}

	out := make([]dto.TransactionResponse, 0, len(rows))
	for _, t := range rows {
		out = append(out, dto.ToTransactionResponse(t))
	}
	return helper.JsonList(c, "ok", out, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

func (ctrl *TransactionController) GetTransactionByID(c *fiber.Ctx) error {
	t, err := ctrl.load(c, ctrl.DB.WithContext(c.Context()))
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.ToTransactionResponse(t))
}

// =========================
// Create (header + line items, one DB transaction)
// =========================
func (ctrl *TransactionController) CreateTransaction(c *fiber.Ctx) error {
	var body dto.CreateTransactionRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	body.Normalize()
	if err := helper.Validate(body); err != nil {
		return err
	}
	date, err := dbtime.ParseDay(body.Date)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "transaction_date must be YYYY-MM-DD")
	}
	if body.OrderPeriod != nil && !fiscal.IsValidPeriod(*body.OrderPeriod) {
		return fiber.NewError(fiber.StatusBadRequest, fiscal.ErrInvalidPeriod.Error())
	}
	if body.DeliveryCost != nil && body.DeliveryCost.IsNegative() {
		return fiber.NewError(fiber.StatusBadRequest, "delivery_cost cannot be negative")
	}
	churchID := uuid.MustParse(body.ChurchID)

	t := model.TransactionModel{
		TransactionChurchID:    churchID,
		TransactionDate:        date,
		TransactionOrderPeriod: body.OrderPeriod,
		TransactionReference:   body.Reference,
		TransactionNotes:       body.Notes,
		TransactionSource:      model.TransactionSourceManual,
	}
	if body.DeliveryCost != nil {
		t.TransactionDeliveryCost = *body.DeliveryCost
	}

	err = ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := ensureChurchInScope(c, tx, churchID); err != nil {
			return err
		}
		if body.DepartmentID != nil {
			id := uuid.MustParse(*body.DepartmentID)
			if err := ensureDepartmentExists(tx, id); err != nil {
				return err
			}
			t.TransactionDepartmentID = &id
		}
		items, err := service.BuildLineItems(tx, toSpecs(body.LineItems))
		if err != nil {
			return err
		}
		return service.CreateWithLineItems(tx, &t, items)
	})
	if err != nil {
		return helper.MapDBError(err, "")
	}

	created, err := ctrl.reload(c, t.TransactionID)
	if err != nil {
		return err
	}
	log.Printf("[INFO] transaction created: %s church=%s items=%d", t.TransactionID, churchID, len(t.LineItems))
	return helper.JsonCreated(c, "Transaction created", dto.ToTransactionResponse(created))
}

// =========================
// Update (header fields, optional full line item replacement)
// =========================
func (ctrl *TransactionController) UpdateTransaction(c *fiber.Ctx) error {
	var body dto.UpdateTransactionRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	body.Normalize()
	if err := helper.Validate(body); err != nil {
		return err
	}

	var id uuid.UUID
	err := ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		t, err := ctrl.load(c, tx)
		if err != nil {
			return err
		}
		id = t.TransactionID
		updates := map[string]any{}

		if body.ChurchID != nil {
			cid := uuid.MustParse(*body.ChurchID)
			if cid != t.TransactionChurchID {
				if err := ensureChurchInScope(c, tx, cid); err != nil {
					return err
				}
				updates["transaction_church_id"] = cid
			}
		}
		if body.DepartmentID != nil {
			did := uuid.MustParse(*body.DepartmentID)
			if err := ensureDepartmentExists(tx, did); err != nil {
				return err
			}
			updates["transaction_department_id"] = did
		}
		if body.Date != nil {
			d, err := dbtime.ParseDay(*body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "transaction_date must be YYYY-MM-DD")
			}
			updates["transaction_date"] = d
		}
		if body.OrderPeriod != nil {
			s := strings.TrimSpace(*body.OrderPeriod)
			switch {
			case s == "":
				updates["transaction_order_period"] = nil
			case !fiscal.IsValidPeriod(s):
				return fiber.NewError(fiber.StatusBadRequest, fiscal.ErrInvalidPeriod.Error())
			default:
				updates["transaction_order_period"] = s
			}
		}
		if body.Reference != nil {
			updates["transaction_reference"] = *body.Reference
		}
		if body.Notes != nil {
			updates["transaction_notes"] = *body.Notes
		}
		if body.DeliveryCost != nil {
			if body.DeliveryCost.IsNegative() {
				return fiber.NewError(fiber.StatusBadRequest, "delivery_cost cannot be negative")
			}
			updates["transaction_delivery_cost"] = *body.DeliveryCost
		}

		if len(updates) > 0 {
			updates["transaction_updated_at"] = time.Now()
			if err := tx.Model(&model.TransactionModel{}).
				Where("transaction_id = ?", t.TransactionID).
				Updates(updates).Error; err != nil {
				return err
			}
		}
		if body.LineItems != nil {
			items, err := service.BuildLineItems(tx, toSpecs(*body.LineItems))
			if err != nil {
				return err
			}
			if err := service.ReplaceLineItems(tx, t.TransactionID, items); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return helper.MapDBError(err, "")
	}

	updated, err := ctrl.reload(c, id)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Transaction updated", dto.ToTransactionResponse(updated))
}

// =========================
// Delete (line items go with it)
// =========================
func (ctrl *TransactionController) DeleteTransaction(c *fiber.Ctx) error {
	var deleted uuid.UUID
	err := ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		t, err := ctrl.load(c, tx)
		if err != nil {
			return err
		}
		deleted = t.TransactionID
		if err := tx.Where("line_item_transaction_id = ?", t.TransactionID).
			Delete(&model.TransactionLineItemModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.TransactionModel{}, "transaction_id = ?", t.TransactionID).Error
	})
	if err != nil {
		return helper.MapDBError(err, "")
	}
	log.Printf("[INFO] transaction deleted: %s", deleted)
	return helper.JsonDeleted(c, "Transaction deleted", fiber.Map{"transaction_id": deleted})
}

/* =========================
   helpers
========================= */

func (ctrl *TransactionController) load(c *fiber.Ctx, db *gorm.DB) (model.TransactionModel, error) {
	var t model.TransactionModel
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return t, fiber.NewError(fiber.StatusBadRequest, "Invalid transaction id")
	}
	if err := db.Preload("Church").Preload("LineItems.ProductType").
		First(&t, "transaction_id = ?", id).Error; err != nil {
		return t, helper.MapDBError(err, "Transaction not found")
	}
	zoneID, err := churchService.ZoneOfChurch(db, t.TransactionChurchID)
	if err != nil {
		return t, err
	}
	if err := helperAuth.EnsureZoneAccess(c, zoneID, "Transaction"); err != nil {
		return t, err
	}
	return t, nil
}

func (ctrl *TransactionController) reload(c *fiber.Ctx, id uuid.UUID) (model.TransactionModel, error) {
	var t model.TransactionModel
	if err := ctrl.DB.WithContext(c.Context()).
		Preload("Church").Preload("LineItems.ProductType").
		First(&t, "transaction_id = ?", id).Error; err != nil {
		return t, helper.MapDBError(err, "Transaction not found")
	}
	return t, nil
}

func ensureChurchInScope(c *fiber.Ctx, tx *gorm.DB, churchID uuid.UUID) error {
	zoneID, err := churchService.ZoneOfChurch(tx, churchID)
	if err != nil {
		return err
	}
	return helperAuth.EnsureZoneAccess(c, zoneID, "Church")
}

func ensureDepartmentExists(tx *gorm.DB, id uuid.UUID) error {
	var n int64
	if err := tx.Model(&departmentModel.DepartmentModel{}).Where("department_id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Department not found")
	}
	return nil
}

func toSpecs(in []dto.LineItemInput) []service.LineSpec {
	out := make([]service.LineSpec, 0, len(in))
	for _, li := range in {
		out = append(out, service.LineSpec{
			ProductTypeID: uuid.MustParse(li.ProductTypeID),
			Quantity:      li.Quantity,
			UnitPrice:     li.UnitPrice,
		})
	}
	return out
}
