package controller

import (
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	paymentModel "reporthub_backend/internals/features/finance/payments/model"
	transactionModel "reporthub_backend/internals/features/finance/transactions/model"
	"reporthub_backend/internals/features/organization/churches/dto"
	"reporthub_backend/internals/features/organization/churches/model"
	"reporthub_backend/internals/features/organization/churches/service"
	groupModel "reporthub_backend/internals/features/organization/groups/model"
	helper "reporthub_backend/internals/helpers"
	helperAuth "reporthub_backend/internals/helpers/auth"
)

type ChurchController struct {
	DB *gorm.DB
}

func NewChurchController(db *gorm.DB) *ChurchController {
	return &ChurchController{DB: db}
}

// =========================
// List churches (?group_id=, ?zone_id=, ?q=)
// =========================
func (ctrl *ChurchController) GetChurches(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 500)
	scope, err := helperAuth.ResolveZoneScope(c)
	if err != nil {
		return err
	}
	db := ctrl.DB.WithContext(c.Context())

	q := db.Model(&model.ChurchModel{})
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		q = q.Where("LOWER(church_name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if g := strings.TrimSpace(c.Query("group_id")); g != "" {
		gid, err := uuid.Parse(g)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "group_id must be a UUID")
		}
		q = q.Where("church_group_id = ?", gid)
	}
	if z := strings.TrimSpace(c.Query("zone_id")); z != "" {
		zid, err := uuid.Parse(z)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "zone_id must be a UUID")
		}
		q = q.Where("church_id IN (?)", service.ChurchIDsInZone(db, zid))
	}
	if scope.Restricted() {
		q = q.Where("church_id IN (?)", service.ChurchIDsInZone(db, *scope.ZoneID))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.MapDBError(err, "")
	}
	var rows []model.ChurchModel
	if err := q.Preload("Group.Zone").Order("church_name ASC").Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return helper.MapDBError(err, "")
	}

	out := make([]dto.ChurchResponse, 0, len(rows))
	for _, ch := range rows {
		out = append(out, dto.ToChurchResponse(ch))
	}
	return helper.JsonList(c, "ok", out, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// =========================
// Church detail (+group, zone, _count)
// =========================
func (ctrl *ChurchController) GetChurchByID(c *fiber.Ctx) error {
	db := ctrl.DB.WithContext(c.Context())
	church, err := ctrl.load(c, db)
	if err != nil {
		return err
	}
	counts, err := countChurchDependents(db, church.ChurchID)
	if err != nil {
		return helper.MapDBError(err, "")
	}
	resp := dto.ToChurchResponse(church)
	resp.Count = &counts
	return helper.JsonOK(c, "ok", resp)
}

// =========================
// Create church
// =========================
func (ctrl *ChurchController) CreateChurch(c *fiber.Ctx) error {
	var body dto.CreateChurchRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	body.Normalize()
	if err := helper.Validate(body); err != nil {
		return err
	}
	groupID := uuid.MustParse(body.ChurchGroupID)

	var church model.ChurchModel
	err := ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := ensureGroupInScope(c, tx, groupID); err != nil {
			return err
		}
		if err := ensureChurchNameFree(c, tx, body.ChurchName, nil); err != nil {
			return err
		}
		church = model.ChurchModel{
			ChurchGroupID: groupID,
			ChurchName:    body.ChurchName,
			ChurchAddress: body.ChurchAddress,
		}
		return tx.Create(&church).Error
	})
	if err != nil {
		return helper.MapDBError(err, "")
	}
	log.Printf("[INFO] church created: %s (%s)", church.ChurchName, church.ChurchID)
	return helper.JsonCreated(c, "Church created", dto.ToChurchResponse(church))
}

// =========================
// Update church
// =========================
func (ctrl *ChurchController) UpdateChurch(c *fiber.Ctx) error {
	var body dto.UpdateChurchRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	body.Normalize()
	if err := helper.Validate(body); err != nil {
		return err
	}

	var church model.ChurchModel
	err := ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		ch, err := ctrl.load(c, tx)
		if err != nil {
			return err
		}
		church = ch

		if body.ChurchGroupID != nil {
			gid := uuid.MustParse(*body.ChurchGroupID)
			if gid != church.ChurchGroupID {
				if err := ensureGroupInScope(c, tx, gid); err != nil {
					return err
				}
				church.ChurchGroupID = gid
			}
		}
		if body.ChurchName != nil && !strings.EqualFold(*body.ChurchName, church.ChurchName) {
			if err := ensureChurchNameFree(c, tx, *body.ChurchName, &church.ChurchID); err != nil {
				return err
			}
		}
		if body.ChurchName != nil {
			church.ChurchName = *body.ChurchName
		}
		if body.ChurchAddress != nil {
			church.ChurchAddress = body.ChurchAddress
		}
		church.Group = nil
		return tx.Save(&church).Error
	})
	if err != nil {
		return helper.MapDBError(err, "")
	}
	return helper.JsonUpdated(c, "Church updated", dto.ToChurchResponse(church))
}

// =========================
// Delete church (blocked while transactions / payments reference it)
// =========================
func (ctrl *ChurchController) DeleteChurch(c *fiber.Ctx) error {
	var deleted uuid.UUID
	err := ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		church, err := ctrl.load(c, tx)
		if err != nil {
			return err
		}
		counts, err := countChurchDependents(tx, church.ChurchID)
		if err != nil {
			return err
		}
		if counts.Transactions > 0 {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Cannot delete church: it has %d transaction(s)", counts.Transactions))
		}
		if counts.Payments > 0 {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Cannot delete church: it has %d payment(s)", counts.Payments))
		}
		deleted = church.ChurchID
		return tx.Delete(&model.ChurchModel{}, "church_id = ?", church.ChurchID).Error
	})
	if err != nil {
		return helper.MapDBError(err, "")
	}
	log.Printf("[INFO] church deleted: %s", deleted)
	return helper.JsonDeleted(c, "Church deleted", fiber.Map{"church_id": deleted})
}

func (ctrl *ChurchController) load(c *fiber.Ctx, db *gorm.DB) (model.ChurchModel, error) {
	var church model.ChurchModel
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return church, fiber.NewError(fiber.StatusBadRequest, "Invalid church id")
	}
	if err := db.Preload("Group.Zone").First(&church, "church_id = ?", id).Error; err != nil {
		return church, helper.MapDBError(err, "Church not found")
	}
	if church.Group != nil {
		if err := helperAuth.EnsureZoneAccess(c, church.Group.GroupZoneID, "Church"); err != nil {
			return church, err
		}
	}
	return church, nil
}

func ensureGroupInScope(c *fiber.Ctx, tx *gorm.DB, groupID uuid.UUID) error {
	var group groupModel.GroupModel
	if err := tx.First(&group, "group_id = ?", groupID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusBadRequest, "Group not found")
		}
		return err
	}
	return helperAuth.EnsureZoneAccess(c, group.GroupZoneID, "Group")
}

func ensureChurchNameFree(c *fiber.Ctx, tx *gorm.DB, name string, exclude *uuid.UUID) error {
	var scope func(*gorm.DB) *gorm.DB
	if exclude != nil {
		scope = func(q *gorm.DB) *gorm.DB { return q.Where("church_id <> ?", *exclude) }
	}
	taken, err := helper.NameTakenCI(c.Context(), tx, "churches", "church_name", "church_deleted_at", name, scope)
	if err != nil {
		return err
	}
	if taken {
		return fiber.NewError(fiber.StatusConflict, "A church with this name already exists")
	}
	return nil
}

func countChurchDependents(db *gorm.DB, churchID uuid.UUID) (dto.ChurchCounts, error) {
	var out dto.ChurchCounts
	if err := db.Model(&transactionModel.TransactionModel{}).Where("transaction_church_id = ?", churchID).Count(&out.Transactions).Error; err != nil {
		return out, err
	}
	if err := db.Model(&paymentModel.PaymentModel{}).Where("payment_church_id = ?", churchID).Count(&out.Payments).Error; err != nil {
		return out, err
	}
	return out, nil
}
