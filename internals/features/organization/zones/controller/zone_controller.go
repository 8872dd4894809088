package controller

import (
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	groupModel "reporthub_backend/internals/features/organization/groups/model"
	"reporthub_backend/internals/features/organization/zones/dto"
	"reporthub_backend/internals/features/organization/zones/model"
	userModel "reporthub_backend/internals/features/users/user/model"
	helper "reporthub_backend/internals/helpers"
	helperAuth "reporthub_backend/internals/helpers/auth"
)

type ZoneController struct {
	DB *gorm.DB
}

func NewZoneController(db *gorm.DB) *ZoneController {
	return &ZoneController{DB: db}
}

// =========================
// List zones
// =========================
func (ctrl *ZoneController) GetZones(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	scope, err := helperAuth.ResolveZoneScope(c)
	if err != nil {
		return err
	}

	q := ctrl.DB.WithContext(c.Context()).Model(&model.ZoneModel{})
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		q = q.Where("LOWER(zone_name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if scope.Restricted() {
		q = q.Where("zone_id = ?", *scope.ZoneID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.MapDBError(err, "")
	}

	var rows []model.ZoneModel
	if err := q.Order("zone_name ASC").Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return helper.MapDBError(err, "")
	}

	out := make([]dto.ZoneResponse, 0, len(rows))
	for _, z := range rows {
		out = append(out, dto.ToZoneResponse(z))
	}
	return helper.JsonList(c, "ok", out, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// =========================
// Zone detail (+groups, _count)
// =========================
func (ctrl *ZoneController) GetZoneByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid zone id")
	}
	if err := helperAuth.EnsureZoneAccess(c, id, "Zone"); err != nil {
		return err
	}

	var zone model.ZoneModel
	if err := ctrl.DB.WithContext(c.Context()).First(&zone, "zone_id = ?", id).Error; err != nil {
		return helper.MapDBError(err, "Zone not found")
	}

	var groups []groupModel.GroupModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("group_zone_id = ?", id).
		Order("group_name ASC").
		Find(&groups).Error; err != nil {
		return helper.MapDBError(err, "")
	}

	counts, err := countZoneDependents(ctrl.DB.WithContext(c.Context()), id)
	if err != nil {
		return helper.MapDBError(err, "")
	}

	resp := dto.ToZoneResponse(zone)
	resp.Count = &counts
	resp.Groups = make([]dto.ZoneGroupItem, 0, len(groups))
	for _, g := range groups {
		resp.Groups = append(resp.Groups, dto.ZoneGroupItem{GroupID: g.GroupID.String(), GroupName: g.GroupName})
	}
	return helper.JsonOK(c, "ok", resp)
}

// =========================
// Create zone
// =========================
func (ctrl *ZoneController) CreateZone(c *fiber.Ctx) error {
	var body dto.CreateZoneRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	body.Normalize()
	if err := helper.Validate(body); err != nil {
		return err
	}

	taken, err := helper.NameTakenCI(c.Context(), ctrl.DB, "zones", "zone_name", "zone_deleted_at", body.ZoneName, nil)
	if err != nil {
		return helper.MapDBError(err, "")
	}
	if taken {
		return fiber.NewError(fiber.StatusConflict, "A zone with this name already exists")
	}

	zone := body.ToModel()
	if err := ctrl.DB.WithContext(c.Context()).Create(&zone).Error; err != nil {
		return helper.MapDBError(err, "")
	}
	log.Printf("[INFO] zone created: %s (%s)", zone.ZoneName, zone.ZoneID)
	return helper.JsonCreated(c, "Zone created", dto.ToZoneResponse(zone))
}

// =========================
// Update zone
// =========================
func (ctrl *ZoneController) UpdateZone(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid zone id")
	}

	var body dto.UpdateZoneRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	body.Normalize()
	if err := helper.Validate(body); err != nil {
		return err
	}

	var zone model.ZoneModel
	if err := ctrl.DB.WithContext(c.Context()).First(&zone, "zone_id = ?", id).Error; err != nil {
		return helper.MapDBError(err, "Zone not found")
	}

	if body.ZoneName != nil && !strings.EqualFold(*body.ZoneName, zone.ZoneName) {
		taken, err := helper.NameTakenCI(c.Context(), ctrl.DB, "zones", "zone_name", "zone_deleted_at", *body.ZoneName,
			func(q *gorm.DB) *gorm.DB { return q.Where("zone_id <> ?", id) })
		if err != nil {
			return helper.MapDBError(err, "")
		}
		if taken {
			return fiber.NewError(fiber.StatusConflict, "A zone with this name already exists")
		}
	}

	body.Apply(&zone)
	if err := ctrl.DB.WithContext(c.Context()).Save(&zone).Error; err != nil {
		return helper.MapDBError(err, "")
	}
	return helper.JsonUpdated(c, "Zone updated", dto.ToZoneResponse(zone))
}

// =========================
// Delete zone (blocked while groups or users reference it)
// =========================
func (ctrl *ZoneController) DeleteZone(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid zone id")
	}

	err = ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var zone model.ZoneModel
		if err := tx.First(&zone, "zone_id = ?", id).Error; err != nil {
			return helper.MapDBError(err, "Zone not found")
		}
		counts, err := countZoneDependents(tx, id)
		if err != nil {
			return helper.MapDBError(err, "")
		}
		if counts.Groups > 0 {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Cannot delete zone: it has %d group(s)", counts.Groups))
		}
		if counts.Users > 0 {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Cannot delete zone: it has %d user(s)", counts.Users))
		}
		return tx.Delete(&zone).Error
	})
	if err != nil {
		return helper.MapDBError(err, "")
	}
	log.Printf("[INFO] zone deleted: %s", id)
	return helper.JsonDeleted(c, "Zone deleted", fiber.Map{"zone_id": id})
}

func countZoneDependents(db *gorm.DB, zoneID uuid.UUID) (dto.ZoneCounts, error) {
	var out dto.ZoneCounts
	if err := db.Model(&groupModel.GroupModel{}).Where("group_zone_id = ?", zoneID).Count(&out.Groups).Error; err != nil {
		return out, err
	}
	if err := db.Model(&userModel.UserModel{}).Where("user_zone_id = ?", zoneID).Count(&out.Users).Error; err != nil {
		return out, err
	}
	return out, nil
}
