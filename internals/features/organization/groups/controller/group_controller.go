package controller

import (
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	churchModel "reporthub_backend/internals/features/organization/churches/model"
	"reporthub_backend/internals/features/organization/groups/dto"
	"reporthub_backend/internals/features/organization/groups/model"
	zoneModel "reporthub_backend/internals/features/organization/zones/model"
	helper "reporthub_backend/internals/helpers"
	helperAuth "reporthub_backend/internals/helpers/auth"
)

type GroupController struct {
	DB *gorm.DB
}

func NewGroupController(db *gorm.DB) *GroupController {
	return &GroupController{DB: db}
}

// =========================
// List groups (?zone_id=, ?q=)
// =========================
func (ctrl *GroupController) GetGroups(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 200)
	scope, err := helperAuth.ResolveZoneScope(c)
	if err != nil {
		return err
	}

	q := ctrl.DB.WithContext(c.Context()).Model(&model.GroupModel{})
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		q = q.Where("LOWER(group_name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if z := strings.TrimSpace(c.Query("zone_id")); z != "" {
		zid, err := uuid.Parse(z)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "zone_id must be a UUID")
		}
		q = q.Where("group_zone_id = ?", zid)
	}
	if scope.Restricted() {
		q = q.Where("group_zone_id = ?", *scope.ZoneID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.MapDBError(err, "")
	}
	var rows []model.GroupModel
	if err := q.Preload("Zone").Order("group_name ASC").Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return helper.MapDBError(err, "")
	}

	out := make([]dto.GroupResponse, 0, len(rows))
	for _, g := range rows {
		out = append(out, dto.ToGroupResponse(g))
	}
	return helper.JsonList(c, "ok", out, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// =========================
// Group detail (+zone, churches, _count)
// =========================
func (ctrl *GroupController) GetGroupByID(c *fiber.Ctx) error {
	group, err := ctrl.load(c, ctrl.DB.WithContext(c.Context()))
	if err != nil {
		return err
	}

	var churches []churchModel.ChurchModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("church_group_id = ?", group.GroupID).
		Order("church_name ASC").
		Find(&churches).Error; err != nil {
		return helper.MapDBError(err, "")
	}

	resp := dto.ToGroupResponse(group)
	resp.Count = &dto.GroupCounts{Churches: int64(len(churches))}
	resp.Churches = make([]dto.GroupChurchItem, 0, len(churches))
	for _, ch := range churches {
		resp.Churches = append(resp.Churches, dto.GroupChurchItem{ChurchID: ch.ChurchID.String(), ChurchName: ch.ChurchName})
	}
	return helper.JsonOK(c, "ok", resp)
}

// =========================
// Create group
// =========================
func (ctrl *GroupController) CreateGroup(c *fiber.Ctx) error {
	var body dto.CreateGroupRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	body.Normalize()

	// zone admins default to their own zone
	if body.GroupZoneID == "" {
		if zid := helperAuth.GetZoneIDFromToken(c); zid != nil {
			body.GroupZoneID = zid.String()
		}
	}
	if body.GroupZoneID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "group_zone_id is required")
	}
	if err := helper.Validate(body); err != nil {
		return err
	}
	zoneID := uuid.MustParse(body.GroupZoneID)
	if err := helperAuth.EnsureZoneAccess(c, zoneID, "Zone"); err != nil {
		return err
	}

	var group model.GroupModel
	err := ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := ensureZoneExists(tx, zoneID); err != nil {
			return err
		}
		if err := ensureGroupNameFree(c, tx, zoneID, body.GroupName, nil); err != nil {
			return err
		}
		group = model.GroupModel{GroupZoneID: zoneID, GroupName: body.GroupName}
		return tx.Create(&group).Error
	})
	if err != nil {
		return helper.MapDBError(err, "")
	}
	log.Printf("[INFO] group created: %s in zone %s", group.GroupName, zoneID)
	return helper.JsonCreated(c, "Group created", dto.ToGroupResponse(group))
}

// =========================
// Update group
// =========================
func (ctrl *GroupController) UpdateGroup(c *fiber.Ctx) error {
	var body dto.UpdateGroupRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	body.Normalize()
	if err := helper.Validate(body); err != nil {
		return err
	}

	var group model.GroupModel
	err := ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		g, err := ctrl.load(c, tx)
		if err != nil {
			return err
		}
		group = g

		zoneID := group.GroupZoneID
		if body.GroupZoneID != nil {
			zoneID = uuid.MustParse(*body.GroupZoneID)
			if zoneID != group.GroupZoneID {
				if err := helperAuth.EnsureZoneAccess(c, zoneID, "Zone"); err != nil {
					return err
				}
				if err := ensureZoneExists(tx, zoneID); err != nil {
					return err
				}
			}
		}
		name := group.GroupName
		if body.GroupName != nil {
			name = *body.GroupName
		}
		if zoneID != group.GroupZoneID || !strings.EqualFold(name, group.GroupName) {
			if err := ensureGroupNameFree(c, tx, zoneID, name, &group.GroupID); err != nil {
				return err
			}
		}

		group.GroupZoneID = zoneID
		group.GroupName = name
		group.Zone = nil
		return tx.Save(&group).Error
	})
	if err != nil {
		return helper.MapDBError(err, "")
	}
	return helper.JsonUpdated(c, "Group updated", dto.ToGroupResponse(group))
}

// =========================
// Delete group (blocked while churches reference it)
// =========================
func (ctrl *GroupController) DeleteGroup(c *fiber.Ctx) error {
	var deleted uuid.UUID
	err := ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		group, err := ctrl.load(c, tx)
		if err != nil {
			return err
		}
		var n int64
		if err := tx.Model(&churchModel.ChurchModel{}).Where("church_group_id = ?", group.GroupID).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Cannot delete group: it has %d church(es)", n))
		}
		deleted = group.GroupID
		return tx.Delete(&model.GroupModel{}, "group_id = ?", group.GroupID).Error
	})
	if err != nil {
		return helper.MapDBError(err, "")
	}
	log.Printf("[INFO] group deleted: %s", deleted)
	return helper.JsonDeleted(c, "Group deleted", fiber.Map{"group_id": deleted})
}

// load reads :id with its zone and enforces the caller's zone scope.
func (ctrl *GroupController) load(c *fiber.Ctx, db *gorm.DB) (model.GroupModel, error) {
	var group model.GroupModel
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return group, fiber.NewError(fiber.StatusBadRequest, "Invalid group id")
	}
	if err := db.Preload("Zone").First(&group, "group_id = ?", id).Error; err != nil {
		return group, helper.MapDBError(err, "Group not found")
	}
	if err := helperAuth.EnsureZoneAccess(c, group.GroupZoneID, "Group"); err != nil {
		return group, err
	}
	return group, nil
}

func ensureZoneExists(tx *gorm.DB, zoneID uuid.UUID) error {
	var n int64
	if err := tx.Model(&zoneModel.ZoneModel{}).Where("zone_id = ?", zoneID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Zone not found")
	}
	return nil
}

func ensureGroupNameFree(c *fiber.Ctx, tx *gorm.DB, zoneID uuid.UUID, name string, exclude *uuid.UUID) error {
	taken, err := helper.NameTakenCI(c.Context(), tx, "groups", "group_name", "group_deleted_at", name,
		func(q *gorm.DB) *gorm.DB {
			q = q.Where("group_zone_id = ?", zoneID)
			if exclude != nil {
				q = q.Where("group_id <> ?", *exclude)
			}
			return q
		})
	if err != nil {
		return err
	}
	if taken {
		return fiber.NewError(fiber.StatusConflict, "A group with this name already exists in the zone")
	}
	return nil
}
