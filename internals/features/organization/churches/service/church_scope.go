package service

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"reporthub_backend/internals/features/organization/churches/model"
)

// ChurchIDsInZone is a subquery of church ids whose group belongs to zoneID.
func ChurchIDsInZone(db *gorm.DB, zoneID uuid.UUID) *gorm.DB {
	return db.Model(&model.ChurchModel{}).
		Select("churches.church_id").
		Joins(`JOIN "groups" g ON g.group_id = churches.church_group_id`).
		Where("g.group_zone_id = ?", zoneID)
}

// ChurchIDsInGroup is a subquery of church ids in groupID.
func ChurchIDsInGroup(db *gorm.DB, groupID uuid.UUID) *gorm.DB {
	return db.Model(&model.ChurchModel{}).
		Select("church_id").
		Where("church_group_id = ?", groupID)
}

// ZoneOfChurch resolves church → group → zone. 404 if the church does not exist.
func ZoneOfChurch(db *gorm.DB, churchID uuid.UUID) (uuid.UUID, error) {
	var row struct {
		ZoneID uuid.UUID `gorm:"column:zone_id"`
	}
	err := db.Model(&model.ChurchModel{}).
		Select("g.group_zone_id AS zone_id").
		Joins(`JOIN "groups" g ON g.group_id = churches.church_group_id`).
		Where("churches.church_id = ?", churchID).
		Take(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Church not found")
		}
		return uuid.Nil, err
	}
	return row.ZoneID, nil
}
