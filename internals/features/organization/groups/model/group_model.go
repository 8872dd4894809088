package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	zoneModel "reporthub_backend/internals/features/organization/zones/model"
)

type GroupModel struct {
	GroupID     uuid.UUID `gorm:"column:group_id;type:uuid;primaryKey" json:"group_id"`
	GroupZoneID uuid.UUID `gorm:"column:group_zone_id;type:uuid;not null;index" json:"group_zone_id"`
	GroupName   string    `gorm:"column:group_name;type:varchar(120);not null" json:"group_name"`

	GroupCreatedAt time.Time      `gorm:"column:group_created_at;autoCreateTime" json:"group_created_at"`
	GroupUpdatedAt time.Time      `gorm:"column:group_updated_at;autoUpdateTime" json:"group_updated_at"`
	GroupDeletedAt gorm.DeletedAt `gorm:"column:group_deleted_at;index" json:"-"`

	Zone *zoneModel.ZoneModel `gorm:"foreignKey:GroupZoneID;references:ZoneID" json:"zone,omitempty"`
}

func (GroupModel) TableName() string { return "groups" }

func (m *GroupModel) BeforeCreate(tx *gorm.DB) error {
	if m.GroupID == uuid.Nil {
		m.GroupID = uuid.New()
	}
	return nil
}
