package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	groupModel "reporthub_backend/internals/features/organization/groups/model"
)

type ChurchModel struct {
	ChurchID      uuid.UUID `gorm:"column:church_id;type:uuid;primaryKey" json:"church_id"`
	ChurchGroupID uuid.UUID `gorm:"column:church_group_id;type:uuid;not null;index" json:"church_group_id"`
	ChurchName    string    `gorm:"column:church_name;type:varchar(160);not null" json:"church_name"`
	ChurchAddress *string   `gorm:"column:church_address" json:"church_address,omitempty"`

	ChurchCreatedAt time.Time      `gorm:"column:church_created_at;autoCreateTime" json:"church_created_at"`
	ChurchUpdatedAt time.Time      `gorm:"column:church_updated_at;autoUpdateTime" json:"church_updated_at"`
	ChurchDeletedAt gorm.DeletedAt `gorm:"column:church_deleted_at;index" json:"-"`

	Group *groupModel.GroupModel `gorm:"foreignKey:ChurchGroupID;references:GroupID" json:"group,omitempty"`
}

func (ChurchModel) TableName() string { return "churches" }

func (m *ChurchModel) BeforeCreate(tx *gorm.DB) error {
	if m.ChurchID == uuid.Nil {
		m.ChurchID = uuid.New()
	}
	return nil
}
