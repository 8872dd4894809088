package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CampaignCategoryModel struct {
	CampaignCategoryID            uuid.UUID `gorm:"column:campaign_category_id;type:uuid;primaryKey" json:"campaign_category_id"`
	CampaignCategoryName          string    `gorm:"column:campaign_category_name;type:varchar(160);not null" json:"campaign_category_name"`
	CampaignCategoryDescription   *string   `gorm:"column:campaign_category_description" json:"campaign_category_description,omitempty"`
	CampaignCategoryIsAutoCreated bool      `gorm:"column:campaign_category_is_auto_created;not null" json:"campaign_category_is_auto_created"`

	CampaignCategoryCreatedAt time.Time `gorm:"column:campaign_category_created_at;autoCreateTime" json:"campaign_category_created_at"`
	CampaignCategoryUpdatedAt time.Time `gorm:"column:campaign_category_updated_at;autoUpdateTime" json:"campaign_category_updated_at"`
}

func (CampaignCategoryModel) TableName() string { return "campaign_categories" }

func (m *CampaignCategoryModel) BeforeCreate(tx *gorm.DB) error {
	if m.CampaignCategoryID == uuid.Nil {
		m.CampaignCategoryID = uuid.New()
	}
	return nil
}
