package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultZoneCurrency = "NGN"

type ZoneModel struct {
	ZoneID       uuid.UUID `gorm:"column:zone_id;type:uuid;primaryKey" json:"zone_id"`
	ZoneName     string    `gorm:"column:zone_name;type:varchar(120);not null" json:"zone_name"`
	ZoneCurrency string    `gorm:"column:zone_currency;type:varchar(8);not null;default:NGN" json:"zone_currency"`

	ZoneCreatedAt time.Time      `gorm:"column:zone_created_at;autoCreateTime" json:"zone_created_at"`
	ZoneUpdatedAt time.Time      `gorm:"column:zone_updated_at;autoUpdateTime" json:"zone_updated_at"`
	ZoneDeletedAt gorm.DeletedAt `gorm:"column:zone_deleted_at;index" json:"-"`
}

func (ZoneModel) TableName() string { return "zones" }

func (m *ZoneModel) BeforeCreate(tx *gorm.DB) error {
	if m.ZoneID == uuid.Nil {
		m.ZoneID = uuid.New()
	}
	if m.ZoneCurrency == "" {
		m.ZoneCurrency = DefaultZoneCurrency
	}
	return nil
}
