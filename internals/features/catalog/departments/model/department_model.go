package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DepartmentModel struct {
	DepartmentID          uuid.UUID `gorm:"column:department_id;type:uuid;primaryKey" json:"department_id"`
	DepartmentName        string    `gorm:"column:department_name;type:varchar(120);not null" json:"department_name"`
	DepartmentDescription *string   `gorm:"column:department_description" json:"department_description,omitempty"`

	DepartmentCreatedAt time.Time      `gorm:"column:department_created_at;autoCreateTime" json:"department_created_at"`
	DepartmentUpdatedAt time.Time      `gorm:"column:department_updated_at;autoUpdateTime" json:"department_updated_at"`
	DepartmentDeletedAt gorm.DeletedAt `gorm:"column:department_deleted_at;index" json:"-"`
}

func (DepartmentModel) TableName() string { return "departments" }

func (m *DepartmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.DepartmentID == uuid.Nil {
		m.DepartmentID = uuid.New()
	}
	return nil
}
