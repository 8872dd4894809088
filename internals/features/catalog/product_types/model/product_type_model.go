package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	departmentModel "reporthub_backend/internals/features/catalog/departments/model"
)

type ProductTypeModel struct {
	ProductTypeID           uuid.UUID       `gorm:"column:product_type_id;type:uuid;primaryKey" json:"product_type_id"`
	ProductTypeDepartmentID uuid.UUID       `gorm:"column:product_type_department_id;type:uuid;not null;index" json:"product_type_department_id"`
	ProductTypeName         string          `gorm:"column:product_type_name;type:varchar(160);not null" json:"product_type_name"`
	ProductTypeUnitPrice    decimal.Decimal `gorm:"column:product_type_unit_price;type:numeric(14,2);not null;default:0" json:"product_type_unit_price"`
	ProductTypeIsActive     bool            `gorm:"column:product_type_is_active;not null" json:"product_type_is_active"`

	ProductTypeCreatedAt time.Time      `gorm:"column:product_type_created_at;autoCreateTime" json:"product_type_created_at"`
	ProductTypeUpdatedAt time.Time      `gorm:"column:product_type_updated_at;autoUpdateTime" json:"product_type_updated_at"`
	ProductTypeDeletedAt gorm.DeletedAt `gorm:"column:product_type_deleted_at;index" json:"-"`

	Department *departmentModel.DepartmentModel `gorm:"foreignKey:ProductTypeDepartmentID;references:DepartmentID" json:"department,omitempty"`
}

func (ProductTypeModel) TableName() string { return "product_types" }

func (m *ProductTypeModel) BeforeCreate(tx *gorm.DB) error {
	if m.ProductTypeID == uuid.Nil {
		m.ProductTypeID = uuid.New()
	}
	return nil
}
