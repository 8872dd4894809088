package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"reporthub_backend/internals/features/catalog/product_types/model"
	helper "reporthub_backend/internals/helpers"
)

type CreateProductTypeRequest struct {
	ProductTypeDepartmentID string           `json:"product_type_department_id" validate:"required,uuid"`
	ProductTypeName         string           `json:"product_type_name" validate:"required,min=1,max=160"`
	ProductTypeUnitPrice    *decimal.Decimal `json:"product_type_unit_price,omitempty"`
	ProductTypeIsActive     *bool            `json:"product_type_is_active,omitempty"`
}

type UpdateProductTypeRequest struct {
	ProductTypeDepartmentID *string          `json:"product_type_department_id,omitempty" validate:"omitempty,uuid"`
	ProductTypeName         *string          `json:"product_type_name,omitempty" validate:"omitempty,min=1,max=160"`
	ProductTypeUnitPrice    *decimal.Decimal `json:"product_type_unit_price,omitempty"`
	ProductTypeIsActive     *bool            `json:"product_type_is_active,omitempty"`
}

func (r *CreateProductTypeRequest) Normalize() {
	r.ProductTypeName = helper.CleanName(r.ProductTypeName)
}

func (r *UpdateProductTypeRequest) Normalize() {
	if r.ProductTypeName != nil {
		s := helper.CleanName(*r.ProductTypeName)
		r.ProductTypeName = &s
	}
}

type ProductTypeDepartment struct {
	DepartmentID   string `json:"department_id"`
	DepartmentName string `json:"department_name"`
}

type ProductTypeResponse struct {
	ProductTypeID           string                 `json:"product_type_id"`
	ProductTypeDepartmentID string                 `json:"product_type_department_id"`
	ProductTypeName         string                 `json:"product_type_name"`
	ProductTypeUnitPrice    decimal.Decimal        `json:"product_type_unit_price"`
	ProductTypeIsActive     bool                   `json:"product_type_is_active"`
	ProductTypeCreatedAt    time.Time              `json:"product_type_created_at"`
	ProductTypeUpdatedAt    time.Time              `json:"product_type_updated_at"`
	Department              *ProductTypeDepartment `json:"department,omitempty"`
	Count                   *ProductTypeCounts     `json:"_count,omitempty"`
}

type ProductTypeCounts struct {
	LineItems int64 `json:"line_items"`
}

func ToProductTypeResponse(m model.ProductTypeModel) ProductTypeResponse {
	out := ProductTypeResponse{
		ProductTypeID:           m.ProductTypeID.String(),
		ProductTypeDepartmentID: m.ProductTypeDepartmentID.String(),
		ProductTypeName:         m.ProductTypeName,
		ProductTypeUnitPrice:    m.ProductTypeUnitPrice,
		ProductTypeIsActive:     m.ProductTypeIsActive,
		ProductTypeCreatedAt:    m.ProductTypeCreatedAt,
		ProductTypeUpdatedAt:    m.ProductTypeUpdatedAt,
	}
	if d := m.Department; d != nil && d.DepartmentID != uuid.Nil {
		out.Department = &ProductTypeDepartment{
			DepartmentID:   d.DepartmentID.String(),
			DepartmentName: d.DepartmentName,
		}
	}
	return out
}
