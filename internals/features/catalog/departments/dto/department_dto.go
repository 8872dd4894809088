package dto

import (
	"time"

	"reporthub_backend/internals/features/catalog/departments/model"
	helper "reporthub_backend/internals/helpers"
)

type CreateDepartmentRequest struct {
	DepartmentName        string  `json:"department_name" validate:"required,min=2,max=120"`
	DepartmentDescription *string `json:"department_description,omitempty" validate:"omitempty,max=1000"`
}

type UpdateDepartmentRequest struct {
	DepartmentName        *string `json:"department_name,omitempty" validate:"omitempty,min=2,max=120"`
	DepartmentDescription *string `json:"department_description,omitempty" validate:"omitempty,max=1000"`
}

func (r *CreateDepartmentRequest) Normalize() {
	r.DepartmentName = helper.CleanName(r.DepartmentName)
}

func (r *UpdateDepartmentRequest) Normalize() {
	if r.DepartmentName != nil {
		s := helper.CleanName(*r.DepartmentName)
		r.DepartmentName = &s
	}
}

type DepartmentCounts struct {
	ProductTypes int64 `json:"product_types"`
	Transactions int64 `json:"transactions"`
	Users        int64 `json:"users"`
}

type DepartmentResponse struct {
	DepartmentID          string            `json:"department_id"`
	DepartmentName        string            `json:"department_name"`
	DepartmentDescription *string           `json:"department_description,omitempty"`
	DepartmentCreatedAt   time.Time         `json:"department_created_at"`
	DepartmentUpdatedAt   time.Time         `json:"department_updated_at"`
	Count                 *DepartmentCounts `json:"_count,omitempty"`
}

func ToDepartmentResponse(m model.DepartmentModel) DepartmentResponse {
	return DepartmentResponse{
		DepartmentID:          m.DepartmentID.String(),
		DepartmentName:        m.DepartmentName,
		DepartmentDescription: m.DepartmentDescription,
		DepartmentCreatedAt:   m.DepartmentCreatedAt,
		DepartmentUpdatedAt:   m.DepartmentUpdatedAt,
	}
}
