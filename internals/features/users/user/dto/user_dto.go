package dto

import (
	"strings"
	"time"

	"reporthub_backend/internals/features/users/user/model"
	helper "reporthub_backend/internals/helpers"
)

// ====================
// Request DTO
// ====================

type CreateUserRequest struct {
	UserName         string  `json:"user_name" validate:"required,min=2,max=120"`
	UserEmail        string  `json:"user_email" validate:"required,email,max=255"`
	UserPassword     *string `json:"user_password,omitempty" validate:"omitempty,min=8,max=72"`
	UserRole         string  `json:"user_role" validate:"required,oneof=SUPER_ADMIN ZONE_ADMIN USER"`
	UserZoneID       *string `json:"user_zone_id,omitempty" validate:"omitempty,uuid"`
	UserDepartmentID *string `json:"user_department_id,omitempty" validate:"omitempty,uuid"`
	UserIsActive     *bool   `json:"user_is_active,omitempty"`
}

type UpdateUserRequest struct {
	UserName         *string `json:"user_name,omitempty" validate:"omitempty,min=2,max=120"`
	UserEmail        *string `json:"user_email,omitempty" validate:"omitempty,email,max=255"`
	UserPassword     *string `json:"user_password,omitempty" validate:"omitempty,min=8,max=72"`
	UserRole         *string `json:"user_role,omitempty" validate:"omitempty,oneof=SUPER_ADMIN ZONE_ADMIN USER"`
	UserZoneID       *string `json:"user_zone_id,omitempty" validate:"omitempty,uuid"`
	UserDepartmentID *string `json:"user_department_id,omitempty" validate:"omitempty,uuid"`
	UserIsActive     *bool   `json:"user_is_active,omitempty"`
}

func (r *CreateUserRequest) Normalize() {
	r.UserName = helper.CleanName(r.UserName)
	r.UserEmail = strings.ToLower(strings.TrimSpace(r.UserEmail))
	r.UserRole = strings.ToUpper(strings.TrimSpace(r.UserRole))
	r.UserZoneID = blankToNil(r.UserZoneID)
	r.UserDepartmentID = blankToNil(r.UserDepartmentID)
}

func (r *UpdateUserRequest) Normalize() {
	if r.UserName != nil {
		s := helper.CleanName(*r.UserName)
		r.UserName = &s
	}
	if r.UserEmail != nil {
		s := strings.ToLower(strings.TrimSpace(*r.UserEmail))
		r.UserEmail = &s
	}
	if r.UserRole != nil {
		s := strings.ToUpper(strings.TrimSpace(*r.UserRole))
		r.UserRole = &s
	}
}

func blankToNil(p *string) *string {
	if p == nil || strings.TrimSpace(*p) == "" {
		return nil
	}
	s := strings.TrimSpace(*p)
	return &s
}

// ====================
// Response DTO
// ====================

type UserResponse struct {
	UserID             string    `json:"user_id"`
	UserName           string    `json:"user_name"`
	UserEmail          string    `json:"user_email"`
	UserRole           string    `json:"user_role"`
	UserZoneID         *string   `json:"user_zone_id,omitempty"`
	UserZoneName       *string   `json:"user_zone_name,omitempty"`
	UserDepartmentID   *string   `json:"user_department_id,omitempty"`
	UserDepartmentName *string   `json:"user_department_name,omitempty"`
	UserIsActive       bool      `json:"user_is_active"`
	UserHasPassword    bool      `json:"user_has_password"`
	UserCreatedAt      time.Time `json:"user_created_at"`
	UserUpdatedAt      time.Time `json:"user_updated_at"`
}

func ToUserResponse(m model.UserModel) UserResponse {
	out := UserResponse{
		UserID:          m.UserID.String(),
		UserName:        m.UserName,
		UserEmail:       m.UserEmail,
		UserRole:        m.UserRole,
		UserIsActive:    m.UserIsActive,
		UserHasPassword: m.UserPasswordHash != nil,
		UserCreatedAt:   m.UserCreatedAt,
		UserUpdatedAt:   m.UserUpdatedAt,
	}
	if m.UserZoneID != nil {
		s := m.UserZoneID.String()
		out.UserZoneID = &s
	}
	if m.Zone != nil {
		name := m.Zone.ZoneName
		out.UserZoneName = &name
	}
	if m.UserDepartmentID != nil {
		s := m.UserDepartmentID.String()
		out.UserDepartmentID = &s
	}
	if m.Department != nil {
		name := m.Department.DepartmentName
		out.UserDepartmentName = &name
	}
	return out
}
