package dto

import (
	"time"

	"github.com/google/uuid"

	"reporthub_backend/internals/features/organization/churches/model"
	helper "reporthub_backend/internals/helpers"
)

// ====================
// Request DTO
// ====================

type CreateChurchRequest struct {
	ChurchGroupID string  `json:"church_group_id" validate:"required,uuid"`
	ChurchName    string  `json:"church_name" validate:"required,min=2,max=160"`
	ChurchAddress *string `json:"church_address,omitempty" validate:"omitempty,max=500"`
}

type UpdateChurchRequest struct {
	ChurchGroupID *string `json:"church_group_id,omitempty" validate:"omitempty,uuid"`
	ChurchName    *string `json:"church_name,omitempty" validate:"omitempty,min=2,max=160"`
	ChurchAddress *string `json:"church_address,omitempty" validate:"omitempty,max=500"`
}

func (r *CreateChurchRequest) Normalize() {
	r.ChurchName = helper.CleanName(r.ChurchName)
}

func (r *UpdateChurchRequest) Normalize() {
	if r.ChurchName != nil {
		s := helper.CleanName(*r.ChurchName)
		r.ChurchName = &s
	}
}

// ====================
// Response DTO
// ====================

type ChurchCounts struct {
	Transactions int64 `json:"transactions"`
	Payments     int64 `json:"payments"`
}

type ChurchGroup struct {
	GroupID   string  `json:"group_id"`
	GroupName string  `json:"group_name"`
	ZoneID    string  `json:"zone_id"`
	ZoneName  *string `json:"zone_name,omitempty"`
}

type ChurchResponse struct {
	ChurchID        string        `json:"church_id"`
	ChurchGroupID   string        `json:"church_group_id"`
	ChurchName      string        `json:"church_name"`
	ChurchAddress   *string       `json:"church_address,omitempty"`
	ChurchCreatedAt time.Time     `json:"church_created_at"`
	ChurchUpdatedAt time.Time     `json:"church_updated_at"`
	Group           *ChurchGroup  `json:"group,omitempty"`
	Count           *ChurchCounts `json:"_count,omitempty"`
}

func ToChurchResponse(m model.ChurchModel) ChurchResponse {
	out := ChurchResponse{
		ChurchID:        m.ChurchID.String(),
		ChurchGroupID:   m.ChurchGroupID.String(),
		ChurchName:      m.ChurchName,
		ChurchAddress:   m.ChurchAddress,
		ChurchCreatedAt: m.ChurchCreatedAt,
		ChurchUpdatedAt: m.ChurchUpdatedAt,
	}
	if g := m.Group; g != nil && g.GroupID != uuid.Nil {
		out.Group = &ChurchGroup{
			GroupID:   g.GroupID.String(),
			GroupName: g.GroupName,
			ZoneID:    g.GroupZoneID.String(),
		}
		if g.Zone != nil {
			name := g.Zone.ZoneName
			out.Group.ZoneName = &name
		}
	}
	return out
}
