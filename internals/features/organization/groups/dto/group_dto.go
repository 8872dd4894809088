package dto

import (
	"time"

	"github.com/google/uuid"

	"reporthub_backend/internals/features/organization/groups/model"
	helper "reporthub_backend/internals/helpers"
)

// ====================
// Request DTO
// ====================

type CreateGroupRequest struct {
	GroupZoneID string `json:"group_zone_id" validate:"omitempty,uuid"`
	GroupName   string `json:"group_name" validate:"required,min=2,max=120"`
}

type UpdateGroupRequest struct {
	GroupZoneID *string `json:"group_zone_id,omitempty" validate:"omitempty,uuid"`
	GroupName   *string `json:"group_name,omitempty" validate:"omitempty,min=2,max=120"`
}

func (r *CreateGroupRequest) Normalize() {
	r.GroupName = helper.CleanName(r.GroupName)
}

func (r *UpdateGroupRequest) Normalize() {
	if r.GroupName != nil {
		s := helper.CleanName(*r.GroupName)
		r.GroupName = &s
	}
}

// ====================
// Response DTO
// ====================

type GroupCounts struct {
	Churches int64 `json:"churches"`
}

type GroupZone struct {
	ZoneID       string `json:"zone_id"`
	ZoneName     string `json:"zone_name"`
	ZoneCurrency string `json:"zone_currency"`
}

type GroupChurchItem struct {
	ChurchID   string `json:"church_id"`
	ChurchName string `json:"church_name"`
}

type GroupResponse struct {
	GroupID        string            `json:"group_id"`
	GroupZoneID    string            `json:"group_zone_id"`
	GroupName      string            `json:"group_name"`
	GroupCreatedAt time.Time         `json:"group_created_at"`
	GroupUpdatedAt time.Time         `json:"group_updated_at"`
	Zone           *GroupZone        `json:"zone,omitempty"`
	Churches       []GroupChurchItem `json:"churches,omitempty"`
	Count          *GroupCounts      `json:"_count,omitempty"`
}

func ToGroupResponse(m model.GroupModel) GroupResponse {
	out := GroupResponse{
		GroupID:        m.GroupID.String(),
		GroupZoneID:    m.GroupZoneID.String(),
		GroupName:      m.GroupName,
		GroupCreatedAt: m.GroupCreatedAt,
		GroupUpdatedAt: m.GroupUpdatedAt,
	}
	if m.Zone != nil && m.Zone.ZoneID != uuid.Nil {
		out.Zone = &GroupZone{
			ZoneID:       m.Zone.ZoneID.String(),
			ZoneName:     m.Zone.ZoneName,
			ZoneCurrency: m.Zone.ZoneCurrency,
		}
	}
	return out
}
