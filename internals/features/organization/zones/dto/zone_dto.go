package dto

import (
	"strings"
	"time"

	"reporthub_backend/internals/features/organization/zones/model"
	helper "reporthub_backend/internals/helpers"
)

// ====================
// Request DTO
// ====================

type CreateZoneRequest struct {
	ZoneName     string  `json:"zone_name" validate:"required,min=2,max=120"`
	ZoneCurrency *string `json:"zone_currency,omitempty" validate:"omitempty,len=3,alpha"`
}

type UpdateZoneRequest struct {
	ZoneName     *string `json:"zone_name,omitempty" validate:"omitempty,min=2,max=120"`
	ZoneCurrency *string `json:"zone_currency,omitempty" validate:"omitempty,len=3,alpha"`
}

func (r *CreateZoneRequest) Normalize() {
	r.ZoneName = helper.CleanName(r.ZoneName)
	if r.ZoneCurrency != nil {
		s := strings.ToUpper(strings.TrimSpace(*r.ZoneCurrency))
		r.ZoneCurrency = &s
	}
}

func (r *UpdateZoneRequest) Normalize() {
	if r.ZoneName != nil {
		s := helper.CleanName(*r.ZoneName)
		r.ZoneName = &s
	}
	if r.ZoneCurrency != nil {
		s := strings.ToUpper(strings.TrimSpace(*r.ZoneCurrency))
		r.ZoneCurrency = &s
	}
}

func (r CreateZoneRequest) ToModel() model.ZoneModel {
	m := model.ZoneModel{ZoneName: r.ZoneName, ZoneCurrency: model.DefaultZoneCurrency}
	if r.ZoneCurrency != nil && *r.ZoneCurrency != "" {
		m.ZoneCurrency = *r.ZoneCurrency
	}
	return m
}

func (r UpdateZoneRequest) Apply(m *model.ZoneModel) {
	if r.ZoneName != nil {
		m.ZoneName = *r.ZoneName
	}
	if r.ZoneCurrency != nil && *r.ZoneCurrency != "" {
		m.ZoneCurrency = *r.ZoneCurrency
	}
}

// ====================
// Response DTO
// ====================

type ZoneCounts struct {
	Groups int64 `json:"groups"`
	Users  int64 `json:"users"`
}

type ZoneGroupItem struct {
	GroupID   string `json:"group_id"`
	GroupName string `json:"group_name"`
}

type ZoneResponse struct {
	ZoneID        string          `json:"zone_id"`
	ZoneName      string          `json:"zone_name"`
	ZoneCurrency  string          `json:"zone_currency"`
	ZoneCreatedAt time.Time       `json:"zone_created_at"`
	ZoneUpdatedAt time.Time       `json:"zone_updated_at"`
	Groups        []ZoneGroupItem `json:"groups,omitempty"`
	Count         *ZoneCounts     `json:"_count,omitempty"`
}

func ToZoneResponse(m model.ZoneModel) ZoneResponse {
	return ZoneResponse{
		ZoneID:        m.ZoneID.String(),
		ZoneName:      m.ZoneName,
		ZoneCurrency:  m.ZoneCurrency,
		ZoneCreatedAt: m.ZoneCreatedAt,
		ZoneUpdatedAt: m.ZoneUpdatedAt,
	}
}
