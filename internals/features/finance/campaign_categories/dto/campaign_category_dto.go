package dto

import (
	"time"

	"reporthub_backend/internals/features/finance/campaign_categories/model"
	helper "reporthub_backend/internals/helpers"
)

type CreateCampaignCategoryRequest struct {
	CampaignCategoryName        string  `json:"campaign_category_name" validate:"required,min=2,max=160"`
	CampaignCategoryDescription *string `json:"campaign_category_description,omitempty" validate:"omitempty,max=1000"`
}

type UpdateCampaignCategoryRequest struct {
	CampaignCategoryName        *string `json:"campaign_category_name,omitempty" validate:"omitempty,min=2,max=160"`
	CampaignCategoryDescription *string `json:"campaign_category_description,omitempty" validate:"omitempty,max=1000"`
}

func (r *CreateCampaignCategoryRequest) Normalize() {
	r.CampaignCategoryName = helper.CleanName(r.CampaignCategoryName)
}

func (r *UpdateCampaignCategoryRequest) Normalize() {
	if r.CampaignCategoryName != nil {
		s := helper.CleanName(*r.CampaignCategoryName)
		r.CampaignCategoryName = &s
	}
}

type CampaignCategoryResponse struct {
	CampaignCategoryID            string                  `json:"campaign_category_id"`
	CampaignCategoryName          string                  `json:"campaign_category_name"`
	CampaignCategoryDescription   *string                 `json:"campaign_category_description,omitempty"`
	CampaignCategoryIsAutoCreated bool                    `json:"campaign_category_is_auto_created"`
	CampaignCategoryCreatedAt     time.Time               `json:"campaign_category_created_at"`
	CampaignCategoryUpdatedAt     time.Time               `json:"campaign_category_updated_at"`
	Count                         *CampaignCategoryCounts `json:"_count,omitempty"`
}

type CampaignCategoryCounts struct {
	Payments int64 `json:"payments"`
}

func ToCampaignCategoryResponse(m model.CampaignCategoryModel) CampaignCategoryResponse {
	return CampaignCategoryResponse{
		CampaignCategoryID:            m.CampaignCategoryID.String(),
		CampaignCategoryName:          m.CampaignCategoryName,
		CampaignCategoryDescription:   m.CampaignCategoryDescription,
		CampaignCategoryIsAutoCreated: m.CampaignCategoryIsAutoCreated,
		CampaignCategoryCreatedAt:     m.CampaignCategoryCreatedAt,
		CampaignCategoryUpdatedAt:     m.CampaignCategoryUpdatedAt,
	}
}
