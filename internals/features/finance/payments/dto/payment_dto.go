package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"reporthub_backend/internals/features/finance/payments/model"
)

// ====================
// Request DTO
// ====================

type CreatePaymentRequest struct {
	ChurchID           string          `json:"church_id" validate:"required,uuid"`
	Amount             decimal.Decimal `json:"amount"`
	Date               string          `json:"payment_date" validate:"required"`
	Method             string          `json:"payment_method" validate:"omitempty,oneof=CASH BANK_TRANSFER CARD ONLINE OTHER"`
	Purpose            string          `json:"payment_purpose" validate:"required,oneof=PRINTING SPONSORSHIP"`
	CampaignCategoryID *string         `json:"campaign_category_id,omitempty" validate:"omitempty,uuid"`
	Reference          *string         `json:"reference,omitempty" validate:"omitempty,max=120"`
	Notes              *string         `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

type UpdatePaymentRequest struct {
	ChurchID           *string          `json:"church_id,omitempty" validate:"omitempty,uuid"`
	Amount             *decimal.Decimal `json:"amount,omitempty"`
	Date               *string          `json:"payment_date,omitempty"`
	Method             *string          `json:"payment_method,omitempty" validate:"omitempty,oneof=CASH BANK_TRANSFER CARD ONLINE OTHER"`
	Purpose            *string          `json:"payment_purpose,omitempty" validate:"omitempty,oneof=PRINTING SPONSORSHIP"`
	CampaignCategoryID *string          `json:"campaign_category_id,omitempty" validate:"omitempty,uuid"`
	Reference          *string          `json:"reference,omitempty" validate:"omitempty,max=120"`
	Notes              *string          `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

func upper(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }

func (r *CreatePaymentRequest) Normalize() {
	r.Method = upper(r.Method)
	r.Purpose = upper(r.Purpose)
	if r.Method == "" {
		r.Method = model.PaymentMethodOther
	}
}

func (r *UpdatePaymentRequest) Normalize() {
	if r.Method != nil {
		s := upper(*r.Method)
		r.Method = &s
	}
	if r.Purpose != nil {
		s := upper(*r.Purpose)
		r.Purpose = &s
	}
}

// ====================
// Response DTO
// ====================

type PaymentResponse struct {
	PaymentID                 string          `json:"payment_id"`
	PaymentChurchID           string          `json:"payment_church_id"`
	ChurchName                string          `json:"church_name,omitempty"`
	PaymentAmount             decimal.Decimal `json:"payment_amount"`
	PaymentDate               time.Time       `json:"payment_date"`
	PaymentMethod             string          `json:"payment_method"`
	PaymentPurpose            string          `json:"payment_purpose"`
	PaymentCampaignCategoryID *uuid.UUID      `json:"payment_campaign_category_id,omitempty"`
	CampaignCategoryName      string          `json:"campaign_category_name,omitempty"`
	PaymentReference          *string         `json:"payment_reference,omitempty"`
	PaymentNotes              *string         `json:"payment_notes,omitempty"`
	PaymentUploadID           *uuid.UUID      `json:"payment_upload_id,omitempty"`
	PaymentCreatedAt          time.Time       `json:"payment_created_at"`
}

func ToPaymentResponse(m model.PaymentModel) PaymentResponse {
	out := PaymentResponse{
		PaymentID:                 m.PaymentID.String(),
		PaymentChurchID:           m.PaymentChurchID.String(),
		PaymentAmount:             m.PaymentAmount,
		PaymentDate:               m.PaymentDate.UTC(),
		PaymentMethod:             m.PaymentMethod,
		PaymentPurpose:            m.PaymentPurpose,
		PaymentCampaignCategoryID: m.PaymentCampaignCategoryID,
		PaymentReference:          m.PaymentReference,
		PaymentNotes:              m.PaymentNotes,
		PaymentUploadID:           m.PaymentUploadID,
		PaymentCreatedAt:          m.PaymentCreatedAt,
	}
	if m.Church != nil {
		out.ChurchName = m.Church.ChurchName
	}
	if m.CampaignCategory != nil {
		out.CampaignCategoryName = m.CampaignCategory.CampaignCategoryName
	}
	return out
}
