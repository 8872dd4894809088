package dto

import (
	"strings"
	"time"

	"reporthub_backend/internals/features/finance/financial_years/model"
)

type CreateFinancialYearRequest struct {
	FinancialYearLabel     string `json:"financial_year_label" validate:"required,len=6"`
	FinancialYearIsCurrent bool   `json:"financial_year_is_current"`
}

type UpdateFinancialYearRequest struct {
	FinancialYearLabel     *string `json:"financial_year_label,omitempty" validate:"omitempty,len=6"`
	FinancialYearIsCurrent *bool   `json:"financial_year_is_current,omitempty"`
}

func (r *CreateFinancialYearRequest) Normalize() {
	r.FinancialYearLabel = strings.ToUpper(strings.TrimSpace(r.FinancialYearLabel))
}

func (r *UpdateFinancialYearRequest) Normalize() {
	if r.FinancialYearLabel != nil {
		s := strings.ToUpper(strings.TrimSpace(*r.FinancialYearLabel))
		r.FinancialYearLabel = &s
	}
}

type FinancialYearResponse struct {
	FinancialYearID        string    `json:"financial_year_id"`
	FinancialYearLabel     string    `json:"financial_year_label"`
	FinancialYearStartDate time.Time `json:"financial_year_start_date"`
	FinancialYearEndDate   time.Time `json:"financial_year_end_date"`
	FinancialYearIsCurrent bool      `json:"financial_year_is_current"`
	FinancialYearCreatedAt time.Time `json:"financial_year_created_at"`
}

func ToFinancialYearResponse(m model.FinancialYearModel) FinancialYearResponse {
	return FinancialYearResponse{
		FinancialYearID:        m.FinancialYearID.String(),
		FinancialYearLabel:     m.FinancialYearLabel,
		FinancialYearStartDate: m.FinancialYearStartDate.UTC(),
		FinancialYearEndDate:   m.FinancialYearEndDate.UTC(),
		FinancialYearIsCurrent: m.FinancialYearIsCurrent,
		FinancialYearCreatedAt: m.FinancialYearCreatedAt,
	}
}
