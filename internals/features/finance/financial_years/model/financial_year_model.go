package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"reporthub_backend/internals/helpers/fiscal"
)

type FinancialYearModel struct {
	FinancialYearID        uuid.UUID `gorm:"column:financial_year_id;type:uuid;primaryKey" json:"financial_year_id"`
	FinancialYearLabel     string    `gorm:"column:financial_year_label;type:varchar(6);not null;uniqueIndex" json:"financial_year_label"`
	FinancialYearStartDate time.Time `gorm:"column:financial_year_start_date;not null" json:"financial_year_start_date"`
	FinancialYearEndDate   time.Time `gorm:"column:financial_year_end_date;not null" json:"financial_year_end_date"`
	FinancialYearIsCurrent bool      `gorm:"column:financial_year_is_current;not null" json:"financial_year_is_current"`

	FinancialYearCreatedAt time.Time `gorm:"column:financial_year_created_at;autoCreateTime" json:"financial_year_created_at"`
	FinancialYearUpdatedAt time.Time `gorm:"column:financial_year_updated_at;autoUpdateTime" json:"financial_year_updated_at"`
}

func (FinancialYearModel) TableName() string { return "financial_years" }

func (m *FinancialYearModel) BeforeCreate(tx *gorm.DB) error {
	if m.FinancialYearID == uuid.Nil {
		m.FinancialYearID = uuid.New()
	}
	return nil
}

func (m *FinancialYearModel) Year() fiscal.Year {
	return fiscal.Year{
		Label: m.FinancialYearLabel,
		Start: m.FinancialYearStartDate.UTC(),
		End:   m.FinancialYearEndDate.UTC(),
	}
}

func FromYear(y fiscal.Year) FinancialYearModel {
	return FinancialYearModel{
		FinancialYearLabel:     y.Label,
		FinancialYearStartDate: y.Start,
		FinancialYearEndDate:   y.End,
	}
}
