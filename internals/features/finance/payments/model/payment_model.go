package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	categoryModel "reporthub_backend/internals/features/finance/campaign_categories/model"
	churchModel "reporthub_backend/internals/features/organization/churches/model"
)

/* ===================== Enums (string) ===================== */

const (
	PaymentPurposePrinting    = "PRINTING"
	PaymentPurposeSponsorship = "SPONSORSHIP"
)

const (
	PaymentMethodCash         = "CASH"
	PaymentMethodBankTransfer = "BANK_TRANSFER"
	PaymentMethodCard         = "CARD"
	PaymentMethodOnline       = "ONLINE"
	PaymentMethodOther        = "OTHER"
)

var PaymentMethods = []string{
	PaymentMethodCash,
	PaymentMethodBankTransfer,
	PaymentMethodCard,
	PaymentMethodOnline,
	PaymentMethodOther,
}

/* ===================== Model ===================== */

type PaymentModel struct {
	PaymentID                 uuid.UUID       `gorm:"column:payment_id;type:uuid;primaryKey" json:"payment_id"`
	PaymentChurchID           uuid.UUID       `gorm:"column:payment_church_id;type:uuid;not null;index" json:"payment_church_id"`
	PaymentAmount             decimal.Decimal `gorm:"column:payment_amount;type:numeric(14,2);not null" json:"payment_amount"`
	PaymentDate               time.Time       `gorm:"column:payment_date;not null;index" json:"payment_date"`
	PaymentMethod             string          `gorm:"column:payment_method;type:varchar(20);not null" json:"payment_method"`
	PaymentPurpose            string          `gorm:"column:payment_purpose;type:varchar(20);not null" json:"payment_purpose"`
	PaymentCampaignCategoryID *uuid.UUID      `gorm:"column:payment_campaign_category_id;type:uuid;index" json:"payment_campaign_category_id,omitempty"`
	PaymentReference          *string         `gorm:"column:payment_reference" json:"payment_reference,omitempty"`
	PaymentNotes              *string         `gorm:"column:payment_notes" json:"payment_notes,omitempty"`
	PaymentUploadID           *uuid.UUID      `gorm:"column:payment_upload_id;type:uuid;index" json:"payment_upload_id,omitempty"`

	PaymentCreatedAt time.Time `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	PaymentUpdatedAt time.Time `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at"`

	Church           *churchModel.ChurchModel             `gorm:"foreignKey:PaymentChurchID;references:ChurchID" json:"church,omitempty"`
	CampaignCategory *categoryModel.CampaignCategoryModel `gorm:"foreignKey:PaymentCampaignCategoryID;references:CampaignCategoryID" json:"campaign_category,omitempty"`
}

func (PaymentModel) TableName() string { return "payments" }

func (m *PaymentModel) BeforeCreate(tx *gorm.DB) error {
	if m.PaymentID == uuid.Nil {
		m.PaymentID = uuid.New()
	}
	if m.PaymentMethod == "" {
		m.PaymentMethod = PaymentMethodOther
	}
	return nil
}

/* ===================== Helpers ===================== */

func (m *PaymentModel) IsPrinting() bool {
	return m.PaymentPurpose == PaymentPurposePrinting
}

// PurposeFromLabel classifies free text: anything mentioning "print" is PRINTING.
func PurposeFromLabel(label string) string {
	if strings.Contains(strings.ToLower(label), "print") {
		return PaymentPurposePrinting
	}
	return PaymentPurposeSponsorship
}

// NormalizeMethod maps loose spreadsheet values onto the known methods.
func NormalizeMethod(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.NewReplacer("-", "_", " ", "_").Replace(s)
	switch s {
	case "":
		return PaymentMethodOther
	case "CASH":
		return PaymentMethodCash
	case "BANK_TRANSFER", "TRANSFER", "BANK", "BANK_DEPOSIT", "DEPOSIT":
		return PaymentMethodBankTransfer
	case "CARD", "POS", "DEBIT_CARD", "CREDIT_CARD":
		return PaymentMethodCard
	case "ONLINE", "WEB", "PAYSTACK", "FLUTTERWAVE":
		return PaymentMethodOnline
	default:
		return PaymentMethodOther
	}
}
