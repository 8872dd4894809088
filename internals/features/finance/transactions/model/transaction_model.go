package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	productModel "reporthub_backend/internals/features/catalog/product_types/model"
	churchModel "reporthub_backend/internals/features/organization/churches/model"
)

/* ===================== Enums (string) ===================== */

const (
	TransactionSourceManual          = "MANUAL"
	TransactionSourceCSVTransactions = "CSV_TRANSACTIONS"
	TransactionSourceCSVOrders       = "CSV_ORDERS"
)

/* ===================== Model ===================== */

type TransactionModel struct {
	TransactionID           uuid.UUID       `gorm:"column:transaction_id;type:uuid;primaryKey" json:"transaction_id"`
	TransactionChurchID     uuid.UUID       `gorm:"column:transaction_church_id;type:uuid;not null;index" json:"transaction_church_id"`
	TransactionDepartmentID *uuid.UUID      `gorm:"column:transaction_department_id;type:uuid;index" json:"transaction_department_id,omitempty"`
	TransactionDate         time.Time       `gorm:"column:transaction_date;not null;index" json:"transaction_date"`
	TransactionOrderPeriod  *string         `gorm:"column:transaction_order_period;type:varchar(7)" json:"transaction_order_period,omitempty"`
	TransactionReference    *string         `gorm:"column:transaction_reference" json:"transaction_reference,omitempty"`
	TransactionDeliveryCost decimal.Decimal `gorm:"column:transaction_delivery_cost;type:numeric(14,2);not null;default:0" json:"transaction_delivery_cost"`
	TransactionNotes        *string         `gorm:"column:transaction_notes" json:"transaction_notes,omitempty"`
	TransactionSource       string          `gorm:"column:transaction_source;type:varchar(20);not null" json:"transaction_source"`
	TransactionUploadID     *uuid.UUID      `gorm:"column:transaction_upload_id;type:uuid;index" json:"transaction_upload_id,omitempty"`

	TransactionCreatedAt time.Time `gorm:"column:transaction_created_at;autoCreateTime" json:"transaction_created_at"`
	TransactionUpdatedAt time.Time `gorm:"column:transaction_updated_at;autoUpdateTime" json:"transaction_updated_at"`

	Church    *churchModel.ChurchModel   `gorm:"foreignKey:TransactionChurchID;references:ChurchID" json:"church,omitempty"`
	LineItems []TransactionLineItemModel `gorm:"foreignKey:LineItemTransactionID;references:TransactionID" json:"line_items,omitempty"`
}

func (TransactionModel) TableName() string { return "transactions" }

func (m *TransactionModel) BeforeCreate(tx *gorm.DB) error {
	if m.TransactionID == uuid.Nil {
		m.TransactionID = uuid.New()
	}
	if m.TransactionSource == "" {
		m.TransactionSource = TransactionSourceManual
	}
	return nil
}

// Total sums the stored line totals; line totals are never recomputed here.
func (m *TransactionModel) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, li := range m.LineItems {
		sum = sum.Add(li.LineItemTotalAmount)
	}
	return sum
}

type TransactionLineItemModel struct {
	LineItemID            uuid.UUID       `gorm:"column:line_item_id;type:uuid;primaryKey" json:"line_item_id"`
	LineItemTransactionID uuid.UUID       `gorm:"column:line_item_transaction_id;type:uuid;not null;index" json:"line_item_transaction_id"`
	LineItemProductTypeID uuid.UUID       `gorm:"column:line_item_product_type_id;type:uuid;not null;index" json:"line_item_product_type_id"`
	LineItemQuantity      int             `gorm:"column:line_item_quantity;not null" json:"line_item_quantity"`
	LineItemUnitPrice     decimal.Decimal `gorm:"column:line_item_unit_price;type:numeric(14,2);not null" json:"line_item_unit_price"`
	LineItemTotalAmount   decimal.Decimal `gorm:"column:line_item_total_amount;type:numeric(14,2);not null" json:"line_item_total_amount"`

	LineItemCreatedAt time.Time `gorm:"column:line_item_created_at;autoCreateTime" json:"line_item_created_at"`
	LineItemUpdatedAt time.Time `gorm:"column:line_item_updated_at;autoUpdateTime" json:"line_item_updated_at"`

	ProductType *productModel.ProductTypeModel `gorm:"foreignKey:LineItemProductTypeID;references:ProductTypeID" json:"product_type,omitempty"`
}

func (TransactionLineItemModel) TableName() string { return "transaction_line_items" }

func (m *TransactionLineItemModel) BeforeCreate(tx *gorm.DB) error {
	if m.LineItemID == uuid.Nil {
		m.LineItemID = uuid.New()
	}
	return nil
}

// NewLineItem fixes total = quantity × unit price at creation time.
func NewLineItem(productTypeID uuid.UUID, quantity int, unitPrice decimal.Decimal) TransactionLineItemModel {
	return TransactionLineItemModel{
		LineItemProductTypeID: productTypeID,
		LineItemQuantity:      quantity,
		LineItemUnitPrice:     unitPrice,
		LineItemTotalAmount:   unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}
}
