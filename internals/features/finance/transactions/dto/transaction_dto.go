package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"reporthub_backend/internals/features/finance/transactions/model"
)

// ====================
// Request DTO
// ====================

type LineItemInput struct {
	ProductTypeID string           `json:"product_type_id" validate:"required,uuid"`
	Quantity      int              `json:"quantity" validate:"required,gt=0"`
	UnitPrice     *decimal.Decimal `json:"unit_price,omitempty"`
}

type CreateTransactionRequest struct {
	ChurchID     string           `json:"church_id" validate:"required,uuid"`
	DepartmentID *string          `json:"department_id,omitempty" validate:"omitempty,uuid"`
	Date         string           `json:"transaction_date" validate:"required"`
	OrderPeriod  *string          `json:"order_period,omitempty"`
	Reference    *string          `json:"reference,omitempty" validate:"omitempty,max=120"`
	DeliveryCost *decimal.Decimal `json:"delivery_cost,omitempty"`
	Notes        *string          `json:"notes,omitempty" validate:"omitempty,max=1000"`
	LineItems    []LineItemInput  `json:"line_items" validate:"required,min=1,dive"`
}

// UpdateTransactionRequest: LineItems, when present, replaces the whole set.
type UpdateTransactionRequest struct {
	ChurchID     *string          `json:"church_id,omitempty" validate:"omitempty,uuid"`
	DepartmentID *string          `json:"department_id,omitempty" validate:"omitempty,uuid"`
	Date         *string          `json:"transaction_date,omitempty"`
	OrderPeriod  *string          `json:"order_period,omitempty"`
	Reference    *string          `json:"reference,omitempty" validate:"omitempty,max=120"`
	DeliveryCost *decimal.Decimal `json:"delivery_cost,omitempty"`
	Notes        *string          `json:"notes,omitempty" validate:"omitempty,max=1000"`
	LineItems    *[]LineItemInput `json:"line_items,omitempty" validate:"omitempty,min=1,dive"`
}

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	if s == "" {
		return nil
	}
	return &s
}

func (r *CreateTransactionRequest) Normalize() {
	r.OrderPeriod = trimPtr(r.OrderPeriod)
	r.Reference = trimPtr(r.Reference)
	r.Notes = trimPtr(r.Notes)
}

func (r *UpdateTransactionRequest) Normalize() {
	r.Reference = trimPtr(r.Reference)
	r.Notes = trimPtr(r.Notes)
}

// ====================
// Response DTO
// ====================

type LineItemResponse struct {
	LineItemID      string          `json:"line_item_id"`
	ProductTypeID   string          `json:"product_type_id"`
	ProductTypeName string          `json:"product_type_name,omitempty"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
}

type TransactionResponse struct {
	TransactionID           string             `json:"transaction_id"`
	TransactionChurchID     string             `json:"transaction_church_id"`
	ChurchName              string             `json:"church_name,omitempty"`
	TransactionDepartmentID *uuid.UUID         `json:"transaction_department_id,omitempty"`
	TransactionDate         time.Time          `json:"transaction_date"`
	TransactionOrderPeriod  *string            `json:"transaction_order_period,omitempty"`
	TransactionReference    *string            `json:"transaction_reference,omitempty"`
	TransactionDeliveryCost decimal.Decimal    `json:"transaction_delivery_cost"`
	TransactionNotes        *string            `json:"transaction_notes,omitempty"`
	TransactionSource       string             `json:"transaction_source"`
	TransactionUploadID     *uuid.UUID         `json:"transaction_upload_id,omitempty"`
	TransactionTotal        decimal.Decimal    `json:"transaction_total"`
	TransactionGrandTotal   decimal.Decimal    `json:"transaction_grand_total"`
	TransactionCreatedAt    time.Time          `json:"transaction_created_at"`
	LineItems               []LineItemResponse `json:"line_items"`
}

func ToTransactionResponse(m model.TransactionModel) TransactionResponse {
	out := TransactionResponse{
		TransactionID:           m.TransactionID.String(),
		TransactionChurchID:     m.TransactionChurchID.String(),
		TransactionDepartmentID: m.TransactionDepartmentID,
		TransactionDate:         m.TransactionDate.UTC(),
		TransactionOrderPeriod:  m.TransactionOrderPeriod,
		TransactionReference:    m.TransactionReference,
		TransactionDeliveryCost: m.TransactionDeliveryCost,
		TransactionNotes:        m.TransactionNotes,
		TransactionSource:       m.TransactionSource,
		TransactionUploadID:     m.TransactionUploadID,
		TransactionTotal:        m.Total(),
		TransactionCreatedAt:    m.TransactionCreatedAt,
		LineItems:               make([]LineItemResponse, 0, len(m.LineItems)),
	}
	out.TransactionGrandTotal = out.TransactionTotal.Add(m.TransactionDeliveryCost)
	if m.Church != nil {
		out.ChurchName = m.Church.ChurchName
	}
	for _, li := range m.LineItems {
		r := LineItemResponse{
			LineItemID:    li.LineItemID.String(),
			ProductTypeID: li.LineItemProductTypeID.String(),
			Quantity:      li.LineItemQuantity,
			UnitPrice:     li.LineItemUnitPrice,
			TotalAmount:   li.LineItemTotalAmount,
		}
		if li.ProductType != nil {
			r.ProductTypeName = li.ProductType.ProductTypeName
		}
		out.LineItems = append(out.LineItems, r)
	}
	return out
}
