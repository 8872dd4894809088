package service

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	productModel "reporthub_backend/internals/features/catalog/product_types/model"
	"reporthub_backend/internals/features/finance/transactions/model"
)

// LineSpec is a line item before prices are resolved. A nil UnitPrice means
// "use the product's current catalog price".
type LineSpec struct {
	ProductTypeID uuid.UUID
	Quantity      int
	UnitPrice     *decimal.Decimal
}

// BuildLineItems resolves prices and computes totals. Unknown products are a 400.
func BuildLineItems(tx *gorm.DB, specs []LineSpec) ([]model.TransactionLineItemModel, error) {
	ids := make([]uuid.UUID, 0, len(specs))
	for _, s := range specs {
		ids = append(ids, s.ProductTypeID)
	}
	var products []productModel.ProductTypeModel
	if len(ids) > 0 {
		if err := tx.Where("product_type_id IN ?", ids).Find(&products).Error; err != nil {
			return nil, err
		}
	}
	prices := make(map[uuid.UUID]decimal.Decimal, len(products))
	for _, p := range products {
		prices[p.ProductTypeID] = p.ProductTypeUnitPrice
	}

	out := make([]model.TransactionLineItemModel, 0, len(specs))
	for i, s := range specs {
		catalog, ok := prices[s.ProductTypeID]
		if !ok {
			return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("line_items[%d]: product type not found", i))
		}
		if s.Quantity <= 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("line_items[%d]: quantity must be greater than 0", i))
		}
		price := catalog
		if s.UnitPrice != nil {
			if s.UnitPrice.IsNegative() {
				return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("line_items[%d]: unit_price cannot be negative", i))
			}
			price = *s.UnitPrice
		}
		out = append(out, model.NewLineItem(s.ProductTypeID, s.Quantity, price))
	}
	return out, nil
}

// CreateWithLineItems inserts the header then its items, all on tx.
func CreateWithLineItems(tx *gorm.DB, t *model.TransactionModel, items []model.TransactionLineItemModel) error {
	t.LineItems = nil
	if err := tx.Omit("Church", "LineItems").Create(t).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].LineItemTransactionID = t.TransactionID
	}
	if len(items) > 0 {
		if err := tx.Omit("ProductType").Create(&items).Error; err != nil {
			return err
		}
	}
	t.LineItems = items
	return nil
}

// ReplaceLineItems drops the current set and inserts items.
func ReplaceLineItems(tx *gorm.DB, transactionID uuid.UUID, items []model.TransactionLineItemModel) error {
	if err := tx.Where("line_item_transaction_id = ?", transactionID).
		Delete(&model.TransactionLineItemModel{}).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].LineItemTransactionID = transactionID
	}
	if len(items) == 0 {
		return nil
	}
	return tx.Omit("ProductType").Create(&items).Error
}
