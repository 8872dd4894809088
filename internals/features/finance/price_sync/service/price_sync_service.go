package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"reporthub_backend/internals/features/finance/transactions/model"
	"reporthub_backend/internals/helpers/fiscal"
)

// MaxLookbackMonths bounds how far back a sync may rewrite history.
const MaxLookbackMonths = 24

var ErrPeriodTooOld = errors.New("order period is more than 2 years old")

type Change struct {
	LineItemID      uuid.UUID       `json:"lineItemId" gorm:"column:line_item_id"`
	TransactionID   uuid.UUID       `json:"transactionId" gorm:"column:transaction_id"`
	ProductTypeID   uuid.UUID       `json:"productTypeId" gorm:"column:product_type_id"`
	ProductTypeName string          `json:"productTypeName" gorm:"column:product_type_name"`
	Quantity        int             `json:"quantity" gorm:"column:quantity"`
	OldUnitPrice    decimal.Decimal `json:"oldUnitPrice" gorm:"column:old_unit_price"`
	NewUnitPrice    decimal.Decimal `json:"newUnitPrice" gorm:"column:new_unit_price"`
	OldTotal        decimal.Decimal `json:"oldTotal" gorm:"column:old_total"`
	NewTotal        decimal.Decimal `json:"newTotal" gorm:"-"`
}

type Result struct {
	Message              string   `json:"message"`
	Period               string   `json:"period"`
	LineItemsUpdated     int      `json:"lineItemsUpdated"`
	TransactionsAffected int      `json:"transactionsAffected"`
	Changes              []Change `json:"changes"`
}

// ValidatePeriod parses YYYY-MM and enforces the look-back limit.
func ValidatePeriod(orderPeriod string, now time.Time) (fiscal.Period, error) {
	p, err := fiscal.ParsePeriod(orderPeriod)
	if err != nil {
		return p, err
	}
	if p.MonthsBefore(now) > MaxLookbackMonths {
		return p, ErrPeriodTooOld
	}
	return p, nil
}

// FindMismatches lists line items in the window whose price differs from the catalog.
func FindMismatches(db *gorm.DB, p fiscal.Period) ([]Change, error) {
	var rows []Change
	err := db.Table("transaction_line_items AS li").
		Select(`li.line_item_id AS line_item_id,
			t.transaction_id AS transaction_id,
			pt.product_type_id AS product_type_id,
			pt.product_type_name AS product_type_name,
			li.line_item_quantity AS quantity,
			li.line_item_unit_price AS old_unit_price,
			pt.product_type_unit_price AS new_unit_price,
			li.line_item_total_amount AS old_total`).
		Joins("JOIN transactions t ON t.transaction_id = li.line_item_transaction_id").
		Joins("JOIN product_types pt ON pt.product_type_id = li.line_item_product_type_id").
		Where("t.transaction_date >= ? AND t.transaction_date < ?", p.Start, p.End).
		Where("li.line_item_unit_price <> pt.product_type_unit_price").
		Order("t.transaction_date ASC, li.line_item_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].NewTotal = rows[i].NewUnitPrice.Mul(decimal.NewFromInt(int64(rows[i].Quantity)))
	}
	return rows, nil
}

// Preview reports what Sync would change without writing.
func Preview(ctx context.Context, db *gorm.DB, orderPeriod string, now time.Time) (Result, error) {
	p, err := ValidatePeriod(orderPeriod, now)
	if err != nil {
		return Result{}, err
	}
	changes, err := FindMismatches(db.WithContext(ctx), p)
	if err != nil {
		return Result{}, err
	}
	res := summarize(p, changes)
	res.Message = fmt.Sprintf("%d line item(s) would be updated", len(changes))
	return res, nil
}

// Sync overwrites unit price and total for every mismatched line item in one transaction.
func Sync(ctx context.Context, db *gorm.DB, orderPeriod string, now time.Time) (Result, error) {
	p, err := ValidatePeriod(orderPeriod, now)
	if err != nil {
		return Result{}, err
	}

	var changes []Change
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := FindMismatches(tx, p)
		if err != nil {
			return err
		}
		changes = found
		for _, ch := range changes {
			if err := tx.Model(&model.TransactionLineItemModel{}).
				Where("line_item_id = ?", ch.LineItemID).
				Updates(map[string]any{
					"line_item_unit_price":   ch.NewUnitPrice,
					"line_item_total_amount": ch.NewTotal,
					"line_item_updated_at":   time.Now(),
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	res := summarize(p, changes)
	if len(changes) == 0 {
		res.Message = "All prices are already up to date"
		return res, nil
	}
	res.Message = fmt.Sprintf("Updated %d line item(s) across %d transaction(s)", res.LineItemsUpdated, res.TransactionsAffected)
	log.Printf("[PRICE-SYNC] period=%s updated=%d transactions=%d", p.Key, res.LineItemsUpdated, res.TransactionsAffected)
	return res, nil
}

func summarize(p fiscal.Period, changes []Change) Result {
	seen := make(map[uuid.UUID]struct{}, len(changes))
	for _, ch := range changes {
		seen[ch.TransactionID] = struct{}{}
	}
	if changes == nil {
		changes = []Change{}
	}
	return Result{
		Period:               p.Key,
		LineItemsUpdated:     len(changes),
		TransactionsAffected: len(seen),
		Changes:              changes,
	}
}
