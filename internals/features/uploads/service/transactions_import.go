package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	categoryModel "reporthub_backend/internals/features/finance/campaign_categories/model"
	paymentModel "reporthub_backend/internals/features/finance/payments/model"
	transactionModel "reporthub_backend/internals/features/finance/transactions/model"
	transactionService "reporthub_backend/internals/features/finance/transactions/service"
	helper "reporthub_backend/internals/helpers"
)

// A free-text type seen more than this many times in one file becomes a campaign category.
const categoryAutoCreateThreshold = 2

type transactionColumns struct {
	church, date, product, quantity, unitPrice, amount, method, reference int
}

func transactionColumnsOf(t *Table) transactionColumns {
	return transactionColumns{
		church:    t.Col("church name", "church"),
		date:      t.Col("date", "transaction date", "payment date"),
		product:   t.Col("product type", "product", "type"),
		quantity:  t.Col("quantity", "qty"),
		unitPrice: t.Col("unit price", "price"),
		amount:    t.Col("payment amount", "amount paid", "amount"),
		method:    t.Col("payment method", "method"),
		reference: t.Col("reference", "ref"),
	}
}

// importTransactions handles: Church Name, Date, Product Type, Quantity,
// Unit Price?, Payment Amount?, Payment Method?, Reference?
func (imp *importer) importTransactions(t *Table) ([]RowResult, error) {
	cols := transactionColumnsOf(t)
	if err := missingColumns(map[string]int{
		"Church Name":  cols.church,
		"Date":         cols.date,
		"Product Type": cols.product,
		"Quantity":     cols.quantity,
	}); err != nil {
		return nil, err
	}

	// file-wide pre-count so category creation does not depend on row order
	typeCounts := map[string]int{}
	for _, row := range t.Rows {
		if v := row.Get(cols.product); v != "" {
			typeCounts[helper.NormalizeName(v)]++
		}
	}

	results := make([]RowResult, 0, len(t.Rows))
	for _, row := range t.Rows {
		results = append(results, imp.transactionRow(row, cols, typeCounts))
	}
	return results, nil
}

func (imp *importer) transactionRow(row Row, cols transactionColumns, typeCounts map[string]int) RowResult {
	churchName := row.Get(cols.church)
	if churchName == "" {
		return failf(row.Num, "Church Name is required")
	}
	rawDate := row.Get(cols.date)
	if rawDate == "" {
		return failf(row.Num, "Date is required")
	}
	date, err := ParseDate(rawDate)
	if err != nil {
		return fail(row.Num, err)
	}
	rawQty := row.Get(cols.quantity)
	if rawQty == "" {
		return failf(row.Num, "Quantity is required")
	}
	qty, err := ParseQuantity(rawQty)
	if err != nil {
		return fail(row.Num, err)
	}

	church, err := imp.church(churchName)
	if err != nil {
		return fail(row.Num, err)
	}
	if church == nil {
		return failf(row.Num, "church %q not found", churchName)
	}
	if err := imp.inScope(church); err != nil {
		return fail(row.Num, err)
	}

	productName := row.Get(cols.product)
	var (
		productID uuid.UUID
		deptID    uuid.UUID
		unitPrice decimal.Decimal
	)
	if qty > 0 {
		if productName == "" {
			return failf(row.Num, "Product Type is required when Quantity is greater than 0")
		}
		pt, err := imp.product(productName)
		if err != nil {
			return fail(row.Num, err)
		}
		if pt == nil {
			return failf(row.Num, "product type %q not found", productName)
		}
		productID, deptID, unitPrice = pt.ProductTypeID, pt.ProductTypeDepartmentID, pt.ProductTypeUnitPrice
		if d, ok, err := ParseAmount(row.Get(cols.unitPrice)); err != nil {
			return fail(row.Num, fmt.Errorf("unit price: %w", err))
		} else if ok {
			if d.IsNegative() {
				return failf(row.Num, "unit price cannot be negative")
			}
			unitPrice = d
		}
	}

	amount, _, err := ParseAmount(row.Get(cols.amount))
	if err != nil {
		return fail(row.Num, fmt.Errorf("payment amount: %w", err))
	}
	if amount.IsNegative() {
		return failf(row.Num, "payment amount cannot be negative")
	}
	if qty == 0 && !amount.IsPositive() {
		return failf(row.Num, "nothing to import: quantity is 0 and there is no payment amount")
	}

	purpose := paymentModel.PurposeFromLabel(productName)
	var category *categoryModel.CampaignCategoryModel
	if amount.IsPositive() && purpose == paymentModel.PaymentPurposeSponsorship && productName != "" {
		allowCreate := typeCounts[helper.NormalizeName(productName)] > categoryAutoCreateThreshold
		if category, err = imp.category(productName, allowCreate); err != nil {
			return fail(row.Num, err)
		}
	}

	var reference *string
	if ref := row.Get(cols.reference); ref != "" {
		reference = &ref
	}
	uploadID := imp.uploadID

	return imp.saveRow(row, func(tx *gorm.DB) error {
		if qty > 0 {
			tr := transactionModel.TransactionModel{
				TransactionChurchID:     church.ID,
				TransactionDepartmentID: &deptID,
				TransactionDate:         date,
				TransactionReference:    reference,
				TransactionSource:       transactionModel.TransactionSourceCSVTransactions,
				TransactionUploadID:     &uploadID,
			}
			items := []transactionModel.TransactionLineItemModel{
				transactionModel.NewLineItem(productID, qty, unitPrice),
			}
			if err := transactionService.CreateWithLineItems(tx, &tr, items); err != nil {
				return err
			}
		}
		if amount.IsPositive() {
			p := paymentModel.PaymentModel{
				PaymentChurchID:  church.ID,
				PaymentAmount:    amount,
				PaymentDate:      date,
				PaymentMethod:    paymentModel.NormalizeMethod(row.Get(cols.method)),
				PaymentPurpose:   purpose,
				PaymentReference: reference,
				PaymentUploadID:  &uploadID,
			}
			if category != nil {
				id := category.CampaignCategoryID
				p.PaymentCampaignCategoryID = &id
			}
			if note := strings.TrimSpace(productName); note != "" && purpose == paymentModel.PaymentPurposeSponsorship && category == nil {
				p.PaymentNotes = &note
			}
			return tx.Omit("Church", "CampaignCategory").Create(&p).Error
		}
		return nil
	})
}
