package service

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	transactionModel "reporthub_backend/internals/features/finance/transactions/model"
	transactionService "reporthub_backend/internals/features/finance/transactions/service"
	helper "reporthub_backend/internals/helpers"
)

// Columns that never hold product quantities, compared after NormalizeHeader.
var reservedOrderColumns = map[string]bool{
	"chapter":                       true,
	"church":                        true,
	"church name":                   true,
	"total cost":                    true,
	"total cost including delivery": true,
	"delivery":                      true,
	"delivery cost":                 true,
	"notes":                         true,
	"s/n":                           true,
	"sn":                            true,
}

// ProductQuantity is one product column with a positive quantity on a row.
type ProductQuantity struct {
	Column   string
	Quantity int
}

// ProductQuantities lists every non-reserved column whose cell is numeric and > 0.
// Text cells are not product columns; fractional counts are an error.
func ProductQuantities(t *Table, row Row) ([]ProductQuantity, error) {
	var out []ProductQuantity
	for i, header := range t.Headers {
		key := t.Key(i)
		if key == "" || reservedOrderColumns[key] {
			continue
		}
		d, ok, err := ParseAmount(row.Get(i))
		if err != nil || !ok || !d.IsPositive() {
			continue
		}
		if !d.Equal(d.Truncate(0)) {
			return nil, fmt.Errorf("invalid quantity %q for %q", row.Get(i), header)
		}
		if d.GreaterThan(maxQuantity) {
			return nil, fmt.Errorf("quantity %q for %q is too large", row.Get(i), header)
		}
		out = append(out, ProductQuantity{Column: header, Quantity: int(d.IntPart())})
	}
	return out, nil
}

type orderColumns struct {
	chapter, totalCost, totalWithDelivery, delivery, notes int
}

// importOrders handles: Chapter, <product columns…>, Total Cost?, Total Cost Including Delivery?
func (imp *importer) importOrders(t *Table) ([]RowResult, error) {
	cols := orderColumns{
		chapter:           t.Col("chapter", "church name", "church"),
		totalCost:         t.Col("total cost"),
		totalWithDelivery: t.Col("total cost including delivery"),
		delivery:          t.Col("delivery", "delivery cost"),
		notes:             t.Col("notes"),
	}
	if err := missingColumns(map[string]int{"Chapter": cols.chapter}); err != nil {
		return nil, err
	}

	results := make([]RowResult, 0, len(t.Rows))
	for _, row := range t.Rows {
		results = append(results, imp.orderRow(t, row, cols))
	}
	return results, nil
}

func (imp *importer) orderRow(t *Table, row Row, cols orderColumns) RowResult {
	chapter := row.Get(cols.chapter)
	if chapter == "" {
		return failf(row.Num, "Chapter is required")
	}
	church, err := imp.church(chapter)
	if err != nil {
		return fail(row.Num, err)
	}
	if church == nil {
		return failf(row.Num, "church %q not found", chapter)
	}
	if err := imp.inScope(church); err != nil {
		return fail(row.Num, err)
	}

	quantities, err := ProductQuantities(t, row)
	if err != nil {
		return fail(row.Num, err)
	}
	if len(quantities) == 0 {
		return failf(row.Num, "no product quantities found")
	}

	items := make([]transactionModel.TransactionLineItemModel, 0, len(quantities))
	for _, pq := range quantities {
		pt, err := imp.orderProduct(pq.Column)
		if err != nil {
			return fail(row.Num, err)
		}
		items = append(items, transactionModel.NewLineItem(pt.ProductTypeID, pq.Quantity, pt.ProductTypeUnitPrice))
	}

	delivery, err := deliveryCost(row, cols)
	if err != nil {
		return fail(row.Num, err)
	}
	dept, err := imp.orderDepartment()
	if err != nil {
		return fail(row.Num, err)
	}

	period := imp.period.Key
	deptID := dept.DepartmentID
	uploadID := imp.uploadID
	tr := transactionModel.TransactionModel{
		TransactionChurchID:     church.ID,
		TransactionDepartmentID: &deptID,
		TransactionDate:         imp.period.Start,
		TransactionOrderPeriod:  &period,
		TransactionDeliveryCost: delivery,
		TransactionSource:       transactionModel.TransactionSourceCSVOrders,
		TransactionUploadID:     &uploadID,
	}
	if n := helper.CleanName(row.Get(cols.notes)); n != "" {
		tr.TransactionNotes = &n
	}
	return imp.saveRow(row, func(tx *gorm.DB) error {
		return transactionService.CreateWithLineItems(tx, &tr, items)
	})
}

// deliveryCost is "Total Cost Including Delivery" − "Total Cost" when both are
// present, else the Delivery column. Never negative.
func deliveryCost(row Row, cols orderColumns) (decimal.Decimal, error) {
	withDelivery, okWith, err := ParseAmount(row.Get(cols.totalWithDelivery))
	if err != nil {
		return decimal.Zero, fmt.Errorf("total cost including delivery: %w", err)
	}
	total, okTotal, err := ParseAmount(row.Get(cols.totalCost))
	if err != nil {
		return decimal.Zero, fmt.Errorf("total cost: %w", err)
	}
	if okWith && okTotal {
		if diff := withDelivery.Sub(total); diff.IsPositive() {
			return diff, nil
		}
		return decimal.Zero, nil
	}
	d, ok, err := ParseAmount(row.Get(cols.delivery))
	if err != nil {
		return decimal.Zero, fmt.Errorf("delivery: %w", err)
	}
	if ok && d.IsPositive() {
		return d, nil
	}
	return decimal.Zero, nil
}

