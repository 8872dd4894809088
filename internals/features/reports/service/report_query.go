package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	paymentModel "reporthub_backend/internals/features/finance/payments/model"
	transactionModel "reporthub_backend/internals/features/finance/transactions/model"
	churchService "reporthub_backend/internals/features/organization/churches/service"
	groupModel "reporthub_backend/internals/features/organization/groups/model"
	zoneModel "reporthub_backend/internals/features/organization/zones/model"
	uploadModel "reporthub_backend/internals/features/uploads/model"
	helper "reporthub_backend/internals/helpers"
	helperAuth "reporthub_backend/internals/helpers/auth"
	"reporthub_backend/internals/helpers/fiscal"
)

const topChurchLimit = 10

// Filter narrows a report to a zone, group or church, inside the caller's scope.
type Filter struct {
	ZoneID   *uuid.UUID
	GroupID  *uuid.UUID
	ChurchID *uuid.UUID
	Scope    helperAuth.ZoneScope
	// UploadedBy limits upload counts (zone admins see their own uploads only).
	UploadedBy *uuid.UUID
}

// CacheKey identifies the filtered report; kind is "payment-summary" or "dashboard".
func (f Filter) CacheKey(kind, fyLabel string) string {
	part := func(id *uuid.UUID) string {
		if id == nil {
			return "-"
		}
		return id.String()
	}
	return strings.Join([]string{
		kind, fyLabel,
		"z=" + part(f.ZoneID),
		"g=" + part(f.GroupID),
		"c=" + part(f.ChurchID),
		"s=" + part(f.Scope.ZoneID),
		"u=" + part(f.UploadedBy),
	}, ":")
}

// churches applies the filter to a church id column.
func (f Filter) churches(db, q *gorm.DB, column string) *gorm.DB {
	if f.ChurchID != nil {
		q = q.Where(column+" = ?", *f.ChurchID)
	}
	if f.GroupID != nil {
		q = q.Where(column+" IN (?)", churchService.ChurchIDsInGroup(db, *f.GroupID))
	}
	if f.ZoneID != nil {
		q = q.Where(column+" IN (?)", churchService.ChurchIDsInZone(db, *f.ZoneID))
	}
	if f.Scope.Restricted() {
		q = q.Where(column+" IN (?)", churchService.ChurchIDsInZone(db, *f.Scope.ZoneID))
	}
	return q
}

// ResolveCurrency picks the currency of the most specific zone the filter
// pins down, or NGN when the report spans zones.
func ResolveCurrency(ctx context.Context, db *gorm.DB, f Filter) (string, error) {
	db = db.WithContext(ctx)
	var zoneID *uuid.UUID
	switch {
	case f.ZoneID != nil:
		zoneID = f.ZoneID
	case f.Scope.Restricted():
		zoneID = f.Scope.ZoneID
	case f.GroupID != nil:
		var g groupModel.GroupModel
		if err := db.Select("group_zone_id").Take(&g, "group_id = ?", *f.GroupID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.DefaultCurrency, nil
			}
			return "", err
		}
		zoneID = &g.GroupZoneID
	case f.ChurchID != nil:
		zid, err := churchService.ZoneOfChurch(db, *f.ChurchID)
		if err != nil {
			return helper.DefaultCurrency, nil
		}
		zoneID = &zid
	}
	if zoneID == nil {
		return helper.DefaultCurrency, nil
	}

	var z zoneModel.ZoneModel
	if err := db.Select("zone_currency").Take(&z, "zone_id = ?", *zoneID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.DefaultCurrency, nil
		}
		return "", err
	}
	if z.ZoneCurrency == "" {
		return helper.DefaultCurrency, nil
	}
	return z.ZoneCurrency, nil
}

// LoadPayments reads the year's payments with their campaign category names.
func LoadPayments(ctx context.Context, db *gorm.DB, y fiscal.Year, f Filter) ([]PaymentRow, error) {
	db = db.WithContext(ctx)
	q := db.Table("payments p").
		Select(`p.payment_date, p.payment_amount, p.payment_purpose,
			p.payment_campaign_category_id AS category_id, cc.campaign_category_name AS category_name`).
		Joins("LEFT JOIN campaign_categories cc ON cc.campaign_category_id = p.payment_campaign_category_id").
		Where("p.payment_date BETWEEN ? AND ?", y.Start, y.End)
	q = f.churches(db, q, "p.payment_church_id")

	var rows []PaymentRow
	if err := q.Order("p.payment_date").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GeneratePaymentSummary loads and aggregates in one call.
func GeneratePaymentSummary(ctx context.Context, db *gorm.DB, y fiscal.Year, f Filter) (PaymentSummary, error) {
	currency, err := ResolveCurrency(ctx, db, f)
	if err != nil {
		return PaymentSummary{}, err
	}
	rows, err := LoadPayments(ctx, db, y, f)
	if err != nil {
		return PaymentSummary{}, err
	}
	return BuildPaymentSummary(y, rows, currency), nil
}

/* =========================
   Dashboard
========================= */

type OrderStats struct {
	Transactions        int64           `json:"transactions"`
	Quantity            int64           `json:"quantity"`
	Total               decimal.Decimal `json:"total"`
	DeliveryCost        decimal.Decimal `json:"deliveryCost"`
	GrandTotal          decimal.Decimal `json:"grandTotal"`
	TotalFormatted      string          `json:"totalFormatted"`
	GrandTotalFormatted string          `json:"grandTotalFormatted"`
}

type ChurchTotal struct {
	ChurchID       uuid.UUID       `json:"churchId" gorm:"column:church_id"`
	ChurchName     string          `json:"churchName" gorm:"column:church_name"`
	Total          decimal.Decimal `json:"total" gorm:"column:total"`
	TotalFormatted string          `json:"totalFormatted" gorm:"-"`
}

type Dashboard struct {
	FinancialYear               fiscal.Year      `json:"financialYear"`
	Currency                    string           `json:"currency"`
	Orders                      OrderStats       `json:"orders"`
	Payments                    Amounts          `json:"payments"`
	OutstandingBalance          decimal.Decimal  `json:"outstandingBalance"`
	OutstandingBalanceFormatted string           `json:"outstandingBalanceFormatted"`
	TopChurches                 []ChurchTotal    `json:"topChurches"`
	Uploads                     map[string]int64 `json:"uploads"`
}

// BuildDashboard computes the headline numbers for a financial year.
// Outstanding balance is what churches were billed (line items plus delivery)
// minus what they paid for printing.
func BuildDashboard(ctx context.Context, db *gorm.DB, y fiscal.Year, f Filter) (Dashboard, error) {
	db = db.WithContext(ctx)
	currency, err := ResolveCurrency(ctx, db, f)
	if err != nil {
		return Dashboard{}, err
	}
	out := Dashboard{
		FinancialYear: y,
		Currency:      currency,
		TopChurches:   []ChurchTotal{},
		Uploads: map[string]int64{
			uploadModel.UploadStatusSuccess: 0,
			uploadModel.UploadStatusPartial: 0,
			uploadModel.UploadStatusFailed:  0,
		},
	}

	txInYear := func() *gorm.DB {
		q := db.Model(&transactionModel.TransactionModel{}).
			Where("transactions.transaction_date BETWEEN ? AND ?", y.Start, y.End)
		return f.churches(db, q, "transactions.transaction_church_id")
	}

	// orders
	var head struct {
		Transactions int64           `gorm:"column:transactions"`
		Delivery     decimal.Decimal `gorm:"column:delivery"`
	}
	if err := txInYear().
		Select("COUNT(*) AS transactions, COALESCE(SUM(transactions.transaction_delivery_cost), 0) AS delivery").
		Scan(&head).Error; err != nil {
		return Dashboard{}, fmt.Errorf("order totals: %w", err)
	}
	var lines struct {
		Quantity int64           `gorm:"column:quantity"`
		Total    decimal.Decimal `gorm:"column:total"`
	}
	if err := txInYear().
		Joins("JOIN transaction_line_items li ON li.line_item_transaction_id = transactions.transaction_id").
		Select("COALESCE(SUM(li.line_item_quantity), 0) AS quantity, COALESCE(SUM(li.line_item_total_amount), 0) AS total").
		Scan(&lines).Error; err != nil {
		return Dashboard{}, fmt.Errorf("line totals: %w", err)
	}
	out.Orders = OrderStats{
		Transactions: head.Transactions,
		Quantity:     lines.Quantity,
		Total:        lines.Total,
		DeliveryCost: head.Delivery,
		GrandTotal:   lines.Total.Add(head.Delivery),
	}
	out.Orders.TotalFormatted = helper.FormatCurrency(out.Orders.Total, currency)
	out.Orders.GrandTotalFormatted = helper.FormatCurrency(out.Orders.GrandTotal, currency)

	// payments by purpose
	var byPurpose []struct {
		Purpose string          `gorm:"column:purpose"`
		Count   int             `gorm:"column:n"`
		Amount  decimal.Decimal `gorm:"column:amount"`
	}
	pq := db.Model(&paymentModel.PaymentModel{}).
		Select("payment_purpose AS purpose, COUNT(*) AS n, COALESCE(SUM(payment_amount), 0) AS amount").
		Where("payment_date BETWEEN ? AND ?", y.Start, y.End)
	if err := f.churches(db, pq, "payment_church_id").Group("payment_purpose").Scan(&byPurpose).Error; err != nil {
		return Dashboard{}, fmt.Errorf("payment totals: %w", err)
	}
	for _, p := range byPurpose {
		if p.Purpose == paymentModel.PaymentPurposePrinting {
			out.Payments.Printing = out.Payments.Printing.Add(p.Amount)
		} else {
			out.Payments.Sponsorship = out.Payments.Sponsorship.Add(p.Amount)
		}
		out.Payments.Total = out.Payments.Total.Add(p.Amount)
		out.Payments.Count += p.Count
	}
	out.Payments.format(currency)

	out.OutstandingBalance = out.Orders.GrandTotal.Sub(out.Payments.Printing)
	out.OutstandingBalanceFormatted = helper.FormatCurrency(out.OutstandingBalance, currency)

	// top churches by line item value
	var top []ChurchTotal
	if err := txInYear().
		Joins("JOIN transaction_line_items li ON li.line_item_transaction_id = transactions.transaction_id").
		Joins("JOIN churches ch ON ch.church_id = transactions.transaction_church_id").
		Select("ch.church_id AS church_id, ch.church_name AS church_name, COALESCE(SUM(li.line_item_total_amount), 0) AS total").
		Group("ch.church_id, ch.church_name").
		Order("total DESC, ch.church_name").
		Limit(topChurchLimit).
		Scan(&top).Error; err != nil {
		return Dashboard{}, fmt.Errorf("top churches: %w", err)
	}
	for i := range top {
		top[i].TotalFormatted = helper.FormatCurrency(top[i].Total, currency)
	}
	if top != nil {
		out.TopChurches = top
	}

	// uploads
	var uploads []struct {
		Status string `gorm:"column:status"`
		N      int64  `gorm:"column:n"`
	}
	uq := db.Model(&uploadModel.UploadHistoryModel{}).
		Select("upload_status AS status, COUNT(*) AS n").
		Where("upload_created_at BETWEEN ? AND ?", y.Start, y.End)
	if f.UploadedBy != nil {
		uq = uq.Where("upload_uploaded_by = ?", *f.UploadedBy)
	}
	if err := uq.Group("upload_status").Scan(&uploads).Error; err != nil {
		return Dashboard{}, fmt.Errorf("upload counts: %w", err)
	}
	for _, u := range uploads {
		out.Uploads[u.Status] = u.N
	}
	return out, nil
}
