package service

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	paymentModel "reporthub_backend/internals/features/finance/payments/model"
	helper "reporthub_backend/internals/helpers"
	"reporthub_backend/internals/helpers/fiscal"
)

const uncategorised = "Uncategorised"

var quarterLabels = [4]string{"Q1 (Dec-Feb)", "Q2 (Mar-May)", "Q3 (Jun-Aug)", "Q4 (Sep-Nov)"}

// PaymentRow is the slice of a payment the summary needs.
type PaymentRow struct {
	Date         time.Time       `gorm:"column:payment_date"`
	Amount       decimal.Decimal `gorm:"column:payment_amount"`
	Purpose      string          `gorm:"column:payment_purpose"`
	CategoryID   *uuid.UUID      `gorm:"column:category_id"`
	CategoryName *string         `gorm:"column:category_name"`
}

type Amounts struct {
	Printing             decimal.Decimal `json:"printing"`
	Sponsorship          decimal.Decimal `json:"sponsorship"`
	Total                decimal.Decimal `json:"total"`
	Count                int             `json:"count"`
	PrintingFormatted    string          `json:"printingFormatted"`
	SponsorshipFormatted string          `json:"sponsorshipFormatted"`
	TotalFormatted       string          `json:"totalFormatted"`
}

func (a *Amounts) add(purpose string, amount decimal.Decimal) {
	switch purpose {
	case paymentModel.PaymentPurposePrinting:
		a.Printing = a.Printing.Add(amount)
	default:
		a.Sponsorship = a.Sponsorship.Add(amount)
	}
	a.Total = a.Total.Add(amount)
	a.Count++
}

func (a *Amounts) format(currency string) {
	a.PrintingFormatted = helper.FormatCurrency(a.Printing, currency)
	a.SponsorshipFormatted = helper.FormatCurrency(a.Sponsorship, currency)
	a.TotalFormatted = helper.FormatCurrency(a.Total, currency)
}

type MonthRow struct {
	fiscal.Month
	Amounts
}

type QuarterRow struct {
	Quarter int    `json:"quarter"`
	Label   string `json:"label"`
	Amounts
}

type CategoryRow struct {
	CategoryID      *uuid.UUID      `json:"categoryId"`
	Name            string          `json:"name"`
	Amount          decimal.Decimal `json:"amount"`
	Count           int             `json:"count"`
	AmountFormatted string          `json:"amountFormatted"`
}

type PaymentSummary struct {
	FinancialYear fiscal.Year   `json:"financialYear"`
	Currency      string        `json:"currency"`
	Months        []MonthRow    `json:"months"`
	Quarters      []QuarterRow  `json:"quarters"`
	Categories    []CategoryRow `json:"categories"`
	Totals        Amounts       `json:"totals"`
}

// BuildPaymentSummary folds rows into the fixed Dec..Nov template.
// Rows outside y are ignored; empty months and quarters still appear.
func BuildPaymentSummary(y fiscal.Year, rows []PaymentRow, currency string) PaymentSummary {
	if currency == "" {
		currency = helper.DefaultCurrency
	}
	out := PaymentSummary{
		FinancialYear: y,
		Currency:      currency,
		Months:        make([]MonthRow, 0, 12),
		Quarters:      make([]QuarterRow, 0, 4),
		Categories:    []CategoryRow{},
	}
	for _, m := range y.Months() {
		out.Months = append(out.Months, MonthRow{Month: m})
	}
	for i, label := range quarterLabels {
		out.Quarters = append(out.Quarters, QuarterRow{Quarter: i + 1, Label: label})
	}

	cats := map[string]*CategoryRow{}
	for _, r := range rows {
		if !y.Contains(r.Date) {
			continue
		}
		idx := fiscal.MonthIndex(r.Date)
		out.Months[idx].add(r.Purpose, r.Amount)
		out.Quarters[out.Months[idx].Quarter-1].add(r.Purpose, r.Amount)
		out.Totals.add(r.Purpose, r.Amount)

		if r.Purpose != paymentModel.PaymentPurposeSponsorship && r.CategoryID == nil {
			continue
		}
		key, name := uncategorised, uncategorised
		if r.CategoryID != nil {
			key = r.CategoryID.String()
			if r.CategoryName != nil {
				name = *r.CategoryName
			}
		}
		c, ok := cats[key]
		if !ok {
			c = &CategoryRow{CategoryID: r.CategoryID, Name: name}
			cats[key] = c
		}
		c.Amount = c.Amount.Add(r.Amount)
		c.Count++
	}

	for _, c := range cats {
		c.AmountFormatted = helper.FormatCurrency(c.Amount, currency)
		out.Categories = append(out.Categories, *c)
	}
	sort.Slice(out.Categories, func(i, j int) bool {
		a, b := out.Categories[i], out.Categories[j]
		if !a.Amount.Equal(b.Amount) {
			return a.Amount.GreaterThan(b.Amount)
		}
		return a.Name < b.Name
	})

	for i := range out.Months {
		out.Months[i].format(currency)
	}
	for i := range out.Quarters {
		out.Quarters[i].format(currency)
	}
	out.Totals.format(currency)
	return out
}
