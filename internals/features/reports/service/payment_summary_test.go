package service_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reporthub_backend/internals/features/reports/service"
	"reporthub_backend/internals/helpers/fiscal"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

func TestBuildPaymentSummary(t *testing.T) {
	fy := fiscal.ForEndYear(2025)
	healing := uuid.New()
	healingName := "Healing School"

	rows := []service.PaymentRow{
		{Date: day(2024, time.December, 3), Amount: decimal.NewFromInt(1000), Purpose: "PRINTING"},
		{Date: day(2025, time.February, 28), Amount: decimal.NewFromInt(500), Purpose: "SPONSORSHIP", CategoryID: &healing, CategoryName: &healingName},
		{Date: day(2025, time.June, 1), Amount: decimal.RequireFromString("250.50"), Purpose: "SPONSORSHIP"},
		{Date: day(2025, time.November, 30), Amount: decimal.NewFromInt(2000), Purpose: "SPONSORSHIP", CategoryID: &healing, CategoryName: &healingName},
		// outside the year
		{Date: day(2024, time.November, 30), Amount: decimal.NewFromInt(999), Purpose: "PRINTING"},
		{Date: day(2025, time.December, 1), Amount: decimal.NewFromInt(999), Purpose: "PRINTING"},
	}

	s := service.BuildPaymentSummary(fy, rows, "")
	assert.Equal(t, "NGN", s.Currency)
	require.Len(t, s.Months, 12)
	require.Len(t, s.Quarters, 4)

	assert.Equal(t, "2024-12", s.Months[0].Key)
	assert.Equal(t, "2025-11", s.Months[11].Key)
	assert.True(t, s.Months[0].Printing.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, "₦1,000.00", s.Months[0].TotalFormatted)
	assert.True(t, s.Months[2].Sponsorship.Equal(decimal.NewFromInt(500)))
	assert.True(t, s.Months[1].Total.IsZero())
	assert.Equal(t, "₦0.00", s.Months[1].TotalFormatted)
	assert.True(t, s.Months[11].Total.Equal(decimal.NewFromInt(2000)))

	assert.True(t, s.Quarters[0].Total.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, 2, s.Quarters[0].Count)
	assert.True(t, s.Quarters[1].Total.IsZero())
	assert.True(t, s.Quarters[2].Total.Equal(decimal.RequireFromString("250.5")))
	assert.True(t, s.Quarters[3].Total.Equal(decimal.NewFromInt(2000)))

	assert.True(t, s.Totals.Printing.Equal(decimal.NewFromInt(1000)))
	assert.True(t, s.Totals.Sponsorship.Equal(decimal.RequireFromString("2750.5")))
	assert.Equal(t, "₦3,750.50", s.Totals.TotalFormatted)
	assert.Equal(t, 4, s.Totals.Count)

	require.Len(t, s.Categories, 2)
	assert.Equal(t, "Healing School", s.Categories[0].Name)
	assert.True(t, s.Categories[0].Amount.Equal(decimal.NewFromInt(2500)))
	assert.Equal(t, 2, s.Categories[0].Count)
	assert.Equal(t, "Uncategorised", s.Categories[1].Name)
	assert.Nil(t, s.Categories[1].CategoryID)
}

func TestBuildPaymentSummary_EmptyYear(t *testing.T) {
	s := service.BuildPaymentSummary(fiscal.ForEndYear(2026), nil, "USD")
	assert.Equal(t, "USD", s.Currency)
	assert.Len(t, s.Months, 12)
	assert.Empty(t, s.Categories)
	assert.NotNil(t, s.Categories)
	assert.Equal(t, "$0.00", s.Totals.TotalFormatted)
	for _, q := range s.Quarters {
		assert.True(t, q.Total.IsZero())
	}
}

func TestFilterCacheKey(t *testing.T) {
	zone := uuid.New()
	a := service.Filter{ZoneID: &zone}.CacheKey("dashboard", "FY2025")
	b := service.Filter{}.CacheKey("dashboard", "FY2025")
	c := service.Filter{ZoneID: &zone}.CacheKey("dashboard", "FY2024")
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Contains(t, a, "z="+zone.String())
}
