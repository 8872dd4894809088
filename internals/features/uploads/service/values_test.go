package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	cases := map[string]time.Time{
		"2025-01-15":           time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		"2025-01-15T10:30:00Z": time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC),
		"2025/01/15":           time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		"15/01/2025":           time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		"03/04/2025":           time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC),
		"01/15/2025":           time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		"5 Feb 2025":           time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC),
		"Feb 5, 2025":          time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC),
		"05-Feb-2025":          time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC),
		"45672":                time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		"45672.5":              time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC),
		"1":                    time.Date(1899, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	for in, want := range cases {
		got, err := ParseDate(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), "%s: got %s want %s", in, got, want)
	}

	for _, bad := range []string{"", "yesterday", "2025-13-45", "0", "99999999"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseAmount(t *testing.T) {
	d, ok, err := ParseAmount("₦1,250.50")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, d.Equal(decimal.RequireFromString("1250.5")))

	d, ok, err = ParseAmount("NGN 300")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, d.Equal(decimal.NewFromInt(300)))

	_, ok, err = ParseAmount("  ")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = ParseAmount("12abc")
	assert.Error(t, err)
	assert.True(t, ok)
}

func TestParseQuantity(t *testing.T) {
	n, err := ParseQuantity("3.0")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = ParseQuantity("0")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = ParseQuantity("2147483647")
	require.NoError(t, err)
	assert.Equal(t, 2147483647, n)

	for _, bad := range []string{"", "-1", "2.5", "x", "2147483648", "10000000000000000000"} {
		_, err := ParseQuantity(bad)
		assert.Error(t, err, bad)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]RowResult{ok(2), failf(3, "Church Name is required")}, 2)
	assert.Equal(t, "PARTIAL", s.Status)
	assert.Equal(t, 1, s.RecordsProcessed)
	assert.Equal(t, []string{"Row 3: Church Name is required"}, s.Errors)

	assert.Equal(t, "SUCCESS", Summarize([]RowResult{ok(2)}, 1).Status)
	assert.Equal(t, "FAILED", Summarize([]RowResult{failf(2, "x")}, 1).Status)
	assert.Equal(t, "FAILED", Summarize(nil, 0).Status)
}
