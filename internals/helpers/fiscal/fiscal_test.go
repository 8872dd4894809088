package fiscal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBounds_Labels(t *testing.T) {
	cases := []struct {
		in    time.Time
		label string
	}{
		{time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), "FY2025"},
		{time.Date(2025, time.November, 30, 23, 59, 59, 0, time.UTC), "FY2025"},
		{time.Date(2024, time.November, 30, 12, 0, 0, 0, time.UTC), "FY2024"},
		{time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC), "FY2025"},
		{time.Date(2025, time.December, 31, 23, 0, 0, 0, time.UTC), "FY2026"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.label, Bounds(tc.in).Label, tc.in.String())
	}
}

func TestBounds_AlwaysDec1ToNov30(t *testing.T) {
	start := time.Date(2019, time.January, 1, 7, 30, 0, 0, time.UTC)
	for d := start; d.Before(start.AddDate(6, 0, 0)); d = d.Add(53 * time.Hour) {
		y := Bounds(d)

		assert.Equal(t, time.December, y.Start.Month())
		assert.Equal(t, 1, y.Start.Day())
		assert.True(t, y.Start.Equal(time.Date(y.Start.Year(), time.December, 1, 0, 0, 0, 0, time.UTC)))

		assert.Equal(t, time.November, y.End.Month())
		assert.Equal(t, 30, y.End.Day())
		assert.Equal(t, 23, y.End.Hour())
		assert.Equal(t, 59, y.End.Minute())
		assert.Equal(t, 59, y.End.Second())
		assert.Equal(t, 999*int(time.Millisecond), y.End.Nanosecond())

		assert.True(t, y.Contains(d), "date %s outside %s", d, y.Label)
	}
}

func TestBounds_ConvertsToUTC(t *testing.T) {
	lagos := time.FixedZone("WAT", 3600)
	// 00:30 Dec 1 in Lagos is still Nov 30 in UTC
	d := time.Date(2024, time.December, 1, 0, 30, 0, 0, lagos)
	assert.Equal(t, "FY2024", Bounds(d).Label)
}

func TestIsValidLabel(t *testing.T) {
	for _, ok := range []string{"FY2025", "FY1999", "FY0001"} {
		assert.True(t, IsValidLabel(ok), ok)
	}
	for _, bad := range []string{"fy2025", "FY 2025", "FY-2025", "FY25", "FY20255", "2025", "", " FY2025", "Fy2025"} {
		assert.False(t, IsValidLabel(bad), bad)
	}
}

func TestBoundsForLabel(t *testing.T) {
	y, err := BoundsForLabel("FY2025")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), y.Start)
	assert.Equal(t, 2025, y.EndYear())
	assert.Equal(t, "FY2024", y.Previous().Label)

	_, err = BoundsForLabel("FY-2025")
	assert.ErrorIs(t, err, ErrInvalidLabel)
}

func TestMonthsAndQuarters(t *testing.T) {
	y := ForEndYear(2025)
	months := y.Months()
	require.Len(t, months, 12)

	assert.Equal(t, "2024-12", months[0].Key)
	assert.Equal(t, "2025-11", months[11].Key)
	assert.Equal(t, 1, months[0].Quarter)
	assert.Equal(t, 1, months[2].Quarter)  // Feb
	assert.Equal(t, 2, months[3].Quarter)  // Mar
	assert.Equal(t, 4, months[11].Quarter) // Nov

	for i, m := range months {
		assert.Equal(t, i, MonthIndex(m.Start))
	}
	assert.True(t, months[11].End.After(y.End))
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("2025-03")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), p.Start)
	assert.Equal(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), p.End)

	now := time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 19, p.MonthsBefore(now))

	for _, bad := range []string{"2025-13", "2025-3", "25-03", "2025/03", "", "2025-00"} {
		_, err := ParsePeriod(bad)
		assert.ErrorIs(t, err, ErrInvalidPeriod, bad)
	}
}
