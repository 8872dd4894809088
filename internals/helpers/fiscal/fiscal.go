// Package fiscal holds the Dec 1 – Nov 30 financial-year calendar.
//
// A financial year is labelled by the calendar year it ends in, so
// Dec 2024 – Nov 2025 is "FY2025". All bounds are UTC day boundaries.
package fiscal

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var (
	ErrInvalidLabel  = errors.New("invalid financial year label, expected FY followed by 4 digits (e.g. FY2025)")
	ErrInvalidPeriod = errors.New("invalid period, expected YYYY-MM")
)

var (
	labelPattern  = regexp.MustCompile(`^FY\d{4}$`)
	periodPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
)

type Year struct {
	Label string    `json:"label"`
	Start time.Time `json:"startDate"`
	End   time.Time `json:"endDate"`
}

// Bounds returns the financial year containing d.
func Bounds(d time.Time) Year {
	d = d.UTC()
	endYear := d.Year()
	if d.Month() == time.December {
		endYear++
	}
	return ForEndYear(endYear)
}

func ForEndYear(endYear int) Year {
	return Year{
		Label: fmt.Sprintf("FY%04d", endYear),
		Start: time.Date(endYear-1, time.December, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(endYear, time.November, 30, 23, 59, 59, int(999*time.Millisecond), time.UTC),
	}
}

func IsValidLabel(label string) bool {
	return labelPattern.MatchString(label)
}

// BoundsForLabel validates the label before computing anything.
func BoundsForLabel(label string) (Year, error) {
	if !IsValidLabel(label) {
		return Year{}, ErrInvalidLabel
	}
	y, err := strconv.Atoi(label[2:])
	if err != nil {
		return Year{}, ErrInvalidLabel
	}
	return ForEndYear(y), nil
}

func (y Year) EndYear() int {
	return y.End.Year()
}

func (y Year) Contains(t time.Time) bool {
	t = t.UTC()
	return !t.Before(y.Start) && !t.After(y.End)
}

// Previous is the year immediately before y.
func (y Year) Previous() Year {
	return ForEndYear(y.EndYear() - 1)
}

/* =========================
   Months & quarters
========================= */

type Month struct {
	Key     string    `json:"key"`   // 2024-12
	Label   string    `json:"label"` // Dec 2024
	Quarter int       `json:"quarter"`
	Start   time.Time `json:"startDate"`
	End     time.Time `json:"endDate"` // exclusive
}

// Months lists Dec..Nov in fiscal order.
func (y Year) Months() []Month {
	out := make([]Month, 0, 12)
	cur := y.Start
	for i := 0; i < 12; i++ {
		next := cur.AddDate(0, 1, 0)
		out = append(out, Month{
			Key:     cur.Format("2006-01"),
			Label:   cur.Format("Jan 2006"),
			Quarter: QuarterOf(cur.Month()),
			Start:   cur,
			End:     next,
		})
		cur = next
	}
	return out
}

// QuarterOf: Q1 Dec–Feb, Q2 Mar–May, Q3 Jun–Aug, Q4 Sep–Nov.
func QuarterOf(m time.Month) int {
	shifted := (int(m) % 12) // Dec → 0
	return shifted/3 + 1
}

// MonthIndex is the 0-based position of t's month inside its financial year.
func MonthIndex(t time.Time) int {
	return int(t.UTC().Month()) % 12
}

/* =========================
   Order periods (YYYY-MM)
========================= */

type Period struct {
	Key   string    `json:"key"`
	Start time.Time `json:"startDate"`
	End   time.Time `json:"endDate"` // exclusive
}

func IsValidPeriod(s string) bool {
	return periodPattern.MatchString(s)
}

func ParsePeriod(s string) (Period, error) {
	if !IsValidPeriod(s) {
		return Period{}, ErrInvalidPeriod
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, ErrInvalidPeriod
	}
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Period{Key: s, Start: start, End: start.AddDate(0, 1, 0)}, nil
}

// MonthsBefore counts whole calendar months from p back from now's month (0 = same month).
func (p Period) MonthsBefore(now time.Time) int {
	now = now.UTC()
	return (now.Year()-p.Start.Year())*12 + int(now.Month()) - int(p.Start.Month())
}
